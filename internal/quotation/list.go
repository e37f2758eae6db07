package quotation

import (
	"time"

	"github.com/google/uuid"
)

// NewList creates an open quotation list from imported products. Product
// order is preserved from the import and defines row order everywhere.
func NewList(name string, products []Product) (List, error) {
	if len(products) == 0 {
		return List{}, ErrEmptyCatalog
	}
	now := time.Now().Format(time.RFC3339)
	l := List{
		ID:        uuid.New().String(),
		Name:      name,
		Products:  make([]Product, len(products)),
		Responses: map[string]map[string]string{},
		Status:    StatusOpen,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	copy(l.Products, products)
	return l, nil
}

// Finalize closes the list to further responses. The transition is one-way;
// finalizing twice is an error so callers notice stale state.
func (l List) Finalize() (List, error) {
	if l.Status == StatusFinalized {
		return List{}, ErrAlreadyFinalized
	}
	out := l.Clone()
	out.Status = StatusFinalized
	out.UpdatedAt = time.Now().Format(time.RFC3339)
	return out, nil
}

// ReopenAsTemplate creates a fresh open list with the same products and no
// responses. Reusing a past list is creation of a new aggregate, never a
// mutation of the finalized one.
func (l List) ReopenAsTemplate() List {
	now := time.Now().Format(time.RFC3339)
	out := l.Clone()
	out.ID = uuid.New().String()
	out.Responses = map[string]map[string]string{}
	out.Status = StatusOpen
	out.Version = 1
	out.CreatedAt = now
	out.UpdatedAt = now
	return out
}
