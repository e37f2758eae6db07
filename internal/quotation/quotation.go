// Package quotation implements the RFQ aggregation engine: product catalogs,
// quotation lists, single-use response links, supplier submissions, the
// lowest-price analysis and the per-supplier export. Everything in this
// package is a pure function over in-memory snapshots; persistence lives in
// the caller.
package quotation

import "errors"

// QuotationList lifecycle.
const (
	StatusOpen      = "open"
	StatusFinalized = "finalized"
)

// ResponseLink lifecycle.
const (
	LinkPending   = "pending"
	LinkResponded = "responded"
)

var (
	// ErrEmptyCatalog is returned when an import yields zero valid products.
	ErrEmptyCatalog = errors.New("no valid products found")
	// ErrAlreadyFinalized is returned by Finalize on a finalized list.
	// A second finalize is a caller state-tracking bug, not a no-op.
	ErrAlreadyFinalized = errors.New("list already finalized")
	// ErrListFinalized rejects operations that require an open list.
	ErrListFinalized = errors.New("list is finalized")
	// ErrLinkNotFound is returned when a token matches no link.
	ErrLinkNotFound = errors.New("response link not found")
	// ErrLinkAlreadyResponded rejects a second submission on the same link.
	ErrLinkAlreadyResponded = errors.New("response link already used")
	// ErrEmptyResponse rejects submissions where every price is blank.
	ErrEmptyResponse = errors.New("at least one price is required")
	// ErrListNotFound is returned by storage when a list id does not exist.
	ErrListNotFound = errors.New("list not found")
	// ErrStorageUnavailable wraps storage faults; surfaced, never retried here.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Product is one imported catalog row. Immutable once imported.
type Product struct {
	InternalCode string `json:"internal_code"`
	Description  string `json:"description"`
	Barcode      string `json:"barcode"`
}

// List is the aggregate root: a named product catalog plus all supplier
// responses collected so far. Responses maps supplier name to a map of
// internal code to the raw price text exactly as the supplier typed it.
type List struct {
	ID        string                       `json:"id"`
	Name      string                       `json:"name"`
	Products  []Product                    `json:"products"`
	Responses map[string]map[string]string `json:"responses"`
	Status    string                       `json:"status"`
	Version   int64                        `json:"version"`
	CreatedAt string                       `json:"created_at"`
	UpdatedAt string                       `json:"updated_at"`
}

// Link is an opaque single-use capability binding one supplier to one list.
type Link struct {
	ID           string `json:"id"`
	ListID       string `json:"list_id"`
	SupplierName string `json:"supplier_name"`
	Token        string `json:"token"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// Clone returns a deep copy of the list. Engine operations never mutate
// their input; they copy, modify and return.
func (l List) Clone() List {
	out := l
	out.Products = make([]Product, len(l.Products))
	copy(out.Products, l.Products)
	out.Responses = make(map[string]map[string]string, len(l.Responses))
	for supplier, entries := range l.Responses {
		m := make(map[string]string, len(entries))
		for code, text := range entries {
			m[code] = text
		}
		out.Responses[supplier] = m
	}
	return out
}

// codeSet returns the set of product codes in the list.
func (l List) codeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(l.Products))
	for _, p := range l.Products {
		set[p.InternalCode] = struct{}{}
	}
	return set
}
