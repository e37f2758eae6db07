package quotation

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// IssueLink mints a single-use response link for one supplier on an open
// list. Finalized lists can never be answered, so issuing against one fails.
func IssueLink(l List, supplierName string) (Link, error) {
	if l.Status == StatusFinalized {
		return Link{}, ErrListFinalized
	}
	return Link{
		ID:           uuid.New().String(),
		ListID:       l.ID,
		SupplierName: supplierName,
		Token:        NewToken(),
		Status:       LinkPending,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

// NewToken returns an opaque 256-bit bearer token. Collisions are not
// otherwise defended against.
func NewToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// PublicURL is the link's public identity: {baseOrigin}/cotacao/{token}.
func (k Link) PublicURL(baseOrigin string) string {
	return baseOrigin + "/cotacao/" + k.Token
}
