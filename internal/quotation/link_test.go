package quotation

import (
	"errors"
	"testing"
)

func TestIssueLink(t *testing.T) {
	l, _ := NewList("l", testProducts())
	link, err := IssueLink(l, "Fornecedor A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.ListID != l.ID {
		t.Errorf("expected list id %s, got %s", l.ID, link.ListID)
	}
	if link.SupplierName != "Fornecedor A" {
		t.Errorf("wrong supplier: %s", link.SupplierName)
	}
	if link.Status != LinkPending {
		t.Errorf("expected pending, got %s", link.Status)
	}
	if len(link.Token) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(link.Token))
	}
}

func TestIssueLinkFinalizedList(t *testing.T) {
	l, _ := NewList("l", testProducts())
	closed, _ := l.Finalize()
	if _, err := IssueLink(closed, "A"); !errors.Is(err, ErrListFinalized) {
		t.Errorf("expected ErrListFinalized, got %v", err)
	}
}

func TestIssueLinkSameSupplierTwice(t *testing.T) {
	// Supplier names are not unique across links; the aggregation key is
	// the name recorded in responses.
	l, _ := NewList("l", testProducts())
	a, _ := IssueLink(l, "A")
	b, _ := IssueLink(l, "A")
	if a.Token == b.Token {
		t.Error("expected distinct tokens")
	}
	if a.ID == b.ID {
		t.Error("expected distinct ids")
	}
}

func TestNewTokenUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok := NewToken()
		if _, dup := seen[tok]; dup {
			t.Fatal("duplicate token")
		}
		seen[tok] = struct{}{}
	}
}

func TestPublicURL(t *testing.T) {
	k := Link{Token: "abc123"}
	got := k.PublicURL("https://cotacao.example.com")
	if got != "https://cotacao.example.com/cotacao/abc123" {
		t.Errorf("wrong url: %s", got)
	}
}
