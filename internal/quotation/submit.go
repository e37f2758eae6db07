package quotation

import (
	"strings"
	"time"
)

// Submit merges one supplier's price entries into the list and consumes the
// link. This is the only write path into List.Responses.
//
// Gates, in order: a responded link fails, a finalized list fails, an
// all-blank submission fails (so an accidental empty submit does not burn
// the single-use link). Entries keyed by a code the list does not carry are
// dropped silently; a late catalog edit must not break in-flight links.
//
// On success the supplier's entries replace any prior ones wholesale and the
// link is marked responded. Inputs are never mutated; updated copies are
// returned, and nothing changes on failure.
func Submit(link Link, list List, entries map[string]string) (List, Link, error) {
	if link.Status == LinkResponded {
		return List{}, Link{}, ErrLinkAlreadyResponded
	}
	if list.Status == StatusFinalized {
		return List{}, Link{}, ErrListFinalized
	}
	filled := 0
	for _, text := range entries {
		if strings.TrimSpace(text) != "" {
			filled++
		}
	}
	if filled == 0 {
		return List{}, Link{}, ErrEmptyResponse
	}

	known := list.codeSet()
	accepted := make(map[string]string, len(entries))
	for code, text := range entries {
		if _, ok := known[code]; ok {
			accepted[code] = text
		}
	}

	out := list.Clone()
	out.Responses[link.SupplierName] = accepted
	out.Version++
	out.UpdatedAt = time.Now().Format(time.RFC3339)

	usedLink := link
	usedLink.Status = LinkResponded
	return out, usedLink, nil
}
