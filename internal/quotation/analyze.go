package quotation

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// PriceResult is the derived lowest-price view for one product. MinValue is
// nil when no supplier submitted a usable price. Winners holds every
// supplier tied at the minimum, sorted by name.
type PriceResult struct {
	MinValue *float64 `json:"min_value"`
	Winners  []string `json:"winners"`
}

// ParsePrice parses supplier price text. A comma is accepted as the decimal
// separator in addition to a period ("12,50" and "12.50" both parse to
// 12.5). Only positive finite values count; anything else is simply not a
// candidate.
func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// Analyze computes, per product, the minimum valid price across all
// suppliers and the set of suppliers tied at that minimum. Ties are
// preserved, not broken: equality is on the parsed value, so "10" and
// "10.00" both win.
//
// The list's status does not matter; analyzing an open list gives live
// feedback as responses arrive. Nothing is memoized, so callers must
// re-invoke after any mutation of the responses.
func Analyze(list List) map[string]PriceResult {
	results := make(map[string]PriceResult, len(list.Products))
	for _, p := range list.Products {
		min := 0.0
		found := false
		for _, entries := range list.Responses {
			v, ok := ParsePrice(entries[p.InternalCode])
			if !ok {
				continue
			}
			if !found || v < min {
				min = v
				found = true
			}
		}
		res := PriceResult{Winners: []string{}}
		if found {
			m := min
			res.MinValue = &m
			for supplier, entries := range list.Responses {
				if v, ok := ParsePrice(entries[p.InternalCode]); ok && v == min {
					res.Winners = append(res.Winners, supplier)
				}
			}
			sort.Strings(res.Winners)
		}
		results[p.InternalCode] = res
	}
	return results
}
