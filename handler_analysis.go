package main

import (
	"net/http"
	"sort"

	"cotacao/internal/quotation"
)

// AnalysisRow is one product row of the comparison grid: the raw price text
// per supplier plus the derived minimum and winners.
type AnalysisRow struct {
	InternalCode string            `json:"internal_code"`
	Description  string            `json:"description"`
	Barcode      string            `json:"barcode"`
	Prices       map[string]string `json:"prices"`
	MinValue     *float64          `json:"min_value"`
	Winners      []string          `json:"winners"`
}

// handleListAnalysis returns the full comparison grid for a list. Analysis
// is computed on demand from whatever responses exist right now; it works
// the same on open and finalized lists.
func handleListAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	list, err := loadList(id)
	if err != nil {
		quotationErr(w, err)
		return
	}
	analysis := quotation.Analyze(list)

	suppliers := make([]string, 0, len(list.Responses))
	for s := range list.Responses {
		suppliers = append(suppliers, s)
	}
	sort.Strings(suppliers)

	rows := make([]AnalysisRow, len(list.Products))
	for i, p := range list.Products {
		res := analysis[p.InternalCode]
		prices := map[string]string{}
		for _, s := range suppliers {
			if text, ok := list.Responses[s][p.InternalCode]; ok {
				prices[s] = text
			}
		}
		rows[i] = AnalysisRow{
			InternalCode: p.InternalCode,
			Description:  p.Description,
			Barcode:      p.Barcode,
			Prices:       prices,
			MinValue:     res.MinValue,
			Winners:      res.Winners,
		}
	}

	jsonResp(w, map[string]interface{}{
		"list_id":   list.ID,
		"list_name": list.Name,
		"status":    list.Status,
		"version":   list.Version,
		"suppliers": suppliers,
		"rows":      rows,
	})
}
