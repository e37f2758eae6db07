package main

import (
	"net/http"

	"cotacao/internal/quotation"
)

// --- Public Supplier Endpoints ---
//
// These are reachable without authentication; the token in the URL is the
// capability. They never leak other suppliers' prices.

// handleGetQuotationForm resolves a response link and returns what the
// supplier needs to fill the form: the product rows and the current link and
// list state. A consumed link or closed list still resolves so the page can
// say why it cannot be answered instead of showing a bare 404.
func handleGetQuotationForm(w http.ResponseWriter, r *http.Request, token string) {
	link, err := resolveLink(token)
	if err != nil {
		quotationErr(w, err)
		return
	}
	list, err := loadList(link.ListID)
	if err != nil {
		quotationErr(w, err)
		return
	}
	jsonResp(w, map[string]interface{}{
		"company_name":  cfg.CompanyName,
		"list_name":     list.Name,
		"list_status":   list.Status,
		"supplier_name": link.SupplierName,
		"link_status":   link.Status,
		"products":      list.Products,
	})
}

// handleSubmitQuotation accepts a supplier's prices and consumes the link.
func handleSubmitQuotation(w http.ResponseWriter, r *http.Request, token string) {
	var body struct {
		Prices map[string]string `json:"prices"`
	}
	if err := decodeBody(r, &body); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}

	link, err := resolveLink(token)
	if err != nil {
		quotationErr(w, err)
		return
	}
	list, err := loadList(link.ListID)
	if err != nil {
		quotationErr(w, err)
		return
	}

	updated, used, err := quotation.Submit(link, list, body.Prices)
	if err != nil {
		quotationErr(w, err)
		return
	}
	// The transaction re-checks both gates, so a race with another submit
	// on this link or with finalize surfaces here, not as lost data.
	if err := saveSubmission(updated, used); err != nil {
		quotationErr(w, err)
		return
	}

	logAudit(db, link.SupplierName, "respond", "quotation", list.ID,
		"Supplier submitted prices: "+link.SupplierName)
	broadcastList(list.ID, "updated")
	jsonResp(w, map[string]string{"status": "submitted"})
}
