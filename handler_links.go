package main

import (
	"net/http"

	"cotacao/internal/quotation"
)

// LinkView is a response link plus its shareable URL. The token itself is
// only ever revealed to the buyer through this view.
type LinkView struct {
	quotation.Link
	URL string `json:"url"`
}

func handleCreateLink(w http.ResponseWriter, r *http.Request, listID string) {
	var body struct {
		SupplierName string `json:"supplier_name"`
	}
	if err := decodeBody(r, &body); err != nil || body.SupplierName == "" {
		jsonErr(w, "supplier_name required", 400)
		return
	}

	list, err := loadList(listID)
	if err != nil {
		quotationErr(w, err)
		return
	}
	link, err := quotation.IssueLink(list, body.SupplierName)
	if err != nil {
		quotationErr(w, err)
		return
	}
	if err := insertLink(link); err != nil {
		quotationErr(w, err)
		return
	}

	logAudit(db, "buyer", "create", "response_link", link.ID,
		"Issued response link for supplier: "+body.SupplierName)
	w.WriteHeader(201)
	jsonResp(w, LinkView{Link: link, URL: link.PublicURL(cfg.BaseOrigin)})
}

func handleListLinks(w http.ResponseWriter, r *http.Request, listID string) {
	if _, err := loadList(listID); err != nil {
		quotationErr(w, err)
		return
	}
	links, err := loadLinks(listID)
	if err != nil {
		quotationErr(w, err)
		return
	}
	views := make([]LinkView, len(links))
	for i, k := range links {
		views[i] = LinkView{Link: k, URL: k.PublicURL(cfg.BaseOrigin)}
	}
	jsonResp(w, views)
}
