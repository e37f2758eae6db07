package main

import (
	"fmt"
	"net/http"

	"cotacao/internal/quotation"
)

// --- Quotation List Handlers ---

func handleListLists(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != quotation.StatusOpen && status != quotation.StatusFinalized {
		jsonErr(w, "invalid status filter", 400)
		return
	}
	items, err := listSummaries(status)
	if err != nil {
		quotationErr(w, err)
		return
	}
	jsonResp(w, items)
}

func handleGetList(w http.ResponseWriter, r *http.Request, id string) {
	list, err := loadList(id)
	if err != nil {
		quotationErr(w, err)
		return
	}
	jsonResp(w, list)
}

func handleCreateList(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string              `json:"name"`
		Products []quotation.Product `json:"products"`
	}
	if err := decodeBody(r, &body); err != nil {
		jsonErr(w, "invalid body", 400)
		return
	}
	if body.Name == "" {
		jsonErr(w, "name required", 400)
		return
	}

	// Run manual input through the same normalization as a spreadsheet
	// import: trimming, incomplete-row drops, duplicate-code dedup.
	rows := make([][]string, len(body.Products))
	for i, p := range body.Products {
		rows[i] = []string{p.InternalCode, p.Description, p.Barcode}
	}
	products, err := quotation.ParseRows(rows)
	if err != nil {
		quotationErr(w, err)
		return
	}

	list, err := quotation.NewList(body.Name, products)
	if err != nil {
		quotationErr(w, err)
		return
	}
	if err := insertList(list); err != nil {
		quotationErr(w, err)
		return
	}

	logAudit(db, "buyer", "create", "quotation", list.ID, "Created list: "+list.Name)
	broadcastList(list.ID, "created")
	w.WriteHeader(201)
	jsonResp(w, list)
}

func handleFinalizeList(w http.ResponseWriter, r *http.Request, id string) {
	list, err := loadList(id)
	if err != nil {
		quotationErr(w, err)
		return
	}
	if _, err := list.Finalize(); err != nil {
		quotationErr(w, err)
		return
	}
	// Conditional update wins the race if another finalize landed between
	// the load above and here.
	if err := markFinalized(id); err != nil {
		quotationErr(w, err)
		return
	}

	logAudit(db, "buyer", "finalize", "quotation", id, "Finalized list: "+list.Name)
	broadcastList(id, "finalized")
	handleGetList(w, r, id)
}

func handleReopenList(w http.ResponseWriter, r *http.Request, id string) {
	list, err := loadList(id)
	if err != nil {
		quotationErr(w, err)
		return
	}
	if list.Status != quotation.StatusFinalized {
		jsonErr(w, "list is still open", 409)
		return
	}

	fresh := list.ReopenAsTemplate()
	if err := insertList(fresh); err != nil {
		quotationErr(w, err)
		return
	}

	logAudit(db, "buyer", "reopen", "quotation", fresh.ID,
		fmt.Sprintf("Reopened list %s as %s", id, fresh.ID))
	broadcastList(fresh.ID, "created")
	w.WriteHeader(201)
	jsonResp(w, fresh)
}
