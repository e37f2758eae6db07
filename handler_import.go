package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"cotacao/internal/quotation"
)

// handleImportList creates a quotation list from an uploaded spreadsheet.
// Expects multipart form data with a "file" field (xlsx) and an optional
// "name" field. The first sheet is read; the first row is assumed to be a
// header and skipped.
func handleImportList(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonErr(w, "invalid multipart form", 400)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		jsonErr(w, "file required", 400)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		jsonErr(w, "unreadable spreadsheet", 400)
		return
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		jsonErr(w, "spreadsheet has no sheets", 400)
		return
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		jsonErr(w, "unreadable spreadsheet", 400)
		return
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}

	products, err := quotation.ParseRows(rows)
	if err != nil {
		quotationErr(w, err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = fmt.Sprintf("Lista %s", time.Now().Format("02/01/2006 15:04"))
	}
	list, err := quotation.NewList(name, products)
	if err != nil {
		quotationErr(w, err)
		return
	}
	if err := insertList(list); err != nil {
		quotationErr(w, err)
		return
	}

	logAudit(db, "buyer", "import", "quotation", list.ID,
		fmt.Sprintf("Imported %d products into list: %s", len(products), list.Name))
	broadcastList(list.ID, "created")
	w.WriteHeader(201)
	jsonResp(w, map[string]interface{}{
		"list":     list,
		"imported": len(products),
	})
}
