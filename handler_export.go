package main

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/xuri/excelize/v2"

	"cotacao/internal/quotation"
)

// SupplierExport is one supplier's purchase file, inlined for the bundle
// endpoint so the UI can show everything without a second round trip.
type SupplierExport struct {
	Supplier string                 `json:"supplier"`
	Filename string                 `json:"filename"`
	Lines    []quotation.ExportLine `json:"lines"`
	Content  string                 `json:"content"`
}

// handleExportList returns one purchase file per winning supplier.
func handleExportList(w http.ResponseWriter, r *http.Request, id string) {
	list, err := loadList(id)
	if err != nil {
		quotationErr(w, err)
		return
	}
	winners := quotation.ExportWinners(list, quotation.Analyze(list))

	suppliers := make([]string, 0, len(winners))
	for s := range winners {
		suppliers = append(suppliers, s)
	}
	sort.Strings(suppliers)

	files := make([]SupplierExport, len(suppliers))
	for i, s := range suppliers {
		files[i] = SupplierExport{
			Supplier: s,
			Filename: quotation.SupplierFilename(s) + ".csv",
			Lines:    winners[s],
			Content:  quotation.RenderCSV(winners[s]),
		}
	}

	logAudit(db, "buyer", "export", "quotation", id,
		fmt.Sprintf("Exported purchase files for %d suppliers", len(files)))
	jsonResp(w, files)
}

// handleDownloadExport streams one supplier's purchase file as csv
// (default) or xlsx.
func handleDownloadExport(w http.ResponseWriter, r *http.Request, id, supplier string) {
	list, err := loadList(id)
	if err != nil {
		quotationErr(w, err)
		return
	}
	winners := quotation.ExportWinners(list, quotation.Analyze(list))
	lines, ok := winners[supplier]
	if !ok {
		jsonErr(w, "supplier has no winning items", 404)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	filename := quotation.SupplierFilename(supplier)

	logAudit(db, "buyer", "export", "quotation", id,
		fmt.Sprintf("Downloaded %s purchase file for supplier: %s", format, supplier))

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		w.Write([]byte(quotation.RenderCSV(lines)))
	case "xlsx":
		writeExportExcel(w, filename, lines)
	default:
		jsonErr(w, "unsupported format", 400)
	}
}

func writeExportExcel(w http.ResponseWriter, filename string, lines []quotation.ExportLine) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, line := range lines {
		row := i + 1
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.Barcode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.PriceText)
	}
	f.SetColWidth(sheet, "A", "A", 18)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
	if err := f.Write(w); err != nil {
		http.Error(w, "failed to write Excel file", 500)
	}
}
