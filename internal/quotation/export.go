package quotation

import (
	"strconv"
	"strings"
	"unicode"
)

// ExportLine is one row of a per-supplier purchase file. Quantity is always
// 1: the source catalog carries no quantity field.
type ExportLine struct {
	Barcode   string `json:"barcode"`
	Quantity  int    `json:"quantity"`
	PriceText string `json:"price_text"`
}

// ExportWinners builds, for each winning supplier, the flat ordered line
// list ready for file output. Lines carry the supplier's original raw price
// text, not a re-formatted number, so downstream systems see the exact
// decimal notation the supplier typed. Suppliers that won nothing are
// omitted entirely. Line order follows list.Products.
func ExportWinners(list List, analysis map[string]PriceResult) map[string][]ExportLine {
	out := make(map[string][]ExportLine)
	for _, p := range list.Products {
		res, ok := analysis[p.InternalCode]
		if !ok {
			continue
		}
		for _, supplier := range res.Winners {
			out[supplier] = append(out[supplier], ExportLine{
				Barcode:   p.Barcode,
				Quantity:  1,
				PriceText: list.Responses[supplier][p.InternalCode],
			})
		}
	}
	return out
}

// RenderCSV serializes export lines as "barcode;quantity;priceText", one
// line per record, semicolon-delimited, no header row.
func RenderCSV(lines []ExportLine) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line.Barcode)
		sb.WriteString(";")
		sb.WriteString(strconv.Itoa(line.Quantity))
		sb.WriteString(";")
		sb.WriteString(line.PriceText)
	}
	return sb.String()
}

// SupplierFilename normalizes a supplier name for use as an export file
// name: lower-cased with all whitespace stripped.
func SupplierFilename(supplierName string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(supplierName))
}
