package quotation

import "strings"

// ParseRows converts raw spreadsheet rows into products. Rows are
// positional: the first three cells are internal code, description and
// barcode; extra cells are ignored. Any header row must already have been
// stripped by the caller.
//
// The import is best-effort: rows missing any of the three cells are
// dropped without error, since trailing garbage rows are common in
// spreadsheet exports. A duplicated internal code keeps its first
// occurrence. Returns ErrEmptyCatalog when nothing survives.
func ParseRows(rows [][]string) ([]Product, error) {
	var products []Product
	seen := make(map[string]struct{})
	for _, row := range rows {
		p := Product{
			InternalCode: cell(row, 0),
			Description:  cell(row, 1),
			Barcode:      cell(row, 2),
		}
		if p.InternalCode == "" || p.Description == "" || p.Barcode == "" {
			continue
		}
		if _, dup := seen[p.InternalCode]; dup {
			continue
		}
		seen[p.InternalCode] = struct{}{}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}
	return products, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
