package main

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cotacao/internal/quotation"
)

// store.go is the storage collaborator: snapshots of quotation lists and
// response links in and out of SQLite. Handlers load a snapshot, run an
// engine function and persist the result; the engine itself never touches
// the database.

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", quotation.ErrStorageUnavailable, err)
}

// loadList reads a full list snapshot: products in import order plus every
// supplier response.
func loadList(id string) (quotation.List, error) {
	var l quotation.List
	err := db.QueryRow(`SELECT id, name, status, version, created_at, updated_at FROM quotation_lists WHERE id=?`, id).
		Scan(&l.ID, &l.Name, &l.Status, &l.Version, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return quotation.List{}, quotation.ErrListNotFound
	}
	if err != nil {
		return quotation.List{}, storageErr(err)
	}

	rows, err := db.Query(`SELECT internal_code, description, barcode FROM list_products WHERE list_id=? ORDER BY position`, id)
	if err != nil {
		return quotation.List{}, storageErr(err)
	}
	defer rows.Close()
	for rows.Next() {
		var p quotation.Product
		rows.Scan(&p.InternalCode, &p.Description, &p.Barcode)
		l.Products = append(l.Products, p)
	}

	l.Responses = map[string]map[string]string{}
	rRows, err := db.Query(`SELECT supplier_name, internal_code, price_text FROM supplier_responses WHERE list_id=?`, id)
	if err != nil {
		return quotation.List{}, storageErr(err)
	}
	defer rRows.Close()
	for rRows.Next() {
		var supplier, code, text string
		rRows.Scan(&supplier, &code, &text)
		if l.Responses[supplier] == nil {
			l.Responses[supplier] = map[string]string{}
		}
		l.Responses[supplier][code] = text
	}
	return l, nil
}

// ListSummary is the shape shown in the open/finished list pickers.
type ListSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	ProductCount  int    `json:"product_count"`
	SupplierCount int    `json:"supplier_count"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func listSummaries(status string) ([]ListSummary, error) {
	query := `SELECT l.id, l.name, l.status, l.created_at, l.updated_at,
		(SELECT COUNT(*) FROM list_products p WHERE p.list_id=l.id) AS product_count,
		(SELECT COUNT(DISTINCT r.supplier_name) FROM supplier_responses r WHERE r.list_id=l.id) AS supplier_count
		FROM quotation_lists l`
	var args []interface{}
	if status != "" {
		query += " WHERE l.status=?"
		args = append(args, status)
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()
	items := []ListSummary{}
	for rows.Next() {
		var s ListSummary
		rows.Scan(&s.ID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt, &s.ProductCount, &s.SupplierCount)
		items = append(items, s)
	}
	return items, nil
}

// insertList persists a freshly created list and its products.
func insertList(l quotation.List) error {
	tx, err := db.Begin()
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO quotation_lists (id, name, status, version, created_at, updated_at) VALUES (?,?,?,?,?,?)`,
		l.ID, l.Name, l.Status, l.Version, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return storageErr(err)
	}
	for i, p := range l.Products {
		_, err = tx.Exec(`INSERT INTO list_products (list_id, position, internal_code, description, barcode) VALUES (?,?,?,?,?)`,
			l.ID, i, p.InternalCode, p.Description, p.Barcode)
		if err != nil {
			return storageErr(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

// markFinalized closes the list in storage. The conditional update makes the
// one-way transition safe under concurrent finalize calls: the second caller
// sees AlreadyFinalized, never a silent no-op.
func markFinalized(id string) error {
	now := time.Now().Format(time.RFC3339)
	res, err := db.Exec(`UPDATE quotation_lists SET status='finalized', version=version+1, updated_at=? WHERE id=? AND status='open'`, now, id)
	if err != nil {
		return storageErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		var status string
		err := db.QueryRow(`SELECT status FROM quotation_lists WHERE id=?`, id).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return quotation.ErrListNotFound
		}
		if err != nil {
			return storageErr(err)
		}
		return quotation.ErrAlreadyFinalized
	}
	return nil
}

// resolveLink finds a link by exact token match.
func resolveLink(token string) (quotation.Link, error) {
	var k quotation.Link
	err := db.QueryRow(`SELECT id, list_id, supplier_name, token, status, created_at FROM response_links WHERE token=?`, token).
		Scan(&k.ID, &k.ListID, &k.SupplierName, &k.Token, &k.Status, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return quotation.Link{}, quotation.ErrLinkNotFound
	}
	if err != nil {
		return quotation.Link{}, storageErr(err)
	}
	return k, nil
}

func loadLinks(listID string) ([]quotation.Link, error) {
	rows, err := db.Query(`SELECT id, list_id, supplier_name, token, status, created_at FROM response_links WHERE list_id=? ORDER BY created_at`, listID)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()
	items := []quotation.Link{}
	for rows.Next() {
		var k quotation.Link
		rows.Scan(&k.ID, &k.ListID, &k.SupplierName, &k.Token, &k.Status, &k.CreatedAt)
		items = append(items, k)
	}
	return items, nil
}

func insertLink(k quotation.Link) error {
	_, err := db.Exec(`INSERT INTO response_links (id, list_id, supplier_name, token, status, created_at, updated_at) VALUES (?,?,?,?,?,?,?)`,
		k.ID, k.ListID, k.SupplierName, k.Token, k.Status, k.CreatedAt, k.CreatedAt)
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// saveSubmission persists one accepted submission in a single transaction:
// link check-and-set, list status re-check with version bump, wholesale
// replacement of that supplier's response rows. Two suppliers submitting
// concurrently write disjoint row sets, so both land; two requests on the
// same link race the conditional update and exactly one wins.
func saveSubmission(list quotation.List, link quotation.Link) error {
	entries, ok := list.Responses[link.SupplierName]
	if !ok {
		return storageErr(fmt.Errorf("no entries for supplier %s", link.SupplierName))
	}
	now := time.Now().Format(time.RFC3339)

	tx, err := db.Begin()
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE response_links SET status='responded', updated_at=? WHERE id=? AND status='pending'`, now, link.ID)
	if err != nil {
		return storageErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return quotation.ErrLinkAlreadyResponded
	}

	res, err = tx.Exec(`UPDATE quotation_lists SET version=version+1, updated_at=? WHERE id=? AND status='open'`, now, list.ID)
	if err != nil {
		return storageErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return quotation.ErrListFinalized
	}

	_, err = tx.Exec(`DELETE FROM supplier_responses WHERE list_id=? AND supplier_name=?`, list.ID, link.SupplierName)
	if err != nil {
		return storageErr(err)
	}
	for code, text := range entries {
		_, err = tx.Exec(`INSERT INTO supplier_responses (list_id, supplier_name, internal_code, price_text) VALUES (?,?,?,?)`,
			list.ID, link.SupplierName, code, text)
		if err != nil {
			return storageErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}
