package main

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
)

// logAudit records one action in the audit trail. Auditing never blocks the
// request that triggered it; failures are logged and dropped.
func logAudit(database *sql.DB, actor, action, module, recordID, summary string) {
	if database == nil {
		return
	}
	_, err := database.Exec(`INSERT INTO audit_log (actor, action, module, record_id, summary) VALUES (?,?,?,?,?)`,
		actor, action, module, recordID, summary)
	if err != nil {
		log.Printf("audit: %v", err)
	}
}

// AuditEntry is one row of the audit trail.
type AuditEntry struct {
	ID        int    `json:"id"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Module    string `json:"module"`
	RecordID  string `json:"record_id"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

func handleAuditLog(w http.ResponseWriter, r *http.Request) {
	query := `SELECT id, actor, action, module, record_id, summary, created_at FROM audit_log`
	var conds []string
	var args []interface{}
	if m := r.URL.Query().Get("module"); m != "" {
		conds = append(conds, "module=?")
		args = append(args, m)
	}
	if id := r.URL.Query().Get("record_id"); id != "" {
		conds = append(conds, "record_id=?")
		args = append(args, id)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		jsonErr(w, err.Error(), 500)
		return
	}
	defer rows.Close()
	entries := []AuditEntry{}
	for rows.Next() {
		var e AuditEntry
		rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Module, &e.RecordID, &e.Summary, &e.CreatedAt)
		entries = append(entries, e)
	}
	jsonResp(w, entries)
}
