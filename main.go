package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
)

var cfg Config

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	var err error
	cfg, err = loadConfig(*configPath)
	if err != nil {
		log.Fatal("Config load failed:", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	if err := initDB(cfg.DBPath); err != nil {
		log.Fatal("DB init failed:", err)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket)

	// API routes - using a simple router
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/")
		path = strings.TrimSuffix(path, "/")
		parts := strings.Split(path, "/")

		switch {
		// Quotation lists (buyer side)
		case path == "lists" && r.Method == "GET":
			handleListLists(w, r)
		case path == "lists" && r.Method == "POST":
			handleCreateList(w, r)
		case path == "lists/import" && r.Method == "POST":
			handleImportList(w, r)
		case parts[0] == "lists" && len(parts) == 2 && r.Method == "GET":
			handleGetList(w, r, parts[1])
		case parts[0] == "lists" && len(parts) == 3 && parts[2] == "finalize" && r.Method == "POST":
			handleFinalizeList(w, r, parts[1])
		case parts[0] == "lists" && len(parts) == 3 && parts[2] == "reopen" && r.Method == "POST":
			handleReopenList(w, r, parts[1])
		case parts[0] == "lists" && len(parts) == 3 && parts[2] == "links" && r.Method == "GET":
			handleListLinks(w, r, parts[1])
		case parts[0] == "lists" && len(parts) == 3 && parts[2] == "links" && r.Method == "POST":
			handleCreateLink(w, r, parts[1])
		case parts[0] == "lists" && len(parts) == 3 && parts[2] == "analysis" && r.Method == "GET":
			handleListAnalysis(w, r, parts[1])
		case parts[0] == "lists" && len(parts) == 3 && parts[2] == "export" && r.Method == "GET":
			handleExportList(w, r, parts[1])
		case parts[0] == "lists" && len(parts) == 4 && parts[2] == "export" && r.Method == "GET":
			handleDownloadExport(w, r, parts[1], parts[3])

		// Supplier response form (public, token-addressed)
		case parts[0] == "cotacao" && len(parts) == 2 && r.Method == "GET":
			handleGetQuotationForm(w, r, parts[1])
		case parts[0] == "cotacao" && len(parts) == 2 && r.Method == "POST":
			handleSubmitQuotation(w, r, parts[1])

		// Audit trail
		case path == "audit" && r.Method == "GET":
			handleAuditLog(w, r)

		default:
			jsonErr(w, "not found", 404)
		}
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("cotacao server starting on http://localhost%s", addr)
	log.Fatal(http.ListenAndServe(addr, logging(rateLimit(mux))))
}
