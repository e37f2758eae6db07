package main

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"cotacao/internal/quotation"
)

func setupTestDB(t *testing.T) func() {
	t.Helper()
	cfg = defaultConfig()
	dbFile := fmt.Sprintf("test_%s.db", t.Name())
	os.Remove(dbFile)
	if err := initDB(dbFile); err != nil {
		t.Fatal(err)
	}
	return func() {
		os.Remove(dbFile)
		os.Remove(dbFile + "-wal")
		os.Remove(dbFile + "-shm")
	}
}

// decodeData unwraps the {"data":...} envelope into v.
func decodeData(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("bad envelope: %v\n%s", err, raw)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("bad data: %v\n%s", err, env.Data)
	}
}

// createTestList creates a two-product list through the handler and returns it.
func createTestList(t *testing.T, name string) quotation.List {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"products":[
		{"internal_code":"P1","description":"Widget","barcode":"111"},
		{"internal_code":"P2","description":"Gadget","barcode":"222"}]}`, name)
	req := httptest.NewRequest("POST", "/api/v1/lists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handleCreateList(w, req)
	if w.Code != 201 {
		t.Fatalf("create list failed: %d %s", w.Code, w.Body.String())
	}
	var list quotation.List
	decodeData(t, w.Body.Bytes(), &list)
	return list
}

// issueTestLink issues a response link for one supplier on a list.
func issueTestLink(t *testing.T, listID, supplier string) LinkView {
	t.Helper()
	body := fmt.Sprintf(`{"supplier_name":%q}`, supplier)
	req := httptest.NewRequest("POST", "/api/v1/lists/"+listID+"/links", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handleCreateLink(w, req, listID)
	if w.Code != 201 {
		t.Fatalf("issue link failed: %d %s", w.Code, w.Body.String())
	}
	var view LinkView
	decodeData(t, w.Body.Bytes(), &view)
	return view
}

// submitPrices posts a supplier submission on a token and returns the recorder.
func submitPrices(t *testing.T, token string, prices map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(map[string]interface{}{"prices": prices})
	req := httptest.NewRequest("POST", "/api/v1/cotacao/"+token, strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handleSubmitQuotation(w, req, token)
	return w
}
