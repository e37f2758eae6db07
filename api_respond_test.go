package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"cotacao/internal/quotation"
)

func TestLinkTokenAndURL(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Tokens")
	link := issueTestLink(t, list.ID, "Fornecedor A")

	if len(link.Token) != 64 {
		t.Errorf("expected 64-char token, got %d", len(link.Token))
	}
	wantURL := cfg.BaseOrigin + "/cotacao/" + link.Token
	if link.URL != wantURL {
		t.Errorf("expected %s, got %s", wantURL, link.URL)
	}
	if link.Status != quotation.LinkPending {
		t.Errorf("expected pending, got %s", link.Status)
	}
}

func TestCreateLinkSupplierRequired(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Sem fornecedor")
	req := httptest.NewRequest("POST", "/", nil)
	w := httptest.NewRecorder()
	handleCreateLink(w, req, list.ID)
	if w.Code != 400 {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreateLinkOnFinalizedList(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Fechada")
	w := httptest.NewRecorder()
	handleFinalizeList(w, httptest.NewRequest("POST", "/", nil), list.ID)
	if w.Code != 200 {
		t.Fatalf("finalize failed: %d", w.Code)
	}

	body := `{"supplier_name":"Atrasado"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	handleCreateLink(w, req, list.ID)
	if w.Code != 409 {
		t.Errorf("expected 409, got %d %s", w.Code, w.Body.String())
	}
}

func TestGetQuotationForm(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Formulário")
	link := issueTestLink(t, list.ID, "Fornecedor A")

	req := httptest.NewRequest("GET", "/api/v1/cotacao/"+link.Token, nil)
	w := httptest.NewRecorder()
	handleGetQuotationForm(w, req, link.Token)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var form struct {
		ListName     string              `json:"list_name"`
		SupplierName string              `json:"supplier_name"`
		LinkStatus   string              `json:"link_status"`
		Products     []quotation.Product `json:"products"`
	}
	decodeData(t, w.Body.Bytes(), &form)
	if form.SupplierName != "Fornecedor A" {
		t.Errorf("wrong supplier: %s", form.SupplierName)
	}
	if form.LinkStatus != quotation.LinkPending {
		t.Errorf("wrong link status: %s", form.LinkStatus)
	}
	if len(form.Products) != 2 {
		t.Errorf("expected 2 products, got %d", len(form.Products))
	}
}

func TestGetQuotationFormUnknownToken(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/api/v1/cotacao/deadbeef", nil)
	w := httptest.NewRecorder()
	handleGetQuotationForm(w, req, "deadbeef")
	if w.Code != 404 {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSubmitQuotation(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Submissão")
	link := issueTestLink(t, list.ID, "Fornecedor A")

	w := submitPrices(t, link.Token, map[string]string{"P1": "12,50", "P2": "9.99"})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}

	// Responses stored, version bumped.
	w2 := httptest.NewRecorder()
	handleGetList(w2, httptest.NewRequest("GET", "/", nil), list.ID)
	var stored quotation.List
	decodeData(t, w2.Body.Bytes(), &stored)
	if stored.Responses["Fornecedor A"]["P1"] != "12,50" {
		t.Errorf("price text not stored verbatim: %+v", stored.Responses)
	}
	if stored.Version != list.Version+1 {
		t.Errorf("expected version %d, got %d", list.Version+1, stored.Version)
	}

	// Link consumed.
	req := httptest.NewRequest("GET", "/", nil)
	w3 := httptest.NewRecorder()
	handleGetQuotationForm(w3, req, link.Token)
	var form struct {
		LinkStatus string `json:"link_status"`
	}
	decodeData(t, w3.Body.Bytes(), &form)
	if form.LinkStatus != quotation.LinkResponded {
		t.Errorf("expected responded, got %s", form.LinkStatus)
	}
}

func TestSubmitQuotationTwice(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Uma resposta")
	link := issueTestLink(t, list.ID, "Fornecedor A")

	if w := submitPrices(t, link.Token, map[string]string{"P1": "10"}); w.Code != 200 {
		t.Fatalf("first submit failed: %d", w.Code)
	}
	if w := submitPrices(t, link.Token, map[string]string{"P1": "5"}); w.Code != 409 {
		t.Errorf("expected 409 on reused link, got %d", w.Code)
	}

	// First submission stands.
	w := httptest.NewRecorder()
	handleGetList(w, httptest.NewRequest("GET", "/", nil), list.ID)
	var stored quotation.List
	decodeData(t, w.Body.Bytes(), &stored)
	if stored.Responses["Fornecedor A"]["P1"] != "10" {
		t.Errorf("second submit overwrote first: %+v", stored.Responses)
	}
}

func TestSubmitAfterFinalize(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Encerrada")
	link := issueTestLink(t, list.ID, "Fornecedor A")

	w := httptest.NewRecorder()
	handleFinalizeList(w, httptest.NewRequest("POST", "/", nil), list.ID)
	if w.Code != 200 {
		t.Fatalf("finalize failed: %d", w.Code)
	}

	if w := submitPrices(t, link.Token, map[string]string{"P1": "10"}); w.Code != 409 {
		t.Errorf("expected 409 after finalize, got %d", w.Code)
	}
}

func TestSubmitAllBlank(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Em branco")
	link := issueTestLink(t, list.ID, "Fornecedor A")

	if w := submitPrices(t, link.Token, map[string]string{"P1": "  ", "P2": ""}); w.Code != 400 {
		t.Errorf("expected 400 on all-blank submit, got %d", w.Code)
	}

	// The link survives a rejected submission.
	if w := submitPrices(t, link.Token, map[string]string{"P1": "10"}); w.Code != 200 {
		t.Errorf("link should still be usable, got %d", w.Code)
	}
	_ = list
}

func TestSubmitDropsUnknownCodes(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	list := createTestList(t, "Códigos")
	link := issueTestLink(t, list.ID, "Fornecedor A")

	w := submitPrices(t, link.Token, map[string]string{"P1": "10", "GHOST": "1,00"})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	handleGetList(w2, httptest.NewRequest("GET", "/", nil), list.ID)
	var stored quotation.List
	decodeData(t, w2.Body.Bytes(), &stored)
	if _, ok := stored.Responses["Fornecedor A"]["GHOST"]; ok {
		t.Error("unknown code was stored")
	}
	if stored.Responses["Fornecedor A"]["P1"] != "10" {
		t.Errorf("known code missing: %+v", stored.Responses)
	}
}
