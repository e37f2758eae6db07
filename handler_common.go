package main

import (
	"errors"
	"net/http"

	"cotacao/internal/quotation"
	"cotacao/internal/response"
)

func jsonResp(w http.ResponseWriter, data interface{}) {
	response.JSON(w, data)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	response.Err(w, msg, code)
}

func decodeBody(r *http.Request, v interface{}) error {
	return response.DecodeBody(r, v)
}

// quotationErr translates engine and storage errors into HTTP responses.
// Unknown errors fall through as a 500 so a bug never masquerades as a
// client mistake.
func quotationErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quotation.ErrListNotFound),
		errors.Is(err, quotation.ErrLinkNotFound):
		jsonErr(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quotation.ErrAlreadyFinalized),
		errors.Is(err, quotation.ErrListFinalized),
		errors.Is(err, quotation.ErrLinkAlreadyResponded):
		jsonErr(w, err.Error(), http.StatusConflict)
	case errors.Is(err, quotation.ErrEmptyCatalog),
		errors.Is(err, quotation.ErrEmptyResponse):
		jsonErr(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quotation.ErrStorageUnavailable):
		jsonErr(w, "storage unavailable", http.StatusServiceUnavailable)
	default:
		jsonErr(w, "internal error", http.StatusInternalServerError)
	}
}
