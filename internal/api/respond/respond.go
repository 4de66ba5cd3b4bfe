// Package respond provides JSON response helpers for the HTTP handlers.
package respond

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with status 200.
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created writes v with status 201.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// Fail writes an error body with the given status code.
func Fail(w http.ResponseWriter, code int, err error) {
	JSON(w, code, errorResponse{Error: err.Error()})
}
