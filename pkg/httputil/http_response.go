// Package httputil writes the JSON wire format shared by every handler.
// Bodies are encoded with sonic, and all date fields travel as plain
// YYYY-MM-DD strings produced by the handlers themselves.
package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrorResponse is the error body every endpoint returns. Message is meant
// for the household member looking at the screen; Details carries the
// underlying error text when there is one worth exposing.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WriteErrorResponse writes an ErrorResponse with the given status. A nil
// details error leaves the details field out of the body entirely.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	resp := ErrorResponse{
		Code:    statusCode,
		Message: message,
	}
	if details != nil {
		resp.Details = details.Error()
	}
	writeBody(w, statusCode, resp, sonic.ConfigFastest)
}

// WriteJSONResponse encodes body with the given status. A nil body writes
// the status line and headers only.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	if body == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		return
	}
	writeBody(w, statusCode, body, sonic.ConfigDefault)
}

func writeBody(w http.ResponseWriter, statusCode int, body any, api sonic.API) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// The status line is already committed once we get here, so the encode
	// error has nowhere to go.
	_ = api.NewEncoder(w).Encode(body)
}
