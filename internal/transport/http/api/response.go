package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"talenthub/internal/domain/assessment"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailDomain maps a domain error kind to its HTTP status. Unknown errors
// become an opaque 500; the message is logged, not leaked.
func FailDomain(w http.ResponseWriter, err error, requestID string) {
	switch assessment.KindOf(err) {
	case assessment.KindValidation:
		Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case assessment.KindPermission:
		Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	case assessment.KindState:
		Fail(w, http.StatusConflict, "state_error", err.Error(), requestID)
	case assessment.KindNotFound:
		Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	default:
		slog.Error("internal error", "err", err, "requestId", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
