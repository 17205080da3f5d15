// Package respond writes the uniform response envelope used by every
// endpoint: {success, data?, message?, errors?}.
package respond

import (
	"encoding/json"
	"net/http"
)

// FieldError is a single input-validation failure.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// Envelope is the wire shape shared by success and error responses.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// Data writes a success envelope carrying a payload.
func Data(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// DataMessage writes a success envelope carrying a payload and a message.
func DataMessage(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Message writes an envelope with only a message. Success tracks the status
// class.
func Message(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: status < 400, Message: message})
}

// Validation writes a 422 envelope carrying per-field messages.
func Validation(w http.ResponseWriter, errs []FieldError) {
	write(w, http.StatusUnprocessableEntity, Envelope{Success: false, Errors: errs})
}

// Internal writes the generic 500. No store-level detail ever reaches the
// caller through this path.
func Internal(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, "Internal server error")
}
