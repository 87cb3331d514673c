package cliutil

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arcswapsign/arcswapsign/internal/errs"
)

// Response is the dashboard-mode JSON envelope returned by every
// subcommand: exactly one of Data or Error is populated.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody is the machine-readable error carried in a failed Response.
type ErrorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// OK builds a successful Response wrapping data.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// Failed builds a failed Response classifying err into its error code.
func Failed(err error) Response {
	return Response{
		Success: false,
		Error: &ErrorBody{
			Code:    errs.Classify(err),
			Message: err.Error(),
		},
	}
}

// WriteJSON marshals v as single-line JSON to stdout.
func WriteJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
	return err
}

// WriteLog writes a human-readable line to stderr, leaving stdout free
// for JSON responses in dashboard mode.
func WriteLog(message string) error {
	_, err := fmt.Fprintf(os.Stderr, "%s\n", message)
	return err
}
