// Package errors provides typed errors for promptwizard.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrPromptEmpty       ErrorCode = "PROMPT_EMPTY"
	ErrAuthMissing       ErrorCode = "AUTH_MISSING"
	ErrUnknownOption     ErrorCode = "UNKNOWN_OPTION"
	ErrTransportFailed   ErrorCode = "TRANSPORT_FAILED"
	ErrAPIFailed         ErrorCode = "API_FAILED"
	ErrMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrImportInvalid     ErrorCode = "IMPORT_INVALID"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrStorageFailed     ErrorCode = "STORAGE_FAILED"
	ErrBusy              ErrorCode = "BUSY"
	ErrHistoryNotFound   ErrorCode = "HISTORY_NOT_FOUND"
	ErrTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrShareFailed       ErrorCode = "SHARE_FAILED"
)

// WizardError represents a typed error with user-friendly hints.
type WizardError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error

	// Status and Body are set for ErrAPIFailed.
	Status int
	Body   string
}

func (e *WizardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *WizardError) Unwrap() error {
	return e.Cause
}

// New creates a new WizardError.
func New(code ErrorCode, message, hint string) *WizardError {
	return &WizardError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new WizardError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *WizardError {
	return &WizardError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// Is reports whether err (or anything it wraps) is a WizardError with code.
func Is(err error, code ErrorCode) bool {
	var we *WizardError
	if stderrors.As(err, &we) {
		return we.Code == code
	}
	return false
}

// HintOf returns the hint of the first WizardError in err's chain.
func HintOf(err error) string {
	var we *WizardError
	if stderrors.As(err, &we) {
		return we.Hint
	}
	return ""
}

// PromptEmpty returns an error for an empty or whitespace-only prompt.
func PromptEmpty() *WizardError {
	return &WizardError{
		Code:    ErrPromptEmpty,
		Message: "prompt is empty",
		Hint:    "Pass the prompt as arguments, with --file, or load one with --template",
	}
}

// AuthMissing returns an error for a missing Gemini API key.
func AuthMissing() *WizardError {
	return &WizardError{
		Code:    ErrAuthMissing,
		Message: "Gemini API key is not set",
		Hint:    "Run `promptwizard key set` (get a key at https://makersuite.google.com/app/apikey)",
	}
}

// UnknownOption returns an error for an enum value with no known description.
func UnknownOption(kind, value string, accepted []string) *WizardError {
	return &WizardError{
		Code:    ErrUnknownOption,
		Message: fmt.Sprintf("unknown %s: %q", kind, value),
		Hint:    fmt.Sprintf("Use one of: %s", strings.Join(accepted, ", ")),
	}
}

// TransportFailed returns an error for an HTTP exchange that could not complete.
func TransportFailed(cause error) *WizardError {
	return &WizardError{
		Code:    ErrTransportFailed,
		Message: "Gemini request failed",
		Hint:    "Check your network connection and base_url, then retry",
		Cause:   cause,
	}
}

// APIFailed returns an error for a non-success response from the endpoint.
func APIFailed(status int, body string) *WizardError {
	return &WizardError{
		Code:    ErrAPIFailed,
		Message: fmt.Sprintf("Gemini API returned status %d: %s", status, strings.TrimSpace(body)),
		Hint:    "Check your API key and model with `promptwizard config show`",
		Status:  status,
		Body:    body,
	}
}

// MalformedResponse returns an error for a success response without candidate text.
func MalformedResponse(reason string, cause error) *WizardError {
	return &WizardError{
		Code:    ErrMalformedResponse,
		Message: fmt.Sprintf("unexpected Gemini response: %s", reason),
		Hint:    "Retry; if it persists, try another model",
		Cause:   cause,
	}
}

// ImportInvalid returns an error for a rejected config import.
func ImportInvalid(reason string, cause error) *WizardError {
	return &WizardError{
		Code:    ErrImportInvalid,
		Message: fmt.Sprintf("invalid config file: %s", reason),
		Hint:    "Import a file produced by `promptwizard config export`",
		Cause:   cause,
	}
}

// ConfigInvalid returns an error for invalid settings or generation config.
func ConfigInvalid(reason string) *WizardError {
	return &WizardError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your settings at ~/.config/promptwizard/config.yaml",
	}
}

// StorageFailed returns an error for a local storage read or write failure.
func StorageFailed(op string, cause error) *WizardError {
	return &WizardError{
		Code:    ErrStorageFailed,
		Message: fmt.Sprintf("local storage %s failed", op),
		Hint:    "Check permissions on ~/.config/promptwizard",
		Cause:   cause,
	}
}

// Busy returns an error when an optimization is already in flight.
func Busy() *WizardError {
	return &WizardError{
		Code:    ErrBusy,
		Message: "an optimization is already in progress",
		Hint:    "Wait for it to finish, then retry",
	}
}

// HistoryNotFound returns an error for an unknown history reference.
func HistoryNotFound(ref string) *WizardError {
	return &WizardError{
		Code:    ErrHistoryNotFound,
		Message: fmt.Sprintf("no history entry %q", ref),
		Hint:    "Run `promptwizard history` to list entries",
	}
}

// TemplateNotFound returns an error for an unknown template id.
func TemplateNotFound(id string) *WizardError {
	return &WizardError{
		Code:    ErrTemplateNotFound,
		Message: fmt.Sprintf("template not found: %s", id),
		Hint:    "Run `promptwizard templates` to list templates",
	}
}

// ShareFailed returns an error for a gist that could not be created.
func ShareFailed(cause error) *WizardError {
	return &WizardError{
		Code:    ErrShareFailed,
		Message: "failed to share via GitHub gist",
		Hint:    "Run `gh auth login` or set PROMPTWIZARD_GITHUB_TOKEN",
		Cause:   cause,
	}
}
