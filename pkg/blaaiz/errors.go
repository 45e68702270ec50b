package blaaiz

import (
	"encoding/json"
	"errors"
)

// Error codes set by the SDK when the API does not supply one
const (
	ErrCodeRequest        = "REQUEST_ERROR"
	ErrCodeNetwork        = "NETWORK_ERROR"
	ErrCodeParse          = "PARSE_ERROR"
	ErrCodeUpload         = "S3_UPLOAD_ERROR"
	ErrCodeUploadRequest  = "S3_REQUEST_ERROR"
	ErrCodeUploadNoETag   = "S3_UPLOAD_NO_ETAG"
	ErrCodeDownload       = "DOWNLOAD_ERROR"
	defaultRequestMessage = "API request failed"
)

// ErrorKind tags where an Error originated
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAPI        ErrorKind = "api"
	KindTransport  ErrorKind = "transport"
	KindParse      ErrorKind = "parse"
	KindUpload     ErrorKind = "upload"
	KindFileUpload ErrorKind = "file_upload"
	KindCompound   ErrorKind = "compound"
)

// Error is the single error type returned by every SDK operation.
//
// Status is the HTTP status of the response that caused the error, or 0 when
// no response was involved. Code is the machine-readable error code, or ""
// when none is known.
type Error struct {
	Message string
	Status  int
	Code    string
	Kind    ErrorKind
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the status is in [400, 500)
func (e *Error) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// IsServerError reports whether the status is 500 or above
func (e *Error) IsServerError() bool {
	return e.Status >= 500
}

// ToMap returns the structured form of the error. Absent status and code are nil.
func (e *Error) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"message":    e.Message,
		"status":     nil,
		"error_code": nil,
	}
	if e.Status != 0 {
		m["status"] = e.Status
	}
	if e.Code != "" {
		m["error_code"] = e.Code
	}
	return m
}

// MarshalJSON encodes the ToMap form
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToMap())
}

// AsError extracts an *Error from err's chain
func AsError(err error) (*Error, bool) {
	var sdkErr *Error
	if errors.As(err, &sdkErr) {
		return sdkErr, true
	}
	return nil, false
}

// IsClientError returns true if err carries a 4xx status
func IsClientError(err error) bool {
	if sdkErr, ok := AsError(err); ok {
		return sdkErr.IsClientError()
	}
	return false
}

// IsServerError returns true if err carries a 5xx status
func IsServerError(err error) bool {
	if sdkErr, ok := AsError(err); ok {
		return sdkErr.IsServerError()
	}
	return false
}

func validationError(message string) *Error {
	return &Error{Message: message, Kind: KindValidation}
}

// wrapError prefixes the message of err while keeping its status and code.
func wrapError(prefix string, kind ErrorKind, err error) *Error {
	wrapped := &Error{Message: prefix + err.Error(), Kind: kind, Err: err}
	if sdkErr, ok := AsError(err); ok {
		wrapped.Status = sdkErr.Status
		wrapped.Code = sdkErr.Code
	}
	return wrapped
}
