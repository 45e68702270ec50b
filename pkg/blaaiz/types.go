package blaaiz

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the Blaaiz development environment
	DefaultBaseURL = "https://api-dev.blaaiz.com"

	// DefaultTimeout applies when ClientConfig.Timeout is zero
	DefaultTimeout = 30 * time.Second

	// UserAgent is sent on every request, including presigned uploads and downloads
	UserAgent = "Blaaiz-Go-SDK/1.0.0"

	apiKeyHeader = "x-blaaiz-api-key"
)

// ClientConfig holds configuration for the API client
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Params is a request payload: field name to value
type Params map[string]interface{}

// clone returns a shallow copy so callers' maps are never mutated
func (p Params) clone() Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Response is the envelope returned by every successful API call
type Response struct {
	Data    interface{}
	Status  int
	Headers http.Header
}

// Map returns Data as a JSON object, or nil if it is not one
func (r *Response) Map() map[string]interface{} {
	if r == nil {
		return nil
	}
	m, _ := r.Data.(map[string]interface{})
	return m
}

// UploadResult is returned by a successful presigned upload
type UploadResult struct {
	Status int
	ETag   string
}

// DownloadResult holds a downloaded remote file
type DownloadResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// File categories accepted by the customer file upload pipeline
const (
	FileCategoryIdentity       = "identity"
	FileCategoryProofOfAddress = "proof_of_address"
	FileCategoryLivenessCheck  = "liveness_check"
)

// Payout methods
const (
	PayoutMethodBankTransfer = "bank_transfer"
	PayoutMethodInterac      = "interac"
	PayoutMethodACH          = "ach"
	PayoutMethodWire         = "wire"
	PayoutMethodCrypto       = "crypto"
)
