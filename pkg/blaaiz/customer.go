package blaaiz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const fileUploadPrefix = "File upload failed: "

var customerRequiredFields = []string{
	"first_name", "last_name", "type", "email", "country", "id_type", "id_number",
}

// fileCategoryFields maps a file category to the customer field that stores it
var fileCategoryFields = map[string]string{
	FileCategoryIdentity:       "id_file",
	FileCategoryLivenessCheck:  "liveness_check_file",
	FileCategoryProofOfAddress: "proof_of_address_file",
}

// CustomerService manages customers and their KYC files
type CustomerService struct {
	client Transport
}

// NewCustomerService creates a customer service on top of t
func NewCustomerService(t Transport) *CustomerService {
	return &CustomerService{client: t}
}

// Create registers a customer. Business customers also need business_name.
func (s *CustomerService) Create(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, customerRequiredFields...); err != nil {
		return nil, err
	}
	if stringValue(data["type"]) == "business" && isEmpty(data["business_name"]) {
		return nil, validationError("business_name is required when type is business")
	}

	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/customer", data, nil)
}

// List returns all customers
func (s *CustomerService) List(ctx context.Context) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodGet, "/api/external/customer", nil, nil)
}

// Get returns one customer
func (s *CustomerService) Get(ctx context.Context, customerID string) (*Response, error) {
	if err := requireID(customerID, "Customer ID is required"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodGet, customerPath(customerID), nil, nil)
}

// Update replaces customer fields
func (s *CustomerService) Update(ctx context.Context, customerID string, data Params) (*Response, error) {
	if err := requireID(customerID, "Customer ID is required"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPut, customerPath(customerID), data, nil)
}

// AddKYC submits KYC data for a customer
func (s *CustomerService) AddKYC(ctx context.Context, customerID string, data Params) (*Response, error) {
	if err := requireID(customerID, "Customer ID is required"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, customerPath(customerID)+"/kyc-data", data, nil)
}

// UploadFiles associates already uploaded file IDs with a customer
func (s *CustomerService) UploadFiles(ctx context.Context, customerID string, data Params) (*Response, error) {
	if err := requireID(customerID, "Customer ID is required"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPut, customerPath(customerID)+"/files", data, nil)
}

func customerPath(customerID string) string {
	return "/api/external/customer/" + url.PathEscape(customerID)
}

// FileUploadOptions describes a file for UploadFileComplete.
// ContentType and Filename override what is derived from File.
type FileUploadOptions struct {
	File         FileInput
	FileCategory string
	Filename     string
	ContentType  string
}

// FileUploadResult is the association response plus the uploaded file's identifiers
type FileUploadResult struct {
	*Response
	FileID       string
	PresignedURL string
}

// UploadFileComplete requests a presigned URL, uploads the file to it and
// attaches the resulting file ID to the customer.
func (s *CustomerService) UploadFileComplete(ctx context.Context, customerID string, opts *FileUploadOptions) (*FileUploadResult, error) {
	if err := requireID(customerID, "Customer ID is required"); err != nil {
		return nil, err
	}
	if opts == nil || (opts.File == nil && opts.FileCategory == "" && opts.Filename == "" && opts.ContentType == "") {
		return nil, validationError("File options are required")
	}
	if opts.File == nil || opts.File.empty() {
		return nil, validationError("File is required")
	}
	if opts.FileCategory == "" {
		return nil, validationError("file_category is required")
	}
	if _, ok := fileCategoryFields[opts.FileCategory]; !ok {
		return nil, validationError("file_category must be one of: identity, proof_of_address, liveness_check")
	}

	result, err := s.uploadFile(ctx, customerID, opts)
	if err != nil {
		if sdkErr, ok := AsError(err); ok && sdkErr.Kind == KindFileUpload {
			return nil, err
		}
		return nil, wrapError(fileUploadPrefix, KindFileUpload, err)
	}
	return result, nil
}

func (s *CustomerService) uploadFile(ctx context.Context, customerID string, opts *FileUploadOptions) (*FileUploadResult, error) {
	presigned, err := s.client.MakeRequest(ctx, http.MethodPost, "/api/external/file/get-presigned-url", Params{
		"customer_id":   customerID,
		"file_category": opts.FileCategory,
	}, nil)
	if err != nil {
		return nil, err
	}

	presignedURL, fileID, err := extractPresigned(presigned)
	if err != nil {
		return nil, err
	}

	file, err := resolveFile(ctx, s.client, opts.File, opts.ContentType, opts.Filename)
	if err != nil {
		return nil, err
	}

	if _, err := s.client.UploadFile(ctx, presignedURL, file.content, file.contentType, file.filename); err != nil {
		return nil, err
	}

	field, ok := fileCategoryFields[opts.FileCategory]
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("Unknown file category: %s", opts.FileCategory), Kind: KindValidation}
	}

	association, err := s.client.MakeRequest(ctx, http.MethodPost, customerPath(customerID)+"/files", Params{
		field: fileID,
	}, nil)
	if err != nil {
		return nil, err
	}

	return &FileUploadResult{
		Response:     association,
		FileID:       stringValue(fileID),
		PresignedURL: presignedURL,
	}, nil
}

// extractPresigned accepts both {url, file_id} and {data: {url, file_id}}
// bodies. file_id is returned as decoded so it is associated unchanged.
func extractPresigned(resp *Response) (string, interface{}, error) {
	for _, prefix := range [][]string{nil, {"data"}} {
		target, urlOK := lookup(resp.Data, append(prefix, "url")...)
		fileID, idOK := lookup(resp.Data, append(prefix, "file_id")...)
		if urlOK && idOK && !isEmpty(target) && !isEmpty(fileID) {
			return stringValue(target), fileID, nil
		}
	}

	got, _ := json.Marshal(map[string]interface{}{
		"data":   resp.Data,
		"status": resp.Status,
	})
	return "", nil, &Error{
		Message: "Invalid presigned URL response structure. Expected 'url' and 'file_id' keys. Got: " + string(got),
		Kind:    KindParse,
		Code:    ErrCodeParse,
	}
}
