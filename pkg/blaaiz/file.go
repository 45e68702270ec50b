package blaaiz

import (
	"context"
	"net/http"
)

// FileService issues presigned upload targets.
// CustomerService.UploadFileComplete covers the whole upload flow.
type FileService struct {
	client Transport
}

// NewFileService creates a file service on top of t
func NewFileService(t Transport) *FileService {
	return &FileService{client: t}
}

// GetPresignedURL issues an upload target for a customer file category
func (s *FileService) GetPresignedURL(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, "customer_id", "file_category"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/file/get-presigned-url", data, nil)
}
