package blaaiz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Transport is the HTTP boundary used by every resource service
type Transport interface {
	MakeRequest(ctx context.Context, method, endpoint string, data Params, headers map[string]string) (*Response, error)
	UploadFile(ctx context.Context, presignedURL string, content []byte, contentType, filename string) (*UploadResult, error)
	DownloadFile(ctx context.Context, fileURL string) (*DownloadResult, error)
}

// APIClient executes requests against the Blaaiz REST API.
// It holds no per-call state and is safe for concurrent use.
type APIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// maxDownloadBytes bounds the size of a file fetched by DownloadFile
var maxDownloadBytes int64 = 50 << 20

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

var mimeExtensions = map[string]string{
	"image/jpeg":         ".jpg",
	"image/jpg":          ".jpg",
	"image/png":          ".png",
	"image/gif":          ".gif",
	"image/webp":         ".webp",
	"image/bmp":          ".bmp",
	"image/tiff":         ".tiff",
	"application/pdf":    ".pdf",
	"text/plain":         ".txt",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// NewAPIClient creates a new API client
func NewAPIClient(config *ClientConfig) (*APIClient, error) {
	if config == nil || config.APIKey == "" {
		return nil, validationError("API key is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return NewAPIClientWithHTTPClient(config, &http.Client{Timeout: timeout})
}

// NewAPIClientWithHTTPClient creates a new API client with a custom HTTP client.
// A nil httpClient is replaced by one using DefaultTimeout.
func NewAPIClientWithHTTPClient(config *ClientConfig, httpClient *http.Client) (*APIClient, error) {
	if config == nil || config.APIKey == "" {
		return nil, validationError("API key is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &APIClient{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the API root requests are sent to
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

func (c *APIClient) resolve(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

// MakeRequest sends a JSON request and decodes the JSON response.
// data is not sent for GET requests. Entries in headers override the defaults.
func (c *APIClient) MakeRequest(ctx context.Context, method, endpoint string, data Params, headers map[string]string) (*Response, error) {
	method = strings.ToUpper(method)
	if !allowedMethods[method] {
		return nil, validationError(fmt.Sprintf("unsupported HTTP method: %s", method))
	}

	var body io.Reader
	if data != nil && method != http.MethodGet {
		bodyBytes, err := json.Marshal(data)
		if err != nil {
			return nil, &Error{
				Message: fmt.Sprintf("failed to marshal request: %v", err),
				Code:    ErrCodeRequest,
				Kind:    KindValidation,
				Err:     err,
			}
		}
		body = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint), body)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    ErrCodeRequest,
			Kind:    KindValidation,
			Err:     err,
		}
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("Request failed: %v", err),
			Code:    ErrCodeNetwork,
			Kind:    KindTransport,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("Request failed: failed to read response: %v", err),
			Status:  resp.StatusCode,
			Code:    ErrCodeNetwork,
			Kind:    KindTransport,
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, respBody)
	}

	var decoded interface{}
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			return nil, &Error{
				Message: fmt.Sprintf("failed to parse response: %v", err),
				Status:  resp.StatusCode,
				Code:    ErrCodeParse,
				Kind:    KindParse,
				Err:     err,
			}
		}
	}

	return &Response{
		Data:    decoded,
		Status:  resp.StatusCode,
		Headers: resp.Header,
	}, nil
}

// apiError builds an Error from a non-2xx response body
func apiError(status int, body []byte) *Error {
	apiErr := &Error{
		Message: defaultRequestMessage,
		Status:  status,
		Code:    ErrCodeRequest,
		Kind:    KindAPI,
	}

	var payload map[string]interface{}
	if json.Unmarshal(body, &payload) != nil {
		return apiErr
	}
	if msg, ok := payload["message"].(string); ok && msg != "" {
		apiErr.Message = msg
	}
	switch code := payload["code"].(type) {
	case string:
		if code != "" {
			apiErr.Code = code
		}
	case float64:
		apiErr.Code = fmt.Sprintf("%v", code)
	}
	return apiErr
}

// UploadFile PUTs raw content to a presigned storage URL. The URL carries its
// own authorization, so no API key is sent. A response without an ETag is
// treated as a failed upload.
func (c *APIClient) UploadFile(ctx context.Context, presignedURL string, content []byte, contentType, filename string) (*UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, bytes.NewReader(content))
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("S3 upload request failed: %v", err),
			Code:    ErrCodeUploadRequest,
			Kind:    KindUpload,
			Err:     err,
		}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if filename != "" {
		req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("S3 upload request failed: %v", err),
			Code:    ErrCodeUploadRequest,
			Kind:    KindUpload,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &Error{
			Message: fmt.Sprintf("S3 upload failed with status %d: %s", resp.StatusCode, string(body)),
			Status:  resp.StatusCode,
			Code:    ErrCodeUpload,
			Kind:    KindUpload,
		}
	}

	etag := resp.Header.Get("ETag")
	if etag == "" {
		if values := resp.Header["etag"]; len(values) > 0 {
			etag = values[0]
		}
	}
	if etag == "" {
		return nil, &Error{
			Message: "S3 upload failed: No ETag received from S3",
			Status:  resp.StatusCode,
			Code:    ErrCodeUploadNoETag,
			Kind:    KindUpload,
		}
	}

	return &UploadResult{
		Status: resp.StatusCode,
		ETag:   etag,
	}, nil
}

// DownloadFile fetches a remote file without authentication and works out
// its filename from Content-Disposition, the URL path, and the content type.
func (c *APIClient) DownloadFile(ctx context.Context, fileURL string) (*DownloadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("File download failed: %v", err),
			Code:    ErrCodeDownload,
			Kind:    KindTransport,
			Err:     err,
		}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("File download failed: %v", err),
			Code:    ErrCodeDownload,
			Kind:    KindTransport,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Message: fmt.Sprintf("Failed to download file: HTTP %d", resp.StatusCode),
			Status:  resp.StatusCode,
			Code:    ErrCodeDownload,
			Kind:    KindAPI,
		}
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("File download failed: %v", err),
			Status:  resp.StatusCode,
			Code:    ErrCodeDownload,
			Kind:    KindTransport,
			Err:     err,
		}
	}
	if int64(len(content)) > maxDownloadBytes {
		return nil, &Error{
			Message: fmt.Sprintf("File download failed: file exceeds %d bytes", maxDownloadBytes),
			Status:  resp.StatusCode,
			Code:    ErrCodeDownload,
			Kind:    KindValidation,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	filename := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = filenameFromURL(fileURL)
		if path.Ext(filename) == "" && contentType != "" {
			filename += extensionForContentType(contentType)
		}
	}

	return &DownloadResult{
		Content:     content,
		ContentType: contentType,
		Filename:    filename,
	}, nil
}

// filenameFromDisposition extracts the filename token, quoted or bare
func filenameFromDisposition(disposition string) string {
	if disposition == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		if name := strings.Trim(params["filename"], `"'`); name != "" {
			return name
		}
	}

	idx := strings.Index(strings.ToLower(disposition), "filename")
	if idx < 0 {
		return ""
	}
	rest := disposition[idx+len("filename"):]
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return ""
	}
	value := strings.TrimSpace(rest[eq+1:])
	if strings.HasPrefix(value, `"`) || strings.HasPrefix(value, `'`) {
		quote := value[:1]
		if end := strings.Index(value[1:], quote); end >= 0 {
			return value[1 : end+1]
		}
	}
	if semi := strings.Index(value, ";"); semi >= 0 {
		value = value[:semi]
	}
	return strings.Trim(strings.TrimSpace(value), `"'`)
}

func filenameFromURL(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

func extensionForContentType(contentType string) string {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	return mimeExtensions[mediaType]
}
