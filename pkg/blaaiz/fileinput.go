package blaaiz

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// FileInput is the content handed to the customer file upload pipeline.
// The implementations are RawBytes, Base64String, DataURI and RemoteURL.
type FileInput interface {
	resolve(ctx context.Context, t Transport) (*resolvedFile, error)
	empty() bool
}

// RawBytes is file content that is already binary
type RawBytes []byte

// Base64String is standard base64 encoded file content
type Base64String string

// DataURI is a data: URI such as "data:image/png;base64,iVBOR..."
type DataURI string

// RemoteURL is an http(s) URL that is downloaded before upload
type RemoteURL string

type resolvedFile struct {
	content     []byte
	contentType string
	filename    string
}

// FileFromString classifies s as a DataURI, a RemoteURL, or a Base64String,
// in that order.
func FileFromString(s string) FileInput {
	switch {
	case strings.HasPrefix(s, "data:"):
		return DataURI(s)
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return RemoteURL(s)
	default:
		return Base64String(s)
	}
}

func (b RawBytes) empty() bool { return len(b) == 0 }

func (b RawBytes) resolve(ctx context.Context, t Transport) (*resolvedFile, error) {
	return &resolvedFile{content: []byte(b)}, nil
}

func (s Base64String) empty() bool { return s == "" }

func (s Base64String) resolve(ctx context.Context, t Transport) (*resolvedFile, error) {
	content, err := decodeBase64(string(s))
	if err != nil {
		return nil, err
	}
	return &resolvedFile{content: content}, nil
}

func (d DataURI) empty() bool { return d == "" }

func (d DataURI) resolve(ctx context.Context, t Transport) (*resolvedFile, error) {
	header, payload, ok := strings.Cut(string(d), ",")
	if !ok {
		return nil, validationError("invalid data URI: missing ',' separator")
	}

	content, err := decodeBase64(payload)
	if err != nil {
		return nil, err
	}

	// data:<mime>[;param...][;base64]
	contentType := strings.TrimPrefix(header, "data:")
	if semi := strings.Index(contentType, ";"); semi >= 0 {
		contentType = contentType[:semi]
	}

	return &resolvedFile{content: content, contentType: contentType}, nil
}

func (u RemoteURL) empty() bool { return u == "" }

func (u RemoteURL) resolve(ctx context.Context, t Transport) (*resolvedFile, error) {
	download, err := t.DownloadFile(ctx, string(u))
	if err != nil {
		return nil, err
	}
	return &resolvedFile{
		content:     download.Content,
		contentType: download.ContentType,
		filename:    download.Filename,
	}, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	content, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// tolerate missing padding
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
			return raw, nil
		}
		return nil, &Error{
			Message: fmt.Sprintf("invalid base64 file content: %v", err),
			Kind:    KindValidation,
			Err:     err,
		}
	}
	return content, nil
}

// resolveFile turns the input into bytes. Explicit contentType and filename
// always win over values derived from the input.
func resolveFile(ctx context.Context, t Transport, file FileInput, contentType, filename string) (*resolvedFile, error) {
	resolved, err := file.resolve(ctx, t)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		resolved.contentType = contentType
	}
	if filename != "" {
		resolved.filename = filename
	}
	return resolved, nil
}
