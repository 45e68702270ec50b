package blaaiz

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// SignatureHeader carries the webhook HMAC on deliveries from Blaaiz
const SignatureHeader = "X-Blaaiz-Signature"

const signaturePrefix = "sha256="

// Event is a verified webhook payload. Verified and Timestamp are always set.
type Event map[string]interface{}

// WebhookService manages webhook endpoints and verifies deliveries
type WebhookService struct {
	client Transport
	now    func() time.Time
}

// NewWebhookService creates a webhook service on top of t
func NewWebhookService(t Transport) *WebhookService {
	return &WebhookService{client: t, now: time.Now}
}

// Register sets the collection and payout callback URLs
func (s *WebhookService) Register(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, "collection_url", "payout_url"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/webhook", data, nil)
}

// Get returns the registered webhook URLs
func (s *WebhookService) Get(ctx context.Context) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodGet, "/api/external/webhook", nil, nil)
}

// Update changes the registered webhook URLs
func (s *WebhookService) Update(ctx context.Context, data Params) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodPut, "/api/external/webhook", data, nil)
}

// Replay asks Blaaiz to redeliver the webhook for a transaction
func (s *WebhookService) Replay(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, "transaction_id"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/webhook/replay", data, nil)
}

// SimulateInteracWebhook triggers a mock Interac delivery (sandbox only)
func (s *WebhookService) SimulateInteracWebhook(ctx context.Context, data Params) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/mock/simulate-webhook/interac", data, nil)
}

// VerifySignature checks a hex HMAC-SHA256 of payload keyed by secret.
// payload may be the raw body (string or []byte) or any JSON-serializable
// value. An optional "sha256=" prefix on signature is ignored. Errors are only
// returned for missing arguments; a mismatch returns false.
func (s *WebhookService) VerifySignature(payload interface{}, signature, secret string) (bool, error) {
	if payloadEmpty(payload) {
		return false, validationError("Payload is required for signature verification")
	}
	if signature == "" {
		return false, validationError("Signature is required for signature verification")
	}
	if secret == "" {
		return false, validationError("Webhook secret is required for signature verification")
	}

	body, err := canonicalPayload(payload)
	if err != nil {
		return false, nil
	}

	expected := Sign(body, secret)
	supplied := strings.ToLower(strings.TrimPrefix(signature, signaturePrefix))
	return hmac.Equal([]byte(expected), []byte(supplied)), nil
}

// ConstructEvent verifies payload and decodes it into an Event
func (s *WebhookService) ConstructEvent(payload interface{}, signature, secret string) (Event, error) {
	ok, err := s.VerifySignature(payload, signature, secret)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validationError("Invalid webhook signature")
	}

	event, err := decodeEvent(payload)
	if err != nil {
		return nil, &Error{
			Message: "Invalid webhook payload: unable to parse JSON",
			Kind:    KindParse,
			Code:    ErrCodeParse,
			Err:     err,
		}
	}

	event["verified"] = true
	event["timestamp"] = s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return event, nil
}

// Sign returns the hex HMAC-SHA256 of body, as Blaaiz computes it
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func payloadEmpty(payload interface{}) bool {
	switch p := payload.(type) {
	case []byte:
		return len(p) == 0
	case json.RawMessage:
		return len(p) == 0
	}
	return isEmpty(payload)
}

// canonicalPayload returns raw bodies unchanged and JSON-encodes anything else
func canonicalPayload(payload interface{}) ([]byte, error) {
	switch p := payload.(type) {
	case string:
		return []byte(p), nil
	case []byte:
		return p, nil
	case json.RawMessage:
		return p, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func decodeEvent(payload interface{}) (Event, error) {
	var source map[string]interface{}
	switch p := payload.(type) {
	case map[string]interface{}:
		source = p
	case Params:
		source = p
	case Event:
		source = p
	default:
		body, err := canonicalPayload(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, &source); err != nil {
			return nil, err
		}
		if source == nil {
			return nil, errors.New("payload is not a JSON object")
		}
	}

	event := make(Event, len(source)+2)
	for k, v := range source {
		event[k] = v
	}
	return event, nil
}
