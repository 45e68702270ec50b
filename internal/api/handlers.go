// Package api provides the HTTP receiver for Blaaiz webhooks and the live event stream
package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/blaaiz/blaaiz-go/internal/auth"
	"github.com/blaaiz/blaaiz-go/internal/metrics"
	"github.com/blaaiz/blaaiz-go/pkg/blaaiz"
)

const maxWebhookBody = 1 << 20

// Handler contains all HTTP handlers
type Handler struct {
	sdk           *blaaiz.SDK
	auth          *auth.Service
	hub           *Hub
	webhookSecret string
}

// New creates a new API handler
func New(sdk *blaaiz.SDK, authSvc *auth.Service, hub *Hub, webhookSecret string) *Handler {
	return &Handler{
		sdk:           sdk,
		auth:          authSvc,
		hub:           hub,
		webhookSecret: webhookSecret,
	}
}

// Response helpers

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	})
}

// === Health & Info ===

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	reachable := h.sdk.TestConnection(r.Context())
	metrics.SetAPIReachable(reachable)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "healthy",
		"api_reachable": reachable,
		"subscribers":   h.hub.Count(),
	})
}

// ServerInfo handles GET /
func (h *Handler) ServerInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":        "blaaiz-receiver",
		"version":     "1.0.0",
		"description": "Blaaiz webhook receiver and event stream",
	})
}

// === Webhooks ===

// ReceiveWebhook handles POST /webhooks/blaaiz
func (h *Handler) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		metrics.TickWebhook(metrics.OutcomeInvalidPayload)
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read request body")
		return
	}
	if len(body) == 0 {
		metrics.TickWebhook(metrics.OutcomeInvalidPayload)
		respondError(w, http.StatusBadRequest, "EMPTY_PAYLOAD", "Request body is empty")
		return
	}

	signature := r.Header.Get(blaaiz.SignatureHeader)
	if signature == "" {
		metrics.TickWebhook(metrics.OutcomeMissingSignature)
		respondError(w, http.StatusUnauthorized, "MISSING_SIGNATURE", blaaiz.SignatureHeader+" header required")
		return
	}

	event, err := h.sdk.Webhooks.ConstructEvent(body, signature, h.webhookSecret)
	if err != nil {
		if sdkErr, ok := blaaiz.AsError(err); ok && sdkErr.Kind == blaaiz.KindParse {
			metrics.TickWebhook(metrics.OutcomeInvalidPayload)
			respondError(w, http.StatusBadRequest, "INVALID_PAYLOAD", sdkErr.Message)
			return
		}
		log.Printf("Rejected webhook from %s: %v", getClientIP(r), err)
		metrics.TickWebhook(metrics.OutcomeInvalidSignature)
		respondError(w, http.StatusUnauthorized, "INVALID_SIGNATURE", "Invalid webhook signature")
		return
	}

	deliveryID := uuid.New().String()
	delivered := h.hub.Broadcast(&StreamMessage{
		Type:       "webhook",
		DeliveryID: deliveryID,
		Event:      event,
	})
	metrics.TickWebhook(metrics.OutcomeAccepted)
	log.Printf("Accepted webhook %s (transaction %v, status %v), delivered to %d subscribers",
		deliveryID, event["transaction_id"], event["status"], delivered)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "received",
		"delivery_id": deliveryID,
	})
}
