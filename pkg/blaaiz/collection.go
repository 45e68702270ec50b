package blaaiz

import (
	"context"
	"net/http"
)

// CollectionService receives money into a wallet
type CollectionService struct {
	client Transport
}

// NewCollectionService creates a collection service on top of t
func NewCollectionService(t Transport) *CollectionService {
	return &CollectionService{client: t}
}

// Initiate starts a fiat collection
func (s *CollectionService) Initiate(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, "method", "amount", "wallet_id"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/collection", data, nil)
}

// InitiateCrypto starts a crypto collection. The payload is forwarded as is.
func (s *CollectionService) InitiateCrypto(ctx context.Context, data Params) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/collection/crypto", data, nil)
}

// AttachCustomer links a customer to an existing collection transaction
func (s *CollectionService) AttachCustomer(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, "customer_id", "transaction_id"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/collection/attach-customer", data, nil)
}

// GetCryptoNetworks lists supported crypto networks
func (s *CollectionService) GetCryptoNetworks(ctx context.Context) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodGet, "/api/external/collection/crypto/networks", nil, nil)
}
