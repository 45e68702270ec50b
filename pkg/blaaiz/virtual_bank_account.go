package blaaiz

import (
	"context"
	"net/http"
	"net/url"
)

const vbaPath = "/api/external/virtual-bank-account"

// VirtualBankAccountService manages virtual bank accounts (VBAs), the
// receiving account numbers used to route inbound collections
type VirtualBankAccountService struct {
	client Transport
}

// NewVirtualBankAccountService creates a VBA service on top of t
func NewVirtualBankAccountService(t Transport) *VirtualBankAccountService {
	return &VirtualBankAccountService{client: t}
}

// Create opens a VBA on a wallet
func (s *VirtualBankAccountService) Create(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, "wallet_id"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, vbaPath, data, nil)
}

// List returns VBAs, optionally filtered by wallet and customer. Empty filters are omitted.
func (s *VirtualBankAccountService) List(ctx context.Context, walletID, customerID string) (*Response, error) {
	query := url.Values{}
	if walletID != "" {
		query.Set("wallet_id", walletID)
	}
	if customerID != "" {
		query.Set("customer_id", customerID)
	}

	endpoint := vbaPath
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return s.client.MakeRequest(ctx, http.MethodGet, endpoint, nil, nil)
}

// Get returns one VBA
func (s *VirtualBankAccountService) Get(ctx context.Context, vbaID string) (*Response, error) {
	if err := requireID(vbaID, "Virtual bank account ID is required"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodGet, vbaPath+"/"+url.PathEscape(vbaID), nil, nil)
}

// Close closes a VBA. data may be nil.
func (s *VirtualBankAccountService) Close(ctx context.Context, vbaID string, data Params) (*Response, error) {
	if err := requireID(vbaID, "Virtual bank account ID is required"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, vbaPath+"/"+url.PathEscape(vbaID)+"/close", data, nil)
}
