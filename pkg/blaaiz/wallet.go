package blaaiz

import (
	"context"
	"net/http"
	"net/url"
)

// WalletService reads business wallets
type WalletService struct {
	client Transport
}

// NewWalletService creates a wallet service on top of t
func NewWalletService(t Transport) *WalletService {
	return &WalletService{client: t}
}

// List returns the business wallets
func (s *WalletService) List(ctx context.Context) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodGet, "/api/external/wallet", nil, nil)
}

// Get returns one wallet
func (s *WalletService) Get(ctx context.Context, walletID string) (*Response, error) {
	if err := requireID(walletID, "Wallet ID is required"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodGet, "/api/external/wallet/"+url.PathEscape(walletID), nil, nil)
}
