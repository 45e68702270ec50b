package blaaiz

import (
	"context"
	"net/http"
)

// BankService lists banks and resolves account names
type BankService struct {
	client Transport
}

// NewBankService creates a bank service on top of t
func NewBankService(t Transport) *BankService {
	return &BankService{client: t}
}

// List returns the supported banks
func (s *BankService) List(ctx context.Context) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodGet, "/api/external/bank", nil, nil)
}

// LookupAccount resolves the holder of account_number at bank_id
func (s *BankService) LookupAccount(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, "account_number", "bank_id"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/bank/account-lookup", data, nil)
}
