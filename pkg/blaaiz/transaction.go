package blaaiz

import (
	"context"
	"net/http"
	"net/url"
)

// TransactionService queries wallet transactions
type TransactionService struct {
	client Transport
}

// NewTransactionService creates a transaction service on top of t
func NewTransactionService(t Transport) *TransactionService {
	return &TransactionService{client: t}
}

// List searches transactions. The API takes filters as a POST body.
func (s *TransactionService) List(ctx context.Context, filters Params) (*Response, error) {
	if filters == nil {
		filters = Params{}
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/transaction", filters, nil)
}

// Get returns one transaction
func (s *TransactionService) Get(ctx context.Context, transactionID string) (*Response, error) {
	if err := requireID(transactionID, "Transaction ID is required"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodGet, "/api/external/transaction/"+url.PathEscape(transactionID), nil, nil)
}
