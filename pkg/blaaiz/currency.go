package blaaiz

import (
	"context"
	"net/http"
)

// CurrencyService lists supported currencies
type CurrencyService struct {
	client Transport
}

// NewCurrencyService creates a currency service on top of t
func NewCurrencyService(t Transport) *CurrencyService {
	return &CurrencyService{client: t}
}

// List returns the supported currencies
func (s *CurrencyService) List(ctx context.Context) (*Response, error) {
	return s.client.MakeRequest(ctx, http.MethodGet, "/api/external/currency", nil, nil)
}
