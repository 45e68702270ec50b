package blaaiz

import (
	"context"
	"net/http"
)

// FeesService quotes transfer fees
type FeesService struct {
	client Transport
}

// NewFeesService creates a fees service on top of t
func NewFeesService(t Transport) *FeesService {
	return &FeesService{client: t}
}

// GetBreakdown returns the fee breakdown for converting from_amount
func (s *FeesService) GetBreakdown(ctx context.Context, data Params) (*Response, error) {
	if err := requireFields(data, "from_currency_id", "to_currency_id", "from_amount"); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/fees/breakdown", data, nil)
}
