package blaaiz

import (
	"context"
	"net/http"
)

var payoutRequiredFields = []string{
	"wallet_id", "customer_id", "method", "from_currency_id", "to_currency_id",
}

var achFields = []string{
	"type", "account_number", "account_name", "account_type", "bank_name", "routing_number",
}

// payoutMethodFields lists the extra fields each payout method requires, in
// validation order. bank_transfer is keyed further by destination currency.
var payoutMethodFields = map[string][]string{
	PayoutMethodInterac: {"email", "interac_first_name", "interac_last_name"},
	PayoutMethodACH:     achFields,
	PayoutMethodWire:    append(append([]string{}, achFields...), "swift_code"),
	PayoutMethodCrypto:  {"wallet_address", "wallet_token", "wallet_network"},
}

var bankTransferFields = map[string][]string{
	"NGN": {"bank_id", "account_number"},
	"GBP": {"sort_code", "account_number", "account_name"},
	"EUR": {"iban", "bic_code", "account_name"},
}

// PayoutService sends money out of a wallet
type PayoutService struct {
	client Transport
}

// NewPayoutService creates a payout service on top of t
func NewPayoutService(t Transport) *PayoutService {
	return &PayoutService{client: t}
}

// Initiate validates the payout for its method and submits it
func (s *PayoutService) Initiate(ctx context.Context, data Params) (*Response, error) {
	if err := ValidatePayout(data); err != nil {
		return nil, err
	}
	return s.client.MakeRequest(ctx, http.MethodPost, "/api/external/payout", data, nil)
}

// ValidatePayout checks base fields, the amount, then the method-specific fields
func ValidatePayout(data Params) error {
	if err := requireFields(data, payoutRequiredFields...); err != nil {
		return err
	}
	if isEmpty(data["from_amount"]) && isEmpty(data["to_amount"]) {
		return validationError("Either from_amount or to_amount is required")
	}
	return requireFields(data, payoutExtraFields(stringValue(data["method"]), stringValue(data["to_currency_id"]))...)
}

func payoutExtraFields(method, toCurrency string) []string {
	if method == PayoutMethodBankTransfer {
		return bankTransferFields[toCurrency]
	}
	return payoutMethodFields[method]
}
