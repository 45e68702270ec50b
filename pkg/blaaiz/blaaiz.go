package blaaiz

import (
	"context"
	"fmt"
)

// SDK groups every resource service around a single Transport
type SDK struct {
	client Transport

	Customers           *CustomerService
	Collections         *CollectionService
	Payouts             *PayoutService
	Wallets             *WalletService
	VirtualBankAccounts *VirtualBankAccountService
	Transactions        *TransactionService
	Banks               *BankService
	Currencies          *CurrencyService
	Fees                *FeesService
	Files               *FileService
	Webhooks            *WebhookService
}

// New creates an SDK backed by a new APIClient
func New(config *ClientConfig) (*SDK, error) {
	client, err := NewAPIClient(config)
	if err != nil {
		return nil, err
	}
	return NewWithTransport(client), nil
}

// NewWithTransport creates an SDK whose services all share t
func NewWithTransport(t Transport) *SDK {
	return &SDK{
		client:              t,
		Customers:           NewCustomerService(t),
		Collections:         NewCollectionService(t),
		Payouts:             NewPayoutService(t),
		Wallets:             NewWalletService(t),
		VirtualBankAccounts: NewVirtualBankAccountService(t),
		Transactions:        NewTransactionService(t),
		Banks:               NewBankService(t),
		Currencies:          NewCurrencyService(t),
		Fees:                NewFeesService(t),
		Files:               NewFileService(t),
		Webhooks:            NewWebhookService(t),
	}
}

// Transport returns the shared transport
func (s *SDK) Transport() Transport {
	return s.client
}

// TestConnection reports whether an authenticated call succeeds
func (s *SDK) TestConnection(ctx context.Context) bool {
	_, err := s.Currencies.List(ctx)
	return err == nil
}

// PayoutConfig is the input to CreateCompletePayout.
// CustomerData is only used when PayoutData has no customer_id.
type PayoutConfig struct {
	CustomerData Params
	PayoutData   Params
}

// CompletePayoutResult holds the data of each step's response
type CompletePayoutResult struct {
	CustomerID string
	Payout     interface{}
	Fees       interface{}
}

// CreateCompletePayout creates the customer if needed, quotes fees, then
// initiates the payout. Errors are prefixed with "Complete payout failed: ".
func (s *SDK) CreateCompletePayout(ctx context.Context, cfg PayoutConfig) (*CompletePayoutResult, error) {
	result, err := s.createCompletePayout(ctx, cfg)
	if err != nil {
		return nil, wrapError("Complete payout failed: ", KindCompound, err)
	}
	return result, nil
}

func (s *SDK) createCompletePayout(ctx context.Context, cfg PayoutConfig) (*CompletePayoutResult, error) {
	payoutData := cfg.PayoutData
	if payoutData == nil {
		payoutData = Params{}
	}

	customerID, rawID, err := s.resolveCustomer(ctx, payoutData, cfg.CustomerData)
	if err != nil {
		return nil, err
	}

	fees, err := s.Fees.GetBreakdown(ctx, Params{
		"from_currency_id": payoutData["from_currency_id"],
		"to_currency_id":   payoutData["to_currency_id"],
		"from_amount":      payoutData["from_amount"],
	})
	if err != nil {
		return nil, err
	}

	merged := payoutData.clone()
	if customerID != "" {
		merged["customer_id"] = rawID
	}
	payout, err := s.Payouts.Initiate(ctx, merged)
	if err != nil {
		return nil, err
	}

	return &CompletePayoutResult{
		CustomerID: customerID,
		Payout:     payout.Data,
		Fees:       fees.Data,
	}, nil
}

// CollectionConfig is the input to CreateCompleteCollection
type CollectionConfig struct {
	CustomerData   Params
	CollectionData Params
	CreateVBA      bool
}

// CompleteCollectionResult holds the data of each step's response.
// VirtualAccount is nil unless a VBA was requested.
type CompleteCollectionResult struct {
	CustomerID     string
	Collection     interface{}
	VirtualAccount interface{}
}

// CreateCompleteCollection creates the customer if needed, optionally opens
// a VBA, then initiates the collection. Errors are prefixed with
// "Complete collection failed: ".
func (s *SDK) CreateCompleteCollection(ctx context.Context, cfg CollectionConfig) (*CompleteCollectionResult, error) {
	result, err := s.createCompleteCollection(ctx, cfg)
	if err != nil {
		return nil, wrapError("Complete collection failed: ", KindCompound, err)
	}
	return result, nil
}

func (s *SDK) createCompleteCollection(ctx context.Context, cfg CollectionConfig) (*CompleteCollectionResult, error) {
	collectionData := cfg.CollectionData
	if collectionData == nil {
		collectionData = Params{}
	}

	customerID, rawID, err := s.resolveCustomer(ctx, collectionData, cfg.CustomerData)
	if err != nil {
		return nil, err
	}

	var virtualAccount interface{}
	if cfg.CreateVBA {
		accountName := "Customer Account"
		if cfg.CustomerData != nil {
			accountName = fmt.Sprintf("%s %s", stringValue(cfg.CustomerData["first_name"]), stringValue(cfg.CustomerData["last_name"]))
		}
		vba, err := s.VirtualBankAccounts.Create(ctx, Params{
			"wallet_id":    collectionData["wallet_id"],
			"account_name": accountName,
		})
		if err != nil {
			return nil, err
		}
		virtualAccount = vba.Data
	}

	merged := collectionData.clone()
	if customerID != "" {
		merged["customer_id"] = rawID
	}
	collection, err := s.Collections.Initiate(ctx, merged)
	if err != nil {
		return nil, err
	}

	return &CompleteCollectionResult{
		CustomerID:     customerID,
		Collection:     collection.Data,
		VirtualAccount: virtualAccount,
	}, nil
}

// resolveCustomer returns data's customer_id, creating a customer from
// customerData when there is none. The raw id is forwarded to later calls
// as the API returned it; the string form is for the caller.
func (s *SDK) resolveCustomer(ctx context.Context, data, customerData Params) (string, interface{}, error) {
	if id := data["customer_id"]; !isEmpty(id) {
		return stringValue(id), id, nil
	}
	if customerData == nil {
		return "", nil, nil
	}

	created, err := s.Customers.Create(ctx, customerData)
	if err != nil {
		return "", nil, err
	}

	id, ok := lookup(created.Data, "data", "id")
	if !ok || isEmpty(id) {
		return "", nil, &Error{
			Message: "customer creation response did not include data.id",
			Status:  created.Status,
			Code:    ErrCodeParse,
			Kind:    KindParse,
		}
	}
	return stringValue(id), id, nil
}
