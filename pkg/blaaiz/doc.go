// Package blaaiz provides a client for the Blaaiz payments API.
//
// The API covers customers, payouts, collections, wallets, virtual bank
// accounts, transactions, banks, currencies, fees, files and webhooks. Each
// resource has a service that validates its payload before any request is
// sent, and all services share one APIClient.
//
// # Authentication
//
// Requests are authenticated with an API key sent in the x-blaaiz-api-key
// header. Presigned upload URLs and file downloads are not authenticated.
//
// # Basic Usage
//
//	sdk, err := blaaiz.New(&blaaiz.ClientConfig{
//	    APIKey:  "your-api-key",
//	    BaseURL: blaaiz.DefaultBaseURL,
//	})
//
//	// Create a customer
//	resp, err := sdk.Customers.Create(ctx, blaaiz.Params{
//	    "first_name": "Ada",
//	    "last_name":  "Obi",
//	    "type":       "individual",
//	    "email":      "ada@example.com",
//	    "country":    "NG",
//	    "id_type":    "passport",
//	    "id_number":  "A1234567",
//	})
//
//	// Upload a KYC document
//	result, err := sdk.Customers.UploadFileComplete(ctx, customerID, &blaaiz.FileUploadOptions{
//	    File:         blaaiz.FileFromString("https://example.com/passport.jpg"),
//	    FileCategory: blaaiz.FileCategoryIdentity,
//	})
//
//	// Create customer, quote fees and pay out in one call
//	payout, err := sdk.CreateCompletePayout(ctx, blaaiz.PayoutConfig{
//	    CustomerData: customer,
//	    PayoutData:   blaaiz.Params{"wallet_id": walletID, "method": "bank_transfer", ...},
//	})
//
// # Webhooks
//
// Deliveries are signed with a hex HMAC-SHA256 of the raw body using the
// webhook secret; the signature may carry a "sha256=" prefix.
//
//	event, err := sdk.Webhooks.ConstructEvent(body, r.Header.Get(blaaiz.SignatureHeader), secret)
//
// # Error Handling
//
// Every failure is returned as *Error:
//
//	resp, err := sdk.Payouts.Initiate(ctx, data)
//	if sdkErr, ok := blaaiz.AsError(err); ok {
//	    switch {
//	    case sdkErr.Kind == blaaiz.KindValidation:
//	        // rejected before sending
//	    case sdkErr.IsClientError():
//	        // 4xx from the API, see sdkErr.Code
//	    case sdkErr.IsServerError():
//	        // 5xx from the API
//	    }
//	}
package blaaiz
