package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	jazzcashEndpoint    = "/ApplicationAPI/API/Payment/DoTransaction"
	jazzcashSuccessCode = "000"
	jazzcashTimeLayout  = "20060102150405"
	jazzcashTxnExpiry   = 30 * time.Minute
)

// jazzcashRequest is the typed wire payload. The pp_ names are the
// provider's; every field is rendered as a form value.
type jazzcashRequest struct {
	Version        string // pp_Version
	TxnType        string // pp_TxnType
	Language       string // pp_Language
	MerchantID     string // pp_MerchantID
	Password       string // pp_Password
	TxnRefNo       string // pp_TxnRefNo
	Amount         string // pp_Amount, integer paisa
	TxnCurrency    string // pp_TxnCurrency
	TxnDateTime    string // pp_TxnDateTime
	BillReference  string // pp_BillReference
	Description    string // pp_Description
	TxnExpiryTime  string // pp_TxnExpiryDateTime
	ReturnURL      string // pp_ReturnURL
	SecureHash     string // pp_SecureHash
	CustomerName   string // ppmpf_1
	CustomerEmail  string // ppmpf_2
	CustomerPhone  string // ppmpf_3
	BillingAddress string // ppmpf_7
	BillingCity    string // ppmpf_8
	BillingPostal  string // ppmpf_9
	BillingCountry string // ppmpf_10
}

// jazzcashResponse is the subset of the provider's JSON reply we interpret.
type jazzcashResponse struct {
	ResponseCode    string `json:"ResponseCode"`
	ResponseMessage string `json:"ResponseMessage"`
	TxnRefNo        string `json:"pp_TxnRefNo"`
}

// paisa encodes a PKR amount as integer minor units (1 PKR = 100 paisa).
func paisa(amount float64) string {
	return strconv.FormatInt(int64(math.Round(amount*100)), 10)
}

// buildJazzCashRequest maps the normalized request to the wire payload.
func (g *Gateway) buildJazzCashRequest(req *service.PaymentRequest) *jazzcashRequest {
	now := g.now()

	return &jazzcashRequest{
		Version:        "1.1",
		TxnType:        "MWALLET",
		Language:       "EN",
		MerchantID:     g.jazzcash.MerchantID,
		Password:       g.jazzcash.Password,
		TxnRefNo:       req.OrderID,
		Amount:         paisa(req.Amount),
		TxnCurrency:    req.Currency,
		TxnDateTime:    now.Format(jazzcashTimeLayout),
		BillReference:  req.OrderID,
		Description:    "Payment for Order #" + req.OrderID,
		TxnExpiryTime:  now.Add(jazzcashTxnExpiry).Format(jazzcashTimeLayout),
		ReturnURL:      g.appBaseURL + "/payment/callback",
		CustomerName:   req.Customer.Name,
		CustomerEmail:  req.Customer.Email,
		CustomerPhone:  req.Customer.Phone,
		BillingAddress: req.Billing.Address,
		BillingCity:    req.Billing.City,
		BillingPostal:  req.Billing.PostalCode,
		BillingCountry: req.Billing.Country,
	}
}

// jazzcashSecureHash is the SHA-256 digest over the fixed positional
// concatenation: api key, then the transaction fields in protocol order,
// with the shared secret appended last. Reproducible byte-for-byte.
func jazzcashSecureHash(apiKey, secret string, r *jazzcashRequest) string {
	hashString := strings.Join([]string{
		apiKey,
		r.Amount,
		r.BillReference,
		r.Description,
		r.Language,
		r.MerchantID,
		r.Password,
		r.ReturnURL,
		r.TxnCurrency,
		r.TxnDateTime,
		r.TxnExpiryTime,
		r.TxnRefNo,
		r.TxnType,
		r.Version,
		secret,
	}, "&")

	sum := sha256.Sum256([]byte(hashString))

	return hex.EncodeToString(sum[:])
}

// formValues renders the payload as the form body JazzCash expects.
func (r *jazzcashRequest) formValues() url.Values {
	values := url.Values{}
	values.Set("pp_Version", r.Version)
	values.Set("pp_TxnType", r.TxnType)
	values.Set("pp_Language", r.Language)
	values.Set("pp_MerchantID", r.MerchantID)
	values.Set("pp_Password", r.Password)
	values.Set("pp_TxnRefNo", r.TxnRefNo)
	values.Set("pp_Amount", r.Amount)
	values.Set("pp_TxnCurrency", r.TxnCurrency)
	values.Set("pp_TxnDateTime", r.TxnDateTime)
	values.Set("pp_BillReference", r.BillReference)
	values.Set("pp_Description", r.Description)
	values.Set("pp_TxnExpiryDateTime", r.TxnExpiryTime)
	values.Set("pp_ReturnURL", r.ReturnURL)
	values.Set("pp_SecureHash", r.SecureHash)
	values.Set("ppmpf_1", r.CustomerName)
	values.Set("ppmpf_2", r.CustomerEmail)
	values.Set("ppmpf_3", r.CustomerPhone)
	values.Set("ppmpf_7", r.BillingAddress)
	values.Set("ppmpf_8", r.BillingCity)
	values.Set("ppmpf_9", r.BillingPostal)
	values.Set("ppmpf_10", r.BillingCountry)

	return values
}

// processJazzCash performs the server-to-server transaction call and
// interprets the provider's response code.
func (g *Gateway) processJazzCash(ctx context.Context, req *service.PaymentRequest) (*service.PaymentResponse, error) {
	wireReq := g.buildJazzCashRequest(req)
	wireReq.SecureHash = jazzcashSecureHash(g.jazzcash.APIKey, g.jazzcash.Secret, wireReq)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.jazzcash.BaseURL+jazzcashEndpoint,
		strings.NewReader(wireReq.formValues().Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build jazzcash request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "jazzcash request failed")
	}
	defer httpResp.Body.Close()

	var result jazzcashResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to decode jazzcash response")
	}

	if result.ResponseCode != jazzcashSuccessCode {
		message := result.ResponseMessage
		if message == "" {
			message = "Your payment could not be processed. Please try again."
		}

		return &service.PaymentResponse{
			Success: false,
			Error:   "Payment failed",
			Message: message,
		}, nil
	}

	return &service.PaymentResponse{
		Success:       true,
		TransactionID: result.TxnRefNo,
		Message:       "Payment processed successfully via JazzCash",
	}, nil
}

// decodeJazzCashCallback verifies the callback hash and maps the pp_ fields
// onto the normalized callback.
func (g *Gateway) decodeJazzCashCallback(fields map[string]string) (*service.CallbackNotification, error) {
	expected := jazzcashCallbackHash(g.jazzcash.APIKey, g.jazzcash.Secret, fields)
	if !hmac.Equal([]byte(expected), []byte(fields["pp_SecureHash"])) {
		return nil, ErrSignatureMismatch
	}

	succeeded := fields["pp_ResponseCode"] == jazzcashSuccessCode
	message := fields["pp_ResponseMessage"]
	if message == "" {
		if succeeded {
			message = "Payment completed"
		} else {
			message = "Payment failed"
		}
	}

	return &service.CallbackNotification{
		OrderID:       fields["pp_BillReference"],
		TransactionID: fields["pp_TxnRefNo"],
		Succeeded:     succeeded,
		Message:       message,
	}, nil
}

// jazzcashCallbackHash mirrors jazzcashSecureHash for the notification
// payload: api key, the posted transaction fields in protocol order, secret.
func jazzcashCallbackHash(apiKey, secret string, fields map[string]string) string {
	hashString := strings.Join([]string{
		apiKey,
		fields["pp_Amount"],
		fields["pp_BillReference"],
		fields["pp_ResponseCode"],
		fields["pp_TxnCurrency"],
		fields["pp_TxnDateTime"],
		fields["pp_TxnRefNo"],
		secret,
	}, "&")

	sum := sha256.Sum256([]byte(hashString))

	return hex.EncodeToString(sum[:])
}
