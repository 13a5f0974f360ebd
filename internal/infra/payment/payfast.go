package payment

import (
	"context"
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // MD5 is the digest mandated by the PayFast protocol.
	"encoding/hex"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/domain/service"
)

// field is one outgoing key/value pair. Order matters: the signature is
// computed over the pairs exactly as listed.
type field struct {
	key   string
	value string
}

// payfastFields builds the PayFast payload from the normalized request.
// Amount is a decimal string with two fraction digits. The field order is
// part of the signing contract and must not change.
func (g *Gateway) payfastFields(req *service.PaymentRequest) []field {
	first, last := splitName(req.Customer.Name)

	return []field{
		{"merchant_id", g.payfast.MerchantID},
		{"merchant_key", g.payfast.MerchantKey},
		{"return_url", g.appBaseURL + "/orders/success?orderId=" + url.QueryEscape(req.OrderID)},
		{"cancel_url", g.appBaseURL + "/checkout?error=Payment cancelled"},
		{"notify_url", g.appBaseURL + "/payment/callback"},
		{"name_first", first},
		{"name_last", last},
		{"email_address", req.Customer.Email},
		{"cell_number", req.Customer.Phone},
		{"m_payment_id", req.OrderID},
		{"amount", strconv.FormatFloat(req.Amount, 'f', 2, 64)},
		{"item_name", "Mobile Shop Order #" + req.OrderID},
		{"item_description", "Payment for mobile phone order #" + req.OrderID},
		{"custom_str1", req.OrderID},
		{"custom_str2", req.Customer.Email},
		{"custom_str3", req.Billing.City},
		{"custom_str4", req.Billing.Country},
		{"custom_str5", lastFour(req.Card.Number)},
		{"passphrase", g.payfast.Passphrase},
	}
}

// payfastSignature is the MD5 digest over every non-empty field rendered as
// key=value with a URL-encoded value, joined by "&". Reproducible
// byte-for-byte, which is what callback verification relies on.
func payfastSignature(fields []field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		parts = append(parts, f.key+"="+url.QueryEscape(f.value))
	}

	sum := md5.Sum([]byte(strings.Join(parts, "&"))) //nolint:gosec

	return hex.EncodeToString(sum[:])
}

// processPayFast prepares the signed PayFast payload. PayFast is a
// redirect-based flow: the browser is sent to the hosted payment page and
// the outcome arrives on the notify URL. Server-side we therefore simulate
// the capture, exactly like the hosted sandbox demo behaves.
func (g *Gateway) processPayFast(ctx context.Context, req *service.PaymentRequest) (*service.PaymentResponse, error) {
	fields := g.payfastFields(req)
	signature := payfastSignature(fields)

	g.logger.Debug("payfast payment data prepared",
		slog.String("merchantId", g.payfast.MerchantID),
		slog.String("orderId", req.OrderID),
		slog.String("signature", signature),
	)

	resp := g.mock.outcome("PF")
	if resp.Success {
		resp.Message = "Payment processed successfully via PayFast"
	}

	return resp, nil
}

// payfastNotifyFields is the documented order of the notification fields
// included in the callback signature.
var payfastNotifyFields = []string{"m_payment_id", "pf_payment_id", "payment_status", "item_name", "amount_gross"}

// payfastStatusComplete is the provider's success code in notifications.
const payfastStatusComplete = "COMPLETE"

// decodePayFastCallback verifies the notification signature and maps the
// PayFast fields onto the normalized callback.
func (g *Gateway) decodePayFastCallback(fields map[string]string) (*service.CallbackNotification, error) {
	signed := make([]field, 0, len(payfastNotifyFields)+1)
	for _, key := range payfastNotifyFields {
		signed = append(signed, field{key, fields[key]})
	}
	signed = append(signed, field{"passphrase", g.payfast.Passphrase})

	expected := payfastSignature(signed)
	if !hmac.Equal([]byte(expected), []byte(fields["signature"])) {
		return nil, ErrSignatureMismatch
	}

	succeeded := fields["payment_status"] == payfastStatusComplete
	message := "Payment " + strings.ToLower(fields["payment_status"])
	if succeeded {
		message = "Payment completed"
	}

	return &service.CallbackNotification{
		OrderID:       fields["m_payment_id"],
		TransactionID: fields["pf_payment_id"],
		Succeeded:     succeeded,
		Message:       message,
	}, nil
}

// splitName splits a full name into the first/last pair PayFast expects.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}

	return parts[0], strings.Join(parts[1:], " ")
}

// lastFour keeps only the last four digits of a card number for reporting.
func lastFour(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}

	return cardNumber[len(cardNumber)-4:]
}
