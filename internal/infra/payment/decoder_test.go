package payment

import (
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedPayFastCallback builds a notification whose signature matches the
// configured passphrase, the way the provider would sign it.
func signedPayFastCallback(passphrase string, fields map[string]string) map[string]string {
	signed := make([]field, 0, len(payfastNotifyFields)+1)
	for _, key := range payfastNotifyFields {
		signed = append(signed, field{key, fields[key]})
	}
	signed = append(signed, field{"passphrase", passphrase})
	fields["signature"] = payfastSignature(signed)

	return fields
}

func TestDecodeCallback_PayFastSuccess(t *testing.T) {
	gw, err := New(payfastConfig(), discardLogger())
	require.NoError(t, err)

	fields := signedPayFastCallback("hunter2", map[string]string{
		"m_payment_id":   "order-123",
		"pf_payment_id":  "1089250",
		"payment_status": "COMPLETE",
		"amount_gross":   "92000.00",
	})

	notification, err := gw.DecodeCallback(fields)
	require.NoError(t, err)
	assert.True(t, notification.Succeeded)
	assert.Equal(t, "order-123", notification.OrderID)
	assert.Equal(t, "1089250", notification.TransactionID)
}

func TestDecodeCallback_PayFastFailureCode(t *testing.T) {
	gw, err := New(payfastConfig(), discardLogger())
	require.NoError(t, err)

	fields := signedPayFastCallback("hunter2", map[string]string{
		"m_payment_id":   "order-123",
		"pf_payment_id":  "1089251",
		"payment_status": "CANCELLED",
	})

	notification, err := gw.DecodeCallback(fields)
	require.NoError(t, err)
	assert.False(t, notification.Succeeded)
}

func TestDecodeCallback_PayFastTamperedSignature(t *testing.T) {
	gw, err := New(payfastConfig(), discardLogger())
	require.NoError(t, err)

	fields := signedPayFastCallback("hunter2", map[string]string{
		"m_payment_id":   "order-123",
		"pf_payment_id":  "1089250",
		"payment_status": "COMPLETE",
		"amount_gross":   "92000.00",
	})
	fields["amount_gross"] = "1.00" // altered after signing

	_, err = gw.DecodeCallback(fields)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestDecodeCallback_JazzCash(t *testing.T) {
	gw, err := New(jazzcashConfig("https://sandbox.jazzcash.com.pk"), discardLogger())
	require.NoError(t, err)

	fields := map[string]string{
		"pp_ResponseCode":    "000",
		"pp_ResponseMessage": "Success",
		"pp_TxnRefNo":        "order-456",
		"pp_Amount":          "9200000",
		"pp_TxnCurrency":     "PKR",
		"pp_TxnDateTime":     "20260829120000",
		"pp_BillReference":   "order-456",
	}
	fields["pp_SecureHash"] = jazzcashCallbackHash("apikey", "salt", fields)

	notification, err := gw.DecodeCallback(fields)
	require.NoError(t, err)
	assert.True(t, notification.Succeeded)
	assert.Equal(t, "order-456", notification.OrderID)
	assert.Equal(t, "order-456", notification.TransactionID)

	// Any non-000 response code is a failure.
	fields["pp_ResponseCode"] = "117"
	fields["pp_SecureHash"] = jazzcashCallbackHash("apikey", "salt", fields)
	notification, err = gw.DecodeCallback(fields)
	require.NoError(t, err)
	assert.False(t, notification.Succeeded)
}

func TestDecodeCallback_JazzCashBadHash(t *testing.T) {
	gw, err := New(jazzcashConfig("https://sandbox.jazzcash.com.pk"), discardLogger())
	require.NoError(t, err)

	fields := map[string]string{
		"pp_ResponseCode":  "000",
		"pp_TxnRefNo":      "order-456",
		"pp_BillReference": "order-456",
		"pp_SecureHash":    "deadbeef",
	}

	_, err = gw.DecodeCallback(fields)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestDecodeCallback_RejectsFormatOfOtherProvider(t *testing.T) {
	// A JazzCash deployment must not accept a PayFast-shaped notification:
	// it carries no verifiable hash for the active credentials, so letting
	// it through would confirm an order on attacker-chosen fields.
	jazzcashCfg := jazzcashConfig("https://sandbox.jazzcash.com.pk")
	jazzcashCfg.Env.Env = "production"
	gw, err := New(jazzcashCfg, discardLogger())
	require.NoError(t, err)

	_, err = gw.DecodeCallback(map[string]string{
		"m_payment_id":   "11111111-1111-1111-1111-111111111111",
		"payment_status": "COMPLETE",
		"pf_payment_id":  "EVIL-TXN",
	})
	assert.ErrorIs(t, err, ErrUnknownCallbackFormat)

	// And the mirror image: PayFast deployment, JazzCash-shaped body.
	gw, err = New(payfastConfig(), discardLogger())
	require.NoError(t, err)

	_, err = gw.DecodeCallback(map[string]string{
		"pp_ResponseCode":  "000",
		"pp_TxnRefNo":      "order-456",
		"pp_BillReference": "order-456",
	})
	assert.ErrorIs(t, err, ErrUnknownCallbackFormat)
}

func TestDecodeCallback_MockProfileRejectsProviderShapes(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Env = "development"
	gw, err := New(cfg, discardLogger())
	require.NoError(t, err)
	require.Equal(t, ProfileMock, gw.Profile())

	_, err = gw.DecodeCallback(map[string]string{
		"m_payment_id":   "order-123",
		"payment_status": "COMPLETE",
	})
	assert.ErrorIs(t, err, ErrUnknownCallbackFormat)

	_, err = gw.DecodeCallback(map[string]string{
		"pp_ResponseCode": "000",
		"pp_TxnRefNo":     "order-456",
	})
	assert.ErrorIs(t, err, ErrUnknownCallbackFormat)
}

func TestDecodeCallback_UnknownFormat(t *testing.T) {
	gw, err := New(payfastConfig(), discardLogger())
	require.NoError(t, err)

	_, err = gw.DecodeCallback(map[string]string{"foo": "bar"})
	assert.ErrorIs(t, err, ErrUnknownCallbackFormat)
}
