package services

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUPIIntent(t *testing.T) {
	t.Setenv("UPI_MERCHANT_VPA", "boutique@ybl")

	intent := BuildUPIIntent(1549.50, "ord-42")

	require.True(t, strings.HasPrefix(intent, "upi://pay?"))
	params, err := url.ParseQuery(strings.TrimPrefix(intent, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, "boutique@ybl", params.Get("pa"))
	assert.Equal(t, "1549.50", params.Get("am"))
	assert.Equal(t, "INR", params.Get("cu"))
	assert.Equal(t, "Commande ord-42", params.Get("tn"))
}

func TestBuildUPIIntentDefaultVPA(t *testing.T) {
	t.Setenv("UPI_MERCHANT_VPA", "")

	intent := BuildUPIIntent(100, "ord-1")

	params, err := url.ParseQuery(strings.TrimPrefix(intent, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, "manielectrical@okhdfcbank", params.Get("pa"))
}

func TestUPIQRCodeIsValidBase64PNG(t *testing.T) {
	qr, err := UPIQRCode(2500, "ord-7")

	require.NoError(t, err)
	png, err := base64.StdEncoding.DecodeString(qr)
	require.NoError(t, err)
	// signature PNG
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
