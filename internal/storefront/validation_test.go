package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardNumberValidation(t *testing.T) {
	cases := []struct {
		number string
		valid  bool
	}{
		{"1234 5678 9012 3456", true},
		{"1234-5678-9012-3456", true},
		{"1234567890123456", true},
		{"1234 5678 9012", false},       // 12 chiffres
		{"1234 5678 9012 345", false},   // 15 chiffres
		{"1234 5678 9012 34567", false}, // 17 chiffres
		{"1234 5678 9012 345a", false},
		{"", false},
	}
	for _, tc := range cases {
		p := validCard()
		p.CardNumber = tc.number
		_, field, _, valid := validatePayment(p)
		assert.Equal(t, tc.valid, valid, "numéro %q", tc.number)
		if !tc.valid {
			assert.Equal(t, "cardNumber", field)
		}
	}
}

func TestCardLast4Truncation(t *testing.T) {
	details, _, _, valid := validatePayment(validCard())

	require.True(t, valid)
	assert.Equal(t, "3456", details.CardLast4)
	assert.Equal(t, "Ravi Kumar", details.CardHolder)
}

func TestCardHolderRequired(t *testing.T) {
	p := validCard()
	p.CardHolder = "   "

	_, field, _, valid := validatePayment(p)

	assert.False(t, valid)
	assert.Equal(t, "cardHolder", field)
}

func TestCVVValidation(t *testing.T) {
	cases := []struct {
		cvv   string
		valid bool
	}{
		{"123", true},
		{"1234", true},
		{"12", false},
		{"12345", false},
		{"12a", false},
	}
	for _, tc := range cases {
		p := validCard()
		p.CVV = tc.cvv
		_, _, _, valid := validatePayment(p)
		assert.Equal(t, tc.valid, valid, "cvv %q", tc.cvv)
	}
}

func TestExpiryValidation(t *testing.T) {
	cases := []struct {
		expiry string
		valid  bool
	}{
		{"01/30", true},
		{"12/25", true},
		{"13/25", false}, // mois hors plage
		{"00/25", false},
		{"1/25", false},
		{"01-30", false},
		{"01/2030", false},
	}
	for _, tc := range cases {
		p := validCard()
		p.Expiry = tc.expiry
		_, field, _, valid := validatePayment(p)
		assert.Equal(t, tc.valid, valid, "expiration %q", tc.expiry)
		if !tc.valid {
			assert.Equal(t, "expiry", field)
		}
	}
}

func TestUPIValidation(t *testing.T) {
	cases := []struct {
		upi   string
		valid bool
	}{
		{"ravi@okhdfcbank", true},
		{"ravi.kumar-92@ybl", true},
		{"ravi", false},       // pas de fournisseur
		{"@okhdfcbank", false}, // pas de partie locale
		{"r@okhdfcbank", false}, // partie locale trop courte
		{"ravi@9bank", false},   // fournisseur non alphabétique
		{"", false},
	}
	for _, tc := range cases {
		_, field, _, valid := validatePayment(PaymentInput{Method: "upi", UPIID: tc.upi})
		assert.Equal(t, tc.valid, valid, "upi %q", tc.upi)
		if !tc.valid {
			assert.Equal(t, "upiId", field)
		}
	}
}

func TestCODSkipsPaymentValidation(t *testing.T) {
	details, _, _, valid := validatePayment(PaymentInput{Method: "cod"})

	require.True(t, valid)
	assert.Empty(t, details.CardLast4)
	assert.Empty(t, details.UPIID)
}

func TestMethodNormalization(t *testing.T) {
	assert.Equal(t, "card", normalizeMethod("Credit"))
	assert.Equal(t, "card", normalizeMethod("debit"))
	assert.Equal(t, "upi", normalizeMethod(" UPI "))
	assert.Equal(t, "cod", normalizeMethod(""))
}

func TestUnknownMethodRejected(t *testing.T) {
	_, field, _, valid := validatePayment(PaymentInput{Method: "virement"})

	assert.False(t, valid)
	assert.Equal(t, "paymentMethod", field)
}
