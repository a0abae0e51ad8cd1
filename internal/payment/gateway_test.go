package payment

import (
	"strings"
	"testing"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	const key = "SB-Mid-server-test"
	n := Notification{
		OrderID:     "6f1c1c1e-4b7a-4a4b-9d55-0d2f9a0c1a11",
		StatusCode:  "200",
		GrossAmount: "150000.00",
	}
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, key)

	require.NoError(t, Verify(n, key))

	t.Run("upper-case signature accepted", func(t *testing.T) {
		m := n
		m.SignatureKey = "  " + strings.ToUpper(n.SignatureKey)
		assert.NoError(t, Verify(m, key))
	})

	t.Run("tampered amount rejected", func(t *testing.T) {
		m := n
		m.GrossAmount = "1.00"
		assert.ErrorIs(t, Verify(m, key), ErrInvalidSignature)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		assert.ErrorIs(t, Verify(n, "other"), ErrInvalidSignature)
	})

	t.Run("empty signature rejected", func(t *testing.T) {
		m := n
		m.SignatureKey = ""
		assert.ErrorIs(t, Verify(m, key), ErrInvalidSignature)
	})
}

func TestSignatureIsHexSHA512(t *testing.T) {
	sig := Signature("a", "b", "c", "d")
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, Signature("a", "b", "c", "d"))
}

func TestMapStatus(t *testing.T) {
	cases := []struct {
		status, fraud string
		want          model.PaymentStatus
	}{
		{"settlement", "", model.PaymentPaid},
		{"capture", "accept", model.PaymentPaid},
		{"capture", "challenge", model.PaymentPending},
		{"capture", "deny", model.PaymentFailed},
		{"pending", "", model.PaymentPending},
		{"expire", "", model.PaymentFailed},
		{"cancel", "", model.PaymentFailed},
		{"deny", "", model.PaymentFailed},
		{"failure", "", model.PaymentFailed},
		{"SETTLEMENT", "", model.PaymentPaid},
		{"refund", "", model.PaymentPending},
	}
	for _, tc := range cases {
		t.Run(tc.status+"/"+tc.fraud, func(t *testing.T) {
			assert.Equal(t, tc.want, MapStatus(tc.status, tc.fraud))
		})
	}
}
