package services

import (
	"context"
	"testing"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyForZone(t *testing.T) {
	for _, zone := range []string{"yangon-inner", "yangon-outer", "mandalay"} {
		policy := PolicyForZone(zone)
		assert.Equal(t, models.PaymentMethodCOD, policy.Method, zone)
		assert.False(t, policy.RequiresProof, zone)
		assert.Equal(t, models.PaymentStatusNotRequired, policy.InitialPaymentStatus, zone)
	}

	for _, zone := range []string{"naypyitaw", "shan", "remote", "never-heard-of-it"} {
		policy := PolicyForZone(zone)
		assert.Equal(t, models.PaymentMethodPrepaidTransfer, policy.Method, zone)
		assert.True(t, policy.RequiresProof, zone)
		assert.Equal(t, models.PaymentStatusPendingReview, policy.InitialPaymentStatus, zone)
	}
}

func TestValidatePaymentInput_DeclaredMethodMismatch(t *testing.T) {
	store := newMemStore()
	prepaid := PolicyForZone("remote")

	_, err := validatePaymentInput(context.Background(), store.TransferMethods(),
		prepaid, "COD", "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentMethodForZone)

	cod := PolicyForZone("yangon-inner")
	_, err = validatePaymentInput(context.Background(), store.TransferMethods(),
		cod, "PREPAID_TRANSFER", "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentMethodForZone)
}

func TestValidatePaymentInput_CODCarriesNoProof(t *testing.T) {
	store := newMemStore()
	cod := PolicyForZone("yangon-inner")

	// Proof supplied for a COD order is discarded, not persisted.
	details, err := validatePaymentInput(context.Background(), store.TransferMethods(),
		cod, "COD", "https://img.example/proof.jpg", "KBZPAY TXN1")
	require.NoError(t, err)
	assert.Nil(t, details.ProofURL)
	assert.Nil(t, details.Reference)
}

func TestValidatePaymentInput_PrepaidRequiresProofAndMethod(t *testing.T) {
	store := newMemStore()
	store.addTransferMethod("KBZPAY", models.TransferChannelWallet, true)
	store.addTransferMethod("AYA", models.TransferChannelBank, false)
	prepaid := PolicyForZone("remote")
	ctx := context.Background()

	_, err := validatePaymentInput(ctx, store.TransferMethods(), prepaid, "", "  ", "KBZPAY TXN1")
	assert.ErrorIs(t, err, apperrors.ErrPaymentProofRequired)

	_, err = validatePaymentInput(ctx, store.TransferMethods(), prepaid, "", "https://img.example/p.jpg", "   ")
	assert.ErrorIs(t, err, apperrors.ErrTransferMethodRequired)

	_, err = validatePaymentInput(ctx, store.TransferMethods(), prepaid, "", "https://img.example/p.jpg", "WAVE TXN1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransferMethod)

	// Inactive methods are rejected the same as unknown ones.
	_, err = validatePaymentInput(ctx, store.TransferMethods(), prepaid, "", "https://img.example/p.jpg", "AYA TXN1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransferMethod)

	details, err := validatePaymentInput(ctx, store.TransferMethods(), prepaid,
		"PREPAID_TRANSFER", " https://img.example/p.jpg ", "KBZPAY TXN-20260901-001")
	require.NoError(t, err)
	require.NotNil(t, details.ProofURL)
	require.NotNil(t, details.Reference)
	assert.Equal(t, "https://img.example/p.jpg", *details.ProofURL)
	assert.Equal(t, "KBZPAY TXN-20260901-001", *details.Reference)
}
