package services

import (
	"context"
	"errors"
	"strings"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// codZones are the delivery zones where cash on delivery is offered. Every
// other zone requires a prepaid transfer with proof.
var codZones = map[string]bool{
	"yangon-inner": true,
	"yangon-outer": true,
	"mandalay":     true,
}

// PaymentPolicy is a pure function of the resolved zone key.
type PaymentPolicy struct {
	Method               models.PaymentMethod `json:"method"`
	RequiresProof        bool                 `json:"requires_proof"`
	InitialPaymentStatus models.PaymentStatus `json:"initial_payment_status"`
}

// PolicyForZone derives the allowed payment method and proof requirement for
// a resolved zone.
func PolicyForZone(zoneKey string) PaymentPolicy {
	if codZones[zoneKey] {
		return PaymentPolicy{
			Method:               models.PaymentMethodCOD,
			RequiresProof:        false,
			InitialPaymentStatus: models.PaymentStatusNotRequired,
		}
	}
	return PaymentPolicy{
		Method:               models.PaymentMethodPrepaidTransfer,
		RequiresProof:        true,
		InitialPaymentStatus: models.PaymentStatusPendingReview,
	}
}

// paymentDetails is the normalized proof data persisted on the order.
// Non-prepaid orders carry no proof or reference.
type paymentDetails struct {
	ProofURL  *string
	Reference *string
}

// validatePaymentInput enforces the policy against the client-declared
// payment fields. The transfer-method code is embedded as the first token of
// the payment reference.
func validatePaymentInput(ctx context.Context, methods repository.TransferMethodRepository, policy PaymentPolicy, declaredMethod, proofURL, reference string) (*paymentDetails, error) {
	if declaredMethod != "" && declaredMethod != string(policy.Method) {
		return nil, apperrors.ErrInvalidPaymentMethodForZone
	}

	if !policy.RequiresProof {
		return &paymentDetails{}, nil
	}

	if strings.TrimSpace(proofURL) == "" {
		return nil, apperrors.ErrPaymentProofRequired
	}

	tokens := strings.Fields(reference)
	if len(tokens) == 0 {
		return nil, apperrors.ErrTransferMethodRequired
	}

	if _, err := methods.FindActiveByCode(ctx, tokens[0]); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidTransferMethod
		}
		return nil, err
	}

	proof := strings.TrimSpace(proofURL)
	ref := strings.TrimSpace(reference)
	return &paymentDetails{ProofURL: &proof, Reference: &ref}, nil
}
