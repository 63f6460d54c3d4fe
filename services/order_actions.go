package services

import (
	"strings"

	"storefront-service/models"
)

// Payment review actions; status actions are derived from the transition
// table as "status.<target>".
const (
	ActionPaymentVerify = "payment.verify"
	ActionPaymentReject = "payment.reject"
)

// Blocked reasons for the payment review sub-flow.
const (
	BlockReasonNotPrepaid      = "not-prepaid"
	BlockReasonProofMissing    = "proof-missing"
	BlockReasonAlreadyReviewed = "already-reviewed"
)

// ActionInput is the state the admin surface projects actions from.
type ActionInput struct {
	OrderStatus     models.OrderStatus   `json:"order_status"`
	PaymentMethod   models.PaymentMethod `json:"payment_method"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	HasPaymentProof bool                 `json:"has_payment_proof"`
}

type BlockedAction struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// ActionSet is a pure, side-effect-free projection used to render operator
// controls before any mutating call is made.
type ActionSet struct {
	AllowedActions    []string        `json:"allowed_actions"`
	RecommendedAction *string         `json:"recommended_action"`
	BlockedActions    []BlockedAction `json:"blocked_actions"`
}

// StatusActionName names the transition action for a target status.
func StatusActionName(target models.OrderStatus) string {
	return "status." + strings.ToLower(string(target))
}

// paymentReviewBlockReason returns why payment review is unavailable, or ""
// when verify/reject are allowed. Both actions are gated together.
func paymentReviewBlockReason(method models.PaymentMethod, hasProof bool, paymentStatus models.PaymentStatus) string {
	if method != models.PaymentMethodPrepaidTransfer {
		return BlockReasonNotPrepaid
	}
	if !hasProof {
		return BlockReasonProofMissing
	}
	if paymentStatus != models.PaymentStatusPendingReview {
		return BlockReasonAlreadyReviewed
	}
	return ""
}

// ProjectActions computes the allowed, recommended and blocked actions for an
// order. Payment actions come first: payment must be resolved before status
// is advanced, so the recommendation is the first allowed payment action if
// any exist, else the first allowed status action, else nil.
func ProjectActions(in ActionInput) ActionSet {
	allowed := []string{}
	blocked := []BlockedAction{}

	if reason := paymentReviewBlockReason(in.PaymentMethod, in.HasPaymentProof, in.PaymentStatus); reason == "" {
		allowed = append(allowed, ActionPaymentVerify, ActionPaymentReject)
	} else {
		blocked = append(blocked,
			BlockedAction{Action: ActionPaymentVerify, Reason: reason},
			BlockedAction{Action: ActionPaymentReject, Reason: reason},
		)
	}

	for _, target := range in.OrderStatus.AllowedTransitions() {
		allowed = append(allowed, StatusActionName(target))
	}

	var recommended *string
	if len(allowed) > 0 {
		recommended = &allowed[0]
	}

	return ActionSet{
		AllowedActions:    allowed,
		RecommendedAction: recommended,
		BlockedActions:    blocked,
	}
}
