package engine

import "errors"

var (
	// ErrInvalidAmount signals a non-positive USD amount reaching
	// fee or quote computation
	ErrInvalidAmount = errors.New("invalid transfer amount")

	// ErrUnknownDeliveryMode signals a delivery mode outside the
	// closed enumeration
	ErrUnknownDeliveryMode = errors.New("unknown delivery mode")

	// ErrUnknownRiskTolerance signals a risk tolerance outside the
	// closed enumeration
	ErrUnknownRiskTolerance = errors.New("unknown risk tolerance")

	// ErrUnknownSortCriterion signals an unsupported sort criterion
	ErrUnknownSortCriterion = errors.New("unknown sort criterion")
)
