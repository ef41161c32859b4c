// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Character errors
	CodeCharacterEmptyName Code = "CHARACTER_EMPTY_NAME"
	CodeCharacterEmptyID   Code = "CHARACTER_EMPTY_ID"

	// Roll evaluation errors
	CodeRollDieOutOfRange      Code = "ROLL_DIE_OUT_OF_RANGE"
	CodeRollInvalidBurn        Code = "ROLL_INVALID_BURN"
	CodeRollBurnOneForbidden   Code = "ROLL_BURN_ONE_FORBIDDEN"
	CodeRollInvalidMode        Code = "ROLL_INVALID_MODE"
	CodeRollKarmaUnavailable   Code = "ROLL_KARMA_UNAVAILABLE"
	CodeRollConfirmUnavailable Code = "ROLL_CONFIRM_UNAVAILABLE"

	// Resource errors
	CodeResourceNegativeValue Code = "RESOURCE_NEGATIVE_VALUE"
	CodeResourceEmpty         Code = "RESOURCE_EMPTY"
	CodeResourceEmptyTitle    Code = "RESOURCE_EMPTY_TITLE"

	// Replenish errors
	CodeReplenishUnavailable  Code = "REPLENISH_UNAVAILABLE"
	CodeReplenishUnaffordable Code = "REPLENISH_UNAFFORDABLE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Dice/mechanics errors
	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeCharacterEmptyName,
		CodeCharacterEmptyID,
		CodeRollDieOutOfRange,
		CodeRollInvalidBurn,
		CodeRollInvalidMode,
		CodeResourceNegativeValue,
		CodeResourceEmptyTitle,
		CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeSeedOutOfRange:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeRollBurnOneForbidden,
		CodeRollKarmaUnavailable,
		CodeRollConfirmUnavailable,
		CodeResourceEmpty,
		CodeReplenishUnavailable,
		CodeReplenishUnaffordable:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
