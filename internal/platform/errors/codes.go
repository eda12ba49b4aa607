// Package errors provides structured domain errors with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Schedule errors
	CodeInvalidDay       Code = "INVALID_DAY"
	CodeInvalidTime      Code = "INVALID_TIME"
	CodeInvalidTimeRange Code = "INVALID_TIME_RANGE"

	// Bypass errors
	CodeBypassNameEmpty Code = "BYPASS_NAME_EMPTY"
	CodeBypassExists    Code = "BYPASS_EXISTS"
	CodeBypassMissing   Code = "BYPASS_MISSING"

	// Command errors
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeUnknownCommand   Code = "UNKNOWN_COMMAND"
	CodeUsage            Code = "USAGE"

	// Storage errors
	CodePersistenceFailed Code = "PERSISTENCE_FAILED"
	CodeAuditDisabled     Code = "AUDIT_DISABLED"
)

// IsUserError reports whether the code describes an operator-facing
// condition rather than an internal failure.
func (c Code) IsUserError() bool {
	switch c {
	case CodeInvalidDay,
		CodeInvalidTime,
		CodeInvalidTimeRange,
		CodeBypassNameEmpty,
		CodeBypassExists,
		CodeBypassMissing,
		CodePermissionDenied,
		CodeUnknownCommand,
		CodeUsage,
		CodeAuditDisabled:
		return true
	default:
		return false
	}
}
