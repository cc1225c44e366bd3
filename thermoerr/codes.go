// Package thermoerr provides the coded error type shared by the property
// packages.
package thermoerr

// Code is a machine-readable error code.
type Code string

const (
	// CodeConfiguration: the caller supplied an invalid or incomplete set of
	// inputs. Never retried.
	CodeConfiguration Code = "CONFIGURATION"

	// CodeNumerical: root finding did not converge, produced no physically
	// valid root, or an identity hit a near-zero denominator.
	CodeNumerical Code = "NUMERICAL"

	// CodeDomain: physically impossible inputs, such as a negative absolute
	// temperature.
	CodeDomain Code = "DOMAIN"
)

// Sentinels for errors.Is.
var (
	ErrConfiguration = &Error{Code: CodeConfiguration}
	ErrNumerical     = &Error{Code: CodeNumerical}
	ErrDomain        = &Error{Code: CodeDomain}
)
