package scheduling

// The engine's error taxonomy. Storage-level outcomes (slot taken,
// missing row, duplicate feedback) stay sentinel errors in the store
// package; these three carry caller-fixable reasons.

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type AuthorizationError struct {
	msg string
}

func (e *AuthorizationError) Error() string {
	return e.msg
}

func authorizationError(msg string) error {
	return &AuthorizationError{msg: msg}
}

// PolicyError marks an action that is well-formed and authorized but
// blocked by a business rule: missing entitlement, terminal-state
// entity, unelapsed session date.
type PolicyError struct {
	msg string
}

func (e *PolicyError) Error() string {
	return e.msg
}

func policyError(msg string) error {
	return &PolicyError{msg: msg}
}
