package adyen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration     = errors.New("adyen: invalid configuration")
	ErrMissingField      = errors.New("adyen: missing required field")
	ErrInvalidRecurring  = errors.New("adyen: invalid recurring contract")
	ErrMalformedResponse = errors.New("adyen: malformed response")
	ErrUnknownAction     = errors.New("adyen: unknown action")
	ErrContractViolation = errors.New("adyen: request violates contract")
	ErrPolicyViolation   = errors.New("adyen: request rejected by policy")
)

// ConfigurationError reports credentials missing at construction.
type ConfigurationError struct {
	Fields []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("adyen: missing required configuration: %s", strings.Join(e.Fields, ", "))
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// MissingFieldError reports a required input absent when building a request.
type MissingFieldError struct {
	Action Action
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("adyen: %s: missing required parameter: %s", e.Action, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// InvalidRecurringError reports a recurring contract outside the allowed values.
type InvalidRecurringError struct {
	Value ContractType
}

func (e *InvalidRecurringError) Error() string {
	allowed := make([]string, len(recurringContracts))
	for i, c := range recurringContracts {
		allowed[i] = string(c)
	}
	return fmt.Sprintf("adyen: recurring must be one of %s, got %q", strings.Join(allowed, " | "), e.Value)
}

func (e *InvalidRecurringError) Is(target error) bool { return target == ErrInvalidRecurring }

// MalformedResponseError is returned when a non-empty body is not a JSON object.
type MalformedResponseError struct {
	Action Action
	Body   []byte
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("adyen: %s: malformed response body: %v", e.Action, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// ContractViolationError is returned when an outgoing body fails its schema.
type ContractViolationError struct {
	Action     Action
	Violations []string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("adyen: %s: request violates contract: %s", e.Action, strings.Join(e.Violations, "; "))
}

func (e *ContractViolationError) Is(target error) bool { return target == ErrContractViolation }

// PolicyViolationError is returned when a guard rule rejects a request.
type PolicyViolationError struct {
	Action Action
	Rule   string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("adyen: %s: rejected by policy rule %q", e.Action, e.Rule)
}

func (e *PolicyViolationError) Is(target error) bool { return target == ErrPolicyViolation }
