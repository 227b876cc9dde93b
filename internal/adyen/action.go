package adyen

import (
	"fmt"

	"github.com/yourorg/adyen-gateway/internal/monitor"
)

// Action is one of the fixed operations the gateway can send to Adyen.
type Action int

const (
	ActionAuthorize Action = iota + 1
	ActionAuthorizeRecurring
	ActionPurchase
	ActionCapture
	ActionRefund
	ActionVoid
	ActionVerify
	ActionSubmitRecurring
	ActionListRecurringDetails
	ActionCancelOrRefund
	ActionDisableRecurring
)

// Service is the Adyen service family an endpoint belongs to.
type Service string

const (
	ServicePayment   Service = "Payment"
	ServiceRecurring Service = "Recurring"
)

// rule selects how a response body is interpreted.
type rule int

const (
	ruleAuthorization rule = iota + 1
	ruleModification
	ruleRecurringDetails
	ruleDisable
	// ruleNone never reports success, a message or a token.
	ruleNone
)

type actionSpec struct {
	name     string
	endpoint string
	service  Service
	rule     rule
	schema   string
}

var actionSpecs = map[Action]actionSpec{
	ActionAuthorize:            {"authorize", "authorise", ServicePayment, ruleAuthorization, monitor.SchemaPayment},
	ActionAuthorizeRecurring:   {"authorize_recurring", "authorise", ServicePayment, ruleAuthorization, monitor.SchemaPayment},
	ActionPurchase:             {"purchase", "authorise", ServicePayment, ruleAuthorization, monitor.SchemaPayment},
	ActionVerify:               {"verify", "authorise", ServicePayment, ruleAuthorization, monitor.SchemaPayment},
	ActionSubmitRecurring:      {"submit_recurring", "authorise", ServicePayment, ruleAuthorization, monitor.SchemaPayment},
	ActionCapture:              {"capture", "capture", ServicePayment, ruleModification, monitor.SchemaModification},
	ActionRefund:               {"refund", "refund", ServicePayment, ruleModification, monitor.SchemaModification},
	ActionVoid:                 {"void", "cancel", ServicePayment, ruleModification, monitor.SchemaModification},
	ActionCancelOrRefund:       {"cancel_or_refund", "cancelOrRefund", ServicePayment, ruleNone, monitor.SchemaModification},
	ActionListRecurringDetails: {"list_recurring_details", "listRecurringDetails", ServiceRecurring, ruleRecurringDetails, monitor.SchemaRecurring},
	ActionDisableRecurring:     {"disable_recurring", "disable", ServiceRecurring, ruleDisable, monitor.SchemaRecurring},
}

// Actions lists every known action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, len(actionSpecs))
	for a := ActionAuthorize; a <= ActionDisableRecurring; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction resolves a wire name such as "capture" or "list_recurring_details".
func ParseAction(name string) (Action, error) {
	for a, s := range actionSpecs {
		if s.name == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

func (a Action) spec() (actionSpec, bool) {
	s, ok := actionSpecs[a]
	return s, ok
}

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool {
	_, ok := actionSpecs[a]
	return ok
}

func (a Action) String() string {
	if s, ok := a.spec(); ok {
		return s.name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Endpoint is the path segment appended to the service URL.
func (a Action) Endpoint() string {
	s, _ := a.spec()
	return s.endpoint
}

// Service is the family the action is routed to.
func (a Action) Service() Service {
	s, _ := a.spec()
	return s.service
}

// IsModification reports whether the action modifies an earlier payment and
// therefore references it through originalReference.
func (a Action) IsModification() bool {
	s, _ := a.spec()
	return s.schema == monitor.SchemaModification
}

// receivedMarker is the literal Adyen echoes for an accepted modification.
// The marker follows the endpoint, which is why void answers "[cancel-received]".
func (a Action) receivedMarker() string {
	return "[" + a.Endpoint() + "-received]"
}
