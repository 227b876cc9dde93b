package adyen

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var authorisedResultCodes = map[string]bool{
	"Authorised":      true,
	"Received":        true,
	"RedirectShopper": true,
}

var disabledResponses = map[string]bool{
	"[detail-successfully-disabled]":       true,
	"[all-details-successfully-disabled]": true,
}

// parseBody decodes a response body. An empty body is an empty object.
func parseBody(action Action, raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &MalformedResponseError{Action: action, Body: raw, Err: err}
	}
	if body == nil {
		return nil, &MalformedResponseError{Action: action, Body: raw, Err: fmt.Errorf("expected a JSON object")}
	}
	return body, nil
}

// Interpret turns a parsed response body into a Result for action.
func Interpret(action Action, body map[string]any, test bool) Result {
	s, ok := action.spec()
	if !ok {
		return NewResult(false, "", body, "", test)
	}

	var (
		success       bool
		message       string
		authorization string
	)
	switch s.rule {
	case ruleAuthorization:
		code, _ := field(body, "resultCode")
		success = authorisedResultCodes[code]
		message = first(body, "refusalReason", "resultCode", "message")
		authorization, _ = field(body, "pspReference")
	case ruleModification:
		resp, _ := field(body, "response")
		success = resp == action.receivedMarker()
		message = first(body, "response", "message")
		authorization, _ = field(body, "pspReference")
	case ruleRecurringDetails:
		success = present(body["details"])
		message = first(body, "response", "message")
		authorization, _ = field(body, "shopperReference")
	case ruleDisable:
		resp, _ := field(body, "response")
		success = disabledResponses[resp]
		message = first(body, "response", "message")
	case ruleNone:
		// cancel_or_refund is sent but its outcome is not interpreted.
	}
	return NewResult(success, message, body, authorization, test)
}

// field returns body[key] when it holds a string.
func field(body map[string]any, key string) (string, bool) {
	v, ok := body[key].(string)
	return v, ok
}

// first returns the first key present as a string. Present but empty values
// still win over later keys.
func first(body map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := field(body, k); ok {
			return v
		}
	}
	return ""
}

func present(v any) bool {
	switch t := v.(type) {
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case string:
		return !blank(t)
	default:
		return false
	}
}
