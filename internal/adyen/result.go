package adyen

import (
	"maps"
	"slices"
)

// Result is the uniform outcome of an Adyen call. It is not modified after
// construction; accessors hand out copies of its collections.
type Result struct {
	success       bool
	message       string
	params        map[string]any
	authorization string
	test          bool
	responses     []Result
}

// NewResult builds a Result. It is exported for adapters and tests that need
// to fabricate outcomes.
func NewResult(success bool, message string, params map[string]any, authorization string, test bool) Result {
	return Result{
		success:       success,
		message:       message,
		params:        maps.Clone(params),
		authorization: authorization,
		test:          test,
	}
}

func (r Result) Success() bool { return r.success }

func (r Result) Message() string { return r.message }

// Authorization is the pspReference follow-up modifications refer to. It is
// empty when the response carried none.
func (r Result) Authorization() string { return r.authorization }

// Test reports whether the call went to the test environment.
func (r Result) Test() bool { return r.test }

// Params returns the parsed response body.
func (r Result) Params() map[string]any { return maps.Clone(r.params) }

// Responses returns the step results of a composite operation, in order.
// It is empty for single calls.
func (r Result) Responses() []Result { return slices.Clone(r.responses) }

func (r Result) withResponses(responses []Result) Result {
	r.responses = slices.Clone(responses)
	return r
}

type resultJSON struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message,omitempty"`
	Authorization string         `json:"authorization,omitempty"`
	Test          bool           `json:"test"`
	Params        map[string]any `json:"params,omitempty"`
	Responses     []Result       `json:"responses,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Success:       r.success,
		Message:       r.message,
		Authorization: r.authorization,
		Test:          r.test,
		Params:        r.params,
		Responses:     r.responses,
	})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var v resultJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Result{
		success:       v.Success,
		message:       v.Message,
		params:        v.Params,
		authorization: v.Authorization,
		test:          v.Test,
		responses:     v.Responses,
	}
	return nil
}
