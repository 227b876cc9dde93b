package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cm, err := New()
	require.NoError(t, err)
	require.NotNil(t, cm)
	for _, name := range []string{SchemaPayment, SchemaModification, SchemaRecurring} {
		assert.Contains(t, cm.schemas, name)
	}
}

func TestContractMonitor_Validate(t *testing.T) {
	cm, err := New()
	require.NoError(t, err)

	tests := []struct {
		name      string
		schema    string
		body      string
		wantValid bool
		wantErr   string
	}{
		{
			name:      "payment ok",
			schema:    SchemaPayment,
			body:      `{"merchantAccount":"Mercantor","reference":"1","amount":{"value":100,"currency":"USD"}}`,
			wantValid: true,
		},
		{
			name:    "payment without amount",
			schema:  SchemaPayment,
			body:    `{"merchantAccount":"Mercantor","reference":"1"}`,
			wantErr: "amount",
		},
		{
			name:    "payment with partial card",
			schema:  SchemaPayment,
			body:    `{"merchantAccount":"M","reference":"1","amount":{"value":1,"currency":"EUR"},"card":{"number":"4111"}}`,
			wantErr: "cvc",
		},
		{
			name:      "modification with empty original reference",
			schema:    SchemaModification,
			body:      `{"merchantAccount":"Mercantor","originalReference":""}`,
			wantValid: true,
		},
		{
			name:    "modification without original reference",
			schema:  SchemaModification,
			body:    `{"merchantAccount":"Mercantor","modificationAmount":{"value":100,"currency":"USD"}}`,
			wantErr: "originalReference",
		},
		{
			name:    "recurring without merchant account",
			schema:  SchemaRecurring,
			body:    `{"shopperReference":"Simon Hopper"}`,
			wantErr: "merchantAccount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, violations, err := cm.Validate(tt.schema, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, valid)
			if tt.wantErr != "" {
				assert.Contains(t, FormatErrors(violations), tt.wantErr)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestContractMonitor_UnknownSchema(t *testing.T) {
	cm, err := New()
	require.NoError(t, err)

	_, _, err = cm.Validate("nope", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown schema "nope"`)
}

func TestContractMonitor_Register(t *testing.T) {
	cm, err := New()
	require.NoError(t, err)

	err = cm.Register("broken", []byte("{invalid_json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading or compiling schema broken")

	require.NoError(t, cm.Register("named", []byte(`{"type":"object","required":["name"]}`)))
	valid, violations, err := cm.Validate("named", []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Len(t, violations, 1)
}

func TestFormatErrors(t *testing.T) {
	assert.Equal(t, "", FormatErrors(nil))
	assert.Equal(t, "Validation errors: a; b", FormatErrors([]string{"a", "b"}))
}
