package adyen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{
	MerchantAccount: "Mercantor",
	Login:           "ws@Company.Mercantor",
	Password:        "s3cret",
}

func validCard() CreditCard {
	return CreditCard{
		Number:            "4111111111111111",
		Month:             8,
		Year:              2018,
		HolderName:        "Longbob Longsen",
		VerificationValue: "737",
	}
}

func newTestGateway(t *testing.T, opts ...Option) *Gateway {
	t.Helper()
	g, err := New(testCreds, opts...)
	require.NoError(t, err)
	return g
}

// encode renders the payload the way commit sends it.
func encode(t *testing.T, p *Payload) map[string]any {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
