package adyen

import "time"

// ContractType is an Adyen recurring contract.
type ContractType string

const (
	ContractOneClick          ContractType = "ONECLICK"
	ContractRecurring         ContractType = "RECURRING"
	ContractOneClickRecurring ContractType = "ONECLICK,RECURRING"
	ContractRecurringOneClick ContractType = "RECURRING,ONECLICK"
)

var recurringContracts = []ContractType{
	ContractOneClick,
	ContractRecurring,
	ContractOneClickRecurring,
	ContractRecurringOneClick,
}

func (c ContractType) valid() bool {
	for _, v := range recurringContracts {
		if c == v {
			return true
		}
	}
	return false
}

// LatestDetail selects the most recently stored recurring detail.
const LatestDetail = "LATEST"

// CustomerData is the set of shopper and fraud fields copied verbatim into
// authorization and capture requests.
type CustomerData struct {
	ShopperEmail                     string     `json:"shopperEmail,omitempty"`
	ShopperReference                 string     `json:"shopperReference,omitempty"`
	ShopperIP                        string     `json:"shopperIP,omitempty"`
	FraudOffset                      *int       `json:"fraudOffset,omitempty"`
	SelectedBrand                    string     `json:"selectedBrand,omitempty"`
	DeliveryDate                     *time.Time `json:"deliveryDate,omitempty"`
	RiskDeliveryMethod               string     `json:"riskdata.deliveryMethod,omitempty"`
	MerchantOrderReference           string     `json:"merchantOrderReference,omitempty"`
	ShopperInteraction               string     `json:"shopperInteraction,omitempty"`
	SelectedRecurringDetailReference string     `json:"selectedRecurringDetailReference,omitempty"`
}

// Options are the per-call inputs besides money and instrument.
type Options struct {
	CustomerData

	// MerchantAccount overrides the configured account for this call.
	MerchantAccount string       `json:"merchantAccount,omitempty"`
	Reference       string       `json:"reference,omitempty"`
	Currency        string       `json:"currency,omitempty"`
	Recurring       ContractType `json:"recurring,omitempty"`
}

// Money is an amount in minor units.
type Money struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency,omitempty"`
}

// Cents is shorthand for a Money without currency; the gateway default applies.
func Cents(v int64) Money { return Money{Value: v} }
