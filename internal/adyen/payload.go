package adyen

// Amount is the wire form of Money.
type Amount struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

// RecurringSpec nests the contract under "recurring".
type RecurringSpec struct {
	Contract ContractType `json:"contract"`
}

// Payload is the JSON body sent to Adyen. It is built for one call and
// discarded after encoding.
type Payload struct {
	MerchantAccount    string  `json:"merchantAccount"`
	Reference          string  `json:"reference,omitempty"`
	OriginalReference  *string `json:"originalReference,omitempty"`
	Amount             *Amount `json:"amount,omitempty"`
	ModificationAmount *Amount `json:"modificationAmount,omitempty"`

	Card           *Card             `json:"card,omitempty"`
	AdditionalData map[string]string `json:"additionalData,omitempty"`

	CustomerData

	Recurring                *RecurringSpec `json:"recurring,omitempty"`
	RecurringDetailReference string         `json:"recurringDetailReference,omitempty"`
}
