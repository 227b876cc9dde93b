package adyen

import (
	"strconv"
	"strings"
)

// Instrument is the payment method an authorization is made against.
// It is implemented only by CreditCard and EncryptedCard.
type Instrument interface {
	isInstrument()
}

// CreditCard carries raw card details.
type CreditCard struct {
	Number            string `json:"number"`
	Month             int    `json:"month"`
	Year              int    `json:"year"`
	HolderName        string `json:"holderName"`
	VerificationValue string `json:"verificationValue"`
}

func (CreditCard) isInstrument() {}

// EncryptedCard is a client-side encrypted card blob. Its content is opaque
// and is forwarded unchanged.
type EncryptedCard string

func (EncryptedCard) isInstrument() {}

const encryptedCardKey = "card.encrypted.json"

// Card is the wire form of a CreditCard.
type Card struct {
	ExpiryMonth string `json:"expiryMonth,omitempty"`
	ExpiryYear  string `json:"expiryYear,omitempty"`
	HolderName  string `json:"holderName,omitempty"`
	Number      string `json:"number,omitempty"`
	CVC         string `json:"cvc,omitempty"`
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// itoaPositive renders n, leaving zero and negative values blank.
func itoaPositive(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func newCard(c CreditCard) *Card {
	card := &Card{
		ExpiryMonth: itoaPositive(c.Month),
		ExpiryYear:  itoaPositive(c.Year),
		HolderName:  c.HolderName,
		Number:      c.Number,
		CVC:         c.VerificationValue,
	}
	if blank(card.HolderName) {
		card.HolderName = ""
	}
	if blank(card.Number) {
		card.Number = ""
	}
	if blank(card.CVC) {
		card.CVC = ""
	}
	return card
}

// missing returns the wire name of the first blank card field.
func (c *Card) missing() string {
	fields := []struct {
		name  string
		value string
	}{
		{"expiryMonth", c.ExpiryMonth},
		{"expiryYear", c.ExpiryYear},
		{"holderName", c.HolderName},
		{"number", c.Number},
		{"cvc", c.CVC},
	}
	for _, f := range fields {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}
