package adyen

import "slices"

// Metadata describes the gateway to callers choosing between processors.
type Metadata struct {
	DisplayName        string   `json:"displayName"`
	HomepageURL        string   `json:"homepageUrl"`
	SupportedCountries []string `json:"supportedCountries"`
	SupportedCards     []string `json:"supportedCards"`
	DefaultCurrency    string   `json:"defaultCurrency"`
	MoneyFormat        string   `json:"moneyFormat"`
	TestURL            string   `json:"testUrl"`
	LiveURL            string   `json:"liveUrl"`
}

var metadata = Metadata{
	DisplayName: "Adyen v12",
	HomepageURL: "https://www.adyen.com/",
	SupportedCountries: []string{
		"AR", "AT", "BE", "BR", "CA", "CH", "CL", "CN", "CO", "DE", "DK", "EE", "ES", "FI", "FR",
		"GB", "HK", "ID", "IE", "IL", "IN", "IT", "JP", "KR", "LU", "MX", "MY", "NL", "NO", "PA",
		"PE", "PH", "PL", "PT", "RU", "SE", "SG", "TH", "TR", "TW", "US", "VN", "ZA",
	},
	SupportedCards:  []string{"visa", "master", "american_express", "discover", "diners_club", "jcb", "dankort", "maestro"},
	DefaultCurrency: defaultCurrency,
	MoneyFormat:     "cents",
	TestURL:         TestURLTemplate,
	LiveURL:         LiveURLTemplate,
}

// Info returns the gateway metadata. The slices are copies.
func Info() Metadata {
	m := metadata
	m.SupportedCountries = slices.Clone(metadata.SupportedCountries)
	m.SupportedCards = slices.Clone(metadata.SupportedCards)
	return m
}

// Supports reports whether country (ISO 3166-1 alpha-2) is supported.
func (m Metadata) Supports(country string) bool {
	return slices.Contains(m.SupportedCountries, country)
}
