package adyen

import (
	"fmt"
	"strings"
)

const (
	apiVersion       = "v12"
	servicePlacehold = "{service}"

	TestURLTemplate = "https://pal-test.adyen.com/pal/servlet/{service}/" + apiVersion
	LiveURLTemplate = "https://pal-live.adyen.com/pal/servlet/{service}/" + apiVersion
)

// Endpoints turns an action into the full Adyen URL.
type Endpoints struct {
	template string
}

// NewEndpoints returns a router for template, which must contain "{service}".
func NewEndpoints(template string) (Endpoints, error) {
	if !strings.Contains(template, servicePlacehold) {
		return Endpoints{}, fmt.Errorf("%w: endpoint template %q has no %s placeholder", ErrConfiguration, template, servicePlacehold)
	}
	return Endpoints{template: strings.TrimRight(template, "/")}, nil
}

// URLFor resolves the URL an action is posted to.
func (e Endpoints) URLFor(a Action) (string, error) {
	s, ok := a.spec()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
	base := strings.Replace(e.template, servicePlacehold, string(s.service), 1)
	return base + "/" + s.endpoint, nil
}
