package adyen

import "fmt"

// Request gathers every caller input an action may need. Each action reads
// only the fields relevant to it.
type Request struct {
	Money      Money
	Instrument Instrument
	// Authorization is the pspReference of the payment being modified.
	Authorization    string
	ShopperReference string
	// DetailReference selects the stored detail to disable; empty disables all.
	DetailReference string
	Options         Options
}

// Build assembles the payload for action. It performs no I/O and fails
// before anything is sent when a required input is absent.
func (g *Gateway) Build(action Action, req Request) (*Payload, error) {
	p := g.initPayload(req.Options)
	opts := req.Options

	switch action {
	case ActionAuthorize, ActionAuthorizeRecurring, ActionPurchase, ActionVerify:
		if err := requireReference(action, opts); err != nil {
			return nil, err
		}
		g.addInvoice(p, req.Money, opts)
		if err := addPayment(action, p, req.Instrument); err != nil {
			return nil, err
		}
		addCustomerData(p, opts)
		if err := addRecurring(action, p, opts); err != nil {
			return nil, err
		}
	case ActionSubmitRecurring:
		if err := requireReference(action, opts); err != nil {
			return nil, err
		}
		g.addInvoice(p, req.Money, opts)
		addCustomerData(p, opts)
		if err := addRecurringSubmission(action, p, opts); err != nil {
			return nil, err
		}
	case ActionCapture:
		addReferences(p, req.Authorization, opts)
		addCustomerData(p, opts)
		g.addModificationAmount(p, req.Money, opts)
	case ActionRefund:
		g.addModificationAmount(p, req.Money, opts)
		addReferences(p, req.Authorization, opts)
	case ActionVoid, ActionCancelOrRefund:
		addReferences(p, req.Authorization, opts)
	case ActionListRecurringDetails:
		if blank(req.ShopperReference) {
			return nil, &MissingFieldError{Action: action, Field: "shopperReference"}
		}
		if blank(string(opts.Recurring)) {
			return nil, &MissingFieldError{Action: action, Field: "recurring"}
		}
		p.ShopperReference = req.ShopperReference
		p.Recurring = &RecurringSpec{Contract: opts.Recurring}
	case ActionDisableRecurring:
		if blank(req.ShopperReference) {
			return nil, &MissingFieldError{Action: action, Field: "shopperReference"}
		}
		p.ShopperReference = req.ShopperReference
		p.RecurringDetailReference = req.DetailReference
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	return p, nil
}

func (g *Gateway) initPayload(opts Options) *Payload {
	account := opts.MerchantAccount
	if account == "" {
		account = g.creds.MerchantAccount
	}
	return &Payload{MerchantAccount: account}
}

func requireReference(action Action, opts Options) error {
	if blank(opts.Reference) {
		return &MissingFieldError{Action: action, Field: "reference"}
	}
	return nil
}

func (g *Gateway) currency(money Money, opts Options) string {
	switch {
	case opts.Currency != "":
		return opts.Currency
	case money.Currency != "":
		return money.Currency
	default:
		return g.defaultCurrency
	}
}

func (g *Gateway) addInvoice(p *Payload, money Money, opts Options) {
	p.Reference = opts.Reference
	p.Amount = &Amount{Value: money.Value, Currency: g.currency(money, opts)}
}

func (g *Gateway) addModificationAmount(p *Payload, money Money, opts Options) {
	p.ModificationAmount = &Amount{Value: money.Value, Currency: g.currency(money, opts)}
}

func addReferences(p *Payload, authorization string, opts Options) {
	ref := authorization
	p.OriginalReference = &ref
	p.Reference = opts.Reference
}

func addPayment(action Action, p *Payload, instrument Instrument) error {
	switch in := instrument.(type) {
	case CreditCard:
		card := newCard(in)
		if field := card.missing(); field != "" {
			return &MissingFieldError{Action: action, Field: field}
		}
		p.Card = card
	case *CreditCard:
		if in == nil {
			return &MissingFieldError{Action: action, Field: "payment"}
		}
		return addPayment(action, p, *in)
	case EncryptedCard:
		if p.AdditionalData == nil {
			p.AdditionalData = make(map[string]string, 1)
		}
		p.AdditionalData[encryptedCardKey] = string(in)
	case nil:
		return &MissingFieldError{Action: action, Field: "payment"}
	default:
		return fmt.Errorf("adyen: %s: unsupported instrument %T", action, instrument)
	}
	return nil
}

func addCustomerData(p *Payload, opts Options) {
	p.CustomerData = opts.CustomerData
}

func addRecurring(action Action, p *Payload, opts Options) error {
	if opts.Recurring == "" {
		return nil
	}
	if !opts.Recurring.valid() {
		return &InvalidRecurringError{Value: opts.Recurring}
	}
	if blank(opts.ShopperReference) {
		return &MissingFieldError{Action: action, Field: "shopperReference"}
	}
	if blank(opts.ShopperEmail) {
		return &MissingFieldError{Action: action, Field: "shopperEmail"}
	}
	p.Recurring = &RecurringSpec{Contract: opts.Recurring}
	return nil
}

func addRecurringSubmission(action Action, p *Payload, opts Options) error {
	if opts.Recurring == "" {
		return nil
	}
	if !opts.Recurring.valid() {
		return &InvalidRecurringError{Value: opts.Recurring}
	}
	if blank(opts.ShopperReference) {
		return &MissingFieldError{Action: action, Field: "shopperReference"}
	}
	if blank(opts.ShopperInteraction) {
		return &MissingFieldError{Action: action, Field: "shopperInteraction"}
	}
	p.Recurring = &RecurringSpec{Contract: opts.Recurring}
	p.SelectedRecurringDetailReference = opts.SelectedRecurringDetailReference
	if blank(p.SelectedRecurringDetailReference) {
		p.SelectedRecurringDetailReference = LatestDetail
	}
	return nil
}
