// Package adyen translates payment operations into Adyen v12 API calls and
// interprets Adyen's responses into uniform Results.
package adyen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/yourorg/adyen-gateway/internal/metrics"
	"github.com/yourorg/adyen-gateway/internal/monitor"
	"github.com/yourorg/adyen-gateway/internal/policy"
	"github.com/yourorg/adyen-gateway/internal/transport"
)

const (
	tracerName      = "adyen"
	defaultCurrency = "USD"
)

// Credentials authenticate against Adyen. All fields are required.
type Credentials struct {
	MerchantAccount string `json:"merchantAccount" validate:"required"`
	Login           string `json:"login" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

var credentialsValidator = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}()

func (c Credentials) validate() error {
	err := credentialsValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ConfigurationError{Fields: fields}
}

// Transport sends one request body to a URL. *transport.Client satisfies it.
// Non-2xx replies must be returned as *transport.HTTPError carrying the body.
type Transport interface {
	Post(ctx context.Context, req transport.Request) ([]byte, error)
}

// Gateway issues Adyen calls. It holds only immutable configuration and
// concurrency-safe collaborators, so it may be shared between goroutines.
type Gateway struct {
	creds           Credentials
	test            bool
	template        string
	endpoints       Endpoints
	transport       Transport
	logger          *zap.Logger
	metrics         *metrics.Metrics
	monitor         *monitor.ContractMonitor
	skipMonitor     bool
	policy          *policy.Enforcer
	defaultCurrency string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) Option {
	return func(g *Gateway) { g.transport = t }
}

// WithLogger sets the logger. Card data and credentials are never logged.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithLive targets the live environment instead of test.
func WithLive() Option {
	return func(g *Gateway) { g.test = false }
}

// WithEndpointTemplate overrides the base URL template. It must contain
// "{service}".
func WithEndpointTemplate(template string) Option {
	return func(g *Gateway) { g.template = template }
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// WithPolicy checks every outgoing request against e before sending.
func WithPolicy(e *policy.Enforcer) Option {
	return func(g *Gateway) { g.policy = e }
}

// WithContractMonitor validates outgoing bodies with m instead of the
// built-in schemas.
func WithContractMonitor(m *monitor.ContractMonitor) Option {
	return func(g *Gateway) { g.monitor = m }
}

// WithoutContractMonitor disables outgoing body validation.
func WithoutContractMonitor() Option {
	return func(g *Gateway) { g.skipMonitor = true }
}

// New creates a Gateway for the test environment unless WithLive is given.
// Missing credentials yield a *ConfigurationError.
func New(creds Credentials, opts ...Option) (*Gateway, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	g := &Gateway{
		creds:           creds,
		test:            true,
		logger:          zap.NewNop(),
		defaultCurrency: defaultCurrency,
	}
	for _, opt := range opts {
		opt(g)
	}

	template := g.template
	if template == "" {
		template = TestURLTemplate
		if !g.test {
			template = LiveURLTemplate
		}
	}
	endpoints, err := NewEndpoints(template)
	if err != nil {
		return nil, err
	}
	g.endpoints = endpoints

	if g.transport == nil {
		g.transport = transport.New(transport.WithLogger(g.logger))
	}
	if g.skipMonitor {
		g.monitor = nil
	} else if g.monitor == nil {
		if g.monitor, err = monitor.New(); err != nil {
			return nil, fmt.Errorf("adyen: contract monitor: %w", err)
		}
	}
	return g, nil
}

// Test reports whether the gateway targets the test environment.
func (g *Gateway) Test() bool { return g.test }

// MerchantAccount is the account used when a call does not override it.
func (g *Gateway) MerchantAccount() string { return g.creds.MerchantAccount }

// Authorize reserves money on instrument.
func (g *Gateway) Authorize(ctx context.Context, money Money, instrument Instrument, opts Options) (Result, error) {
	return g.execute(ctx, ActionAuthorize, Request{Money: money, Instrument: instrument, Options: opts})
}

// AuthorizeRecurring authorizes money on instrument and stores it for later
// recurring use. opts.Recurring selects the contract.
func (g *Gateway) AuthorizeRecurring(ctx context.Context, money Money, instrument Instrument, opts Options) (Result, error) {
	return g.execute(ctx, ActionAuthorizeRecurring, Request{Money: money, Instrument: instrument, Options: opts})
}

// SubmitRecurring charges a stored detail without card data. The detail
// defaults to the shopper's latest one.
func (g *Gateway) SubmitRecurring(ctx context.Context, money Money, opts Options) (Result, error) {
	return g.execute(ctx, ActionSubmitRecurring, Request{Money: money, Options: opts})
}

// Capture settles a previous authorization.
func (g *Gateway) Capture(ctx context.Context, money Money, authorization string, opts Options) (Result, error) {
	return g.execute(ctx, ActionCapture, Request{Money: money, Authorization: authorization, Options: opts})
}

// Refund returns money from a captured payment.
func (g *Gateway) Refund(ctx context.Context, money Money, authorization string, opts Options) (Result, error) {
	return g.execute(ctx, ActionRefund, Request{Money: money, Authorization: authorization, Options: opts})
}

// Void cancels an uncaptured authorization.
func (g *Gateway) Void(ctx context.Context, authorization string, opts Options) (Result, error) {
	return g.execute(ctx, ActionVoid, Request{Authorization: authorization, Options: opts})
}

// CancelOrRefund cancels the payment if it is not captured yet and refunds it
// otherwise.
func (g *Gateway) CancelOrRefund(ctx context.Context, authorization string, opts Options) (Result, error) {
	return g.execute(ctx, ActionCancelOrRefund, Request{Authorization: authorization, Options: opts})
}

// ListRecurringDetails lists the stored details of a shopper for the contract
// in opts.Recurring. The Result's Authorization is the shopper reference, not
// a payment reference, and must not be passed to a modification.
func (g *Gateway) ListRecurringDetails(ctx context.Context, shopperReference string, opts Options) (Result, error) {
	return g.execute(ctx, ActionListRecurringDetails, Request{ShopperReference: shopperReference, Options: opts})
}

// DisableRecurring disables one stored detail, or every detail of the shopper
// when detailReference is empty.
func (g *Gateway) DisableRecurring(ctx context.Context, shopperReference, detailReference string, opts Options) (Result, error) {
	return g.execute(ctx, ActionDisableRecurring, Request{
		ShopperReference: shopperReference,
		DetailReference:  detailReference,
		Options:          opts,
	})
}

func (g *Gateway) execute(ctx context.Context, action Action, req Request) (Result, error) {
	payload, err := g.Build(action, req)
	if err != nil {
		return Result{}, err
	}
	return g.commit(ctx, action, payload)
}

// commit sends payload for action and interprets the reply. Non-2xx replies
// are interpreted like any other body.
func (g *Gateway) commit(ctx context.Context, action Action, payload *Payload) (res Result, err error) {
	start := time.Now()
	callID := uuid.NewString()
	log := g.logger.With(zap.String("action", action.String()), zap.String("call_id", callID))

	ctx, span := otel.Tracer(tracerName).Start(ctx, "adyen."+action.String(), trace.WithAttributes(
		attribute.String("adyen.action", action.String()),
		attribute.String("adyen.call_id", callID),
		attribute.String("adyen.merchant_account", payload.MerchantAccount),
		attribute.Bool("adyen.test", g.test),
	))
	defer func() {
		g.observe(action, res, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Bool("adyen.success", res.Success()))
		}
		span.End()
	}()

	url, err := g.endpoints.URLFor(action)
	if err != nil {
		return Result{}, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("adyen: %s: encode payload: %w", action, err)
	}
	if err := g.checkContract(action, body); err != nil {
		log.Warn("outgoing request violates contract", zap.Error(err))
		return Result{}, err
	}
	if err := g.checkPolicy(action, payload); err != nil {
		log.Warn("outgoing request rejected by policy", zap.Error(err))
		return Result{}, err
	}

	raw, err := g.transport.Post(ctx, transport.Request{URL: url, Body: body, Header: g.headers()})
	if err != nil {
		var httpErr *transport.HTTPError
		if !errors.As(err, &httpErr) {
			log.Error("adyen call failed", zap.String("url", url), zap.Error(err))
			return Result{}, fmt.Errorf("adyen: %s: %w", action, err)
		}
		log.Info("adyen returned an error status", zap.String("url", url), zap.Int("status", httpErr.StatusCode))
		span.SetAttributes(attribute.Int("http.status_code", httpErr.StatusCode))
		raw = httpErr.Body
	}

	parsed, err := parseBody(action, raw)
	if err != nil {
		log.Error("malformed adyen response", zap.String("url", url), zap.Error(err))
		return Result{}, err
	}
	res = Interpret(action, parsed, g.test)
	log.Info("adyen call completed",
		zap.String("url", url),
		zap.Bool("success", res.Success()),
		zap.String("psp_reference", res.Authorization()),
		zap.String("message", res.Message()),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (g *Gateway) headers() http.Header {
	h := make(http.Header, 2)
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Basic "+basicAuth(g.creds.Login, g.creds.Password))
	return h
}

func basicAuth(login, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(login + ":" + password))
}

func (g *Gateway) checkContract(action Action, body []byte) error {
	if g.monitor == nil {
		return nil
	}
	s, ok := action.spec()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	valid, violations, err := g.monitor.Validate(s.schema, body)
	if err != nil {
		return fmt.Errorf("adyen: %s: contract check: %w", action, err)
	}
	if !valid {
		return &ContractViolationError{Action: action, Violations: violations}
	}
	return nil
}

func (g *Gateway) checkPolicy(action Action, p *Payload) error {
	if g.policy == nil {
		return nil
	}
	params := policy.Params{Action: action.String(), MerchantAccount: p.MerchantAccount}
	switch {
	case p.Amount != nil:
		params.Amount, params.Currency = p.Amount.Value, p.Amount.Currency
	case p.ModificationAmount != nil:
		params.Amount, params.Currency = p.ModificationAmount.Value, p.ModificationAmount.Currency
	}
	decision, err := g.policy.Evaluate(params)
	if err != nil {
		return fmt.Errorf("adyen: %s: policy: %w", action, err)
	}
	if !decision.Allowed {
		return &PolicyViolationError{Action: action, Rule: decision.RuleID}
	}
	return nil
}

func (g *Gateway) observe(action Action, res Result, err error, d time.Duration) {
	outcome := metrics.OutcomeDeclined
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case res.Success():
		outcome = metrics.OutcomeSuccess
	}
	g.metrics.Observe(action.String(), outcome, d)
}
