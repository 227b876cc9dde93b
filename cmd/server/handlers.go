package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/adyen-gateway/internal/adyen"
	"github.com/yourorg/adyen-gateway/internal/reporting"
)

// operationRequest is the JSON body accepted by every /v1 operation. Each
// operation reads only the fields it needs.
type operationRequest struct {
	Amount           int64             `json:"amount"`
	Currency         string            `json:"currency"`
	Card             *adyen.CreditCard `json:"card"`
	EncryptedCard    string            `json:"encryptedCard"`
	Authorization    string            `json:"authorization"`
	ShopperReference string            `json:"shopperReference"`
	DetailReference  string            `json:"detailReference"`
	Options          adyen.Options     `json:"options"`
}

func (r *operationRequest) money() adyen.Money {
	return adyen.Money{Value: r.Amount, Currency: r.Currency}
}

func (r *operationRequest) instrument() adyen.Instrument {
	switch {
	case r.Card != nil:
		return *r.Card
	case r.EncryptedCard != "":
		return adyen.EncryptedCard(r.EncryptedCard)
	default:
		return nil
	}
}

type operation func(ctx context.Context, gw *adyen.Gateway, req *operationRequest) (adyen.Result, error)

var operations = []struct {
	route  string
	action adyen.Action
	run    operation
}{
	{"authorize", adyen.ActionAuthorize, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.Authorize(ctx, r.money(), r.instrument(), r.Options)
	}},
	{"authorize-recurring", adyen.ActionAuthorizeRecurring, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.AuthorizeRecurring(ctx, r.money(), r.instrument(), r.Options)
	}},
	{"purchase", adyen.ActionPurchase, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.Purchase(ctx, r.money(), r.instrument(), r.Options)
	}},
	{"capture", adyen.ActionCapture, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.Capture(ctx, r.money(), r.Authorization, r.Options)
	}},
	{"refund", adyen.ActionRefund, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.Refund(ctx, r.money(), r.Authorization, r.Options)
	}},
	{"void", adyen.ActionVoid, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.Void(ctx, r.Authorization, r.Options)
	}},
	{"cancel-or-refund", adyen.ActionCancelOrRefund, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.CancelOrRefund(ctx, r.Authorization, r.Options)
	}},
	{"verify", adyen.ActionVerify, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.Verify(ctx, r.instrument(), r.Options)
	}},
	{"submit-recurring", adyen.ActionSubmitRecurring, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.SubmitRecurring(ctx, r.money(), r.Options)
	}},
	{"list-recurring-details", adyen.ActionListRecurringDetails, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.ListRecurringDetails(ctx, r.ShopperReference, r.Options)
	}},
	{"disable-recurring", adyen.ActionDisableRecurring, func(ctx context.Context, gw *adyen.Gateway, r *operationRequest) (adyen.Result, error) {
		return gw.DisableRecurring(ctx, r.ShopperReference, r.DetailReference, r.Options)
	}},
}

type server struct {
	gw       *adyen.Gateway
	journal  *reporting.Journal
	reporter *reporting.Reporter
	logger   *zap.Logger
}

func (s *server) handle(action adyen.Action, run operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req operationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}

		res, err := run(c.Request.Context(), s.gw, &req)
		s.record(action, &req, res, err)
		if err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				s.logger.Error("operation failed", zap.String("action", action.String()), zap.Error(err))
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func (s *server) record(action adyen.Action, req *operationRequest, res adyen.Result, err error) {
	amount := req.Amount
	if action == adyen.ActionVerify {
		amount = 0
	}
	currency := req.Options.Currency
	if currency == "" {
		currency = req.Currency
	}
	if currency == "" {
		currency = adyen.Info().DefaultCurrency
	}
	account := req.Options.MerchantAccount
	if account == "" {
		account = s.gw.MerchantAccount()
	}

	entry := reporting.Entry{
		Timestamp:       time.Now().UTC(),
		Action:          action.String(),
		MerchantAccount: account,
		Amount:          amount,
		Currency:        currency,
	}
	if err != nil {
		entry.Error = err.Error()
	} else {
		entry.Success = res.Success()
		entry.Message = res.Message()
		entry.Authorization = res.Authorization()
	}
	s.journal.Record(entry)
}

// statusFor maps gateway errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, adyen.ErrMissingField),
		errors.Is(err, adyen.ErrInvalidRecurring),
		errors.Is(err, adyen.ErrContractViolation):
		return http.StatusBadRequest
	case errors.Is(err, adyen.ErrPolicyViolation):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}

func (s *server) report(c *gin.Context) {
	c.JSON(http.StatusOK, s.reporter.Generate(s.journal.Entries()))
}

func (s *server) journalEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": s.journal.Entries()})
}

func (s *server) gatewayInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"gateway":         adyen.Info(),
		"test":            s.gw.Test(),
		"merchantAccount": s.gw.MerchantAccount(),
	})
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger logs one line per HTTP request.
func requestLogger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
