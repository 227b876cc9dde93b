package adyen

import (
	"context"

	"go.uber.org/zap"
)

// verifyAmount is the minor-unit amount authorized by Verify.
const verifyAmount = 100

// Purchase authorizes money and captures it when the authorization succeeds.
// On success the Result is the capture's, with both steps in Responses. A
// failed authorization is returned unchanged, with no Responses, and capture
// is never attempted.
func (g *Gateway) Purchase(ctx context.Context, money Money, instrument Instrument, opts Options) (Result, error) {
	auth, err := g.execute(ctx, ActionPurchase, Request{Money: money, Instrument: instrument, Options: opts})
	if err != nil {
		return Result{}, err
	}
	if !auth.Success() {
		g.logger.Info("purchase stopped after failed authorization", zap.String("message", auth.Message()))
		return auth, nil
	}

	capture, err := g.Capture(ctx, money, auth.Authorization(), opts)
	if err != nil {
		return Result{}, err
	}
	return capture.withResponses([]Result{auth, capture}), nil
}

// Verify checks instrument with a small authorization and always voids it
// afterwards. Success, message and authorization come from the authorization
// step; the void outcome only appears in Responses.
func (g *Gateway) Verify(ctx context.Context, instrument Instrument, opts Options) (Result, error) {
	money := Money{Value: verifyAmount, Currency: opts.Currency}
	auth, err := g.execute(ctx, ActionVerify, Request{Money: money, Instrument: instrument, Options: opts})
	if err != nil {
		return Result{}, err
	}
	steps := []Result{auth}

	void, err := g.Void(ctx, auth.Authorization(), opts)
	if err != nil {
		g.logger.Warn("verify void failed", zap.String("psp_reference", auth.Authorization()), zap.Error(err))
	} else {
		steps = append(steps, void)
	}
	return auth.withResponses(steps), nil
}
