package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/bridge"
)

// Checkout lifecycle stages. Processing is entered only by explicit user
// confirmation from review; success is terminal. Any failure during
// processing returns to review so the user may retry.
type Stage string

const (
	StageReview     Stage = "review"
	StageProcessing Stage = "processing"
	StageSuccess    Stage = "success"
)

// OrdersAPI is the slice of the backend client the checkout flow needs.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, data api.CreateOrderData) (*api.CreateOrderResponse, error)
	Deposit(ctx context.Context, orderID, buyerAddress string) (*api.DepositResponse, error)
}

// Checkout is the ephemeral purchase session for one listing. It exists
// while the checkout page is open and is dropped on navigation away; at
// most one is live per client.
type Checkout struct {
	Listing api.Listing
	API     OrdersAPI
	Bridge  bridge.Bridge
	Session *Session
	Log     zerolog.Logger

	// TokenAddress is the payment token passed through to the escrow.
	TokenAddress string

	stage   Stage
	lastErr string
	orderID string
}

// DefaultNavigateDelay is the success-screen pause before the client
// moves on to the order page.
const DefaultNavigateDelay = 2 * time.Second

// ErrDepositFailed is the logical-failure case: the deposit endpoint
// answered well-formed but with success=false.
var ErrDepositFailed = errors.New("deposit failed")

// Stage returns the current lifecycle stage.
func (c *Checkout) Stage() Stage {
	if c.stage == "" {
		return StageReview
	}
	return c.stage
}

// Err returns the last failure message, empty outside the error path.
func (c *Checkout) Err() string { return c.lastErr }

// OrderID returns the created order's id once the flow has succeeded.
func (c *Checkout) OrderID() string { return c.orderID }

// Begin applies the confirmation guard: it requires a signed-in buyer and
// the review stage, then moves to processing with an impact haptic. The
// steps after Begin are Execute (I/O only) and Finish (state), split so a
// UI event loop can run the I/O off its update path. Repeated triggers
// while processing or success find the stage guard, so a double trigger
// can never issue a second order.
func (c *Checkout) Begin() error {
	if c.Stage() != StageReview {
		return errStageGuard
	}
	if _, ok := c.Session.User(); !ok {
		c.lastErr = "Please authenticate with Telegram first"
		return api.ErrAuthRequired
	}
	c.stage = StageProcessing
	c.lastErr = ""
	c.Bridge.HapticImpact(bridge.ImpactMedium)
	c.Log.Info().Int("listing_id", c.Listing.ID).Msg("purchase started")
	return nil
}

// errStageGuard marks the silent no-op on double trigger.
var errStageGuard = errors.New("purchase already in progress")

// Execute issues the create-order and deposit calls. It mutates nothing:
// the caller applies the outcome via Finish.
func (c *Checkout) Execute(ctx context.Context) (orderID string, err error) {
	buyerID, _ := c.Session.UserID()
	order, err := c.API.CreateOrder(ctx, api.CreateOrderData{
		ListingID:    c.Listing.ID,
		BuyerID:      buyerID,
		Amount:       c.Listing.Price,
		TokenAddress: c.TokenAddress,
	})
	if err != nil {
		return "", err
	}

	addr, _ := c.Session.DepositAddress()
	dep, err := c.API.Deposit(ctx, order.OrderID, addr)
	if err != nil {
		return "", err
	}
	if !dep.Success {
		return "", ErrDepositFailed
	}
	return order.OrderID, nil
}

// Finish maps the outcome of Execute back into the session: success moves
// to the terminal stage, failure reverts to review with a message so the
// user may retry. Reports whether the purchase succeeded.
func (c *Checkout) Finish(orderID string, err error) bool {
	if err != nil {
		c.stage = StageReview
		c.lastErr = err.Error()
		c.Bridge.HapticNotification(bridge.NotifyError)
		c.Log.Error().Int("listing_id", c.Listing.ID).Err(err).Msg("purchase failed")
		return false
	}
	c.stage = StageSuccess
	c.orderID = orderID
	c.Bridge.HapticNotification(bridge.NotifySuccess)
	c.Log.Info().Str("order_id", orderID).Msg("purchase complete")
	return true
}
