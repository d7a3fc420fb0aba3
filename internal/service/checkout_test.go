package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/bridge"
	"github.com/debazaar/bazaar/internal/config"
)

type fakeAuth struct{ user api.User }

func (f *fakeAuth) TelegramAuth(ctx context.Context, req api.AuthRequest) (*api.User, error) {
	u := f.user
	return &u, nil
}

func authedSession(t *testing.T) *Session {
	t.Helper()
	s := &Session{
		API: &fakeAuth{user: api.User{ID: 42, Username: "buyer", TelegramID: 42}},
		Log: zerolog.Nop(),
	}
	require.NoError(t, s.Authenticate(context.Background(), config.IdentityConfig{TelegramID: 42, Username: "buyer"}))
	return s
}

type fakeOrders struct {
	createCalls  int
	depositCalls int
	createErr    error
	depositErr   error
	depositOK    bool
	lastCreate   api.CreateOrderData
	lastAddress  string
}

func (f *fakeOrders) CreateOrder(ctx context.Context, data api.CreateOrderData) (*api.CreateOrderResponse, error) {
	f.createCalls++
	f.lastCreate = data
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &api.CreateOrderResponse{OrderID: "abc", Status: api.OrderCreated, Amount: data.Amount, EscrowCreated: true}, nil
}

func (f *fakeOrders) Deposit(ctx context.Context, orderID, buyerAddress string) (*api.DepositResponse, error) {
	f.depositCalls++
	f.lastAddress = buyerAddress
	if f.depositErr != nil {
		return nil, f.depositErr
	}
	return &api.DepositResponse{Success: f.depositOK, Status: api.OrderPaid, TxHash: "0xfeed"}, nil
}

func testCheckout(t *testing.T, orders *fakeOrders, session *Session) *Checkout {
	t.Helper()
	return &Checkout{
		Listing: api.Listing{
			ID:       7,
			Title:    "Icon pack",
			Price:    decimal.RequireFromString("12.5"),
			Currency: "USDT",
			Seller:   "ana",
		},
		API:          orders,
		Bridge:       bridge.NewChrome(),
		Session:      session,
		Log:          zerolog.Nop(),
		TokenAddress: "0x1234567890123456789012345678901234567890",
	}
}

// runPurchase drives the Begin/Execute/Finish seam the way the checkout
// page does. A stage-guarded double trigger is a silent no-op.
func runPurchase(ctx context.Context, c *Checkout) error {
	if err := c.Begin(); err != nil {
		if errors.Is(err, errStageGuard) {
			return nil
		}
		return err
	}
	orderID, err := c.Execute(ctx)
	c.Finish(orderID, err)
	return err
}

func TestPurchaseRequiresIdentity(t *testing.T) {
	t.Parallel()

	orders := &fakeOrders{depositOK: true}
	c := testCheckout(t, orders, &Session{Log: zerolog.Nop()})

	err := runPurchase(context.Background(), c)
	require.ErrorIs(t, err, api.ErrAuthRequired)
	require.Equal(t, StageReview, c.Stage())
	require.NotEmpty(t, c.Err())
	require.Zero(t, orders.createCalls, "no network call without identity")
}

func TestPurchaseHappyPath(t *testing.T) {
	t.Parallel()

	orders := &fakeOrders{depositOK: true}
	c := testCheckout(t, orders, authedSession(t))

	require.NoError(t, runPurchase(context.Background(), c))
	require.Equal(t, StageSuccess, c.Stage())
	require.Equal(t, "abc", c.OrderID())
	require.Empty(t, c.Err())

	require.Equal(t, 1, orders.createCalls)
	require.Equal(t, 7, orders.lastCreate.ListingID)
	require.Equal(t, "42", orders.lastCreate.BuyerID)
	require.True(t, orders.lastCreate.Amount.Equal(decimal.RequireFromString("12.5")))
	require.Equal(t, "0x0000000000000000000000000000000000000042", orders.lastAddress)
}

func TestPurchaseDepositLogicalFailure(t *testing.T) {
	t.Parallel()

	orders := &fakeOrders{depositOK: false}
	c := testCheckout(t, orders, authedSession(t))

	err := runPurchase(context.Background(), c)
	require.ErrorIs(t, err, ErrDepositFailed)
	require.Equal(t, StageReview, c.Stage())
	require.NotEmpty(t, c.Err())
	require.Empty(t, c.OrderID(), "no order id on failure")

	// the listing snapshot is untouched by the failed flow
	require.Equal(t, "12.5", c.Listing.Price.String())
	require.Equal(t, "USDT", c.Listing.Currency)
}

func TestPurchaseCreateOrderFailure(t *testing.T) {
	t.Parallel()

	orders := &fakeOrders{createErr: &api.APIError{StatusCode: 502, Message: "bad gateway"}}
	c := testCheckout(t, orders, authedSession(t))

	err := runPurchase(context.Background(), c)
	require.Error(t, err)
	require.Equal(t, StageReview, c.Stage())
	require.Contains(t, c.Err(), "bad gateway")
	require.Zero(t, orders.depositCalls, "deposit never runs after create failure")
}

func TestPurchaseIdempotentWhileProcessing(t *testing.T) {
	t.Parallel()

	orders := &fakeOrders{depositOK: true}
	c := testCheckout(t, orders, authedSession(t))

	require.NoError(t, c.Begin())
	require.Equal(t, StageProcessing, c.Stage())

	// a second trigger while processing must be a silent no-op
	require.NoError(t, runPurchase(context.Background(), c))
	require.Zero(t, orders.createCalls)
	require.Equal(t, StageProcessing, c.Stage())
}

func TestPurchaseIdempotentAfterSuccess(t *testing.T) {
	t.Parallel()

	orders := &fakeOrders{depositOK: true}
	c := testCheckout(t, orders, authedSession(t))

	require.NoError(t, runPurchase(context.Background(), c))
	require.NoError(t, runPurchase(context.Background(), c))
	require.Equal(t, 1, orders.createCalls, "no duplicate order")
	require.Equal(t, StageSuccess, c.Stage())
}

func TestRetryAfterFailure(t *testing.T) {
	t.Parallel()

	orders := &fakeOrders{depositErr: &api.APIError{StatusCode: 500, Message: "boom"}}
	c := testCheckout(t, orders, authedSession(t))

	require.Error(t, runPurchase(context.Background(), c))
	require.Equal(t, StageReview, c.Stage())

	orders.depositErr = nil
	orders.depositOK = true
	require.NoError(t, runPurchase(context.Background(), c))
	require.Equal(t, StageSuccess, c.Stage())
	require.Equal(t, 2, orders.createCalls)
}
