package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/service"
)

// checkoutPage drives the purchase session. The flow object holds the
// review/processing/success stage; this page maps it onto the chrome (the
// confirm button exists only in review) and onto the three views.
type checkoutPage struct {
	app  *App
	flow *service.Checkout
}

func newCheckoutPage(a *App, listing api.Listing) *checkoutPage {
	return &checkoutPage{
		app: a,
		flow: &service.Checkout{
			Listing:      listing,
			API:          a.api,
			Bridge:       a.chrome,
			Session:      a.session,
			Log:          a.log,
			TokenAddress: a.cfg.API.TokenAddress,
		},
	}
}

func (p *checkoutPage) Title() string { return "Checkout" }

func (p *checkoutPage) Mount() tea.Cmd {
	p.app.chrome.ShowBack(func() { p.app.goBack() })
	p.app.chrome.ShowPrimary("Confirm Purchase", func() { p.confirm() })
	return nil
}

// confirm runs the stage guard synchronously, then hands the network work
// to a command. A second press while processing finds the stage guard and
// does nothing, so no duplicate order can be issued.
func (p *checkoutPage) confirm() {
	if err := p.flow.Begin(); err != nil {
		if errors.Is(err, api.ErrAuthRequired) {
			p.app.setError(p.flow.Err())
		}
		return
	}
	p.app.chrome.HidePrimary()
	flow := p.flow
	ctx := p.app.ctx
	p.app.queued = append(p.app.queued, func() tea.Msg {
		orderID, err := flow.Execute(ctx)
		return purchaseDoneMsg{orderID: orderID, err: err}
	})
}

func (p *checkoutPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case purchaseDoneMsg:
		if !p.flow.Finish(msg.orderID, msg.err) {
			// back to review so the user may retry
			p.app.chrome.ShowPrimary("Confirm Purchase", func() { p.confirm() })
			return nil, true
		}
		orderID := msg.orderID
		return tea.Tick(service.DefaultNavigateDelay, func(time.Time) tea.Msg {
			return orderRedirectMsg{orderID: orderID}
		}), true

	case orderRedirectMsg:
		p.app.openOrder(msg.orderID)
		return nil, true
	}
	return nil, false
}

func (p *checkoutPage) View(width, height int) string {
	switch p.flow.Stage() {
	case service.StageProcessing:
		return titleStyle.Render("Processing Payment...") + "\n\nPlease wait while we process your transaction\n"
	case service.StageSuccess:
		var b strings.Builder
		b.WriteString(successStyle.Render("✅ Payment Successful!") + "\n\n")
		b.WriteString("Your order has been created and payment is in escrow.\n")
		b.WriteString(subtleStyle.Render("Redirecting to order details...") + "\n")
		return b.String()
	}

	l := p.flow.Listing
	symbol := p.app.cfg.UI.CurrencySymbol
	var b strings.Builder
	b.WriteString(titleStyle.Render("Checkout") + "\n\n")
	if errMsg := p.flow.Err(); errMsg != "" {
		b.WriteString(errorStyle.Render(errMsg) + "\n\n")
	}

	b.WriteString(labelStyle.Render("Order Summary") + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", l.Title, subtleStyle.Render("by "+l.Seller)))
	b.WriteString(priceStyle.Render(fmt.Sprintf("%s%s %s", symbol, l.Price.String(), l.Currency)) + "\n\n")

	b.WriteString(labelStyle.Render("Payment Method") + "\n")
	b.WriteString("₮ Mock Wallet  " + subtleStyle.Render("USDT Balance: $1,000.00") + "\n\n")

	b.WriteString(labelStyle.Render("Transaction Details") + "\n")
	b.WriteString(fmt.Sprintf("Item Price:    %s%s\n", symbol, l.Price.String()))
	b.WriteString(fmt.Sprintf("Platform Fee:  %s0.00\n", symbol))
	b.WriteString(fmt.Sprintf("Network Fee:   ~%s0.10\n", symbol))
	b.WriteString(fmt.Sprintf("Total:         %s\n\n", priceStyle.Render(symbol+l.Price.String())))

	b.WriteString(successStyle.Render("🔒 Escrow Protection Enabled") + "\n")
	b.WriteString(subtleStyle.Render("Your payment will be held in escrow until you confirm delivery.") + "\n")
	return b.String()
}
