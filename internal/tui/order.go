package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/bridge"
)

// orderPage is the order confirmation screen. It fetches the order on
// entry; when the goods have been delivered the primary action confirms
// delivery, releasing the escrow.
type orderPage struct {
	app        *App
	orderID    string
	order      *api.Order
	loading    bool
	confirming bool
	loadErr    string
}

func newOrderPage(a *App, orderID string) *orderPage {
	return &orderPage{app: a, orderID: orderID, loading: true}
}

func (p *orderPage) Title() string { return "Order" }

func (p *orderPage) Mount() tea.Cmd {
	p.app.chrome.ShowBack(func() { p.app.goBack() })
	app := p.app
	id := p.orderID
	return func() tea.Msg {
		order, err := app.api.Order(app.ctx, id)
		return orderLoadedMsg{order: order, err: err}
	}
}

func (p *orderPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case orderLoadedMsg:
		p.loading = false
		if msg.err != nil {
			p.loadErr = "Failed to load order"
			p.app.log.Error().Str("order_id", p.orderID).Err(msg.err).Msg("load order")
			return nil, true
		}
		p.order = msg.order
		p.syncPrimary()
		return nil, true

	case deliveryConfirmedMsg:
		p.confirming = false
		if msg.err != nil {
			p.app.setError("Failed to confirm delivery: " + msg.err.Error())
			p.app.chrome.EnablePrimary()
			return nil, true
		}
		if p.order != nil {
			p.order.Status = msg.status
		}
		p.app.chrome.HapticNotification(bridge.NotifySuccess)
		p.app.setStatus("Delivery confirmed, escrow released")
		p.syncPrimary()
		return nil, true
	}
	return nil, false
}

// syncPrimary shows Confirm Delivery only while the order is waiting on
// the buyer: paid or delivered. All other statuses are server-terminal
// from this screen.
func (p *orderPage) syncPrimary() {
	if p.order == nil {
		return
	}
	switch p.order.Status {
	case api.OrderPaid, api.OrderDelivered:
		p.app.chrome.ShowPrimary("Confirm Delivery", func() { p.confirmDelivery() })
	default:
		p.app.chrome.HidePrimary()
	}
}

func (p *orderPage) confirmDelivery() {
	if p.confirming {
		return
	}
	p.confirming = true
	p.app.chrome.DisablePrimary()
	app := p.app
	id := p.orderID
	p.app.queued = append(p.app.queued, func() tea.Msg {
		resp, err := app.api.ConfirmDelivery(app.ctx, id)
		if err != nil {
			return deliveryConfirmedMsg{err: err}
		}
		if !resp.Success {
			return deliveryConfirmedMsg{err: fmt.Errorf("confirmation rejected")}
		}
		return deliveryConfirmedMsg{status: resp.Status}
	})
}

func (p *orderPage) View(width, height int) string {
	if p.loading {
		return "Loading order...\n"
	}
	if p.loadErr != "" || p.order == nil {
		var b strings.Builder
		b.WriteString("📦 " + titleStyle.Render("Order Created!") + "\n\n")
		b.WriteString("Order ID: " + shortID(p.orderID) + "\n")
		if p.loadErr != "" {
			b.WriteString(errorStyle.Render(p.loadErr) + "\n")
		}
		b.WriteString("\n" + subtleStyle.Render("esc: back to home") + "\n")
		return b.String()
	}

	o := p.order
	var b strings.Builder
	b.WriteString("📦 " + titleStyle.Render("Order Created!") + "\n\n")
	b.WriteString("Order ID:  " + shortID(o.OrderID) + "\n")
	b.WriteString("Item:      " + o.Listing.Title + "\n")
	b.WriteString("Amount:    " + priceStyle.Render(o.Amount.String()) + "\n")
	b.WriteString("Status:    " + badgeStyle.Render(o.Status) + "\n")
	b.WriteString("Seller:    " + o.Seller + "\n")
	if !o.Deadline.IsZero() {
		b.WriteString("Deadline:  " + o.Deadline.Format("Jan 2, 2006 15:04") + "\n")
	}
	if p.confirming {
		b.WriteString("\nConfirming delivery...\n")
	}
	b.WriteString("\n" + subtleStyle.Render("esc: back to home") + "\n")
	return b.String()
}

// shortID truncates opaque order ids for display.
func shortID(id string) string {
	if len(id) <= 10 {
		return id
	}
	return id[:10] + "..."
}
