package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/debazaar/bazaar/internal/api"
)

// listingPage shows one listing. Navigation only carries an id; the page
// fetches the listing itself on entry and the buy button appears once the
// snapshot is loaded, so checkout always starts fully populated.
type listingPage struct {
	app       *App
	listingID int
	listing   *api.Listing
	loading   bool
	loadErr   string
}

func newListingPage(a *App, listingID int) *listingPage {
	return &listingPage{app: a, listingID: listingID, loading: true}
}

func (p *listingPage) Title() string { return "Listing" }

func (p *listingPage) Mount() tea.Cmd {
	p.app.chrome.ShowBack(func() { p.app.goBack() })
	app := p.app
	id := p.listingID
	return func() tea.Msg {
		listing, err := app.api.Listing(app.ctx, id)
		return listingLoadedMsg{listing: listing, err: err}
	}
}

func (p *listingPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case listingLoadedMsg:
		p.loading = false
		if msg.err != nil {
			p.loadErr = "Failed to load listing"
			p.app.log.Error().Int("listing_id", p.listingID).Err(msg.err).Msg("load listing")
			return nil, true
		}
		p.listing = msg.listing
		label := fmt.Sprintf("Buy for %s%s", p.app.cfg.UI.CurrencySymbol, p.listing.Price.String())
		p.app.chrome.ShowPrimary(label, func() {
			p.app.openCheckout(*p.listing)
		})
		return nil, true
	}
	return nil, false
}

func (p *listingPage) View(width, height int) string {
	if p.loading {
		return "Loading listing...\n"
	}
	if p.loadErr != "" || p.listing == nil {
		return errorStyle.Render(p.loadErr) + "\n" + subtleStyle.Render("esc: go back") + "\n"
	}

	l := p.listing
	var b strings.Builder
	b.WriteString(titleStyle.Render(l.Title) + "  " + badgeStyle.Render(l.Category) + "\n\n")
	b.WriteString(priceStyle.Render(fmt.Sprintf("%s%s %s", p.app.cfg.UI.CurrencySymbol, l.Price.String(), l.Currency)) + "\n\n")

	if l.Description != "" {
		b.WriteString(labelStyle.Render("Description") + "\n")
		b.WriteString(l.Description + "\n\n")
	}

	b.WriteString(labelStyle.Render("Seller Information") + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", l.Seller, subtleStyle.Render(fmt.Sprintf("⭐ %.1f rating", l.SellerRating))))
	b.WriteString(subtleStyle.Render("Listed "+l.CreatedAt.Format("Jan 2, 2006")) + "\n\n")

	b.WriteString(labelStyle.Render("Purchase Details") + "\n")
	b.WriteString("Payment Method:    Mock Wallet\n")
	b.WriteString("Escrow Protection: " + successStyle.Render("✓ Enabled") + "\n")
	b.WriteString("Delivery:          Digital Download\n")
	return b.String()
}
