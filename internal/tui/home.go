package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/debazaar/bazaar/internal/api"
)

// homePage is the listings feed with debounced search.
type homePage struct {
	app      *App
	search   textinput.Model
	deb      *debounce
	listings []api.Listing
	cursor   int
	loading  bool
	loadErr  string
	modal    *myListingsModal
}

func newHomePage(a *App) *homePage {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "digital goods"
	search.Focus()

	delay := time.Duration(a.cfg.UI.DebounceMS) * time.Millisecond
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &homePage{
		app:     a,
		search:  search,
		deb:     newDebounce(delay),
		loading: true,
	}
}

func (p *homePage) Title() string { return "Crypto Marketplace" }

func (p *homePage) Mount() tea.Cmd {
	p.app.chrome.ShowPrimary("+ Create Listing", func() { p.app.openCreate() })
	return p.fetch("")
}

func (p *homePage) fetch(query string) tea.Cmd {
	app := p.app
	return func() tea.Msg {
		listings, err := app.api.Listings(app.ctx, api.ListingsQuery{Search: query})
		return listingsLoadedMsg{listings: listings, query: query, err: err}
	}
}

func (p *homePage) Update(msg tea.Msg) (tea.Cmd, bool) {
	if p.modal != nil {
		return p.updateModal(msg)
	}

	switch msg := msg.(type) {
	case listingsLoadedMsg:
		// a response for a query the input has since left behind must
		// not overwrite fresher results; the surviving debounce timer
		// fetches the live query
		if msg.query != strings.TrimSpace(p.search.Value()) {
			return nil, true
		}
		p.loading = false
		if msg.err != nil {
			p.loadErr = "Failed to load listings"
			p.app.log.Error().Err(msg.err).Msg("load listings")
			return nil, true
		}
		p.loadErr = ""
		p.listings = msg.listings
		if p.cursor >= len(p.listings) {
			p.cursor = 0
		}
		return nil, true

	case searchDebounceMsg:
		if !p.deb.fire(msg.token) {
			return nil, true
		}
		p.loading = true
		return p.fetch(strings.TrimSpace(p.search.Value())), true

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
			return nil, true
		case "down":
			if p.cursor < len(p.listings)-1 {
				p.cursor++
			}
			return nil, true
		case "enter":
			if p.loadErr != "" {
				// retry
				p.loading = true
				p.loadErr = ""
				return p.fetch(strings.TrimSpace(p.search.Value())), true
			}
			if p.cursor < len(p.listings) {
				p.deb.cancel()
				p.app.chrome.HapticSelection()
				p.app.openListing(p.listings[p.cursor].ID)
			}
			return nil, true
		case "ctrl+l":
			return p.openMyListings(), true
		case "esc":
			return nil, false
		}

		before := p.search.Value()
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		if p.search.Value() != before {
			// each keystroke re-arms the single pending timer
			return tea.Batch(cmd, p.deb.tick()), true
		}
		return cmd, true
	}
	return nil, false
}

func (p *homePage) openMyListings() tea.Cmd {
	sellerID, ok := p.app.session.UserID()
	if !ok {
		p.app.setError("Sign in to manage your listings")
		return nil
	}
	p.modal = &myListingsModal{app: p.app, sellerID: sellerID, loading: true}
	return p.modal.fetch()
}

func (p *homePage) updateModal(msg tea.Msg) (tea.Cmd, bool) {
	cmd, open := p.modal.Update(msg)
	if !open {
		p.modal = nil
	}
	return cmd, true
}

func (p *homePage) View(width, height int) string {
	if p.modal != nil {
		return p.modal.View(width, height)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Crypto Marketplace") + "\n")
	b.WriteString(subtleStyle.Render("Buy and sell digital goods with crypto") + "\n\n")
	b.WriteString(p.search.View() + "\n\n")

	switch {
	case p.loading:
		b.WriteString("Loading listings...\n")
	case p.loadErr != "":
		b.WriteString(errorStyle.Render(p.loadErr) + "\n")
		b.WriteString(subtleStyle.Render("enter: retry") + "\n")
	case len(p.listings) == 0:
		b.WriteString(titleStyle.Render("No Products Yet") + "\n")
		b.WriteString("Be the first to share your digital products\n")
	default:
		b.WriteString(fmt.Sprintf("%s products available\n\n", titleStyle.Render(fmt.Sprintf("%d", len(p.listings)))))
		for i, l := range p.listings {
			b.WriteString(renderListingCard(l, i == p.cursor, p.app.cfg.UI.CurrencySymbol) + "\n")
		}
		b.WriteString("\n" + subtleStyle.Render("↑/↓: select   enter: open   ctrl+l: my listings") + "\n")
	}
	return b.String()
}

func renderListingCard(l api.Listing, selected bool, symbol string) string {
	price := priceStyle.Render(fmt.Sprintf("%s%s %s", symbol, l.Price.String(), l.Currency))
	line1 := fmt.Sprintf("%s  %s", titleStyle.Render(l.Title), price)
	line2 := subtleStyle.Render(fmt.Sprintf("by %s  ⭐ %.1f  ", l.Seller, l.SellerRating)) + badgeStyle.Render(l.Category)
	card := line1 + "\n" + line2
	if selected {
		return selectedStyle.Render(card)
	}
	return cardStyle.Render(card)
}
