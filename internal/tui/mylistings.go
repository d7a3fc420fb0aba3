package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/bridge"
)

// myListingsModal lists the signed-in seller's own products and lets them
// delete one. It overlays the home page rather than joining the
// navigation machine, so closing it never disturbs the page state.
type myListingsModal struct {
	app      *App
	sellerID string
	listings []api.Listing
	cursor   int
	loading  bool
	deleting bool
	errMsg   string
}

func (m *myListingsModal) fetch() tea.Cmd {
	app := m.app
	sellerID := m.sellerID
	return func() tea.Msg {
		listings, err := app.api.Listings(app.ctx, api.ListingsQuery{Seller: sellerID})
		return myListingsLoadedMsg{listings: listings, err: err}
	}
}

// Update returns (cmd, stillOpen).
func (m *myListingsModal) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case myListingsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Failed to load your listings"
			m.app.log.Error().Err(msg.err).Msg("load my listings")
			return nil, true
		}
		m.listings = msg.listings
		return nil, true

	case listingDeletedMsg:
		m.deleting = false
		if msg.err != nil {
			var apiErr *api.APIError
			if errors.As(msg.err, &apiErr) && apiErr.Rejection() {
				m.errMsg = apiErr.Message
			} else {
				m.errMsg = "Failed to delete listing"
			}
			m.app.chrome.HapticNotification(bridge.NotifyError)
			return nil, true
		}
		m.errMsg = ""
		kept := m.listings[:0]
		for _, l := range m.listings {
			if l.ID != msg.listingID {
				kept = append(kept, l)
			}
		}
		m.listings = kept
		if m.cursor >= len(m.listings) {
			m.cursor = 0
		}
		m.app.chrome.HapticNotification(bridge.NotifySuccess)
		m.app.setStatus("Listing deleted")
		return nil, true

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return nil, false
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.listings)-1 {
				m.cursor++
			}
		case "d":
			return m.deleteSelected(), true
		}
		return nil, true
	}
	return nil, true
}

func (m *myListingsModal) deleteSelected() tea.Cmd {
	if m.deleting || m.cursor >= len(m.listings) {
		return nil
	}
	m.deleting = true
	app := m.app
	id := m.listings[m.cursor].ID
	sellerID := m.sellerID
	return func() tea.Msg {
		err := app.api.DeleteListing(app.ctx, id, sellerID)
		return listingDeletedMsg{listingID: id, err: err}
	}
}

func (m *myListingsModal) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("My Products") + "\n\n")
	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.listings) == 0:
		b.WriteString("You have no active listings\n")
	default:
		for i, l := range m.listings {
			marker := "  "
			if i == m.cursor {
				marker = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s  %s %s\n", marker, l.Title, l.Price.String(), l.Currency))
		}
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	if m.deleting {
		b.WriteString("\nDeleting...\n")
	}
	b.WriteString("\n" + subtleStyle.Render("d: delete   esc: close") + "\n")
	return b.String()
}
