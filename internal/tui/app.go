// Package tui renders the marketplace client. The root App owns the
// navigation machine and the terminal chrome; each page is a controller
// that registers its chrome handlers on mount and is replaced wholesale on
// navigation, mirroring the page lifecycle of the embedded mini-app.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/bridge"
	"github.com/debazaar/bazaar/internal/config"
	"github.com/debazaar/bazaar/internal/nav"
	"github.com/debazaar/bazaar/internal/service"
)

const appName = "Bazaar"

// page is one screen's controller. Mount registers chrome handlers and
// kicks off fetches; the App clears the chrome before every mount, so a
// page that fails partway through activation cannot leave stale handlers.
type page interface {
	Mount() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, bool)
	View(width, height int) string
	Title() string
}

// App ties together pages.
type App struct {
	ctx     context.Context
	cfg     config.Config
	api     *api.Client
	session *service.Session
	machine *nav.Machine
	chrome  *bridge.Chrome
	log     zerolog.Logger

	page      page
	width     int
	height    int
	status    string
	statusErr bool
	flash     string
	quitting  bool

	// queued collects commands produced by chrome handlers, which run
	// synchronously inside Update and cannot return one themselves.
	queued []tea.Cmd
}

// New builds the root model. The home page mounts immediately; auth runs
// in the background the way the embedded app exchanges its init payload.
func New(ctx context.Context, cfg config.Config, client *api.Client, session *service.Session, log zerolog.Logger) *App {
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		api:     client,
		session: session,
		machine: nav.NewMachine(),
		chrome:  bridge.NewChrome(),
		log:     log,
		width:   100,
		height:  32,
		status:  "Ready",
	}
	a.chrome.OnHaptic = func(event string) { a.flash = event }
	return a
}

func (a *App) Init() tea.Cmd {
	mount := a.syncPage()
	auth := func() tea.Msg {
		return authDoneMsg{err: a.session.Authenticate(a.ctx, a.cfg.Identity)}
	}
	return tea.Batch(mount, auth)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case authDoneMsg:
		if msg.err != nil {
			a.setError("Sign-in failed: " + msg.err.Error())
		} else if user, ok := a.session.User(); ok {
			a.setStatus("Signed in as " + user.Username)
		} else {
			a.setStatus("Browsing as guest")
		}
		return a, nil

	case tea.KeyMsg:
		// ctrl+c and ctrl+p are claimed before the page sees the key:
		// pages route unrecognized keys into their text inputs, which
		// would swallow the chrome bindings.
		switch msg.String() {
		case "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		case "ctrl+p":
			if a.chrome.PressPrimary() {
				return a, tea.Batch(a.drainQueued()...)
			}
			return a, nil
		}
		// everything else goes page-first, so modals and forms can claim
		// esc before it reaches the back control
		if cmd, handled := a.page.Update(msg); handled {
			return a, tea.Batch(append(a.drainQueued(), cmd)...)
		}
		if msg.String() == "esc" && a.chrome.PressBack() {
			return a, tea.Batch(a.drainQueued()...)
		}
		return a, nil
	}

	cmd, _ := a.page.Update(msg)
	return a, tea.Batch(append(a.drainQueued(), cmd)...)
}

func (a *App) View() string {
	if a.quitting {
		return "Goodbye\n"
	}
	header := a.renderHeader()
	status := a.renderStatus()
	footer := a.renderFooter()
	body := ""
	bodyHeight := a.height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(footer)
	if bodyHeight > 0 {
		body = a.page.View(max(1, a.width-2), bodyHeight)
	}
	body = fitHeight(body, max(0, bodyHeight))
	return strings.Join([]string{header, status, body, footer}, "\n")
}

// navigation -----------------------------------------------------------

func (a *App) goHome() {
	a.machine.GoHome()
	a.queued = append(a.queued, a.syncPage())
}

func (a *App) openListing(listingID int) {
	if err := a.machine.OpenListing(listingID); err != nil {
		a.setError(err.Error())
		return
	}
	a.queued = append(a.queued, a.syncPage())
}

func (a *App) openCheckout(listing api.Listing) {
	if err := a.machine.OpenCheckout(listing); err != nil {
		a.setError(err.Error())
		return
	}
	a.queued = append(a.queued, a.syncPage())
}

func (a *App) openOrder(orderID string) {
	if err := a.machine.OpenOrder(orderID); err != nil {
		a.setError(err.Error())
		return
	}
	a.queued = append(a.queued, a.syncPage())
}

func (a *App) openCreate() {
	a.machine.OpenCreate()
	a.queued = append(a.queued, a.syncPage())
}

func (a *App) goBack() {
	a.machine.GoBack()
	a.queued = append(a.queued, a.syncPage())
}

// syncPage builds the controller for the live nav page and mounts it. The
// chrome is reset first so handlers registered by the previous page can
// never fire for this one.
func (a *App) syncPage() tea.Cmd {
	a.chrome.Reset()
	switch p := a.machine.Current().(type) {
	case nav.ListingDetail:
		a.page = newListingPage(a, p.ListingID)
	case nav.Checkout:
		a.page = newCheckoutPage(a, p.Listing)
	case nav.OrderDetail:
		a.page = newOrderPage(a, p.OrderID)
	case nav.Create:
		a.page = newCreatePage(a)
	default:
		a.page = newHomePage(a)
	}
	return a.page.Mount()
}

func (a *App) drainQueued() []tea.Cmd {
	cmds := a.queued
	a.queued = nil
	return cmds
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(msg string) {
	a.status = msg
	a.statusErr = true
}

// chrome rendering -----------------------------------------------------

func (a *App) renderHeader() string {
	left := titleStyle.Render(appName)
	right := subtleStyle.Render(a.page.Title())
	line := left + " · " + right
	return padLine(headerStyle, max(1, a.width), line)
}

func (a *App) renderStatus() string {
	line := a.status
	if a.statusErr {
		line = errorStyle.Render(line)
	}
	if a.flash != "" {
		line += subtleStyle.Render("  ~" + a.flash)
		a.flash = ""
	}
	return padLine(statusStyle, max(1, a.width), line)
}

// renderFooter shows the platform chrome: the contextual back control and
// the primary action button, exactly as the host app would.
func (a *App) renderFooter() string {
	parts := []string{}
	if a.chrome.BackVisible() {
		parts = append(parts, "esc ◀ Back")
	}
	if label, visible, enabled := a.chrome.Primary(); visible {
		btn := "ctrl+p ▶ " + label
		if !enabled {
			btn = subtleStyle.Render(btn)
		}
		parts = append(parts, btn)
	}
	parts = append(parts, "ctrl+c Quit")
	return padLine(footerStyle, max(1, a.width), strings.Join(parts, "   "))
}

func padLine(style lipgloss.Style, width int, line string) string {
	line = ansi.Truncate(strings.ReplaceAll(line, "\n", " "), width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.MaxWidth(width).Render(line)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
