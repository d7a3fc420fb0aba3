package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/service"
)

var currencies = []string{"USDT", "USDC", "ETH"}

const (
	fieldTitle = iota
	fieldDescription
	fieldPrice
	fieldCategory
	fieldImage
	fieldCurrency // cycling selector, not a text input
	fieldCount
)

// createPage is the new-listing form.
type createPage struct {
	app       *App
	publisher *service.Publisher
	inputs    []textinput.Model
	focus     int
	currency  int
	errMsg    string
	done      bool
}

func newCreatePage(a *App) *createPage {
	labels := []string{"Title", "Description", "Price", "Category", "Image path"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		inp := textinput.New()
		inp.Prompt = label + ": "
		if i == 0 {
			inp.Focus()
		}
		inputs[i] = inp
	}
	inputs[fieldPrice].Placeholder = "0.00"
	inputs[fieldCategory].Placeholder = "templates, graphics, ..."
	inputs[fieldImage].Placeholder = "~/art/cover.png"

	return &createPage{
		app: a,
		publisher: &service.Publisher{
			API:          a.api,
			Bridge:       a.chrome,
			Session:      a.session,
			Log:          a.log,
			TokenAddress: a.cfg.API.TokenAddress,
		},
		inputs: inputs,
	}
}

func (p *createPage) Title() string { return "Create New Listing" }

func (p *createPage) Mount() tea.Cmd {
	p.app.chrome.ShowBack(func() { p.app.goBack() })
	p.app.chrome.ShowPrimary("Create Listing", func() { p.submit() })
	return nil
}

func (p *createPage) draft() service.Draft {
	return service.Draft{
		Title:       p.inputs[fieldTitle].Value(),
		Description: p.inputs[fieldDescription].Value(),
		Price:       p.inputs[fieldPrice].Value(),
		Category:    p.inputs[fieldCategory].Value(),
		Currency:    currencies[p.currency],
		ImagePath:   strings.TrimSpace(p.inputs[fieldImage].Value()),
	}
}

// submit disables the trigger for the duration of the call; it is
// re-enabled with its original label only on failure, so a slow backend
// cannot be asked to create the same listing twice.
func (p *createPage) submit() {
	if p.done || !p.publisher.Begin() {
		return
	}
	p.errMsg = ""
	p.app.chrome.DisablePrimary()
	p.app.chrome.SetPrimaryLabel("Creating...")

	publisher := p.publisher
	ctx := p.app.ctx
	draft := p.draft()
	p.app.queued = append(p.app.queued, func() tea.Msg {
		resp, err := publisher.Submit(ctx, draft)
		return publishDoneMsg{resp: resp, err: err}
	})
}

func (p *createPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case publishDoneMsg:
		p.publisher.Finish()
		if msg.err != nil {
			p.errMsg = publishErrorMessage(msg.err)
			p.app.chrome.EnablePrimary()
			p.app.chrome.SetPrimaryLabel("Create Listing")
			return nil, true
		}
		p.done = true
		p.app.chrome.HidePrimary()
		p.app.setStatus("Listing published: " + msg.resp.Title)
		return tea.Tick(time.Second, func(time.Time) tea.Msg {
			return createLeaveMsg{}
		}), true

	case createLeaveMsg:
		p.app.goHome()
		return nil, true

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "enter":
			dir := 1
			if msg.String() == "shift+tab" {
				dir = -1
			}
			p.setFocus((p.focus + dir + fieldCount) % fieldCount)
			return nil, true
		case "left", "right":
			if p.focus == fieldCurrency {
				dir := 1
				if msg.String() == "left" {
					dir = -1
				}
				p.currency = (p.currency + dir + len(currencies)) % len(currencies)
				return nil, true
			}
		case "esc":
			return nil, false
		}
		if p.focus < len(p.inputs) {
			var cmd tea.Cmd
			p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
			return cmd, true
		}
		return nil, true
	}
	return nil, false
}

func (p *createPage) setFocus(focus int) {
	if p.focus < len(p.inputs) {
		p.inputs[p.focus].Blur()
	}
	p.focus = focus
	if p.focus < len(p.inputs) {
		p.inputs[p.focus].Focus()
	}
}

func (p *createPage) View(width, height int) string {
	if p.publisher.InFlight() {
		return titleStyle.Render("Creating Your Listing...") + "\n\nUploading image and setting up your product\n"
	}
	if p.done {
		return successStyle.Render("✅ Listing published!") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Create New Listing") + "\n")
	b.WriteString(subtleStyle.Render("Share your digital products with the community") + "\n\n")
	if p.errMsg != "" {
		b.WriteString(errorStyle.Render(p.errMsg) + "\n\n")
	}

	for i, inp := range p.inputs {
		b.WriteString(inp.View())
		if i == fieldCategory {
			if v := inp.Value(); v != "" {
				b.WriteString(subtleStyle.Render("  → " + service.MatchCategory(v)))
			}
		}
		b.WriteString("\n")
	}

	currency := "Currency: "
	for i, c := range currencies {
		if i == p.currency {
			currency += "[" + c + "] "
		} else {
			currency += subtleStyle.Render(c) + " "
		}
	}
	if p.focus == fieldCurrency {
		currency += subtleStyle.Render("(←/→ to change)")
	}
	b.WriteString(currency + "\n\n")
	b.WriteString(subtleStyle.Render("tab: next field   ctrl+p: create listing   esc: cancel") + "\n")
	return b.String()
}

func publishErrorMessage(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, api.ErrAuthRequired) {
		return "Please authenticate with Telegram first"
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Failed to create listing"
}
