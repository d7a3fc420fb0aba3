package nav

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/debazaar/bazaar/internal/api"
)

func sampleListing() api.Listing {
	return api.Listing{
		ID:       7,
		Title:    "Icon pack",
		Price:    decimal.RequireFromString("12.5"),
		Currency: "USDT",
		Seller:   "ana",
	}
}

func TestStartsAtHome(t *testing.T) {
	m := NewMachine()
	if _, ok := m.Current().(Home); !ok {
		t.Fatalf("expected Home, got %T", m.Current())
	}
}

func TestTransitionsReplaceWholesale(t *testing.T) {
	m := NewMachine()

	if err := m.OpenListing(7); err != nil {
		t.Fatal(err)
	}
	if p := m.Current().(ListingDetail); p.ListingID != 7 {
		t.Fatalf("listing id = %d", p.ListingID)
	}

	if err := m.OpenCheckout(sampleListing()); err != nil {
		t.Fatal(err)
	}
	if p := m.Current().(Checkout); p.Listing.ID != 7 {
		t.Fatalf("checkout listing id = %d", p.Listing.ID)
	}

	if err := m.OpenOrder("abc"); err != nil {
		t.Fatal(err)
	}
	if p := m.Current().(OrderDetail); p.OrderID != "abc" {
		t.Fatalf("order id = %q", p.OrderID)
	}

	m.OpenCreate()
	if _, ok := m.Current().(Create); !ok {
		t.Fatalf("expected Create, got %T", m.Current())
	}
}

// The live page after any sequence equals the last action applied to the
// initial state.
func TestLastActionWins(t *testing.T) {
	m := NewMachine()
	_ = m.OpenListing(3)
	_ = m.OpenCheckout(sampleListing())
	m.OpenCreate()
	_ = m.OpenOrder("xyz")

	fresh := NewMachine()
	_ = fresh.OpenOrder("xyz")
	if m.Current() != fresh.Current() {
		t.Fatalf("sequence result %v != single action result %v", m.Current(), fresh.Current())
	}
}

func TestGoBackAlwaysHome(t *testing.T) {
	actions := []func(m *Machine){
		func(m *Machine) { _ = m.OpenListing(7) },
		func(m *Machine) { _ = m.OpenCheckout(sampleListing()) },
		func(m *Machine) { _ = m.OpenOrder("abc") },
		func(m *Machine) { m.OpenCreate() },
		func(m *Machine) { m.GoHome() },
	}
	for _, act := range actions {
		m := NewMachine()
		act(m)
		m.GoBack()
		if _, ok := m.Current().(Home); !ok {
			t.Fatalf("back should land on Home, got %T", m.Current())
		}
	}
}

func TestInvalidArgumentsLeaveStateUnchanged(t *testing.T) {
	m := NewMachine()
	_ = m.OpenListing(7)
	before := m.Current()

	if err := m.OpenListing(0); err != ErrBadListingID {
		t.Fatalf("err = %v", err)
	}
	if err := m.OpenListing(-4); err != ErrBadListingID {
		t.Fatalf("err = %v", err)
	}
	if err := m.OpenCheckout(api.Listing{}); err != ErrEmptyListing {
		t.Fatalf("err = %v", err)
	}
	if err := m.OpenOrder(""); err != ErrEmptyOrderID {
		t.Fatalf("err = %v", err)
	}
	if m.Current() != before {
		t.Fatalf("state changed on invalid input: %v", m.Current())
	}
}
