// Package nav holds the single source of truth for which page is on
// screen. Transitions are pure: the next page depends only on the action
// and its arguments, never on render timing, and every transition replaces
// the live page wholesale.
package nav

import (
	"errors"

	"github.com/debazaar/bazaar/internal/api"
)

// Page is the tagged union of displayable pages. Each variant carries its
// own payload; exactly one Page is live at a time.
type Page interface {
	pageKind() string
}

// Home is the listings feed.
type Home struct{}

// ListingDetail shows one listing. The page fetches the listing itself on
// entry; navigation only carries the id.
type ListingDetail struct {
	ListingID int
}

// Checkout drives a purchase. It carries a full listing snapshot so the
// review screen renders without a round trip.
type Checkout struct {
	Listing api.Listing
}

// OrderDetail shows a placed order.
type OrderDetail struct {
	OrderID string
}

// Create is the new-listing form.
type Create struct{}

func (Home) pageKind() string          { return "home" }
func (ListingDetail) pageKind() string { return "listing" }
func (Checkout) pageKind() string      { return "checkout" }
func (OrderDetail) pageKind() string   { return "order" }
func (Create) pageKind() string        { return "create" }

var (
	ErrBadListingID = errors.New("nav: listing id must be positive")
	ErrEmptyListing = errors.New("nav: checkout requires a populated listing")
	ErrEmptyOrderID = errors.New("nav: order id must not be empty")
)

// Machine owns the live page. It is single-threaded by contract: the UI
// event loop is the only caller.
type Machine struct {
	current Page
}

// NewMachine starts at Home.
func NewMachine() *Machine {
	return &Machine{current: Home{}}
}

// Current returns the live page.
func (m *Machine) Current() Page { return m.current }

// GoHome always succeeds.
func (m *Machine) GoHome() { m.current = Home{} }

// OpenListing navigates to a listing's detail page.
func (m *Machine) OpenListing(listingID int) error {
	if listingID <= 0 {
		return ErrBadListingID
	}
	m.current = ListingDetail{ListingID: listingID}
	return nil
}

// OpenCheckout navigates to checkout for a fetched listing snapshot.
func (m *Machine) OpenCheckout(listing api.Listing) error {
	if listing.ID <= 0 {
		return ErrEmptyListing
	}
	m.current = Checkout{Listing: listing}
	return nil
}

// OpenOrder navigates to the order confirmation page.
func (m *Machine) OpenOrder(orderID string) error {
	if orderID == "" {
		return ErrEmptyOrderID
	}
	m.current = OrderDetail{OrderID: orderID}
	return nil
}

// OpenCreate navigates to the new-listing form.
func (m *Machine) OpenCreate() { m.current = Create{} }

// GoBack collapses to Home from every page. There is no history stack:
// this matches the shipped behavior, where back from listing, checkout,
// create and order all land on home.
func (m *Machine) GoBack() { m.current = Home{} }
