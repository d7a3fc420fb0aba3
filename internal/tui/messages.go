package tui

import (
	"github.com/google/uuid"

	"github.com/debazaar/bazaar/internal/api"
)

type authDoneMsg struct {
	err error
}

type listingsLoadedMsg struct {
	listings []api.Listing
	query    string
	err      error
}

type listingLoadedMsg struct {
	listing *api.Listing
	err     error
}

type myListingsLoadedMsg struct {
	listings []api.Listing
	err      error
}

type listingDeletedMsg struct {
	listingID int
	err       error
}

type searchDebounceMsg struct {
	token uuid.UUID
}

type purchaseDoneMsg struct {
	orderID string
	err     error
}

type orderRedirectMsg struct {
	orderID string
}

type orderLoadedMsg struct {
	order *api.Order
	err   error
}

type deliveryConfirmedMsg struct {
	status string
	err    error
}

type publishDoneMsg struct {
	resp *api.CreateListingResponse
	err  error
}

type createLeaveMsg struct{}
