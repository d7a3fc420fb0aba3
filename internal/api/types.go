package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the identity returned by the auth exchange.
type User struct {
	ID         int    `json:"user_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name,omitempty"`
	TelegramID int64  `json:"telegram_id"`
}

// AuthRequest carries the chat-platform identity to exchange for a user.
type AuthRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
}

type authResponse struct {
	Success    bool   `json:"success"`
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	TelegramID int64  `json:"telegram_id"`
}

// Listing is a seller's published offer. The client treats listings as
// immutable once fetched and only ever re-fetches them.
type Listing struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Category     string          `json:"category"`
	Seller       string          `json:"seller"`
	SellerRating float64         `json:"seller_rating"`
	CreatedAt    time.Time       `json:"created_at"`
	MetadataCID  string          `json:"metadata_cid,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	ImageCID     string          `json:"image_cid,omitempty"`
}

// OrderListing is the listing snapshot embedded in an order.
type OrderListing struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// Order statuses as the backend reports them. The client observes these;
// all transitions happen server-side.
const (
	OrderCreated   = "created"
	OrderPaid      = "paid"
	OrderDelivered = "delivered"
	OrderConfirmed = "confirmed"
	OrderDisputed  = "disputed"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a buyer's purchase intent tracked through the escrow lifecycle.
type Order struct {
	OrderID     string          `json:"order_id"`
	Listing     OrderListing    `json:"listing"`
	Buyer       string          `json:"buyer"`
	Seller      string          `json:"seller"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	DeliveryCID string          `json:"delivery_cid,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Deadline    time.Time       `json:"deadline"`
}

// CreateListingData is the publish payload.
type CreateListingData struct {
	SellerID     string          `json:"seller_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	TokenAddress string          `json:"token_address"`
	Category     string          `json:"category"`
	MetadataCID  string          `json:"metadata_cid,omitempty"`
	ImageDataURL string          `json:"image_data_url,omitempty"`
}

// CreateListingResponse is the backend's acknowledgement of a new listing.
type CreateListingResponse struct {
	ID     int             `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Status string          `json:"status"`
}

// CreateOrderData starts the escrow flow for a listing.
type CreateOrderData struct {
	ListingID    int             `json:"listing_id"`
	BuyerID      string          `json:"buyer_id"`
	Amount       decimal.Decimal `json:"amount"`
	TokenAddress string          `json:"token_address"`
}

// CreateOrderResponse acknowledges a created order and its mock escrow.
type CreateOrderResponse struct {
	OrderID       string          `json:"order_id"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Deadline      time.Time       `json:"deadline"`
	EscrowCreated bool            `json:"escrow_created"`
}

// DepositResponse reports the simulated escrow deposit. Success=false with
// a 2xx status is a logical failure and is treated like any other failure.
type DepositResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	TxHash  string `json:"tx_hash"`
}

// ConfirmResponse acknowledges a delivery confirmation.
type ConfirmResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// UploadResponse describes a stored file. Small images come back inlined
// as a data URL.
type UploadResponse struct {
	URL      string `json:"url,omitempty"`
	DataURL  string `json:"data_url,omitempty"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type listingsResponse struct {
	Listings []Listing `json:"listings"`
}
