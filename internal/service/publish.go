package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/bridge"
)

// ListingsAPI is the slice of the backend client the publish flow needs.
type ListingsAPI interface {
	Upload(ctx context.Context, filename string, data []byte) (*api.UploadResponse, error)
	CreateListing(ctx context.Context, data api.CreateListingData) (*api.CreateListingResponse, error)
}

// Draft is the create-listing form state before validation.
type Draft struct {
	Title       string
	Description string
	Price       string
	Currency    string
	Category    string
	ImagePath   string
}

// Publisher runs the single-shot listing-creation flow: validate, upload
// the image, submit the listing. Like checkout it guards against double
// submission: once a submission begins the triggering control stays
// disabled until the call resolves.
type Publisher struct {
	API     ListingsAPI
	Bridge  bridge.Bridge
	Session *Session
	Log     zerolog.Logger

	TokenAddress string

	submitting bool
}

// InFlight reports whether a submission is outstanding.
func (p *Publisher) InFlight() bool { return p.submitting }

// Validate checks the draft client-side so no round trip is wasted on a
// bad form. Returns the parsed price on success.
func (p *Publisher) Validate(d Draft) (decimal.Decimal, error) {
	if strings.TrimSpace(d.Title) == "" {
		return decimal.Decimal{}, &api.ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return decimal.Decimal{}, &api.ValidationError{Field: "description", Reason: "required"}
	}
	if strings.TrimSpace(d.ImagePath) == "" {
		return decimal.Decimal{}, &api.ValidationError{Field: "image", Reason: "required"}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
	if err != nil || !price.IsPositive() {
		return decimal.Decimal{}, &api.ValidationError{Field: "price", Reason: "enter a valid price greater than 0"}
	}
	return price, nil
}

// Begin marks a submission in flight. Returns false when one already is.
func (p *Publisher) Begin() bool {
	if p.submitting {
		return false
	}
	p.submitting = true
	return true
}

// Finish resolves the in-flight submission, re-enabling retry on failure.
func (p *Publisher) Finish() { p.submitting = false }

// Submit validates the draft, reads and uploads the image, and creates the
// listing. The caller owns the Begin/Finish pairing; Submit itself mutates
// nothing, so a UI event loop can run it off its update path.
func (p *Publisher) Submit(ctx context.Context, d Draft) (*api.CreateListingResponse, error) {
	sellerID, ok := p.Session.UserID()
	if !ok {
		return nil, api.ErrAuthRequired
	}

	price, err := p.Validate(d)
	if err != nil {
		return nil, err
	}

	image, err := os.ReadFile(d.ImagePath)
	if err != nil {
		return nil, &api.ValidationError{Field: "image", Reason: fmt.Sprintf("cannot read %s", d.ImagePath)}
	}
	if len(image) > api.MaxUploadSize {
		return nil, &api.ValidationError{Field: "image", Reason: "image size must be less than 1MB"}
	}

	upload, err := p.API.Upload(ctx, filepath.Base(d.ImagePath), image)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	imageRef := upload.DataURL
	if imageRef == "" {
		imageRef = upload.URL
	}

	resp, err := p.API.CreateListing(ctx, api.CreateListingData{
		SellerID:     sellerID,
		Title:        strings.TrimSpace(d.Title),
		Description:  strings.TrimSpace(d.Description),
		Price:        price,
		Currency:     d.Currency,
		TokenAddress: p.TokenAddress,
		Category:     MatchCategory(d.Category),
		ImageDataURL: imageRef,
	})
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	p.Bridge.HapticNotification(bridge.NotifySuccess)
	p.Log.Info().Int("listing_id", resp.ID).Str("title", resp.Title).Msg("listing published")
	return resp, nil
}
