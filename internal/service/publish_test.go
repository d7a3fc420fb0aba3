package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/bridge"
)

type fakeListings struct {
	uploads    int
	creates    int
	uploadErr  error
	createErr  error
	lastUpload string
	lastCreate api.CreateListingData
}

func (f *fakeListings) Upload(ctx context.Context, filename string, data []byte) (*api.UploadResponse, error) {
	f.uploads++
	f.lastUpload = filename
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &api.UploadResponse{DataURL: "data:image/png;base64,aGk=", Filename: filename, Size: int64(len(data))}, nil
}

func (f *fakeListings) CreateListing(ctx context.Context, data api.CreateListingData) (*api.CreateListingResponse, error) {
	f.creates++
	f.lastCreate = data
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &api.CreateListingResponse{ID: 11, Title: data.Title, Price: data.Price, Status: "active"}, nil
}

func writeImage(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func validDraft(imagePath string) Draft {
	return Draft{
		Title:       "Icon pack",
		Description: "200 crisp icons",
		Price:       "12.5",
		Currency:    "USDT",
		Category:    "graphics",
		ImagePath:   imagePath,
	}
}

func testPublisher(t *testing.T, listings *fakeListings) *Publisher {
	t.Helper()
	return &Publisher{
		API:          listings,
		Bridge:       bridge.NewChrome(),
		Session:      authedSession(t),
		Log:          zerolog.Nop(),
		TokenAddress: "0x1234567890123456789012345678901234567890",
	}
}

func TestSubmitPublishesListing(t *testing.T) {
	t.Parallel()

	listings := &fakeListings{}
	p := testPublisher(t, listings)

	resp, err := p.Submit(context.Background(), validDraft(writeImage(t, 512)))
	require.NoError(t, err)
	require.Equal(t, 11, resp.ID)

	require.Equal(t, 1, listings.uploads)
	require.Equal(t, "cover.png", listings.lastUpload)
	require.Equal(t, "42", listings.lastCreate.SellerID)
	require.Equal(t, "graphics", listings.lastCreate.Category)
	require.Equal(t, "12.5", listings.lastCreate.Price.String())
	require.NotEmpty(t, listings.lastCreate.ImageDataURL)
}

func TestSubmitValidatesBeforeNetwork(t *testing.T) {
	t.Parallel()

	img := writeImage(t, 512)
	cases := []struct {
		name  string
		draft Draft
		field string
	}{
		{"missing title", Draft{Description: "d", Price: "1", ImagePath: img}, "title"},
		{"missing description", Draft{Title: "t", Price: "1", ImagePath: img}, "description"},
		{"missing image", Draft{Title: "t", Description: "d", Price: "1"}, "image"},
		{"zero price", Draft{Title: "t", Description: "d", Price: "0", ImagePath: img}, "price"},
		{"negative price", Draft{Title: "t", Description: "d", Price: "-3", ImagePath: img}, "price"},
		{"junk price", Draft{Title: "t", Description: "d", Price: "abc", ImagePath: img}, "price"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			listings := &fakeListings{}
			p := testPublisher(t, listings)
			_, err := p.Submit(context.Background(), tc.draft)
			var verr *api.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
			require.Zero(t, listings.uploads, "validation failures must not reach the network")
		})
	}
}

func TestSubmitRejectsOversizedImage(t *testing.T) {
	t.Parallel()

	listings := &fakeListings{}
	p := testPublisher(t, listings)

	_, err := p.Submit(context.Background(), validDraft(writeImage(t, api.MaxUploadSize+1)))
	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "image", verr.Field)
	require.Zero(t, listings.uploads)
}

func TestSubmitRequiresIdentity(t *testing.T) {
	t.Parallel()

	listings := &fakeListings{}
	p := testPublisher(t, listings)
	p.Session = &Session{Log: zerolog.Nop()}

	_, err := p.Submit(context.Background(), validDraft(writeImage(t, 512)))
	require.ErrorIs(t, err, api.ErrAuthRequired)
	require.Zero(t, listings.uploads)
}

func TestDoubleSubmitGuard(t *testing.T) {
	t.Parallel()

	p := testPublisher(t, &fakeListings{})

	require.True(t, p.Begin())
	require.True(t, p.InFlight())
	require.False(t, p.Begin(), "second submission while one is outstanding")

	p.Finish()
	require.False(t, p.InFlight())
	require.True(t, p.Begin(), "retry allowed after the call resolves")
}

func TestCreateListingFailureSurfaces(t *testing.T) {
	t.Parallel()

	listings := &fakeListings{createErr: &api.APIError{StatusCode: 400, Message: "invalid category"}}
	p := testPublisher(t, listings)

	_, err := p.Submit(context.Background(), validDraft(writeImage(t, 512)))
	require.Error(t, err)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 1, listings.uploads, "upload ran before the rejected create")
}
