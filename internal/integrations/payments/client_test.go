package payments

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type fakeSessions struct {
	lastParams *stripe.CheckoutSessionParams
	session    *stripe.CheckoutSession
	err        error
}

func (f *fakeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.lastParams = params
	return f.session, f.err
}

func (f *fakeSessions) Get(_ string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.lastParams = params
	return f.session, f.err
}

func TestCreateCheckoutSessionBuildsLineItems(t *testing.T) {
	fake := &fakeSessions{session: &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout/cs_1"}}
	c := newClient(fake, "USD", "https://ok", "https://cancel", logger.NewNop())

	expiresAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session, err := c.CreateCheckoutSession(context.Background(), &CheckoutRequest{
		BookingID: "b-1",
		Studio:    "MAIN STUDIO",
		Items: []domain.LineItem{
			{ServiceID: "makeup", Name: "Makeup", Quantity: 2, PricePerHour: 2000},
			{ServiceID: "steamer", Name: "Steamer", Quantity: 0, PricePerHour: 3000},
		},
		StudioCost:    15000,
		Surcharge:     500,
		CustomerEmail: "jane@example.com",
		ExpiresAt:     expiresAt,
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_1", session.ID)
	assert.Equal(t, "https://checkout/cs_1", session.URL)

	p := fake.lastParams
	require.NotNil(t, p)
	require.Len(t, p.LineItems, 3)

	assert.Equal(t, "Makeup", *p.LineItems[0].PriceData.ProductData.Name)
	assert.Equal(t, int64(2000), *p.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *p.LineItems[0].Quantity)
	assert.Equal(t, "usd", *p.LineItems[0].PriceData.Currency)

	assert.Equal(t, "Studio Rental - MAIN STUDIO", *p.LineItems[1].PriceData.ProductData.Name)
	assert.Equal(t, int64(15000), *p.LineItems[1].PriceData.UnitAmount)

	assert.Equal(t, SurchargeName, *p.LineItems[2].PriceData.ProductData.Name)
	assert.Equal(t, int64(500), *p.LineItems[2].PriceData.UnitAmount)

	assert.Equal(t, "b-1", p.Metadata[MetadataBookingID])
	assert.Equal(t, "jane@example.com", *p.CustomerEmail)
	assert.Equal(t, expiresAt.Unix(), *p.ExpiresAt)
	assert.Equal(t, "checkout-b-1", *p.IdempotencyKey)
	assert.True(t, *p.PhoneNumberCollection.Enabled)
}

func TestCreateCheckoutSessionNothingToCharge(t *testing.T) {
	c := newClient(&fakeSessions{}, "usd", "", "", logger.NewNop())

	_, err := c.CreateCheckoutSession(context.Background(), &CheckoutRequest{BookingID: "b-1"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRetrieveSessionMapsFields(t *testing.T) {
	fake := &fakeSessions{session: &stripe.CheckoutSession{
		ID:              "cs_2",
		Status:          stripe.CheckoutSessionStatusComplete,
		PaymentStatus:   stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal:     15500,
		Metadata:        map[string]string{MetadataBookingID: "b-2"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Name: "Jane", Email: "jane@example.com", Phone: "+1555"},
	}}
	c := newClient(fake, "usd", "", "", logger.NewNop())

	session, err := c.RetrieveSession(context.Background(), "cs_2")
	require.NoError(t, err)
	assert.True(t, session.IsPaid())
	assert.False(t, session.IsExpired())
	assert.Equal(t, "b-2", session.BookingID)
	assert.Equal(t, "Jane", session.CustomerName)
	assert.Equal(t, "+1555", session.CustomerPhone)
	assert.EqualValues(t, 15500, session.AmountTotal)
}

func TestRetrieveSessionNotFound(t *testing.T) {
	fake := &fakeSessions{err: &stripe.Error{HTTPStatusCode: http.StatusNotFound, Msg: "No such checkout.session"}}
	c := newClient(fake, "usd", "", "", logger.NewNop())

	_, err := c.RetrieveSession(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
