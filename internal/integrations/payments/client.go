package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// sessionBackend часть API Stripe для checkout сессий
type sessionBackend interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Client клиент Stripe Checkout
type Client struct {
	sessions   sessionBackend
	currency   string
	successURL string
	cancelURL  string
	log        Logger
}

// NewClient создает клиент Stripe с собственным API ключом
func NewClient(secretKey, currency, successURL, cancelURL string, log Logger) *Client {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return newClient(sc.CheckoutSessions, currency, successURL, cancelURL, log)
}

func newClient(sessions sessionBackend, currency, successURL, cancelURL string, log Logger) *Client {
	return &Client{
		sessions:   sessions,
		currency:   strings.ToLower(currency),
		successURL: successURL,
		cancelURL:  cancelURL,
		log:        log,
	}
}

// CreateCheckoutSession создает сессию оплаты бронирования.
// ID бронирования используется как ключ идемпотентности
func (c *Client) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*Session, error) {
	params, err := c.buildSessionParams(req)
	if err != nil {
		return nil, err
	}
	params.Context = ctx

	c.log.Info("Creating checkout session for booking=%s, lines=%d", req.BookingID, len(params.LineItems))

	s, err := c.sessions.New(params)
	if err != nil {
		return nil, mapStripeError(err)
	}

	return fromStripeSession(s), nil
}

// RetrieveSession получает checkout сессию по ID
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.sessions.Get(sessionID, params)
	if err != nil {
		return nil, mapStripeError(err)
	}

	return fromStripeSession(s), nil
}

func (c *Client) buildSessionParams(req *CheckoutRequest) (*stripe.CheckoutSessionParams, error) {
	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidRequest)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items)+2)
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			continue
		}
		lineItems = append(lineItems, c.lineItem(item.Name, int64(item.PricePerHour), int64(item.Quantity)))
	}

	if req.StudioCost > 0 {
		name := StudioRentalName
		if req.Studio != "" {
			name = fmt.Sprintf("%s - %s", StudioRentalName, req.Studio)
		}
		if req.Period != "" {
			name = fmt.Sprintf("%s (%s)", name, req.Period)
		}
		lineItems = append(lineItems, c.lineItem(name, int64(req.StudioCost), 1))
	}

	if req.Surcharge > 0 {
		lineItems = append(lineItems, c.lineItem(SurchargeName, int64(req.Surcharge), 1))
	}

	if len(lineItems) == 0 {
		return nil, fmt.Errorf("%w: nothing to charge", ErrInvalidRequest)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		LineItems:         lineItems,
		ClientReferenceID: stripe.String(req.BookingID),
		Metadata:          map[string]string{MetadataBookingID: req.BookingID},
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if !req.ExpiresAt.IsZero() {
		params.ExpiresAt = stripe.Int64(req.ExpiresAt.Unix())
	}
	params.SetIdempotencyKey("checkout-" + req.BookingID)

	return params, nil
}

func (c *Client) lineItem(name string, unitAmount, quantity int64) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(c.currency),
			UnitAmount: stripe.Int64(unitAmount),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(name),
			},
		},
		Quantity: stripe.Int64(quantity),
	}
}

func fromStripeSession(s *stripe.CheckoutSession) *Session {
	session := &Session{
		ID:            s.ID,
		URL:           s.URL,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   types.Cents(s.AmountTotal),
	}
	if s.Metadata != nil {
		session.BookingID = s.Metadata[MetadataBookingID]
	}
	if session.BookingID == "" {
		session.BookingID = s.ClientReferenceID
	}
	if s.CustomerDetails != nil {
		session.CustomerName = s.CustomerDetails.Name
		session.CustomerEmail = s.CustomerDetails.Email
		session.CustomerPhone = s.CustomerDetails.Phone
	}
	return session
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, stripeErr.Msg)
		}
		if stripeErr.Type == stripe.ErrorTypeInvalidRequest {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, stripeErr.Msg)
		}
		return fmt.Errorf("%w: %s", ErrProvider, stripeErr.Msg)
	}
	return fmt.Errorf("%w: %v", ErrProvider, err)
}
