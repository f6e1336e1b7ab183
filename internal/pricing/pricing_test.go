package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Studios: []domain.Studio{{ID: "a", Name: "Studio A", PricePerHour: 5000}},
		Services: []domain.Service{
			{ID: "makeup", Name: "Makeup", PricePerHour: 2000},
			{ID: "steamer", Name: "Steamer", PricePerHour: 3000},
			{ID: "led", Name: "LED Lights + (2) Soft Boxes", PricePerHour: 5000},
		},
	}
}

func TestRecomputeAndVerifyExactMatch(t *testing.T) {
	in := Input{
		Items:      []Line{{ServiceID: "makeup", Quantity: 2}, {ServiceID: "steamer", Quantity: 1}},
		Subtotal:   7000,
		StudioCost: 10000,
		Total:      17000,
	}

	res, err := RecomputeAndVerify(in, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, types.Cents(7000), res.Subtotal)
	assert.Equal(t, types.Cents(17000), res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Makeup", res.Items[0].Name)
	assert.Equal(t, types.Cents(2000), res.Items[0].PricePerHour)
}

func TestRecomputeAndVerifyOneCentOff(t *testing.T) {
	in := Input{
		Items:      []Line{{ServiceID: "makeup", Quantity: 2}},
		Subtotal:   4001,
		StudioCost: 0,
		Total:      4001,
	}

	_, err := RecomputeAndVerify(in, testCatalog())
	assert.ErrorIs(t, err, ErrSubtotalMismatch)
}

func TestRecomputeAndVerifyErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{
			name:    "unknown product",
			in:      Input{Items: []Line{{ServiceID: "drone", Quantity: 1}}},
			wantErr: ErrUnknownProduct,
		},
		{
			name:    "negative quantity",
			in:      Input{Items: []Line{{ServiceID: "makeup", Quantity: -1}}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "total mismatch",
			in: Input{
				Items:      []Line{{ServiceID: "led", Quantity: 1}},
				Subtotal:   5000,
				StudioCost: 10000,
				Total:      14999,
			},
			wantErr: ErrTotalMismatch,
		},
		{
			name: "studio cost mismatch",
			in: Input{
				Subtotal:           0,
				StudioCost:         100,
				Total:              100,
				ExpectedStudioCost: ptr.Ptr(types.Cents(10000)),
			},
			wantErr: ErrStudioCostMismatch,
		},
		{
			name: "surcharge not included by client",
			in: Input{
				Subtotal:   0,
				StudioCost: 10000,
				Total:      10000,
				Surcharge:  500,
			},
			wantErr: ErrTotalMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RecomputeAndVerify(tt.in, testCatalog())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsIntegrityError(err))
		})
	}
}

func TestRecomputeAndVerifySurchargeAndZeroQuantity(t *testing.T) {
	in := Input{
		Items:              []Line{{ServiceID: "makeup", Quantity: 0}},
		Subtotal:           0,
		StudioCost:         10000,
		Surcharge:          500,
		Total:              10500,
		ExpectedStudioCost: ptr.Ptr(types.Cents(10000)),
	}

	res, err := RecomputeAndVerify(in, testCatalog())
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, types.Cents(500), res.Surcharge)
}

func TestStudioCost(t *testing.T) {
	studio := &domain.Studio{PricePerHour: 5000}

	assert.Equal(t, types.Cents(10000), StudioCost(studio, 120))
	assert.Equal(t, types.Cents(7500), StudioCost(studio, 90))
	assert.Equal(t, types.Cents(0), StudioCost(nil, 90))
	assert.Equal(t, types.Cents(0), StudioCost(studio, -30))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "subtotal_mismatch", Reason(ErrSubtotalMismatch))
	assert.Equal(t, "other", Reason(errors.New("boom")))
	assert.False(t, IsIntegrityError(errors.New("boom")))
}
