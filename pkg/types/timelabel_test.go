package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeLabel
		minutes int
		wantErr bool
	}{
		{name: "midnight", input: "12:00 AM", want: "12:00 AM", minutes: 0},
		{name: "noon", input: "12:00 PM", want: "12:00 PM", minutes: 720},
		{name: "morning", input: "8:00 AM", want: "8:00 AM", minutes: 480},
		{name: "evening", input: "9:30 PM", want: "9:30 PM", minutes: 1290},
		{name: "lowercase suffix and spaces", input: "  2:30 pm ", want: "2:30 PM", minutes: 870},
		{name: "leading zero hour", input: "08:00 AM", want: "8:00 AM", minutes: 480},
		{name: "sentinel", input: "---:--", want: Unavailable, minutes: MinutesUnavailable},
		{name: "24h format", input: "14:00", wantErr: true},
		{name: "hour out of range", input: "13:00 PM", wantErr: true},
		{name: "zero hour", input: "0:30 AM", wantErr: true},
		{name: "minutes out of range", input: "1:60 PM", wantErr: true},
		{name: "single digit minutes", input: "1:5 PM", wantErr: true},
		{name: "bad suffix", input: "1:00 XM", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeLabel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			m, err := got.Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, m)
		})
	}
}

func TestFromMinutesRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 30 {
		label := FromMinutes(m)
		got, err := label.Minutes()
		require.NoError(t, err)
		assert.Equal(t, m, got, "label %s", label)
		assert.Equal(t, label, FromMinutes(got))
	}
}

func TestFromMinutesOutOfRange(t *testing.T) {
	assert.Equal(t, Unavailable, FromMinutes(-1))
	assert.Equal(t, Unavailable, FromMinutes(MinutesPerDay))
	assert.Equal(t, Unavailable, FromMinutes(MinutesUnavailable))
}

func TestSentinelNeverEqualsRealSlot(t *testing.T) {
	m, err := Unavailable.Minutes()
	require.NoError(t, err)
	assert.Greater(t, m, MinutesPerDay)
}

func TestMinutesOrUnavailable(t *testing.T) {
	assert.Equal(t, 600, TimeLabel("10:00 AM").MinutesOrUnavailable())
	assert.Equal(t, MinutesUnavailable, TimeLabel("garbage").MinutesOrUnavailable())
}

func TestTimeLabelJSON(t *testing.T) {
	var v struct {
		Start TimeLabel `json:"start"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"2:00 pm"}`), &v))
	assert.Equal(t, TimeLabel("2:00 PM"), v.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"25:00"}`), &v))
}

func TestCents(t *testing.T) {
	assert.Equal(t, "12.34", Cents(1234).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-1.50", Cents(-150).String())
	assert.Equal(t, Cents(6000), Cents(2000).Mul(3))

	// 50.00/час * 90 минут = 75.00
	assert.Equal(t, Cents(7500), Cents(5000).PerMinutes(90))
	// 33.33/час * 30 минут = 16.665 -> 16.67
	assert.Equal(t, Cents(1667), Cents(3333).PerMinutes(30))
}
