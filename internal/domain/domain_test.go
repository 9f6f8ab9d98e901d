package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeat(t *testing.T) {
	testCases := []struct {
		label   string
		want    Seat
		wantErr bool
	}{
		{label: "1", want: 1},
		{label: "6", want: 6},
		{label: " 4 ", want: 4},
		{label: "04", want: 4},
		{label: "0", wantErr: true},
		{label: "7", wantErr: true},
		{label: "-2", wantErr: true},
		{label: "2A", wantErr: true},
		{label: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			seat, err := ParseSeat(tc.label, 6)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrSeatUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, seat)
		})
	}
}

func TestSeat_JSONUsesLabel(t *testing.T) {
	data, err := json.Marshal(Booking{FlightNumber: "AI101", Seat: 3, Passenger: "Ravi"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seat":"3"`)

	var decoded Booking
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Seat(3), decoded.Seat)
}

func TestNormalizeFlightNumber(t *testing.T) {
	assert.Equal(t, "AI101", NormalizeFlightNumber(" ai101\t"))
	assert.Equal(t, "6E220", NormalizeFlightNumber("6e220"))
}

func TestNormalizePlace(t *testing.T) {
	assert.Equal(t, "Mumbai", NormalizePlace("mumbai"))
	assert.Equal(t, "New Delhi", NormalizePlace("  NEW DELHI "))
	assert.Equal(t, "", NormalizePlace("   "))
}
