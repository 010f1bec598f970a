package timeofday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Clock
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "without leading zero", input: "9:05", want: 545},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "surrounding spaces", input: " 11:10 ", want: 670},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "single digit minute", input: "10:5", wantErr: true},
		{name: "dash separator", input: "10-30", wantErr: true},
		{name: "signed hour", input: "+9:30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "seconds", input: "10:30:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "00:00", Clock(0).String())
	assert.Equal(t, "09:05", Clock(545).String())
	assert.Equal(t, "23:59", EndOfDay.String())
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minutes int
		want    string
	}{
		{name: "buffer before", input: "11:00", minutes: -10, want: "10:50"},
		{name: "buffer after", input: "11:00", minutes: 10, want: "11:10"},
		{name: "hour rollover forward", input: "10:55", minutes: 10, want: "11:05"},
		{name: "hour rollover backward", input: "11:05", minutes: -10, want: "10:55"},
		{name: "clamps at midnight", input: "00:05", minutes: -10, want: "00:00"},
		{name: "clamps at end of day", input: "23:55", minutes: 10, want: "23:59"},
		{name: "zero offset", input: "7:15", minutes: 0, want: "07:15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Adjust(tt.input, tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdjust_InvalidInput(t *testing.T) {
	_, err := Adjust("25:00", -10)
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestAdjust_ProducesValidClocksAndRoundTrips(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		in := Clock(m).String()

		before, err := Adjust(in, -10)
		require.NoError(t, err)
		_, err = Parse(before)
		require.NoError(t, err, "adjust(%s, -10) = %s is not a valid clock", in, before)

		after, err := Adjust(in, 10)
		require.NoError(t, err)
		_, err = Parse(after)
		require.NoError(t, err, "adjust(%s, +10) = %s is not a valid clock", in, after)

		if m >= 10 {
			back, err := Adjust(before, 10)
			require.NoError(t, err)
			assert.Equal(t, in, back)
		}
		if m <= int(EndOfDay)-10 {
			back, err := Adjust(after, -10)
			require.NoError(t, err)
			assert.Equal(t, in, back)
		}
	}
}

func TestOverlaps(t *testing.T) {
	stored := [2]Clock{MustParse("10:50"), MustParse("11:10")}

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{name: "inside", from: "10:55", to: "11:05", want: true},
		{name: "straddles end", from: "10:55", to: "11:40", want: true},
		{name: "straddles start", from: "10:00", to: "10:51", want: true},
		{name: "covers", from: "10:00", to: "12:00", want: true},
		{name: "touches end", from: "11:10", to: "11:40", want: false},
		{name: "touches start", from: "10:00", to: "10:50", want: false},
		{name: "after", from: "11:20", to: "11:40", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(stored[0], stored[1], MustParse(tt.from), MustParse(tt.to))
			assert.Equal(t, tt.want, got)
		})
	}
}
