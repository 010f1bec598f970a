package validator

import (
	"testing"

	"resourcebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedBooking(id, timeFrom, timeTo, bufferFrom, bufferTo string) *model.Booking {
	return &model.Booking{
		ID:         id,
		Date:       "2025-03-14",
		Resource:   "MainConfRoom",
		TimeFrom:   timeFrom,
		TimeTo:     timeTo,
		BufferFrom: bufferFrom,
		BufferTo:   bufferTo,
	}
}

func TestDecide_EmptyStoreAdmits(t *testing.T) {
	checker := NewOverlapChecker(10)

	decision, err := checker.Decide(nil, "11:00", "12:00")

	require.NoError(t, err)
	assert.True(t, decision.Admitted())
	assert.Equal(t, "10:50", decision.BufferFrom.String())
	assert.Equal(t, "12:10", decision.BufferTo.String())
}

func TestDecide(t *testing.T) {
	checker := NewOverlapChecker(10)
	existing := []*model.Booking{
		storedBooking("a", "11:00", "11:00", "10:50", "11:10"),
	}

	tests := []struct {
		name         string
		timeFrom     string
		timeTo       string
		wantAdmitted bool
		wantBuffer   [2]string
	}{
		{
			name:         "buffered ranges overlap",
			timeFrom:     "11:05",
			timeTo:       "11:30",
			wantAdmitted: false,
			wantBuffer:   [2]string{"10:55", "11:40"},
		},
		{
			name:         "buffer start inside stored buffer",
			timeFrom:     "11:15",
			timeTo:       "11:30",
			wantAdmitted: false,
			wantBuffer:   [2]string{"11:05", "11:40"},
		},
		{
			name:         "buffer start touches stored buffer end",
			timeFrom:     "11:20",
			timeTo:       "11:30",
			wantAdmitted: true,
			wantBuffer:   [2]string{"11:10", "11:40"},
		},
		{
			name:         "ends exactly where stored buffer starts",
			timeFrom:     "09:00",
			timeTo:       "10:40",
			wantAdmitted: true,
			wantBuffer:   [2]string{"08:50", "10:50"},
		},
		{
			name:         "well after",
			timeFrom:     "13:00",
			timeTo:       "14:00",
			wantAdmitted: true,
			wantBuffer:   [2]string{"12:50", "14:10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := checker.Decide(existing, tt.timeFrom, tt.timeTo)
			require.NoError(t, err)

			assert.Equal(t, tt.wantAdmitted, decision.Admitted())
			assert.Equal(t, tt.wantBuffer[0], decision.BufferFrom.String())
			assert.Equal(t, tt.wantBuffer[1], decision.BufferTo.String())
			if !tt.wantAdmitted {
				assert.Equal(t, "a", decision.Conflict.ID)
				assert.Equal(t, "10:50", decision.ConflictFrom)
				assert.Equal(t, "11:10", decision.ConflictTo)
			}
		})
	}
}

func TestDecide_FallsBackToRequestedTimes(t *testing.T) {
	checker := NewOverlapChecker(10)
	legacy := storedBooking("legacy", "11:00", "12:00", "", "")

	decision, err := checker.Decide([]*model.Booking{legacy}, "12:05", "12:30")

	require.NoError(t, err)
	assert.False(t, decision.Admitted())
	assert.Equal(t, "10:50", decision.ConflictFrom)
	assert.Equal(t, "12:10", decision.ConflictTo)
}

func TestDecide_SkipsUnreadableRecords(t *testing.T) {
	checker := NewOverlapChecker(10)
	broken := storedBooking("broken", "soon", "later", "", "")

	decision, err := checker.Decide([]*model.Booking{broken}, "11:00", "12:00")

	require.NoError(t, err)
	assert.True(t, decision.Admitted())
}

func TestDecide_ReportsFirstConflict(t *testing.T) {
	checker := NewOverlapChecker(10)
	existing := []*model.Booking{
		storedBooking("morning", "08:00", "09:00", "07:50", "09:10"),
		storedBooking("noon", "12:00", "13:00", "11:50", "13:10"),
		storedBooking("late", "12:30", "14:00", "12:20", "14:10"),
	}

	decision, err := checker.Decide(existing, "12:40", "12:50")

	require.NoError(t, err)
	require.False(t, decision.Admitted())
	assert.Equal(t, "noon", decision.Conflict.ID)
}

func TestDecide_ZeroBuffer(t *testing.T) {
	checker := NewOverlapChecker(0)
	existing := []*model.Booking{storedBooking("a", "10:00", "11:00", "10:00", "11:00")}

	decision, err := checker.Decide(existing, "11:00", "12:00")

	require.NoError(t, err)
	assert.True(t, decision.Admitted())
}

func TestDecide_ClampsAtDayBoundaries(t *testing.T) {
	checker := NewOverlapChecker(10)

	decision, err := checker.Decide(nil, "00:05", "23:55")

	require.NoError(t, err)
	assert.Equal(t, "00:00", decision.BufferFrom.String())
	assert.Equal(t, "23:59", decision.BufferTo.String())
}

func TestDecide_InvalidCandidate(t *testing.T) {
	checker := NewOverlapChecker(10)

	_, err := checker.Decide(nil, "noon", "13:00")
	assert.Error(t, err)
}
