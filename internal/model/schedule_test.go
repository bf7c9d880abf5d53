package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		sched   Schedule
		wantErr bool
	}{
		{name: "empty is valid", sched: Schedule{}},
		{name: "single interval", sched: Schedule{{Start: 9, End: 12}}},
		{name: "two sorted intervals", sched: Schedule{{Start: 11, End: 12}, {Start: 14, End: 18}}},
		{name: "touching intervals", sched: Schedule{{Start: 11, End: 14}, {Start: 14, End: 18}}},
		{name: "start equals end", sched: Schedule{{Start: 12, End: 12}}, wantErr: true},
		{name: "start after end", sched: Schedule{{Start: 18, End: 9}}, wantErr: true},
		{name: "negative start", sched: Schedule{{Start: -1, End: 9}}, wantErr: true},
		{name: "end past midnight", sched: Schedule{{Start: 22, End: 25}}, wantErr: true},
		{name: "overlapping", sched: Schedule{{Start: 11, End: 15}, {Start: 14, End: 18}}, wantErr: true},
		{name: "unsorted", sched: Schedule{{Start: 14, End: 18}, {Start: 11, End: 12}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sched.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleJSONWireForm(t *testing.T) {
	// The store keeps the legacy pair-array form.
	sched := Schedule{{Start: 11, End: 12}, {Start: 14, End: 18.5}}
	data, err := sched.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[[11,12],[14,18.5]]`, string(data))

	var back Schedule
	require.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, sched, back)
}

func TestClockNormalization(t *testing.T) {
	assert.Equal(t, "18:30", NormalizeClock("18:30:00"))
	assert.Equal(t, "18:30", NormalizeClock("18:30"))
	assert.Equal(t, "18:30:00", StoreClock("18:30"))
	assert.Equal(t, "18:30:00", StoreClock("18:30:00"))
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("18:30")
	require.NoError(t, err)
	assert.InDelta(t, 18.5, got, 1e-9)

	got, err = ParseClock("09:00:00")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, got, 1e-9)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("930")
	assert.Error(t, err)
}

func TestFormatHour(t *testing.T) {
	assert.Equal(t, "18:00", FormatHour(18))
	assert.Equal(t, "18:30", FormatHour(18.5))
	assert.Equal(t, "9:00", FormatHour(9)) // no hour padding, widget style
}
