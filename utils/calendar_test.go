package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGridPadsToWholeWeeks(t *testing.T) {
	weeks := MonthGrid(2025, time.March)
	require.Len(t, weeks, 6)
	for _, week := range weeks {
		require.Len(t, week, 7)
	}

	// March 2025 starts on a Saturday, so the grid opens on the preceding
	// Monday and closes after the trailing April days.
	assert.Equal(t, "2025-02-24", weeks[0][0].Date)
	assert.False(t, weeks[0][0].InMonth)
	assert.Equal(t, "2025-03-01", weeks[0][5].Date)
	assert.True(t, weeks[0][5].InMonth)
	assert.Equal(t, "2025-04-06", weeks[5][6].Date)
	assert.False(t, weeks[5][6].InMonth)
}

func TestMonthGridExactWeeksNeedNoPadding(t *testing.T) {
	// February 2021: 28 days starting on a Monday.
	weeks := MonthGrid(2021, time.February)
	require.Len(t, weeks, 4)
	assert.Equal(t, "2021-02-01", weeks[0][0].Date)
	assert.Equal(t, "2021-02-28", weeks[3][6].Date)
	for _, week := range weeks {
		for _, day := range week {
			assert.True(t, day.InMonth)
		}
	}
}

func TestMonthGridDayNumbersFollowDates(t *testing.T) {
	weeks := MonthGrid(2025, time.March)
	assert.Equal(t, 24, weeks[0][0].Day)
	assert.Equal(t, 1, weeks[0][5].Day)
	assert.Equal(t, 31, weeks[5][0].Day)
}
