package diary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthsEarlier(t *testing.T) {
	tests := []struct {
		name   string
		target time.Time
		months int
		want   time.Time
	}{
		{"plain subtraction", d(2026, 6, 15), 3, d(2026, 3, 15)},
		{"across year boundary", d(2026, 2, 10), 4, d(2025, 10, 10)},
		{"clamps to shorter month", d(2026, 3, 31), 1, d(2026, 2, 28)},
		{"clamps to leap february", d(2028, 3, 31), 1, d(2028, 2, 29)},
		{"may 31 back two months", d(2026, 5, 31), 2, d(2026, 3, 31)},
		{"december 31 back one month", d(2026, 12, 31), 1, d(2026, 11, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, monthsEarlier(tt.target, tt.months))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, daysBetween(d(2026, 2, 1), d(2026, 2, 1)))
	assert.Equal(t, 7, daysBetween(d(2026, 2, 1), d(2026, 2, 8)))
	assert.Equal(t, -1, daysBetween(d(2026, 2, 1), d(2026, 1, 31)))

	// clock time is irrelevant
	late := time.Date(2026, 2, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2026, 2, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, daysBetween(late, early))
}

func TestRuleActive(t *testing.T) {
	today := d(2026, 2, 1)

	assert.True(t, ruleActive(today, d(2026, 5, 1), 3), "activates exactly at the window boundary")
	assert.True(t, ruleActive(today, d(2026, 3, 15), 3))
	assert.True(t, ruleActive(today, d(2026, 2, 1), 3), "due today is still active")
	assert.False(t, ruleActive(today, d(2026, 5, 2), 3), "one day outside the window")
	assert.False(t, ruleActive(today, d(2026, 1, 31), 3), "passed dates never activate")

	// a June 1st lease end with a three-month lookback
	end := d(2025, 6, 1)
	assert.True(t, ruleActive(d(2025, 3, 15), end, 3))
	assert.False(t, ruleActive(d(2025, 2, 1), end, 3))
	assert.False(t, ruleActive(d(2025, 6, 2), end, 3))
}
