package services

import (
	"testing"
	"time"

	"github.com/enzogallo/discover-backend/internal/clock"
	"github.com/enzogallo/discover-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func ts(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestAdvanceStreakFirstPost(t *testing.T) {
	clk := clock.NewFixed(ts(2024, 1, 10, 9))
	user := &models.User{ID: "u1"}

	changed := AdvanceStreak(user, ts(2024, 1, 10, 9), clk)

	assert.True(t, changed)
	assert.Equal(t, 1, user.CurrentStreak)
	assert.Equal(t, 1, user.LongestStreak)
	assert.Equal(t, ts(2024, 1, 10, 9), *user.LastPostDate)
}

func TestAdvanceStreakContinuesFromYesterday(t *testing.T) {
	clk := clock.NewFixed(ts(2024, 1, 11, 8))
	last := ts(2024, 1, 10, 22)
	user := &models.User{ID: "u1", CurrentStreak: 4, LongestStreak: 6, LastPostDate: &last}

	AdvanceStreak(user, ts(2024, 1, 11, 8), clk)

	assert.Equal(t, 5, user.CurrentStreak)
	assert.Equal(t, 6, user.LongestStreak)
}

func TestAdvanceStreakRestartsAfterGap(t *testing.T) {
	clk := clock.NewFixed(ts(2024, 1, 14, 8))
	last := ts(2024, 1, 11, 8)
	user := &models.User{ID: "u1", CurrentStreak: 7, LongestStreak: 7, LastPostDate: &last}

	AdvanceStreak(user, ts(2024, 1, 14, 8), clk)

	assert.Equal(t, 1, user.CurrentStreak)
	assert.Equal(t, 7, user.LongestStreak, "longest streak keeps the historical max")
}

func TestAdvanceStreakSameDayIsNoOp(t *testing.T) {
	clk := clock.NewFixed(ts(2024, 1, 10, 18))
	last := ts(2024, 1, 10, 9)
	user := &models.User{ID: "u1", CurrentStreak: 3, LongestStreak: 3, LastPostDate: &last}

	changed := AdvanceStreak(user, ts(2024, 1, 10, 18), clk)

	assert.False(t, changed)
	assert.Equal(t, 3, user.CurrentStreak)
	assert.Equal(t, ts(2024, 1, 10, 9), *user.LastPostDate, "lastPostDate untouched on the no-op path")
}

func TestAdvanceStreakFutureLastPostIsNoOp(t *testing.T) {
	// Clock skew: a stored lastPostDate after "today" must not corrupt the
	// counters.
	clk := clock.NewFixed(ts(2024, 1, 10, 9))
	last := ts(2024, 1, 12, 9)
	user := &models.User{ID: "u1", CurrentStreak: 2, LongestStreak: 2, LastPostDate: &last}

	changed := AdvanceStreak(user, ts(2024, 1, 10, 9), clk)

	assert.False(t, changed)
	assert.Equal(t, 2, user.CurrentStreak)
}

func TestAdvanceStreakScenario(t *testing.T) {
	// Fresh user posts, continues the next day, skips two days, restarts.
	user := &models.User{ID: "u1"}

	first := ts(2024, 1, 10, 9)
	AdvanceStreak(user, first, clock.NewFixed(first))
	assert.Equal(t, 1, user.CurrentStreak)
	assert.Equal(t, 1, user.LongestStreak)
	assert.Equal(t, first, *user.LastPostDate)

	second := ts(2024, 1, 11, 8)
	AdvanceStreak(user, second, clock.NewFixed(second))
	assert.Equal(t, 2, user.CurrentStreak)
	assert.Equal(t, 2, user.LongestStreak)

	fourth := ts(2024, 1, 14, 8)
	AdvanceStreak(user, fourth, clock.NewFixed(fourth))
	assert.Equal(t, 1, user.CurrentStreak)
	assert.Equal(t, 2, user.LongestStreak)
}

func TestLongestStreakMonotonic(t *testing.T) {
	user := &models.User{ID: "u1"}
	day := ts(2024, 3, 1, 12)

	prevLongest := 0
	for i := 0; i < 10; i++ {
		// Every third day is skipped, breaking the run periodically.
		if i%3 == 2 {
			day = day.AddDate(0, 0, 2)
		} else {
			day = day.AddDate(0, 0, 1)
		}
		AdvanceStreak(user, day, clock.NewFixed(day))
		assert.GreaterOrEqual(t, user.LongestStreak, prevLongest)
		assert.GreaterOrEqual(t, user.LongestStreak, user.CurrentStreak)
		prevLongest = user.LongestStreak
	}
}

func TestActiveStreakDecaysWithoutWrite(t *testing.T) {
	last := ts(2024, 1, 10, 9)
	user := &models.User{ID: "u1", CurrentStreak: 5, LongestStreak: 5, LastPostDate: &last}

	sameDay := clock.NewFixed(ts(2024, 1, 10, 20))
	assert.Equal(t, 5, ActiveStreak(user, sameDay.Now(), sameDay))

	nextDay := clock.NewFixed(ts(2024, 1, 11, 8))
	assert.Equal(t, 5, ActiveStreak(user, nextDay.Now(), nextDay))

	twoDaysLater := clock.NewFixed(ts(2024, 1, 12, 8))
	assert.Equal(t, 0, ActiveStreak(user, twoDaysLater.Now(), twoDaysLater))
	assert.Equal(t, 5, user.CurrentStreak, "stored counter still reads 5 until the next post")
}

func TestActiveStreakZeroBeforeFirstPost(t *testing.T) {
	clk := clock.NewFixed(ts(2024, 1, 10, 9))
	user := &models.User{ID: "u1"}
	assert.Equal(t, 0, ActiveStreak(user, clk.Now(), clk))
}
