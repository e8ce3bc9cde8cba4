package services

import (
	"time"

	"github.com/enzogallo/discover-backend/internal/clock"
	"github.com/enzogallo/discover-backend/internal/models"
)

// AdvanceStreak updates a user's streak counters for a post made at
// postTime and reports whether anything changed. The stored streak counts
// consecutive calendar days with at least one post, measured backward from
// the most recent post:
//
//   - no previous post: the run starts at 1
//   - last post was yesterday: the run continues, +1
//   - last post was before yesterday: the run was broken, restart at 1
//   - last post was today (or later, under clock skew): no-op, so a double
//     invocation on the same day cannot double-increment. The daily-post
//     gate is the primary guard; this branch is the safety net.
//
// longestStreak never decreases and always ends >= currentStreak.
func AdvanceStreak(user *models.User, postTime time.Time, clk clock.Clock) bool {
	today := clk.StartOfDay(postTime)

	if user.LastPostDate == nil {
		user.CurrentStreak = 1
	} else {
		lastDay := clk.StartOfDay(*user.LastPostDate)
		yesterday := today.AddDate(0, 0, -1)

		switch {
		case lastDay.Equal(yesterday):
			user.CurrentStreak++
		case lastDay.Before(yesterday):
			user.CurrentStreak = 1
		default:
			// lastDay is today or in the future; leave the record as-is.
			return false
		}
	}

	t := postTime
	user.LastPostDate = &t
	if user.CurrentStreak > user.LongestStreak {
		user.LongestStreak = user.CurrentStreak
	}
	return true
}

// ActiveStreak is the read-time view of the streak: the stored counter if
// the run is still alive (last post today or yesterday), else 0. The stored
// counter is allowed to lag by design — it is only reset on the next post,
// not eagerly as days pass — so reads correct for the lag instead of
// writing.
func ActiveStreak(user *models.User, now time.Time, clk clock.Clock) int {
	if user.LastPostDate == nil {
		return 0
	}
	lastDay := clk.StartOfDay(*user.LastPostDate)
	today := clk.StartOfDay(now)
	if lastDay.Equal(today) || lastDay.Equal(today.AddDate(0, 0, -1)) {
		return user.CurrentStreak
	}
	return 0
}
