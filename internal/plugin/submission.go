package plugin

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
)

const defaultThrottleMinutes = 5

// ThrottleWindow reads a throttle property given in minutes. A blank property disables throttling and a malformed
// one falls back to five minutes.
func ThrottleWindow(blog *domain.Blog, prop string) time.Duration {
	v := strings.TrimSpace(blog.Property(prop))
	if v == "" {
		return 0
	}
	minutes, err := strconv.Atoi(v)
	if err != nil {
		minutes = defaultThrottleMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// ThrottleKey scopes a client address to one blog.
func ThrottleKey(blog *domain.Blog, ip string) string {
	return blog.ID + "|" + ip
}

// Expired reports whether e stopped taking responses under the day count held by prop. A missing, malformed or
// non positive count never expires.
func Expired(blog *domain.Blog, prop string, e *domain.Entry, now time.Time) bool {
	v := strings.TrimSpace(blog.Property(prop))
	if v == "" {
		return false
	}
	days, err := strconv.Atoi(v)
	if err != nil {
		log.Error().Str("blog", blog.ID).Str("property", prop).Str("value", v).Msg("malformed expiration")
		return false
	}
	return days > 0 && e.DaysSince(now) >= days
}
