package provider

import (
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// MaxHistory is the days value CoinGecko accepts for the full history.
const MaxHistory = "max"

// supportedDays are the history lengths the CoinGecko OHLC endpoint accepts.
var supportedDays = []int{1, 7, 14, 30, 90, 180, 365}

// NormalizeDays rounds days up to the nearest supported value. Anything below
// 1 becomes 1 and anything above 180 becomes 365.
func NormalizeDays(days int) int {
	for _, supported := range supportedDays {
		if days <= supported {
			return supported
		}
	}

	return supportedDays[len(supportedDays)-1]
}

// ParseDays parses a day count or the literal "max". full is true only for the
// literal; a numeric value is returned as written.
func ParseDays(value string) (days int, full bool, err error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == MaxHistory {
		return 0, true, nil
	}

	days, err = strconv.Atoi(value)
	if err != nil {
		return 0, false, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid days %q", value)
	}

	return days, false, nil
}

// FormatDays renders a history length the way the CoinGecko API expects it.
func FormatDays(days int, full bool) string {
	if full {
		return MaxHistory
	}

	return strconv.Itoa(days)
}

// CandleInterval is the candle width CoinGecko returns for a history length:
// 5 minute candles below 30 days, daily candles from 30 days on.
func CandleInterval(days int) time.Duration {
	if days < 30 {
		return 5 * time.Minute
	}

	return 24 * time.Hour
}
