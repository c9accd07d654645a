package providers

import (
	"time"

	"github.com/tidwall/gjson"
)

// hourlySeries returns the first parallel array found under "hourly.<key>"
// trying each alternate spelling in order. A nil result means the field is
// absent from the payload entirely.
func hourlySeries(body []byte, keys ...string) []gjson.Result {
	for _, k := range keys {
		if v := gjson.GetBytes(body, "hourly."+k); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

// valueAt reads index i of a series. A missing series defaults to zero; a
// null or out-of-range element reports ok=false so callers can skip the hour.
func valueAt(series []gjson.Result, i int) (float64, bool) {
	if series == nil {
		return 0, true
	}
	if i < 0 || i >= len(series) {
		return 0, false
	}
	if series[i].Type == gjson.Null {
		return 0, false
	}
	return series[i].Float(), true
}

// parseHourlyTime parses Open-Meteo hour timestamps, which come without a
// zone ("2025-08-26T13:00") when timezone=UTC is requested, but tolerates
// full RFC3339 too.
func parseHourlyTime(s string) (time.Time, bool) {
	if ts, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return ts.UTC(), true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), true
	}
	return time.Time{}, false
}
