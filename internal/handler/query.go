package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

// decimalQuery returns a null decimal when key is absent. A present but
// unparsable value is an error.
func decimalQuery(c *gin.Context, key string) (decimal.NullDecimal, error) {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%s: invalid decimal %q", key, val)
	}
	return decimal.NewNullDecimal(d), nil
}

// timeQuery accepts RFC3339, a naive "2006-01-02T15:04:05" UTC timestamp or
// unix seconds. Absent values yield the zero time.
func timeQuery(c *gin.Context, key string) (time.Time, error) {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, val); err == nil {
		return ts.UTC(), nil
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", val); err == nil {
		return ts.UTC(), nil
	}
	if secs, err := strconv.ParseInt(val, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%s: invalid time %q", key, val)
}
