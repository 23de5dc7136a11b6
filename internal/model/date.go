package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-granularity key used for every stored record.
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, ValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw))
	}
	return t, nil
}

func ValidateDate(raw string) error {
	_, err := ParseDate(raw)
	return err
}

// LastNDates returns n date keys ending at today, oldest first.
func LastNDates(today time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	y, m, d := today.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, FormatDate(base.AddDate(0, 0, -i)))
	}
	return out
}
