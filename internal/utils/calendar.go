package utils

import (
	"fmt"
	"time"

	"lightsout/internal/models"
)

// Thai calendar labels. The checklist runs in a Thai office, so day names are
// stored with each record and dates render in the Buddhist era on exports.
var thaiDays = []string{
	"อาทิตย์", "จันทร์", "อังคาร", "พุธ", "พฤหัสบดี", "ศุกร์", "เสาร์",
}

var thaiMonths = []string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// TodayString returns today's date as YYYY-MM-DD in local time.
func TodayString() string {
	return time.Now().Format(models.DateLayout)
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ThaiDayName returns the Thai name of the weekday (อาทิตย์ for Sunday).
func ThaiDayName(t time.Time) string {
	return thaiDays[int(t.Weekday())]
}

// FormatDateThai renders a date as "2 มี.ค. 2569", day month abbreviation and
// Buddhist-era year (Gregorian + 543).
func FormatDateThai(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[int(t.Month())-1], t.Year()+543)
}
