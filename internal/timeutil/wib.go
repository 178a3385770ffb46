package timeutil

import (
	"time"
)

// WIB is the Western Indonesian Time location (UTC+7)
var WIB *time.Location

func init() {
	var err error
	WIB, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback: create fixed zone if Asia/Jakarta not available
		WIB = time.FixedZone("WIB", 7*60*60) // UTC+7
	}
}

// Now returns the current time in WIB
func Now() time.Time {
	return time.Now().In(WIB)
}

// FormatWIB formats a time in WIB using the given layout
func FormatWIB(t time.Time, layout string) string {
	return t.In(WIB).Format(layout)
}

// DateLayout is the date-only layout used on rendered documents.
const DateLayout = "2006-01-02"
