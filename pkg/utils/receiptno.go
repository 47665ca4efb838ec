package utils

import (
	"strconv"
	"time"
)

// GenerateReceiptNo derives a receipt number from the current time: the
// prefix followed by the last six digits of the Unix millisecond clock.
// Numbers are display references, not unique identifiers.
func GenerateReceiptNo(prefix string) string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return prefix + millis
}
