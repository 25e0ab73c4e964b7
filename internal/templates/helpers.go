package templates

import "strconv"

// itoa converts an int64 to a string, used for option values.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
