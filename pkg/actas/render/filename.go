package render

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// UnknownUser replaces usernames that sanitize to nothing.
const UnknownUser = "Usuario_Desconocido"

// SanitizeName keeps letters, digits, spaces, hyphens and underscores and
// trims trailing spaces. Applying it twice gives the same result.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// FileName builds the receipt filename for username.
func FileName(prefix, username string, now time.Time, withDate bool) string {
	safe := SanitizeName(username)
	if safe == "" {
		safe = UnknownUser
	}
	name := prefix + safe
	if withDate {
		name += "_" + now.Format("20060102")
	}
	return name + ".xlsx"
}

// disambiguate inserts the hardware id before the extension. A positive
// attempt adds a counter after the id.
func disambiguate(filename string, hardwareID int64, attempt int) string {
	base := strings.TrimSuffix(filename, ".xlsx") + "_" + strconv.FormatInt(hardwareID, 10)
	if attempt > 0 {
		base += "_" + strconv.Itoa(attempt)
	}
	return base + ".xlsx"
}
