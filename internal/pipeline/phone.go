package pipeline

import "strings"

// separators people type into phone numbers
var phoneReplacer = strings.NewReplacer(" ", "", "-", "", "+", "", ".", "")

// NormalizePhone converts a raw phone value into a 62-prefixed digit
// string. The local trunk prefix "0" becomes "62"; bare national numbers
// get "62" prepended; anything still containing non-digits is passed
// through after separator stripping. Total and idempotent: garbage in
// means best-effort garbage out, never an error. Downstream link
// generation tolerates malformed output.
func NormalizePhone(raw string) string {
	s := phoneReplacer.Replace(strings.TrimSpace(raw))
	if strings.HasPrefix(s, "0") {
		return "62" + s[1:]
	}
	if !strings.HasPrefix(s, "62") && isDigits(s) {
		return "62" + s
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
