package pipeline

import "strings"

// monthAliases maps Indonesian month abbreviations to the English forms
// the date layouts below understand. Order follows the calendar plus the
// spelling variants people actually type for August.
var monthAliases = []struct{ id, en string }{
	{"Jan", "Jan"}, {"Feb", "Feb"}, {"Mar", "Mar"}, {"Apr", "Apr"},
	{"Mei", "May"}, {"Jun", "Jun"}, {"Jul", "Jul"}, {"Agu", "Aug"},
	{"Ags", "Aug"}, {"Agust", "Aug"}, {"Sep", "Sep"}, {"Okt", "Oct"},
	{"Nov", "Nov"}, {"Des", "Dec"},
}

// LocalizeMonths rewrites Indonesian month abbreviations to English so
// strings like "02-Mei-2024" or "2 Okt 2023" become parseable. A token is
// only replaced when wrapped in hyphens or spaces. The replacement is
// plain text substitution, not tokenization: an abbreviation that happens
// to sit delimited inside unrelated text gets rewritten too. Known
// limitation, kept to match how uploads have always been handled.
func LocalizeMonths(s string) string {
	out := s
	for _, m := range monthAliases {
		out = strings.ReplaceAll(out, "-"+m.id+"-", "-"+m.en+"-")
		out = strings.ReplaceAll(out, " "+m.id+" ", " "+m.en+" ")
	}
	return out
}
