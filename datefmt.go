package xlcell

import "strings"

// isBuiltinDateFormat reports whether a built-in number format id is a
// date or time format. Ids 27-36 and 50-58 are the East Asian date formats.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	default:
		return false
	}
}

// isDateNumFmt reports whether a number format, given by id and optional
// custom code, renders a date and/or time. A non-empty code wins over the id.
func isDateNumFmt(id int, code string) bool {
	if code != "" {
		return isDateFormatCode(code)
	}
	return isBuiltinDateFormat(id)
}

// isDateFormatCode scans a format code for date/time tokens (y, m, d, h, s)
// outside quoted literals, escapes and bracketed sections. Elapsed-time
// brackets such as [h] or [mm] count as time.
func isDateFormatCode(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "general" {
		return false
	}

	for i := 0; i < len(code); i++ {
		switch ch := code[i]; ch {
		case '"':
			end := strings.IndexByte(code[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case '\\', '_', '*':
			i++ // escaped, padding or fill character
		case '[':
			end := strings.IndexByte(code[i+1:], ']')
			if end < 0 {
				return false
			}
			if isElapsedTime(code[i+1 : i+1+end]) {
				return true
			}
			i += end + 1
		case 'y', 'm', 'd', 'h', 's':
			return true
		}
	}
	return false
}

func isElapsedTime(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != 'h' && s[i] != 'm' && s[i] != 's' {
			return false
		}
	}
	return true
}
