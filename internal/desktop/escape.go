package desktop

import "strings"

// unescapeValue decodes the \s \n \t \r \\ escapes of a string value.
// Unknown escapes are kept as written.
func unescapeValue(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 's':
			sb.WriteByte(' ')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// escapeValue is the inverse of unescapeValue. Leading and trailing spaces
// become \s so they survive the whitespace trim applied on parse. Bytes are
// copied as they are, so values that are not valid UTF-8 are kept intact.
func escapeValue(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}

	out := sb.String()
	lead := len(out) - len(strings.TrimLeft(out, " "))
	if lead == len(out) {
		return strings.Repeat(`\s`, lead)
	}
	trail := len(out) - len(strings.TrimRight(out, " "))
	return strings.Repeat(`\s`, lead) + out[lead:len(out)-trail] + strings.Repeat(`\s`, trail)
}

// splitList splits a list value on unescaped ';', decodes each item, and
// drops empty items and duplicates while keeping the first occurrence.
func splitList(s string) []string {
	var (
		items []string
		cur   strings.Builder
	)
	flush := func() {
		item := unescapeValue(cur.String())
		cur.Reset()
		if item == "" {
			return
		}
		for _, existing := range items {
			if existing == item {
				return
			}
		}
		items = append(items, item)
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == ';':
			cur.WriteByte(';')
			i++
		case c == '\\' && i+1 < len(s):
			// Leave other escapes for unescapeValue.
			cur.WriteByte(c)
			cur.WriteByte(s[i+1])
			i++
		case c == ';':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return items
}

// joinList encodes items as a ';'-terminated list value.
func joinList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(strings.ReplaceAll(escapeValue(item), ";", `\;`))
		sb.WriteByte(';')
	}
	return sb.String()
}
