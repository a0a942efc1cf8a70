// Package csvline splits single CSV lines. Quoted fields may contain commas and
// doubled quotes; a field can never span lines.
package csvline

import "strings"

// Split breaks one line into fields.
func Split(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(ch)
		}
	}
	return append(fields, field.String())
}

// Lines splits text into lines, accepting \n, \r\n and lone \r endings.
// Empty lines are kept so positions still match the file's line numbers.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// HasPrefixColumns reports whether the header's first columns equal want, ignoring
// surrounding whitespace. Extra trailing columns are allowed.
func HasPrefixColumns(header []string, want []string) bool {
	if len(header) < len(want) {
		return false
	}
	for i, w := range want {
		if strings.TrimSpace(header[i]) != w {
			return false
		}
	}
	return true
}
