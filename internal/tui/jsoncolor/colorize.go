// Package jsoncolor turns arbitrary Go values into the indented, JSON-shaped
// dumps shown by the store tracker, optionally with theme-aware coloring.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yutounun/storetracker/internal/core/styles"
)

// Indent is the per-level indentation of a dump.
const Indent = "    "

// Dump serializes v as indented JSON. Map keys are sorted, so the output is
// stable for a given value. Values the encoder cannot express (cycles,
// channels, funcs, NaN, a MarshalJSON that fails or panics) return an error
// instead of a partial dump.
func Dump(v any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("serializer panicked: %v", r)
		}
	}()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Colorize applies syntax coloring to an already indented dump. Keys, strings,
// numbers, literals, and punctuation each get their own theme color. Layout
// is left untouched, so the stripped output equals the input.
func Colorize(raw string) string {
	var out strings.Builder

	i := 0
	for i < len(raw) {
		ch := raw[i]
		switch {
		case ch == '"':
			end := findStringEnd(raw, i)
			str := raw[i : end+1]

			// A string followed by a colon is an object key.
			rest := strings.TrimLeft(raw[end+1:], " \t")
			if len(rest) > 0 && rest[0] == ':' {
				out.WriteString(styles.TextPrimaryStyle.Render(str))
			} else {
				out.WriteString(styles.TextSuccessStyle.Render(str))
			}
			i = end + 1

		case ch == ':':
			out.WriteString(styles.TextMutedStyle.Render(":"))
			i++

		case ch >= '0' && ch <= '9' || ch == '-':
			end := i + 1
			for end < len(raw) && isNumberByte(raw[end]) {
				end++
			}
			out.WriteString(styles.TextWarningStyle.Render(raw[i:end]))
			i = end

		case strings.HasPrefix(raw[i:], "true"):
			out.WriteString(styles.TextSecondaryStyle.Render("true"))
			i += 4

		case strings.HasPrefix(raw[i:], "false"):
			out.WriteString(styles.TextSecondaryStyle.Render("false"))
			i += 5

		case strings.HasPrefix(raw[i:], "null"):
			out.WriteString(styles.TextErrorStyle.Render("null"))
			i += 4

		case ch == '{' || ch == '}' || ch == '[' || ch == ']':
			out.WriteString(styles.TextForegroundStyle.Render(string(ch)))
			i++

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

func isNumberByte(b byte) bool {
	return b >= '0' && b <= '9' || b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-'
}

// findStringEnd returns the index of the closing quote for a JSON string starting at pos.
func findStringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++ // skip escaped character
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return len(s) - 1
}
