package document

import (
	"bufio"
	"fmt"
	"strings"
)

// ParseRedis parses the key-value store's directive format: one
// directive per line, whitespace-separated arguments, '#' comments,
// double quotes around arguments that contain spaces or are empty.
// Directives may repeat; the validator decides which repeats are legal.
func ParseRedis(data []byte) (*Document, error) {
	doc := &Document{}
	scanner := bufio.NewScanner(strings.NewReader(string(data)))

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		tokens, err := splitDirective(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(tokens) == 0 {
			continue
		}

		doc.Append(strings.ToLower(tokens[0]), line, tokens[1:]...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	return doc, nil
}

// splitDirective tokenizes a directive line, honoring double quotes so
// that `logfile ""` and `dir "/var/lib/my db"` parse as single arguments.
func splitDirective(text string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	hasToken := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			hasToken = true
		case (c == ' ' || c == '\t') && !inQuote:
			if hasToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				hasToken = false
			}
		default:
			cur.WriteByte(c)
			hasToken = true
		}
	}

	if inQuote {
		return nil, fmt.Errorf("unterminated quote in %q", text)
	}
	if hasToken {
		tokens = append(tokens, cur.String())
	}

	return tokens, nil
}
