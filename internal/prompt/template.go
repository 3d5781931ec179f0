package prompt

import (
	"fmt"
	"strings"
)

type segment struct {
	text string
	key  string
}

// compile parses a template once. Keys found in static are substituted immediately; keys listed in
// dynamic become placeholders filled at build time. "{{" and "}}" are literal braces.
func compile(template string, static map[string]string, dynamic []string) ([]segment, error) {
	isDynamic := make(map[string]bool, len(dynamic))
	for _, key := range dynamic {
		isDynamic[key] = true
	}
	seen := make(map[string]bool, len(dynamic))

	var segments []segment
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("invalid template: missing '}'")
			}
			key := template[i+1 : i+1+end]
			switch {
			case isDynamic[key]:
				flush()
				segments = append(segments, segment{key: key})
				seen[key] = true
			default:
				value, ok := static[key]
				if !ok {
					return nil, fmt.Errorf("missing template value for %q", key)
				}
				literal.WriteString(value)
			}
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("invalid template: unexpected '}'")
		default:
			literal.WriteByte(template[i])
			i++
		}
	}
	flush()

	for _, key := range dynamic {
		if !seen[key] {
			return nil, fmt.Errorf("template does not use {%s}", key)
		}
	}
	return segments, nil
}

func render(segments []segment, values map[string]string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.key == "" {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(values[seg.key])
	}
	return b.String()
}
