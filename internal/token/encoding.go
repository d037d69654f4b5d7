package token

import "strings"

const (
	FieldDelimiter    = "&&"
	ProtocolDelimiter = "||"
)

// ParseFields decodes a metadata field list such as "Duration&&Width".
func ParseFields(raw string) Set {
	return parse(raw, FieldDelimiter)
}

// ParseProtocols decodes a protocol list such as "Local||Http".
func ParseProtocols(raw string) Set {
	return parse(raw, ProtocolDelimiter)
}

func FormatFields(s Set) string {
	return strings.Join(s.items, FieldDelimiter)
}

func FormatProtocols(s Set) string {
	return strings.Join(s.items, ProtocolDelimiter)
}

func parse(raw, delim string) Set {
	if strings.TrimSpace(raw) == "" {
		return Set{}
	}
	parts := strings.Split(raw, delim)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		tok := strings.TrimSpace(part)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return NewSet(tokens...)
}
