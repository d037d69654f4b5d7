package token

import (
	"encoding/json"
	"sort"
	"strings"
)

// Set is an immutable, sorted, duplicate-free collection of opaque tokens.
// The zero value is the empty set.
type Set struct {
	items []string
}

// NewSet builds a set from tokens, dropping empty entries and duplicates.
func NewSet(tokens ...string) Set {
	if len(tokens) == 0 {
		return Set{}
	}
	items := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		items = append(items, tok)
	}
	sort.Strings(items)
	return Set{items: compact(items)}
}

func compact(sorted []string) []string {
	if len(sorted) == 0 {
		return nil
	}
	out := sorted[:1]
	for _, tok := range sorted[1:] {
		if tok != out[len(out)-1] {
			out = append(out, tok)
		}
	}
	return out
}

func (s Set) Len() int {
	return len(s.items)
}

func (s Set) IsEmpty() bool {
	return len(s.items) == 0
}

// Contains reports exact, case-sensitive membership.
func (s Set) Contains(tok string) bool {
	i := sort.SearchStrings(s.items, tok)
	return i < len(s.items) && s.items[i] == tok
}

// Slice returns the tokens in sorted order. The caller owns the result.
func (s Set) Slice() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s Set) Equal(other Set) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// Difference returns the tokens of s that are not in other.
func (s Set) Difference(other Set) Set {
	if s.IsEmpty() {
		return Set{}
	}
	out := make([]string, 0, len(s.items))
	for _, tok := range s.items {
		if !other.Contains(tok) {
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		return Set{}
	}
	return Set{items: out}
}

func (s Set) Union(other Set) Set {
	merged := make([]string, 0, len(s.items)+len(other.items))
	merged = append(merged, s.items...)
	merged = append(merged, other.items...)
	return NewSet(merged...)
}

// String renders the set for logs, e.g. {Duration,Width}.
func (s Set) String() string {
	return "{" + strings.Join(s.items, ",") + "}"
}

func (s Set) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	*s = NewSet(tokens...)
	return nil
}
