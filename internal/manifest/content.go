package manifest

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/mediagate/internal/selection"
	"github.com/danmuck/mediagate/internal/token"
)

// Content is a provisioning snapshot: the protocol and known metadata
// fields of each candidate asset.
type Content struct {
	Entries []ContentEntry `toml:"content"`
}

type ContentEntry struct {
	ID       string `toml:"id"`
	Protocol string `toml:"protocol"`
	Fields   string `toml:"fields"`
}

func LoadContent(path string) ([]selection.Candidate, error) {
	var c Content
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("load content (%s): %w", path, err)
	}
	candidates, err := c.Candidates()
	if err != nil {
		return nil, fmt.Errorf("content (%s): %w", path, err)
	}
	return candidates, nil
}

func DecodeContent(data string) ([]selection.Candidate, error) {
	var c Content
	if _, err := toml.Decode(data, &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return c.Candidates()
}

func (c Content) Candidates() ([]selection.Candidate, error) {
	seen := make(map[string]bool, len(c.Entries))
	out := make([]selection.Candidate, 0, len(c.Entries))
	for i, entry := range c.Entries {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: content[%d] missing id", ErrInvalidManifest, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate content %q", ErrInvalidManifest, id)
		}
		seen[id] = true
		protocol := strings.TrimSpace(entry.Protocol)
		if protocol == "" {
			return nil, fmt.Errorf("%w: content %q missing protocol", ErrInvalidManifest, id)
		}
		out = append(out, selection.Candidate{
			ID:       id,
			Protocol: protocol,
			Fields:   token.ParseFields(entry.Fields),
		})
	}
	return out, nil
}
