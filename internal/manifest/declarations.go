package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/mediagate/internal/declare"
	"github.com/danmuck/mediagate/internal/selection"
)

var (
	ErrInvalidManifest = errors.New("manifest: invalid")
	ErrTestNotFound    = errors.New("manifest: test not found")
)

// Declarations is the decoded test discovery manifest. A nil Metadata or
// Protocols pointer means the key was absent; an empty string means the
// site declared an empty value.
type Declarations struct {
	Classes []ClassEntry `toml:"classes"`
}

type ClassEntry struct {
	Name      string        `toml:"name"`
	Metadata  *string       `toml:"metadata"`
	Protocols *string       `toml:"protocols"`
	Methods   []MethodEntry `toml:"methods"`
}

type MethodEntry struct {
	Name      string  `toml:"name"`
	Metadata  *string `toml:"metadata"`
	Protocols *string `toml:"protocols"`
}

func LoadDeclarations(path string) (*Declarations, error) {
	var d Declarations
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("load declarations (%s): %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("declarations (%s): %w", path, err)
	}
	return &d, nil
}

func DecodeDeclarations(data string) (*Declarations, error) {
	var d Declarations
	if _, err := toml.Decode(data, &d); err != nil {
		return nil, fmt.Errorf("decode declarations: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks naming only; encoded values are never rejected.
func (d *Declarations) Validate() error {
	classes := make(map[string]bool, len(d.Classes))
	for i, class := range d.Classes {
		name := strings.TrimSpace(class.Name)
		if name == "" {
			return fmt.Errorf("%w: classes[%d] missing name", ErrInvalidManifest, i)
		}
		if classes[name] {
			return fmt.Errorf("%w: duplicate class %q", ErrInvalidManifest, name)
		}
		classes[name] = true

		methods := make(map[string]bool, len(class.Methods))
		for j, method := range class.Methods {
			mname := strings.TrimSpace(method.Name)
			if mname == "" {
				return fmt.Errorf("%w: %s.methods[%d] missing name", ErrInvalidManifest, name, j)
			}
			if methods[mname] {
				return fmt.Errorf("%w: duplicate method %s#%s", ErrInvalidManifest, name, mname)
			}
			methods[mname] = true
		}
	}
	return nil
}

func (c ClassEntry) Site() declare.Site {
	return applyDeclarations(declare.ClassSite(strings.TrimSpace(c.Name)), c.Metadata, c.Protocols)
}

func (m MethodEntry) Site(class string) declare.Site {
	return applyDeclarations(declare.MethodSite(strings.TrimSpace(class), strings.TrimSpace(m.Name)), m.Metadata, m.Protocols)
}

func applyDeclarations(site declare.Site, metadata, protocols *string) declare.Site {
	if metadata != nil {
		site = site.WithMetadata(*metadata)
	}
	if protocols != nil {
		site = site.WithProtocols(*protocols)
	}
	return site
}

// Tests resolves every declared method in manifest order.
func (d *Declarations) Tests() []selection.Test {
	var tests []selection.Test
	for _, class := range d.Classes {
		classSite := class.Site()
		for _, method := range class.Methods {
			methodSite := method.Site(class.Name)
			tests = append(tests, selection.Test{
				ID:        methodSite.ID(),
				Effective: declare.Resolve(&classSite, &methodSite),
			})
		}
	}
	return tests
}

// Lookup resolves one method. Methods absent from the manifest inherit the
// class declarations as if declared with no values of their own.
func (d *Declarations) Lookup(class, method string) (selection.Test, error) {
	class = strings.TrimSpace(class)
	method = strings.TrimSpace(method)
	for _, entry := range d.Classes {
		if strings.TrimSpace(entry.Name) != class {
			continue
		}
		classSite := entry.Site()
		methodSite := declare.MethodSite(class, method)
		for _, m := range entry.Methods {
			if strings.TrimSpace(m.Name) == method {
				methodSite = m.Site(class)
				break
			}
		}
		return selection.Test{
			ID:        methodSite.ID(),
			Effective: declare.Resolve(&classSite, &methodSite),
		}, nil
	}
	return selection.Test{}, fmt.Errorf("%w: %s#%s", ErrTestNotFound, class, method)
}
