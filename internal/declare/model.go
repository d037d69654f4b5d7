package declare

import "github.com/danmuck/mediagate/internal/token"

// MetadataRequirement lists the content metadata fields a test needs.
// An empty requirement needs nothing.
type MetadataRequirement struct {
	fields token.Set
}

func NewMetadataRequirement(fields ...string) MetadataRequirement {
	return MetadataRequirement{fields: token.NewSet(fields...)}
}

// ParseMetadataRequirement decodes the "A&&B" form.
func ParseMetadataRequirement(raw string) MetadataRequirement {
	return MetadataRequirement{fields: token.ParseFields(raw)}
}

func (m MetadataRequirement) Fields() token.Set {
	return m.fields
}

func (m MetadataRequirement) String() string {
	return token.FormatFields(m.fields)
}

// ProtocolCompatibility lists the delivery protocols a test is valid against.
// An empty value is unrestricted: every protocol is allowed.
type ProtocolCompatibility struct {
	types token.Set
}

func NewProtocolCompatibility(types ...string) ProtocolCompatibility {
	return ProtocolCompatibility{types: token.NewSet(types...)}
}

// ParseProtocolCompatibility decodes the "A||B" form.
func ParseProtocolCompatibility(raw string) ProtocolCompatibility {
	return ProtocolCompatibility{types: token.ParseProtocols(raw)}
}

func (p ProtocolCompatibility) Types() token.Set {
	return p.types
}

func (p ProtocolCompatibility) IsUnrestricted() bool {
	return p.types.IsEmpty()
}

// Allows reports whether protocol may be used. Empty allows everything.
func (p ProtocolCompatibility) Allows(protocol string) bool {
	return p.types.IsEmpty() || p.types.Contains(protocol)
}

func (p ProtocolCompatibility) String() string {
	return token.FormatProtocols(p.types)
}

type Scope int

const (
	ScopeClass Scope = iota
	ScopeMethod
)

func (s Scope) String() string {
	switch s {
	case ScopeClass:
		return "class"
	case ScopeMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Site is a test class or a test method carrying at most one metadata
// requirement and at most one protocol compatibility value.
// A nil pointer means "not declared"; a non-nil empty value means
// "declared empty". Sites are values and the With* helpers return copies.
type Site struct {
	Scope  Scope
	Class  string
	Method string

	metadata  *MetadataRequirement
	protocols *ProtocolCompatibility
}

func ClassSite(class string) Site {
	return Site{Scope: ScopeClass, Class: class}
}

func MethodSite(class, method string) Site {
	return Site{Scope: ScopeMethod, Class: class, Method: method}
}

// ID is "Class" for class sites and "Class#method" for method sites.
func (s Site) ID() string {
	if s.Scope == ScopeMethod {
		return s.Class + "#" + s.Method
	}
	return s.Class
}

func (s Site) WithMetadata(raw string) Site {
	return s.WithMetadataRequirement(ParseMetadataRequirement(raw))
}

func (s Site) WithProtocols(raw string) Site {
	return s.WithProtocolCompatibility(ParseProtocolCompatibility(raw))
}

func (s Site) WithMetadataRequirement(req MetadataRequirement) Site {
	s.metadata = &req
	return s
}

func (s Site) WithProtocolCompatibility(pc ProtocolCompatibility) Site {
	s.protocols = &pc
	return s
}

func (s Site) Metadata() (MetadataRequirement, bool) {
	if s.metadata == nil {
		return MetadataRequirement{}, false
	}
	return *s.metadata, true
}

func (s Site) Protocols() (ProtocolCompatibility, bool) {
	if s.protocols == nil {
		return ProtocolCompatibility{}, false
	}
	return *s.protocols, true
}
