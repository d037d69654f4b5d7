package declare

import "fmt"

// Source records which site supplied one kind of an effective declaration.
type Source int

const (
	SourceDefault Source = iota
	SourceClass
	SourceMethod
)

func (s Source) String() string {
	switch s {
	case SourceClass:
		return "class"
	case SourceMethod:
		return "method"
	default:
		return "default"
	}
}

// Effective is the declaration that actually governs one test method.
type Effective struct {
	TestID         string
	Metadata       MetadataRequirement
	Protocols      ProtocolCompatibility
	MetadataSource Source
	ProtocolSource Source
}

func (e Effective) String() string {
	return fmt.Sprintf(
		"%s metadata=%q(%s) protocols=%q(%s)",
		e.TestID,
		e.Metadata.String(),
		e.MetadataSource,
		e.Protocols.String(),
		e.ProtocolSource,
	)
}

// Resolve combines class and method sites into an effective declaration.
// Each kind resolves independently: a method declaration wins even when it
// is empty, then the class declaration, then the empty default.
func Resolve(classSite, methodSite *Site) Effective {
	var eff Effective
	switch {
	case methodSite != nil:
		eff.TestID = methodSite.ID()
	case classSite != nil:
		eff.TestID = classSite.ID()
	}

	if req, ok := lookupMetadata(methodSite); ok {
		eff.Metadata, eff.MetadataSource = req, SourceMethod
	} else if req, ok := lookupMetadata(classSite); ok {
		eff.Metadata, eff.MetadataSource = req, SourceClass
	}

	if pc, ok := lookupProtocols(methodSite); ok {
		eff.Protocols, eff.ProtocolSource = pc, SourceMethod
	} else if pc, ok := lookupProtocols(classSite); ok {
		eff.Protocols, eff.ProtocolSource = pc, SourceClass
	}
	return eff
}

func lookupMetadata(site *Site) (MetadataRequirement, bool) {
	if site == nil {
		return MetadataRequirement{}, false
	}
	return site.Metadata()
}

func lookupProtocols(site *Site) (ProtocolCompatibility, bool) {
	if site == nil {
		return ProtocolCompatibility{}, false
	}
	return site.Protocols()
}
