package declare

import (
	"reflect"
	"testing"

	"github.com/danmuck/mediagate/internal/testutil/testlog"
)

func TestResolveMethodOverridesClass(t *testing.T) {
	testlog.Start(t)
	class := ClassSite("PlaybackTest").WithMetadata("Width").WithProtocols("Local")
	method := MethodSite("PlaybackTest", "testSeek").WithMetadata("Duration&&Height").WithProtocols("Http||Rtsp")

	eff := Resolve(&class, &method)
	if got := eff.Metadata.Fields().Slice(); !reflect.DeepEqual(got, []string{"Duration", "Height"}) {
		t.Fatalf("unexpected metadata: %v", got)
	}
	if got := eff.Protocols.Types().Slice(); !reflect.DeepEqual(got, []string{"Http", "Rtsp"}) {
		t.Fatalf("unexpected protocols: %v", got)
	}
	if eff.MetadataSource != SourceMethod || eff.ProtocolSource != SourceMethod {
		t.Fatalf("unexpected sources: %+v", eff)
	}
	if eff.TestID != "PlaybackTest#testSeek" {
		t.Fatalf("unexpected test id: %q", eff.TestID)
	}
}

func TestResolveDeclaredEmptyMetadataStillOverrides(t *testing.T) {
	testlog.Start(t)
	class := ClassSite("PlaybackTest").WithMetadata("Width")
	method := MethodSite("PlaybackTest", "testNoMeta").WithMetadata("")

	eff := Resolve(&class, &method)
	if !eff.Metadata.Fields().IsEmpty() {
		t.Fatalf("declared-empty method metadata must win, got %v", eff.Metadata.Fields())
	}
	if eff.MetadataSource != SourceMethod {
		t.Fatalf("expected method source, got %s", eff.MetadataSource)
	}
}

func TestResolveDeclaredEmptyProtocolsOpensAllProtocols(t *testing.T) {
	testlog.Start(t)
	class := ClassSite("PlaybackTest").WithProtocols("Local")
	method := MethodSite("PlaybackTest", "testAnyProtocol").WithProtocols("")

	eff := Resolve(&class, &method)
	if !eff.Protocols.IsUnrestricted() {
		t.Fatalf("declared-empty method protocols must not fall back to class, got %v", eff.Protocols.Types())
	}
	if !eff.Protocols.Allows("Rtsp") {
		t.Fatalf("expected Rtsp to be allowed")
	}
	if eff.ProtocolSource != SourceMethod {
		t.Fatalf("expected method source, got %s", eff.ProtocolSource)
	}
}

func TestResolveKindsFallBackIndependently(t *testing.T) {
	testlog.Start(t)
	class := ClassSite("PlaybackTest").WithProtocols("Local||Http").WithMetadata("Bitrate")
	method := MethodSite("PlaybackTest", "testSeek").WithMetadata("Duration&&Width")

	eff := Resolve(&class, &method)
	if eff.MetadataSource != SourceMethod || eff.ProtocolSource != SourceClass {
		t.Fatalf("unexpected sources: metadata=%s protocols=%s", eff.MetadataSource, eff.ProtocolSource)
	}
	if eff.Protocols.String() != "Http||Local" {
		t.Fatalf("unexpected protocols: %q", eff.Protocols.String())
	}
	if eff.Metadata.String() != "Duration&&Width" {
		t.Fatalf("unexpected metadata: %q", eff.Metadata.String())
	}
}

func TestResolveAbsentDeclarationsUseDefaults(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name   string
		class  *Site
		method *Site
	}{
		{name: "both nil"},
		{name: "undeclared sites", class: ptr(ClassSite("C")), method: ptr(MethodSite("C", "m"))},
		{name: "class only", class: ptr(ClassSite("C"))},
		{name: "method only", method: ptr(MethodSite("C", "m"))},
	}
	for _, tc := range cases {
		eff := Resolve(tc.class, tc.method)
		if !eff.Metadata.Fields().IsEmpty() {
			t.Fatalf("%s: expected no metadata required, got %v", tc.name, eff.Metadata.Fields())
		}
		if !eff.Protocols.IsUnrestricted() || !eff.Protocols.Allows("Anything") {
			t.Fatalf("%s: expected all protocols allowed", tc.name)
		}
		if eff.MetadataSource != SourceDefault || eff.ProtocolSource != SourceDefault {
			t.Fatalf("%s: expected default sources, got %+v", tc.name, eff)
		}
	}
}

func TestResolveClassOnly(t *testing.T) {
	testlog.Start(t)
	class := ClassSite("LiveTest").WithProtocols("Rtsp").WithMetadata("Duration")
	eff := Resolve(&class, nil)
	if eff.TestID != "LiveTest" {
		t.Fatalf("unexpected test id: %q", eff.TestID)
	}
	if !eff.Protocols.Allows("Rtsp") || eff.Protocols.Allows("Http") {
		t.Fatalf("unexpected protocol gate: %v", eff.Protocols.Types())
	}
	if !eff.Metadata.Fields().Contains("Duration") {
		t.Fatalf("expected Duration required")
	}
}

func TestSiteWithHelpersDoNotMutateOriginal(t *testing.T) {
	testlog.Start(t)
	base := ClassSite("C")
	declared := base.WithMetadata("A")
	if _, ok := base.Metadata(); ok {
		t.Fatalf("base site must remain undeclared")
	}
	if req, ok := declared.Metadata(); !ok || req.String() != "A" {
		t.Fatalf("unexpected declared metadata: %v %v", req, ok)
	}
	if _, ok := declared.Protocols(); ok {
		t.Fatalf("protocols must remain undeclared")
	}
}

func TestEffectiveString(t *testing.T) {
	testlog.Start(t)
	class := ClassSite("PlaybackTest").WithProtocols("Local||Http")
	method := MethodSite("PlaybackTest", "testSeek").WithMetadata("Width&&Duration")
	got := Resolve(&class, &method).String()
	want := `PlaybackTest#testSeek metadata="Duration&&Width"(method) protocols="Http||Local"(class)`
	if got != want {
		t.Fatalf("unexpected string:\n got=%s\nwant=%s", got, want)
	}
}

func ptr(s Site) *Site {
	return &s
}
