package declare

import (
	"testing"

	"github.com/danmuck/mediagate/internal/testutil/testlog"
)

func TestEmptySetAsymmetry(t *testing.T) {
	testlog.Start(t)
	pc := ParseProtocolCompatibility("")
	if !pc.IsUnrestricted() || !pc.Allows("Rtsp") {
		t.Fatalf("empty protocol compatibility must allow every protocol")
	}
	req := ParseMetadataRequirement("")
	if !req.Fields().IsEmpty() {
		t.Fatalf("empty metadata requirement must require nothing")
	}
}

func TestProtocolCompatibilityIsCaseSensitive(t *testing.T) {
	testlog.Start(t)
	pc := NewProtocolCompatibility("Http")
	if pc.Allows("http") {
		t.Fatalf("protocol tokens must compare exactly")
	}
	if !pc.Allows("Http") {
		t.Fatalf("expected Http allowed")
	}
}

func TestSiteIDs(t *testing.T) {
	testlog.Start(t)
	if got := ClassSite("PlaybackTest").ID(); got != "PlaybackTest" {
		t.Fatalf("unexpected class id: %q", got)
	}
	if got := MethodSite("PlaybackTest", "testSeek").ID(); got != "PlaybackTest#testSeek" {
		t.Fatalf("unexpected method id: %q", got)
	}
	if ScopeMethod.String() != "method" || ScopeClass.String() != "class" {
		t.Fatalf("unexpected scope names")
	}
}
