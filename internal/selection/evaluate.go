package selection

import (
	"github.com/danmuck/mediagate/internal/declare"
	"github.com/danmuck/mediagate/internal/token"
)

// Evaluate gates eff against the offered protocol and the metadata fields
// known for the candidate content. Protocol compatibility is checked first;
// a mismatch short-circuits the metadata check.
func Evaluate(eff declare.Effective, protocol string, available token.Set) Result {
	if !eff.Protocols.Allows(protocol) {
		return ProtocolMismatch(protocol, eff.Protocols.Types())
	}
	required := eff.Metadata.Fields()
	if missing := required.Difference(available); !missing.IsEmpty() {
		return MissingMetadata(missing)
	}
	return Eligible(required)
}
