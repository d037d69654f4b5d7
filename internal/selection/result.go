package selection

import (
	"encoding/json"
	"fmt"

	"github.com/danmuck/mediagate/internal/token"
)

type ReasonKind int

const (
	ReasonNone ReasonKind = iota
	ReasonProtocolMismatch
	ReasonMissingMetadata
)

func (k ReasonKind) String() string {
	switch k {
	case ReasonProtocolMismatch:
		return "protocol_mismatch"
	case ReasonMissingMetadata:
		return "missing_metadata"
	default:
		return "none"
	}
}

func (k ReasonKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reason explains why a test was skipped.
// Allowed is set for protocol mismatches, Missing for missing metadata.
type Reason struct {
	Kind     ReasonKind `json:"kind"`
	Protocol string     `json:"protocol,omitempty"`
	Allowed  token.Set  `json:"allowed"`
	Missing  token.Set  `json:"missing"`
}

func (r Reason) String() string {
	switch r.Kind {
	case ReasonProtocolMismatch:
		return fmt.Sprintf("protocol %q not in %s", r.Protocol, token.FormatProtocols(r.Allowed))
	case ReasonMissingMetadata:
		return fmt.Sprintf("missing metadata %s", token.FormatFields(r.Missing))
	default:
		return "eligible"
	}
}

// Result is the outcome of one evaluation. When Eligible, Requested holds
// the full effective metadata requirement the caller must supply.
type Result struct {
	Eligible  bool
	Requested token.Set
	Reason    Reason
}

func Eligible(requested token.Set) Result {
	return Result{Eligible: true, Requested: requested}
}

func ProtocolMismatch(protocol string, allowed token.Set) Result {
	return Result{Reason: Reason{Kind: ReasonProtocolMismatch, Protocol: protocol, Allowed: allowed}}
}

func MissingMetadata(missing token.Set) Result {
	return Result{Reason: Reason{Kind: ReasonMissingMetadata, Missing: missing}}
}

// Outcome is a stable label used for logs and metrics.
func (r Result) Outcome() string {
	if r.Eligible {
		return "eligible"
	}
	return r.Reason.Kind.String()
}

func (r Result) String() string {
	if r.Eligible {
		return "eligible " + r.Requested.String()
	}
	return "skip: " + r.Reason.String()
}

func (r Result) MarshalJSON() ([]byte, error) {
	type wire struct {
		Eligible  bool      `json:"eligible"`
		Outcome   string    `json:"outcome"`
		Requested token.Set `json:"requested"`
		Reason    *Reason   `json:"reason,omitempty"`
		Message   string    `json:"message"`
	}
	w := wire{
		Eligible:  r.Eligible,
		Outcome:   r.Outcome(),
		Requested: r.Requested,
		Message:   r.String(),
	}
	if !r.Eligible {
		reason := r.Reason
		w.Reason = &reason
	}
	return json.Marshal(w)
}
