package selection

// Summary aggregates skip reasons over a plan.
type Summary struct {
	Total            int `json:"total"`
	Eligible         int `json:"eligible"`
	ProtocolMismatch int `json:"protocol_mismatch"`
	MissingMetadata  int `json:"missing_metadata"`
}

func Summarize(decisions []Decision) Summary {
	var s Summary
	for _, d := range decisions {
		s.Total++
		switch {
		case d.Result.Eligible:
			s.Eligible++
		case d.Result.Reason.Kind == ReasonProtocolMismatch:
			s.ProtocolMismatch++
		case d.Result.Reason.Kind == ReasonMissingMetadata:
			s.MissingMetadata++
		}
	}
	return s
}
