// Package selection decides whether a test may run against one content
// candidate.
//
// The gate has two ordered stages: protocol compatibility, then metadata
// availability. Ineligibility is reported as data on Result, never as an
// error.
package selection
