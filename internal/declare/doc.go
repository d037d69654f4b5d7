// Package declare models per-class and per-method test declarations and
// resolves the effective declaration that governs one test method.
//
// Ownership boundary:
// - metadata requirements and protocol compatibility values
// - class/method declaration sites
// - class vs method override resolution
package declare
