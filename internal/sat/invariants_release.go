//go:build !satdebug

package sat

// checkInvariants is a no-op in release builds. See invariants_debug.go for
// the satdebug-tagged implementation of I1-I5.
func (s *Solver) checkInvariants() {}
