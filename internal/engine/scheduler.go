package engine

// Scheduler advances the active shape on a fixed interval.
type Scheduler struct {
	Elapsed float64
}

// Advance accumulates delta seconds while enabled and reports whether the
// interval was reached. Disabling drops any partial progress.
func (s *Scheduler) Advance(delta float64, enabled bool, interval float64) bool {
	if !enabled {
		s.Elapsed = 0
		return false
	}
	s.Elapsed += delta
	if s.Elapsed >= interval {
		s.Elapsed = 0
		return true
	}
	return false
}
