package calendar

// Dedupe keeps at most one session per identity key, first occurrence wins.
// Expand emits overrides before template candidates, so first-wins is what
// gives overrides precedence.
func Dedupe(sessions []Session) []Session {
	seen := make(map[Key]struct{}, len(sessions))
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		k := s.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
