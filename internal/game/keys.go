package game

// MergeKeyState returns the stronger of prev and next, preferring next on a
// tie. An unset key is Empty, the zero value.
func MergeKeyState(prev, next LetterState) LetterState {
	if next >= prev {
		return next
	}
	return prev
}

// KeyStateMap holds the best known state for each letter key, keyed by the
// upper-case letter.
type KeyStateMap map[string]LetterState

// Apply merges one evaluated row into m.
func (m KeyStateMap) Apply(guess Word, row Evaluation) {
	for i, r := range []rune(string(guess)) {
		if i >= len(row) {
			break
		}
		k := string(r)
		m[k] = MergeKeyState(m[k], row[i])
	}
}

// Clone returns an independent copy of m.
func (m KeyStateMap) Clone() KeyStateMap {
	out := make(KeyStateMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
