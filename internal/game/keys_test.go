package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeKeyState(t *testing.T) {
	tests := []struct {
		prev, next, want LetterState
	}{
		{Present, Absent, Present},
		{Absent, Correct, Correct},
		{Empty, Correct, Correct}, // unset previous
		{Correct, Present, Correct},
		{Correct, Absent, Correct},
		{Absent, Absent, Absent},
		{Empty, Absent, Absent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MergeKeyState(tt.prev, tt.next), "merge(%s, %s)", tt.prev, tt.next)
	}
}

func TestMergeKeyState_NeverWeakens(t *testing.T) {
	states := []LetterState{Empty, Absent, Present, Correct}
	for _, x := range states {
		for _, a := range states {
			for _, b := range states {
				once := MergeKeyState(x, a)
				twice := MergeKeyState(once, b)
				assert.GreaterOrEqual(t, twice, once)
			}
		}
	}
}

func TestKeyStateMap_Apply(t *testing.T) {
	keys := KeyStateMap{}
	keys.Apply("APRON", Evaluate("APPLE", "APRON"))
	assert.Equal(t, Correct, keys["A"])
	assert.Equal(t, Correct, keys["P"])
	assert.Equal(t, Absent, keys["R"])

	// P elsewhere and absent later must not downgrade the key.
	keys.Apply("SPEED", Evaluation{Absent, Absent, Absent, Absent, Absent})
	assert.Equal(t, Correct, keys["P"])
	assert.Equal(t, Absent, keys["S"])

	clone := keys.Clone()
	clone["Z"] = Present
	_, ok := keys["Z"]
	assert.False(t, ok)
}
