package machine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corewar-vm/corewar/internal/asm"
	"github.com/corewar-vm/corewar/internal/corfile"
)

// TestCompiledChampionRunsToLiveness assembles source text through the same
// two-pass pipeline casm uses, loads the result through corfile.Decode, and
// runs it on a real Machine — the round trip described by SPEC_FULL.md's
// testable property 1, exercised end to end rather than at the codec layer
// alone.
func TestCompiledChampionRunsToLiveness(t *testing.T) {
	source := `.name "looper"
.comment "lives forever"
start: live %1
ld %0, r2
zjmp %:start
`
	compiled, err := asm.Compile(source, nil)
	assert.NoError(t, err)

	exe, err := corfile.Decode(compiled)
	assert.NoError(t, err)
	assert.Equal(t, "looper", exe.Header.Name)

	m, err := New([]Champion{{ID: 1, Name: exe.Header.Name, Comment: exe.Header.Comment, Program: exe.Program}}, &bytes.Buffer{})
	assert.NoError(t, err)

	for i := 0; i < 5000; i++ {
		if _, ok := m.Step(); !ok {
			t.Fatalf("match ended unexpectedly at cycle %d", i)
		}
	}

	id, ok := m.LastLivingChampion()
	assert.True(t, ok)
	assert.Equal(t, int32(1), id)
}
