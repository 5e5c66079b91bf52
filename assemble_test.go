package msbackup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblerSingleFragment(t *testing.T) {
	a := NewAssembler()
	asm, outcome := a.Add(fragment(t, `\README.TXT`, 1, true, []byte("hello")))
	require.Equal(t, OutcomeCompleted, outcome)
	require.NotNil(t, asm)
	assert.Equal(t, `\README.TXT`, asm.Path)
	assert.Equal(t, []byte("hello"), asm.Content)
	assert.Equal(t, 1, asm.Parts)
	assert.Empty(t, a.Unfinished())
}

func TestAssemblerAnyArrivalOrder(t *testing.T) {
	parts := map[uint16][]byte{1: []byte("aaa"), 2: []byte("bb"), 3: []byte("c")}
	orders := [][]uint16{
		{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1},
	}
	for _, order := range orders {
		a := NewAssembler()
		var asm *Assembled
		for i, seq := range order {
			got, outcome := a.Add(fragment(t, `\BIG.BIN`, seq, seq == 3, parts[seq]))
			if i < len(order)-1 {
				require.Equal(t, OutcomePending, outcome, "order %v step %d", order, i)
				continue
			}
			require.Equal(t, OutcomeCompleted, outcome, "order %v", order)
			asm = got
		}
		require.NotNil(t, asm, "order %v", order)
		assert.Equal(t, []byte("aaabbc"), asm.Content, "order %v", order)
		assert.Equal(t, 3, asm.Parts, "order %v", order)
		assert.Empty(t, a.Inconsistencies(), "order %v", order)
	}
}

func TestAssemblerMissingFragmentStaysPending(t *testing.T) {
	a := NewAssembler()
	_, outcome := a.Add(fragment(t, `\DB.DAT`, 1, false, []byte("one")))
	require.Equal(t, OutcomePending, outcome)
	_, outcome = a.Add(fragment(t, `\DB.DAT`, 2, false, []byte("two")))
	require.Equal(t, OutcomePending, outcome)

	unfinished := a.Unfinished()
	require.Len(t, unfinished, 1)
	assert.Equal(t, `\DB.DAT`, unfinished[0].Path)
	assert.Equal(t, 2, unfinished[0].Fragments)
}

func TestAssemblerContiguousButNotLastStaysPending(t *testing.T) {
	// Sequences 1..2 complete a run, but the last flag has not shown up yet:
	// more fragments are expected from a future volume.
	a := NewAssembler()
	a.Add(fragment(t, `\LOG.TXT`, 2, false, []byte("2")))
	_, outcome := a.Add(fragment(t, `\LOG.TXT`, 1, false, []byte("1")))
	assert.Equal(t, OutcomePending, outcome)
	require.Len(t, a.Unfinished(), 1)
}

func TestAssemblerSkipsErroredFragments(t *testing.T) {
	a := NewAssembler()
	bad := &Fragment{Path: BadFilePath, Sequence: 1, Last: true, Warnings: []string{"unexpected file path len: 0"}}
	asm, outcome := a.Add(bad)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Nil(t, asm)
	// The sentinel path must never enter reassembly state.
	assert.Empty(t, a.Unfinished())

	good, outcome := a.Add(fragment(t, BadFilePath, 1, true, []byte("legit")))
	require.Equal(t, OutcomeCompleted, outcome)
	assert.Equal(t, []byte("legit"), good.Content)
}

func TestAssemblerDuplicateCompletion(t *testing.T) {
	a := NewAssembler()
	_, outcome := a.Add(fragment(t, `\A.TXT`, 1, true, []byte("x")))
	require.Equal(t, OutcomeCompleted, outcome)

	asm, outcome := a.Add(fragment(t, `\A.TXT`, 1, true, []byte("y")))
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Nil(t, asm)
}

func TestAssemblerPrematureLastFlag(t *testing.T) {
	// Last flag on a middle fragment is recorded but does not veto
	// completion when the final fragment also carries it.
	a := NewAssembler()
	a.Add(fragment(t, `\ODD.BIN`, 1, false, []byte("1")))
	a.Add(fragment(t, `\ODD.BIN`, 3, true, []byte("3")))
	asm, outcome := a.Add(fragment(t, `\ODD.BIN`, 2, true, []byte("2")))
	require.Equal(t, OutcomeCompleted, outcome)
	assert.Equal(t, []byte("123"), asm.Content)
	require.NotEmpty(t, a.Inconsistencies())
	assert.Contains(t, a.Inconsistencies()[0], `\ODD.BIN`)
}

func TestAssemblerIndependentPaths(t *testing.T) {
	a := NewAssembler()
	a.Add(fragment(t, `\ONE.DAT`, 1, false, []byte("o1")))
	a.Add(fragment(t, `\TWO.DAT`, 1, false, []byte("t1")))

	asm, outcome := a.Add(fragment(t, `\TWO.DAT`, 2, true, []byte("t2")))
	require.Equal(t, OutcomeCompleted, outcome)
	assert.Equal(t, []byte("t1t2"), asm.Content)

	unfinished := a.Unfinished()
	require.Len(t, unfinished, 1)
	assert.Equal(t, `\ONE.DAT`, unfinished[0].Path)
}
