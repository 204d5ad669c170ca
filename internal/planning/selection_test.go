package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionCommitIsDirectionIndependent(t *testing.T) {
	var forward, backward Selection
	require.True(t, forward.Begin("user-x", d(t, "2024-03-04")))
	require.True(t, forward.Extend("user-x", d(t, "2024-03-08")))
	require.True(t, backward.Begin("user-x", d(t, "2024-03-08")))
	require.True(t, backward.Extend("user-x", d(t, "2024-03-04")))

	for _, day := range []string{"2024-03-04", "2024-03-06", "2024-03-08"} {
		assert.True(t, forward.Highlighted("user-x", d(t, day)), day)
		assert.True(t, backward.Highlighted("user-x", d(t, day)), day)
	}
	assert.False(t, forward.Highlighted("user-x", d(t, "2024-03-09")))
	assert.False(t, forward.Highlighted("trainer-y", d(t, "2024-03-05")))

	a, ok := forward.Commit()
	require.True(t, ok)
	b, ok := backward.Commit()
	require.True(t, ok)
	assert.Equal(t, a, b)
	assert.Equal(t, []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08"}, keys(a.Days()))
	assert.Equal(t, PhaseIdle, forward.Phase())
	assert.Empty(t, forward.Owner())
}

func TestSelectionIgnoresOtherRowsAndSecondBegin(t *testing.T) {
	var s Selection
	assert.False(t, s.Extend("user-x", d(t, "2024-03-05")), "extend while idle")
	assert.False(t, s.Begin("", d(t, "2024-03-05")))

	require.True(t, s.Begin("user-x", d(t, "2024-03-05")))
	assert.Equal(t, PhaseSelecting, s.Phase())
	assert.Equal(t, "selecting", s.Phase().String())
	assert.False(t, s.Begin("trainer-y", d(t, "2024-03-06")))
	assert.False(t, s.Extend("trainer-y", d(t, "2024-03-09")))

	r, ok := s.Commit()
	require.True(t, ok)
	assert.Equal(t, "user-x", r.Owner)
	assert.Equal(t, []string{"2024-03-05"}, keys(r.Days()))
}

func TestSelectionCancelAndCommitWhenIdle(t *testing.T) {
	var s Selection
	_, ok := s.Commit()
	assert.False(t, ok)

	require.True(t, s.Begin("user-x", d(t, "2024-03-05")))
	s.Cancel()
	assert.Equal(t, PhaseIdle, s.Phase())
	_, ok = s.Commit()
	assert.False(t, ok)
	_, _, ok = s.Bounds()
	assert.False(t, ok)
}
