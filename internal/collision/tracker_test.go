package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bdoc/errs"
	"github.com/arloliu/bdoc/internal/hash"
)

func TestTracker_Track_Success(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("a"))
	require.NoError(t, tracker.Track("b"))
	require.Len(t, tracker.names, 2)
}

func TestTracker_Track_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("name"))
	err := tracker.Track("name")

	require.ErrorIs(t, err, errs.ErrDuplicateFieldName)
	require.Contains(t, err.Error(), `"name"`)
}

func TestTracker_Track_EmptyName(t *testing.T) {
	tracker := NewTracker()

	err := tracker.Track("")

	require.ErrorIs(t, err, errs.ErrEmptyFieldName)
	require.Empty(t, tracker.names)
}

func TestTracker_HashCollisionIsNotDuplicate(t *testing.T) {
	tracker := NewTracker()

	// Force two names into the same bucket.
	h := hash.ID("x")
	tracker.names[h] = []string{"not-x"}

	require.NoError(t, tracker.Track("x"))
	require.Equal(t, []string{"not-x", "x"}, tracker.names[h])
	require.ErrorIs(t, tracker.Track("x"), errs.ErrDuplicateFieldName)
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Track("a"))
	require.Error(t, tracker.Track("a"))

	tracker.Reset()

	require.Empty(t, tracker.names)
	require.NoError(t, tracker.Track("a"))
}
