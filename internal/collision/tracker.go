package collision

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/errs"
	"github.com/arloliu/bdoc/internal/hash"
)

// Tracker records the field names seen at one document level and detects
// duplicates.
//
// Names are bucketed by their xxHash64. Two different names sharing a hash are
// both kept in the bucket, so a hash collision is never reported as a
// duplicate.
type Tracker struct {
	names map[uint64][]string // hash → names seen with that hash
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64][]string),
	}
}

// Track records name. It returns an error wrapping errs.ErrDuplicateFieldName
// if name was already tracked, and errs.ErrEmptyFieldName for an empty name.
func (t *Tracker) Track(name string) error {
	if name == "" {
		return errs.ErrEmptyFieldName
	}

	h := hash.ID(name)
	bucket := t.names[h]
	for _, existing := range bucket {
		if existing == name {
			return errors.Wrapf(errs.ErrDuplicateFieldName, "%q", name)
		}
	}
	t.names[h] = append(bucket, name)

	return nil
}

// Reset forgets all tracked names, keeping the map for reuse.
func (t *Tracker) Reset() {
	clear(t.names)
}
