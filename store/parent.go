package store

import (
	"errors"

	"github.com/dogechain-lab/objectchain/helper/rawdb"
	"github.com/dogechain-lab/objectchain/types"
)

// ParentEntry links an object version to the transaction that produced it
type ParentEntry = rawdb.ParentEntry

// Parent returns the transaction that produced ref, nil if unknown
func (s *Store) Parent(ref types.ObjectRef) (*types.TransactionDigest, error) {
	digest, err := rawdb.ReadParent(s.db, ref)
	if errors.Is(err, rawdb.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return &digest, nil
}

// MultiGetParents is Parent over many refs, in order
func (s *Store) MultiGetParents(refs []types.ObjectRef) ([]*types.TransactionDigest, error) {
	parents := make([]*types.TransactionDigest, len(refs))

	for i, ref := range refs {
		parent, err := s.Parent(ref)
		if err != nil {
			return nil, err
		}

		parents[i] = parent
	}

	return parents, nil
}

// GetParentIterator lists the parent entries of an object in version order,
// all of them or only those of one version
func (s *Store) GetParentIterator(
	id types.ObjectID,
	version *types.SequenceNumber,
) ([]ParentEntry, error) {
	return rawdb.IterateParents(s.db, id, version)
}

// GetLatestParentEntry returns the entry of the highest version of id, which
// is a deletion marker for deleted objects. Nil for unknown objects.
func (s *Store) GetLatestParentEntry(id types.ObjectID) (*ParentEntry, error) {
	entries, err := rawdb.IterateParents(s.db, id, nil)
	if err != nil || len(entries) == 0 {
		return nil, err
	}

	latest := entries[len(entries)-1]

	return &latest, nil
}
