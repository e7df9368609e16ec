package store

import (
	"errors"
	"fmt"

	"github.com/dogechain-lab/objectchain/helper/kvdb"
	"github.com/dogechain-lab/objectchain/helper/rawdb"
	"github.com/dogechain-lab/objectchain/types"
)

// InitOrderLock creates a free lock slot for ref. An existing slot, free or
// locked, is left untouched.
func (s *Store) InitOrderLock(ref types.ObjectRef) error {
	unlock := s.locks.lock(ref.Digest)
	defer unlock()

	return initLockSlot(s.db, s.db, ref)
}

// initLockSlot writes a free slot for ref into w unless r already has one
func initLockSlot(r kvdb.KVReader, w kvdb.KVWriter, ref types.ObjectRef) error {
	_, err := rawdb.ReadOrderLock(r, ref)
	if err == nil {
		return nil
	} else if !errors.Is(err, rawdb.ErrNotFound) {
		return err
	}

	return rawdb.WriteOrderLock(w, ref, nil)
}

// GetOrderLock returns the signed order ref is locked to. A free slot
// returns nil, a missing slot ErrOrderLockDoesNotExist.
func (s *Store) GetOrderLock(ref types.ObjectRef) (*types.SignedOrder, error) {
	digest, err := rawdb.ReadOrderLock(s.db, ref)
	if errors.Is(err, rawdb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", types.ErrOrderLockDoesNotExist, ref)
	} else if err != nil || digest == nil {
		return nil, err
	}

	signed, err := rawdb.ReadSignedOrder(s.db, *digest)
	if err != nil {
		return nil, fmt.Errorf("signed order %s locking %s: %w", digest, ref, err)
	}

	return signed, nil
}

// SetOrderLock locks every ref to the signed order, or none of them. Slots
// already locked to the same order are accepted; a slot locked to another
// order fails the whole call with a ConflictingOrderError. A ref that is no
// longer the latest version of its object cannot be locked.
func (s *Store) SetOrderLock(refs []types.ObjectRef, signed *types.SignedOrder) error {
	digest := signed.Order.Digest()

	// UpdateState retires refs under the same stripes
	unlock := s.locks.lock(refDigests(refs)...)
	defer unlock()

	for _, ref := range refs {
		if err := s.checkLatest(ref); err != nil {
			return err
		}

		current, err := rawdb.ReadOrderLock(s.db, ref)
		if errors.Is(err, rawdb.ErrNotFound) {
			return fmt.Errorf("%w: %s", types.ErrOrderLockDoesNotExist, ref)
		} else if err != nil {
			return err
		}

		if current != nil && *current != digest {
			return &types.ConflictingOrderError{Ref: ref, Pending: *current}
		}
	}

	batch := s.db.NewBatch()

	if err := rawdb.WriteSignedOrder(batch, signed); err != nil {
		return err
	}

	for _, ref := range refs {
		if err := rawdb.WriteOrderLock(batch, ref, &digest); err != nil {
			return err
		}
	}

	return batch.Write()
}

func (s *Store) checkLatest(ref types.ObjectRef) error {
	latest, err := rawdb.ReadLatestObjectRef(s.db, ref.ObjectID)
	if errors.Is(err, rawdb.ErrNotFound) {
		return fmt.Errorf("%w: %s", types.ErrObjectNotFound, ref.ObjectID)
	} else if err != nil {
		return err
	}

	if latest != ref {
		return fmt.Errorf("%w: %s is retired, latest is %s", types.ErrUnexpectedSequenceNumber, ref, latest)
	}

	return nil
}
