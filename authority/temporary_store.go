package authority

import (
	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/dogechain-lab/objectchain/store"
	"github.com/dogechain-lab/objectchain/types"
)

// change is the buffered outcome for one object id
type change struct {
	object  *types.Object
	deleted bool
	wrapped bool
	version types.SequenceNumber
}

// TemporaryStore buffers the writes and deletions of one execution. It only
// reads the inputs it was created with and never touches the persistent
// store; Reset drops everything buffered so far.
type TemporaryStore struct {
	digest types.TransactionDigest
	inputs map[types.ObjectID]*types.Object
	order  []types.ObjectID
	txn    *iradix.Txn
}

// NewTemporaryStore creates a buffer over copies of the inputs
func NewTemporaryStore(inputs []*types.Object, digest types.TransactionDigest) *TemporaryStore {
	ts := &TemporaryStore{
		digest: digest,
		inputs: make(map[types.ObjectID]*types.Object, len(inputs)),
		order:  make([]types.ObjectID, 0, len(inputs)),
		txn:    iradix.New().Txn(),
	}

	for _, obj := range inputs {
		ts.inputs[obj.ID] = obj.Copy()
		ts.order = append(ts.order, obj.ID)
	}

	return ts
}

func (ts *TemporaryStore) get(id types.ObjectID) (*change, bool) {
	v, ok := ts.txn.Get(id.Bytes())
	if !ok {
		return nil, false
	}

	//nolint:forcetypeassert
	return v.(*change), true
}

// ReadObject returns the buffered state of id, falling back to the inputs
func (ts *TemporaryStore) ReadObject(id types.ObjectID) *types.Object {
	if c, ok := ts.get(id); ok {
		if c.deleted {
			return nil
		}

		return c.object
	}

	if obj, ok := ts.inputs[id]; ok {
		return obj.Copy()
	}

	return nil
}

// WriteObject buffers a new version produced by this transaction
func (ts *TemporaryStore) WriteObject(obj *types.Object) {
	obj.PreviousTransaction = ts.digest
	ts.txn.Insert(obj.ID.Bytes(), &change{object: obj})
}

// DeleteObject buffers the deletion of id at its pre-deletion version. An
// object created by this same transaction is simply dropped.
func (ts *TemporaryStore) DeleteObject(id types.ObjectID, version types.SequenceNumber, wrapped bool) {
	if _, ok := ts.inputs[id]; !ok {
		if c, ok := ts.get(id); ok && !c.deleted {
			ts.txn.Delete(id.Bytes())

			return
		}
	}

	ts.txn.Insert(id.Bytes(), &change{deleted: true, wrapped: wrapped, version: version})
}

// Reset drops every buffered change
func (ts *TemporaryStore) Reset() {
	ts.txn = iradix.New().Txn()
}

// walk visits the buffered changes in object id order
func (ts *TemporaryStore) walk(fn func(id types.ObjectID, c *change)) {
	ts.txn.Root().Walk(func(k []byte, v interface{}) bool {
		//nolint:forcetypeassert
		fn(types.BytesToObjectID(k), v.(*change))

		return false
	})
}

// Written returns the buffered object writes in id order
func (ts *TemporaryStore) Written() []*types.Object {
	written := make([]*types.Object, 0)

	ts.walk(func(_ types.ObjectID, c *change) {
		if !c.deleted {
			written = append(written, c.object)
		}
	})

	return written
}

// Deleted returns the deletions as effect refs, at the version the deletion
// creates
func (ts *TemporaryStore) Deleted() []types.ObjectRef {
	deleted := make([]types.ObjectRef, 0)

	ts.walk(func(id types.ObjectID, c *change) {
		if c.deleted {
			deleted = append(deleted, deletedRef(id, c))
		}
	})

	return deleted
}

func deletedRef(id types.ObjectID, c *change) types.ObjectRef {
	digest := types.ObjectDigestDeleted
	if c.wrapped {
		digest = types.ObjectDigestWrapped
	}

	return types.ObjectRef{ObjectID: id, Version: c.version.Increment(), Digest: digest}
}

// activeInputs are the mutable inputs, in input order
func (ts *TemporaryStore) activeInputs() []*types.Object {
	active := make([]*types.Object, 0, len(ts.order))

	for _, id := range ts.order {
		if obj := ts.inputs[id]; !obj.IsReadOnly() {
			active = append(active, obj)
		}
	}

	return active
}

// EnsureActiveInputsMutated writes a new version of every mutable input the
// execution left untouched, so each of them advances exactly once
func (ts *TemporaryStore) EnsureActiveInputsMutated() {
	for _, obj := range ts.activeInputs() {
		if _, ok := ts.get(obj.ID); ok {
			continue
		}

		next := obj.Copy()
		next.IncrementVersion()
		ts.WriteObject(next)
	}
}

// Created returns the written objects that were not inputs. Unwrapped
// objects are among them until they are patched.
func (ts *TemporaryStore) Created() []*types.Object {
	created := make([]*types.Object, 0)

	for _, obj := range ts.Written() {
		if _, ok := ts.inputs[obj.ID]; !ok {
			created = append(created, obj)
		}
	}

	return created
}

// PatchUnwrappedVersions bumps the objects that reappear from a wrapper
// past the version their wrapping deleted them at
func (ts *TemporaryStore) PatchUnwrappedVersions(ids []types.ObjectID) {
	for _, id := range ids {
		if c, ok := ts.get(id); ok && !c.deleted {
			c.object.IncrementVersion()
		}
	}
}

// Effects summarizes the buffered changes. unwrapped holds the ids found to
// be reappearing objects.
func (ts *TemporaryStore) Effects(
	status types.ExecutionStatus,
	gasObjectID types.ObjectID,
	dependencies []types.TransactionDigest,
	unwrapped []types.ObjectID,
) *types.OrderEffects {
	isUnwrapped := make(map[types.ObjectID]struct{}, len(unwrapped))
	for _, id := range unwrapped {
		isUnwrapped[id] = struct{}{}
	}

	effects := &types.OrderEffects{
		Status:            status,
		TransactionDigest: ts.digest,
		Created:           []types.ObjectRefOwner{},
		Mutated:           []types.ObjectRefOwner{},
		Unwrapped:         []types.ObjectRefOwner{},
		Deleted:           []types.ObjectRef{},
		Wrapped:           []types.ObjectRef{},
		Dependencies:      dependencies,
	}

	ts.walk(func(id types.ObjectID, c *change) {
		if c.deleted {
			if c.wrapped {
				effects.Wrapped = append(effects.Wrapped, deletedRef(id, c))
			} else {
				effects.Deleted = append(effects.Deleted, deletedRef(id, c))
			}

			return
		}

		refOwner := c.object.RefOwner()

		if id == gasObjectID {
			effects.GasObject = refOwner
		}

		if _, ok := ts.inputs[id]; ok {
			effects.Mutated = append(effects.Mutated, refOwner)
		} else if _, ok := isUnwrapped[id]; ok {
			effects.Unwrapped = append(effects.Unwrapped, refOwner)
		} else {
			effects.Created = append(effects.Created, refOwner)
		}
	})

	return effects
}

// Changes returns the buffer in the form the store commits
func (ts *TemporaryStore) Changes() *store.Changes {
	inputs := make([]*types.Object, 0, len(ts.order))
	active := make([]types.ObjectRef, 0, len(ts.order))

	for _, id := range ts.order {
		inputs = append(inputs, ts.inputs[id])
	}

	for _, obj := range ts.activeInputs() {
		active = append(active, obj.Ref())
	}

	return &store.Changes{
		Inputs:       inputs,
		ActiveInputs: active,
		Written:      ts.Written(),
		Deleted:      ts.Deleted(),
	}
}
