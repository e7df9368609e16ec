package authority

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/adapter"
	"github.com/dogechain-lab/objectchain/types"
)

var (
	tsOwner  = types.StringToAddress("0xa1")
	tsDigest = types.TransactionDigest{7}
)

func TestTemporaryStoreReadsAreIsolated(t *testing.T) {
	t.Parallel()

	input := adapter.NewObject(types.StringToObjectID("0x10"), tsOwner, 1)
	ts := NewTemporaryStore([]*types.Object{input}, tsDigest)

	read := ts.ReadObject(input.ID)
	read.Transfer(types.StringToAddress("0xb1"))

	assert.Equal(t, tsOwner, ts.ReadObject(input.ID).Owner)
	assert.Equal(t, tsOwner, input.Owner)
	assert.Nil(t, ts.ReadObject(types.StringToObjectID("0x404")))
}

func TestTemporaryStoreEnsureActiveInputsMutated(t *testing.T) {
	t.Parallel()

	touched := adapter.NewObject(types.StringToObjectID("0x10"), tsOwner, 1)
	untouched := adapter.NewObject(types.StringToObjectID("0x11"), tsOwner, 2)
	frozen := adapter.NewObject(types.StringToObjectID("0x12"), tsOwner, 3)
	frozen.Data.Move.ReadOnly = true

	ts := NewTemporaryStore([]*types.Object{touched, untouched, frozen}, tsDigest)

	next := ts.ReadObject(touched.ID)
	next.UpdateContents(adapter.EncodeValue(touched.ID, 9))
	ts.WriteObject(next)

	ts.EnsureActiveInputsMutated()

	written := ts.Written()
	assert.Len(t, written, 2)

	for _, obj := range written {
		assert.Equal(t, types.SequenceNumber(1), obj.Version)
		assert.Equal(t, tsDigest, obj.PreviousTransaction)
	}

	assert.Equal(t, untouched.Move().Contents, written[1].Move().Contents)

	effects := ts.Effects(types.NewSuccessStatus(1), touched.ID, nil, nil)
	assert.Len(t, effects.Mutated, 2)
	assert.Empty(t, effects.Created)
	assert.Equal(t, written[0].RefOwner(), effects.GasObject)
}

func TestTemporaryStoreDeletions(t *testing.T) {
	t.Parallel()

	deleted := adapter.NewObject(types.StringToObjectID("0x10"), tsOwner, 1)
	wrapped := adapter.NewObject(types.StringToObjectID("0x11"), tsOwner, 2)

	ts := NewTemporaryStore([]*types.Object{deleted, wrapped}, tsDigest)

	ts.DeleteObject(deleted.ID, deleted.Version, false)
	ts.DeleteObject(wrapped.ID, wrapped.Version, true)

	// created then deleted in the same transaction leaves no trace
	transient := adapter.NewObject(types.StringToObjectID("0x20"), tsOwner, 3)
	ts.WriteObject(transient)
	ts.DeleteObject(transient.ID, transient.Version, false)

	assert.Nil(t, ts.ReadObject(deleted.ID))
	assert.Empty(t, ts.Written())
	assert.Equal(t, []types.ObjectRef{
		{ObjectID: deleted.ID, Version: 1, Digest: types.ObjectDigestDeleted},
		{ObjectID: wrapped.ID, Version: 1, Digest: types.ObjectDigestWrapped},
	}, ts.Deleted())

	effects := ts.Effects(types.NewSuccessStatus(1), types.ObjectID{}, nil, nil)
	assert.Len(t, effects.Deleted, 1)
	assert.Len(t, effects.Wrapped, 1)

	changes := ts.Changes()
	assert.Len(t, changes.Inputs, 2)
	assert.Len(t, changes.ActiveInputs, 2)
	assert.Len(t, changes.Deleted, 2)
}

func TestTemporaryStoreReset(t *testing.T) {
	t.Parallel()

	input := adapter.NewObject(types.StringToObjectID("0x10"), tsOwner, 1)
	ts := NewTemporaryStore([]*types.Object{input}, tsDigest)

	ts.WriteObject(adapter.NewObject(types.StringToObjectID("0x20"), tsOwner, 2))
	ts.DeleteObject(input.ID, input.Version, false)
	ts.Reset()

	assert.Empty(t, ts.Written())
	assert.Empty(t, ts.Deleted())
	assert.Equal(t, input.Ref(), ts.ReadObject(input.ID).Ref())
}

func TestTemporaryStoreUnwrapped(t *testing.T) {
	t.Parallel()

	ts := NewTemporaryStore(nil, tsDigest)

	restored := adapter.NewObject(types.StringToObjectID("0x20"), tsOwner, 1)
	restored.IncrementVersion()
	created := adapter.NewObject(types.StringToObjectID("0x21"), tsOwner, 2)

	ts.WriteObject(restored)
	ts.WriteObject(created)

	assert.Len(t, ts.Created(), 2)

	ts.PatchUnwrappedVersions([]types.ObjectID{restored.ID})

	effects := ts.Effects(types.NewSuccessStatus(1), types.ObjectID{}, nil, []types.ObjectID{restored.ID})
	assert.Len(t, effects.Unwrapped, 1)
	assert.Equal(t, types.SequenceNumber(2), effects.Unwrapped[0].Ref.Version)
	assert.Len(t, effects.Created, 1)
	assert.Equal(t, created.ID, effects.Created[0].Ref.ObjectID)
}
