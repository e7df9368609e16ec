package rawdb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/helper/kvdb/leveldb"
	"github.com/dogechain-lab/objectchain/types"
)

func TestObjectVersions(t *testing.T) {
	t.Parallel()

	db, err := leveldb.NewMemory()
	assert.NoError(t, err)

	defer db.Close()

	id := types.StringToObjectID("0x1")
	obj := types.NewMoveObject(id, types.StringToAddress("0xa"), "T", []byte{1}, types.GenesisTransactionDigest)

	assert.NoError(t, WriteObject(db, obj))

	next := obj.Copy()
	next.UpdateContents([]byte{2})

	assert.NoError(t, WriteObject(db, next))
	assert.NoError(t, WriteLatestObjectRef(db, next.Ref()))

	latest, err := ReadLatestObjectRef(db, id)
	assert.NoError(t, err)
	assert.Equal(t, next.Ref(), latest)

	old, err := ReadObject(db, id, 0)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1}, old.Move().Contents)

	_, err = ReadObject(db, id, 5)
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.NoError(t, DeleteLatestObjectRef(db, id))

	_, err = ReadLatestObjectRef(db, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderLockSlots(t *testing.T) {
	t.Parallel()

	db, err := leveldb.NewMemory()
	assert.NoError(t, err)

	defer db.Close()

	ref := types.ObjectRef{ObjectID: types.StringToObjectID("0x1"), Digest: types.Digest{1}}

	_, err = ReadOrderLock(db, ref)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, WriteOrderLock(db, ref, nil))

	lock, err := ReadOrderLock(db, ref)
	assert.NoError(t, err)
	assert.Nil(t, lock)

	digest := types.Digest{9}
	assert.NoError(t, WriteOrderLock(db, ref, &digest))

	lock, err = ReadOrderLock(db, ref)
	assert.NoError(t, err)
	assert.Equal(t, digest, *lock)
}

func TestIterateParents(t *testing.T) {
	t.Parallel()

	db, err := leveldb.NewMemory()
	assert.NoError(t, err)

	defer db.Close()

	id := types.StringToObjectID("0x1")
	other := types.StringToObjectID("0x2")

	for v := 0; v < 3; v++ {
		ref := types.ObjectRef{ObjectID: id, Version: types.SequenceNumber(v), Digest: types.Digest{byte(v)}}
		assert.NoError(t, WriteParent(db, ref, types.Digest{byte(10 + v)}))
	}

	deleted := types.ObjectRef{ObjectID: id, Version: 3, Digest: types.ObjectDigestDeleted}
	assert.NoError(t, WriteParent(db, deleted, types.Digest{13}))
	assert.NoError(t, WriteParent(db, types.ObjectRef{ObjectID: other}, types.Digest{20}))

	all, err := IterateParents(db, id, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, types.ObjectDigestDeleted, all[3].Ref.Digest)

	version := types.SequenceNumber(1)
	one, err := IterateParents(db, id, &version)
	assert.NoError(t, err)
	assert.Len(t, one, 1)
	assert.Equal(t, types.Digest{11}, one[0].Transaction)

	parent, err := ReadParent(db, deleted)
	assert.NoError(t, err)
	assert.Equal(t, types.Digest{13}, parent)
}

func TestOwnerIndex(t *testing.T) {
	t.Parallel()

	db, err := leveldb.NewMemory()
	assert.NoError(t, err)

	defer db.Close()

	alice := types.StringToAddress("0xa")
	bob := types.StringToAddress("0xb")

	refs := []types.ObjectRef{
		{ObjectID: types.StringToObjectID("0x2"), Version: 1},
		{ObjectID: types.StringToObjectID("0x1"), Version: 4},
	}

	for _, ref := range refs {
		assert.NoError(t, WriteOwnerIndex(db, alice, ref))
	}

	assert.NoError(t, WriteOwnerIndex(db, bob, types.ObjectRef{ObjectID: types.StringToObjectID("0x3")}))

	owned, err := ReadOwnedObjects(db, alice)
	assert.NoError(t, err)
	assert.Equal(t, []types.ObjectRef{refs[1], refs[0]}, owned)

	assert.NoError(t, DeleteOwnerIndex(db, alice, refs[0].ObjectID))

	owned, err = ReadOwnedObjects(db, alice)
	assert.NoError(t, err)
	assert.Equal(t, []types.ObjectRef{refs[1]}, owned)
}
