package rawdb

import (
	"fmt"

	"github.com/dogechain-lab/objectchain/helper/kvdb"
	"github.com/dogechain-lab/objectchain/types"
)

// ParentEntry links an object version to the transaction that produced it
type ParentEntry struct {
	Ref         types.ObjectRef
	Transaction types.TransactionDigest
}

func ReadLatestObjectRef(db kvdb.KVReader, id types.ObjectID) (types.ObjectRef, error) {
	data, err := readRaw(db, objectLatestKey(id))
	if err != nil {
		return types.ObjectRef{}, err
	}

	ref, ok := decodeRef(data)
	if !ok {
		return types.ObjectRef{}, fmt.Errorf("corrupted latest ref of %s", id)
	}

	return ref, nil
}

func WriteLatestObjectRef(db kvdb.KVWriter, ref types.ObjectRef) error {
	return db.Set(objectLatestKey(ref.ObjectID), encodeRef(ref))
}

func DeleteLatestObjectRef(db kvdb.KVWriter, id types.ObjectID) error {
	return db.Delete(objectLatestKey(id))
}

// ReadObject reads one stored version of an object
func ReadObject(db kvdb.KVReader, id types.ObjectID, version types.SequenceNumber) (*types.Object, error) {
	obj := new(types.Object)
	err := readRLP(db, objectVersionKey(id, version), obj)

	return obj, err
}

// WriteObject appends a version. Versions already written are never rewritten
// with different content since the key covers the version.
func WriteObject(db kvdb.KVWriter, obj *types.Object) error {
	return writeRLP(db, objectVersionKey(obj.ID, obj.Version), obj)
}

// ReadOrderLock returns the digest an object ref is locked to. A nil digest
// with a nil error is an initialized free slot.
func ReadOrderLock(db kvdb.KVReader, ref types.ObjectRef) (*types.TransactionDigest, error) {
	data, err := readRaw(db, orderLockKey(ref))
	if err != nil {
		return nil, err
	}

	switch len(data) {
	case 0:
		return nil, nil
	case types.DigestLength:
		digest := types.BytesToDigest(data)

		return &digest, nil
	default:
		return nil, fmt.Errorf("corrupted order lock of %s", ref)
	}
}

// WriteOrderLock sets the slot of ref. A nil digest initializes a free slot.
func WriteOrderLock(db kvdb.KVWriter, ref types.ObjectRef, digest *types.TransactionDigest) error {
	if digest == nil {
		return db.Set(orderLockKey(ref), []byte{})
	}

	return db.Set(orderLockKey(ref), digest.Bytes())
}

func WriteParent(db kvdb.KVWriter, ref types.ObjectRef, digest types.TransactionDigest) error {
	return db.Set(parentKey(ref), digest.Bytes())
}

func ReadParent(db kvdb.KVReader, ref types.ObjectRef) (types.TransactionDigest, error) {
	data, err := readRaw(db, parentKey(ref))
	if err != nil {
		return types.ZeroDigest, err
	}

	return types.BytesToDigest(data), nil
}

// IterateParents lists the parent entries of id in version order. A non nil
// version restricts the entries to that version.
func IterateParents(db kvdb.Iteratee, id types.ObjectID, version *types.SequenceNumber) ([]ParentEntry, error) {
	prefix := makeKey(parentPrefix, id.Bytes())

	var start []byte
	if version != nil {
		start = encodeUint(uint64(*version))
	}

	iter := db.NewIterator(prefix, start)
	defer iter.Release()

	entries := make([]ParentEntry, 0)

	for iter.Next() {
		ref, ok := decodeRef(iter.Key()[len(parentPrefix):])
		if !ok {
			return nil, fmt.Errorf("corrupted parent key of %s", id)
		}

		if version != nil && ref.Version != *version {
			break
		}

		entries = append(entries, ParentEntry{
			Ref:         ref,
			Transaction: types.BytesToDigest(iter.Value()),
		})
	}

	return entries, iter.Error()
}

func WriteOwnerIndex(db kvdb.KVWriter, owner types.Address, ref types.ObjectRef) error {
	return db.Set(ownerIndexKey(owner, ref.ObjectID), encodeRef(ref))
}

func DeleteOwnerIndex(db kvdb.KVWriter, owner types.Address, id types.ObjectID) error {
	return db.Delete(ownerIndexKey(owner, id))
}

// ReadOwnedObjects lists the latest refs of every object owned by owner, by id
func ReadOwnedObjects(db kvdb.Iteratee, owner types.Address) ([]types.ObjectRef, error) {
	iter := db.NewIterator(makeKey(ownerIndexPrefix, owner.Bytes()), nil)
	defer iter.Release()

	refs := make([]types.ObjectRef, 0)

	for iter.Next() {
		ref, ok := decodeRef(iter.Value())
		if !ok {
			return nil, fmt.Errorf("corrupted owner index of %s", owner)
		}

		refs = append(refs, ref)
	}

	return refs, iter.Error()
}

// ReadGenesis returns the digest of the genesis the store was bootstrapped with
func ReadGenesis(db kvdb.KVReader) (types.Digest, bool, error) {
	data, ok, err := db.Get(genesisKey)
	if err != nil || !ok {
		return types.ZeroDigest, false, err
	}

	return types.BytesToDigest(data), true, nil
}

func WriteGenesis(db kvdb.KVWriter, digest types.Digest) error {
	return db.Set(genesisKey, digest.Bytes())
}
