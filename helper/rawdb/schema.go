package rawdb

import (
	"encoding/binary"

	"github.com/dogechain-lab/objectchain/types"
)

// object key prefix
var (
	// objectLatestPrefix + object id -> latest object ref
	objectLatestPrefix = []byte("o")
	// objectVersionPrefix + object id + version -> object
	objectVersionPrefix = []byte("v")
	// ownerIndexPrefix + owner + object id -> object ref
	ownerIndexPrefix = []byte("a")
	// parentPrefix + object id + version + digest -> transaction digest
	parentPrefix = []byte("p")
)

// order key prefix
var (
	// orderLockPrefix + object id + version + digest -> empty or transaction digest
	orderLockPrefix = []byte("l")
	// signedOrderPrefix + transaction digest -> signed order
	signedOrderPrefix = []byte("s")
	// certificatePrefix + transaction digest -> certified order
	certificatePrefix = []byte("c")
	// effectsPrefix + transaction digest -> signed effects
	effectsPrefix = []byte("e")
)

// genesisKey tracks the digest of the applied genesis
var genesisKey = []byte("genesis")

const (
	refKeyLength = types.AddressLength + 8 + types.DigestLength
)

func encodeUint(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b[:], n)

	return b[:]
}

func decodeUint(b []byte) uint64 {
	return binary.BigEndian.Uint64(b[:])
}

// makeKey concatenates parts into a freshly allocated key
func makeKey(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}

	key := make([]byte, 0, size)
	for _, p := range parts {
		key = append(key, p...)
	}

	return key
}

func encodeRef(ref types.ObjectRef) []byte {
	return makeKey(ref.ObjectID.Bytes(), encodeUint(uint64(ref.Version)), ref.Digest.Bytes())
}

// decodeRef parses the id + version + digest suffix of a key
func decodeRef(b []byte) (types.ObjectRef, bool) {
	if len(b) != refKeyLength {
		return types.ObjectRef{}, false
	}

	return types.ObjectRef{
		ObjectID: types.BytesToObjectID(b[:types.AddressLength]),
		Version:  types.SequenceNumber(decodeUint(b[types.AddressLength : types.AddressLength+8])),
		Digest:   types.BytesToDigest(b[types.AddressLength+8:]),
	}, true
}

func objectLatestKey(id types.ObjectID) []byte {
	return makeKey(objectLatestPrefix, id.Bytes())
}

func objectVersionKey(id types.ObjectID, version types.SequenceNumber) []byte {
	return makeKey(objectVersionPrefix, id.Bytes(), encodeUint(uint64(version)))
}

func ownerIndexKey(owner types.Address, id types.ObjectID) []byte {
	return makeKey(ownerIndexPrefix, owner.Bytes(), id.Bytes())
}

func parentKey(ref types.ObjectRef) []byte {
	return makeKey(parentPrefix, encodeRef(ref))
}

func orderLockKey(ref types.ObjectRef) []byte {
	return makeKey(orderLockPrefix, encodeRef(ref))
}

func signedOrderKey(digest types.TransactionDigest) []byte {
	return makeKey(signedOrderPrefix, digest.Bytes())
}

func certificateKey(digest types.TransactionDigest) []byte {
	return makeKey(certificatePrefix, digest.Bytes())
}

func effectsKey(digest types.TransactionDigest) []byte {
	return makeKey(effectsPrefix, digest.Bytes())
}
