package types

import (
	"bytes"
	"fmt"
)

const (
	AddressLength       = 20
	DigestLength        = 32
	AuthorityNameLength = 33
	SignatureLength     = 65
)

// MaxSequenceNumber is the largest version an object may carry
const MaxSequenceNumber SequenceNumber = 0x7fff_ffff_ffff_ffff

type (
	// Address identifies an account. Objects may also own objects, in which
	// case the owner address is the owning object's id.
	Address [AddressLength]byte

	// ObjectID is stable across all versions of an object
	ObjectID [AddressLength]byte

	// Digest is a keccak256 hash
	Digest [DigestLength]byte

	ObjectDigest      = Digest
	TransactionDigest = Digest

	// SequenceNumber is the object version
	SequenceNumber uint64

	// AuthorityName is the compressed secp256k1 public key of an authority
	AuthorityName [AuthorityNameLength]byte
)

var (
	ZeroAddress  = Address{}
	ZeroObjectID = ObjectID{}
	ZeroDigest   = Digest{}

	// GenesisTransactionDigest is the previous transaction of every genesis object
	GenesisTransactionDigest = TransactionDigest{}

	// ObjectDigestDeleted marks the parent entry of a deleted (tombstoned) object version
	ObjectDigestDeleted = fillDigest(0x63)

	// ObjectDigestWrapped marks the parent entry of an object wrapped into another one
	ObjectDigestWrapped = fillDigest(0x58)
)

func fillDigest(b byte) (d Digest) {
	for i := range d {
		d[i] = b
	}

	return d
}

// IsReserved reports whether d is one of the provenance marker digests
func (d Digest) IsReserved() bool {
	return d == ObjectDigestDeleted || d == ObjectDigestWrapped
}

func (d Digest) Bytes() []byte {
	return d[:]
}

func (d Digest) String() string {
	return EncodeToHex(d[:])
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Digest) UnmarshalText(input []byte) error {
	return decodeFixedHex("digest", d[:], string(input))
}

// BytesToDigest converts b to a digest, left padding or cropping from the left
func BytesToDigest(b []byte) Digest {
	var d Digest

	n := min(len(b), DigestLength)

	copy(d[DigestLength-n:], b[len(b)-n:])

	return d
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) String() string {
	return EncodeToHex(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(input []byte) error {
	return decodeFixedHex("address", a[:], string(input))
}

// BytesToAddress converts b to an address, left padding or cropping from the left
func BytesToAddress(b []byte) Address {
	var a Address

	n := min(len(b), AddressLength)

	copy(a[AddressLength-n:], b[len(b)-n:])

	return a
}

func StringToAddress(str string) Address {
	return BytesToAddress(StringToBytes(str))
}

func (id ObjectID) Bytes() []byte {
	return id[:]
}

func (id ObjectID) String() string {
	return EncodeToHex(id[:])
}

// Address returns the address an object uses when it owns other objects
func (id ObjectID) Address() Address {
	return Address(id)
}

func (id ObjectID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ObjectID) UnmarshalText(input []byte) error {
	return decodeFixedHex("object id", id[:], string(input))
}

// Compare orders ids bytewise
func (id ObjectID) Compare(other ObjectID) int {
	return bytes.Compare(id[:], other[:])
}

func BytesToObjectID(b []byte) ObjectID {
	return ObjectID(BytesToAddress(b))
}

func StringToObjectID(str string) ObjectID {
	return BytesToObjectID(StringToBytes(str))
}

// Increment returns the next version
func (s SequenceNumber) Increment() SequenceNumber {
	return s + 1
}

func (s SequenceNumber) String() string {
	return fmt.Sprintf("%d", uint64(s))
}

func (n AuthorityName) Bytes() []byte {
	return n[:]
}

func (n AuthorityName) String() string {
	return EncodeToHex(n[:])
}

func (n AuthorityName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *AuthorityName) UnmarshalText(input []byte) error {
	return decodeFixedHex("authority name", n[:], string(input))
}

func BytesToAuthorityName(b []byte) (AuthorityName, error) {
	var n AuthorityName

	if len(b) != AuthorityNameLength {
		return n, fmt.Errorf("invalid authority name length %d", len(b))
	}

	copy(n[:], b)

	return n, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
