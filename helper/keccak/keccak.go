package keccak

import (
	"hash"

	"github.com/dogechain-lab/fastrlp"
	"golang.org/x/crypto/sha3"
)

type hashImpl interface {
	hash.Hash
	Read(b []byte) (int, error)
}

// Keccak is the legacy keccak256 hash with an rlp scratch buffer
type Keccak struct {
	buf  []byte // intermediate rlp marshal values
	tmp  []byte
	hash hashImpl
}

// WriteRlp marshals v, writes it into the hash and appends the sum to dst
func (k *Keccak) WriteRlp(dst []byte, v *fastrlp.Value) []byte {
	k.buf = v.MarshalTo(k.buf[:0])
	k.Write(k.buf)

	return k.Sum(dst)
}

// Write implements the hash interface
func (k *Keccak) Write(b []byte) (int, error) {
	return k.hash.Write(b)
}

// Reset implements the hash interface
func (k *Keccak) Reset() {
	k.buf = k.buf[:0]
	k.hash.Reset()
}

// Sum implements the hash interface
func (k *Keccak) Sum(dst []byte) []byte {
	k.hash.Read(k.tmp)

	return append(dst, k.tmp...)
}

// Size implements the hash interface
func (k *Keccak) Size() int {
	return k.hash.Size()
}

func newKeccak(impl hashImpl) *Keccak {
	return &Keccak{
		hash: impl,
		tmp:  make([]byte, impl.Size()),
	}
}

// NewKeccak256 returns a new keccak 256
func NewKeccak256() *Keccak {
	//nolint:forcetypeassert
	return newKeccak(sha3.NewLegacyKeccak256().(hashImpl))
}
