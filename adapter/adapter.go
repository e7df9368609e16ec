package adapter

import (
	"encoding/binary"

	"github.com/dogechain-lab/objectchain/helper/keccak"
	"github.com/dogechain-lab/objectchain/types"
)

// Storage is the write buffer an execution runs against. Nothing written
// here reaches the persistent store before the certificate is committed.
type Storage interface {
	// ReadObject returns the current buffered state of an object, nil if
	// the execution cannot see it
	ReadObject(id types.ObjectID) *types.Object
	WriteObject(obj *types.Object)
	// DeleteObject removes an object at the given pre-deletion version.
	// Wrapped objects are recorded separately from plain deletions.
	DeleteObject(id types.ObjectID, version types.SequenceNumber, wrapped bool)
}

// ModuleResolver resolves published module bytes, nil for unknown modules
type ModuleResolver interface {
	GetModule(id types.ModuleID) ([]byte, error)
}

// Adapter executes the Call and Publish order kinds. Execution failures are
// reported as a failed status carrying the gas used; a returned error means
// the execution could not be evaluated at all.
type Adapter interface {
	Execute(
		store Storage,
		pkg *types.Object,
		module string,
		function string,
		typeArgs []string,
		objectArgs []*types.Object,
		pureArgs [][]byte,
		gasBudget uint64,
		gasObject *types.Object,
		ctx *TxContext,
	) (types.ExecutionStatus, error)

	Publish(
		store Storage,
		modules [][]byte,
		sender types.Address,
		ctx *TxContext,
		gasBudget uint64,
		gasObject *types.Object,
	) (types.ExecutionStatus, error)

	// Layout describes the fields of a Move object, nil for packages
	Layout(obj *types.Object, resolver ModuleResolver) (*types.ObjectLayout, error)
}

// TxContext is the per transaction context handed to executions. Fresh ids
// derive from the transaction digest, so every authority assigns the same
// ids to the objects a certificate creates.
type TxContext struct {
	sender     types.Address
	digest     types.TransactionDigest
	idsCreated uint64
}

func NewTxContext(sender types.Address, digest types.TransactionDigest) *TxContext {
	return &TxContext{
		sender: sender,
		digest: digest,
	}
}

func (c *TxContext) Sender() types.Address {
	return c.sender
}

func (c *TxContext) Digest() types.TransactionDigest {
	return c.digest
}

func (c *TxContext) IDsCreated() uint64 {
	return c.idsCreated
}

// FreshID derives the next object id of the transaction
func (c *TxContext) FreshID() types.ObjectID {
	var seed [types.DigestLength + 8]byte

	copy(seed[:], c.digest.Bytes())
	binary.BigEndian.PutUint64(seed[types.DigestLength:], c.idsCreated)

	c.idsCreated++

	hash := keccak.Keccak256(nil, seed[:])

	return types.BytesToObjectID(hash[types.DigestLength-types.AddressLength:])
}
