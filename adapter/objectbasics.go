package adapter

import (
	"encoding/binary"
	"fmt"

	"github.com/dogechain-lab/objectchain/gas"
	"github.com/dogechain-lab/objectchain/types"
)

const (
	ObjectBasicsModule = "ObjectBasics"
	ObjectType         = "0x2::ObjectBasics::Object"
	WrapperType        = "0x2::ObjectBasics::Wrapper"
)

// FrameworkPackageID is the id of the framework package created at genesis
var FrameworkPackageID = types.StringToObjectID("0x2")

var knownLayouts = map[string][]types.LayoutField{
	ObjectType: {
		{Name: "id", Type: "address"},
		{Name: "value", Type: "u64"},
	},
	WrapperType: {
		{Name: "id", Type: "address"},
		{Name: "inner", Type: ObjectType},
	},
	gas.CoinType: {
		{Name: "id", Type: "address"},
		{Name: "balance", Type: "u64"},
	},
}

// FrameworkPackage returns the framework package as written at genesis
func FrameworkPackage() *types.Object {
	return types.NewPackage(
		FrameworkPackageID,
		types.ZeroAddress,
		map[string][]byte{ObjectBasicsModule: []byte("native:" + ObjectBasicsModule)},
		types.GenesisTransactionDigest,
	)
}

// EncodeValue is the contents of an ObjectBasics object
func EncodeValue(id types.ObjectID, value uint64) []byte {
	contents := make([]byte, types.AddressLength+8)
	copy(contents, id.Bytes())
	binary.BigEndian.PutUint64(contents[types.AddressLength:], value)

	return contents
}

// DecodeValue returns the value held by an ObjectBasics object
func DecodeValue(obj *types.Object) (uint64, error) {
	move := obj.Move()
	if move == nil || move.Type != ObjectType || len(move.Contents) != types.AddressLength+8 {
		return 0, fmt.Errorf("%w: %s is not an %s", types.ErrTypeError, obj.ID, ObjectType)
	}

	return binary.BigEndian.Uint64(move.Contents[types.AddressLength:]), nil
}

// NewObject creates an ObjectBasics object at version 0
func NewObject(id types.ObjectID, owner types.Address, value uint64) *types.Object {
	return types.NewMoveObject(id, owner, ObjectType, EncodeValue(id, value), types.GenesisTransactionDigest)
}

func objectBasicsNatives() map[string]nativeFunc {
	return map[string]nativeFunc{
		nativeKey(ObjectBasicsModule, "create"):    nativeCreate,
		nativeKey(ObjectBasicsModule, "transfer"):  nativeTransfer,
		nativeKey(ObjectBasicsModule, "set_value"): nativeSetValue,
		nativeKey(ObjectBasicsModule, "freeze"):    nativeFreeze,
		nativeKey(ObjectBasicsModule, "delete"):    nativeDelete,
		nativeKey(ObjectBasicsModule, "wrap"):      nativeWrap,
		nativeKey(ObjectBasicsModule, "unwrap"):    nativeUnwrap,
		nativeKey(ObjectBasicsModule, "abort"):     nativeAbort,
	}
}

func (c *nativeCall) expect(objects, pure int) error {
	if len(c.objects) != objects || len(c.pure) != pure {
		return fmt.Errorf("%w: expected %d objects and %d pure arguments, got %d and %d",
			types.ErrInvalidArguments, objects, pure, len(c.objects), len(c.pure))
	}

	return nil
}

func (c *nativeCall) pureU64(i int) (uint64, error) {
	if len(c.pure[i]) != 8 {
		return 0, fmt.Errorf("%w: argument %d is not a u64", types.ErrInvalidArguments, i)
	}

	return binary.BigEndian.Uint64(c.pure[i]), nil
}

func (c *nativeCall) pureAddress(i int) (types.Address, error) {
	if len(c.pure[i]) != types.AddressLength {
		return types.ZeroAddress, fmt.Errorf("%w: argument %d is not an address", types.ErrInvalidArguments, i)
	}

	return types.BytesToAddress(c.pure[i]), nil
}

// mutableObject returns object argument i, which must be of typ and mutable
func (c *nativeCall) mutableObject(i int, typ string) (*types.Object, error) {
	obj := c.objects[i]

	if obj.Type() != typ {
		return nil, fmt.Errorf("%w: argument %d is %q, expected %q", types.ErrTypeError, i, obj.Type(), typ)
	}

	if obj.IsReadOnly() {
		return nil, fmt.Errorf("%w: argument %d is read-only", types.ErrTypeError, i)
	}

	return obj, nil
}

// create(value: u64, recipient: address)
func nativeCreate(c *nativeCall) error {
	if err := c.expect(0, 2); err != nil {
		return err
	}

	value, err := c.pureU64(0)
	if err != nil {
		return err
	}

	recipient, err := c.pureAddress(1)
	if err != nil {
		return err
	}

	id := c.ctx.FreshID()
	c.write(types.NewMoveObject(id, recipient, ObjectType, EncodeValue(id, value), c.ctx.Digest()))

	return nil
}

// transfer(obj, recipient: address)
func nativeTransfer(c *nativeCall) error {
	if err := c.expect(1, 1); err != nil {
		return err
	}

	obj, err := c.mutableObject(0, ObjectType)
	if err != nil {
		return err
	}

	recipient, err := c.pureAddress(0)
	if err != nil {
		return err
	}

	obj.Transfer(recipient)
	c.write(obj)

	return nil
}

// set_value(obj, value: u64)
func nativeSetValue(c *nativeCall) error {
	if err := c.expect(1, 1); err != nil {
		return err
	}

	obj, err := c.mutableObject(0, ObjectType)
	if err != nil {
		return err
	}

	value, err := c.pureU64(0)
	if err != nil {
		return err
	}

	obj.UpdateContents(EncodeValue(obj.ID, value))
	c.write(obj)

	return nil
}

// freeze(obj) makes the object read-only for good
func nativeFreeze(c *nativeCall) error {
	if err := c.expect(1, 0); err != nil {
		return err
	}

	obj, err := c.mutableObject(0, ObjectType)
	if err != nil {
		return err
	}

	obj.Data.Move.ReadOnly = true
	obj.IncrementVersion()
	c.write(obj)

	return nil
}

// delete(obj)
func nativeDelete(c *nativeCall) error {
	if err := c.expect(1, 0); err != nil {
		return err
	}

	obj, err := c.mutableObject(0, ObjectType)
	if err != nil {
		return err
	}

	c.store.DeleteObject(obj.ID, obj.Version, false)

	return nil
}

// wrap(obj) moves obj into a new Wrapper owned by the sender
func nativeWrap(c *nativeCall) error {
	if err := c.expect(1, 0); err != nil {
		return err
	}

	inner, err := c.mutableObject(0, ObjectType)
	if err != nil {
		return err
	}

	id := c.ctx.FreshID()
	contents := append(types.CopyBytes(id.Bytes()), inner.MarshalRLP()...)

	c.store.DeleteObject(inner.ID, inner.Version, true)
	c.write(types.NewMoveObject(id, c.ctx.Sender(), WrapperType, contents, c.ctx.Digest()))

	return nil
}

// unwrap(wrapper) restores the wrapped object to the sender and deletes the wrapper
func nativeUnwrap(c *nativeCall) error {
	if err := c.expect(1, 0); err != nil {
		return err
	}

	wrapper, err := c.mutableObject(0, WrapperType)
	if err != nil {
		return err
	}

	contents := wrapper.Move().Contents
	if len(contents) <= types.AddressLength {
		return fmt.Errorf("%w: empty wrapper %s", types.ErrTypeError, wrapper.ID)
	}

	inner := new(types.Object)
	if err := inner.UnmarshalRLP(contents[types.AddressLength:]); err != nil {
		return fmt.Errorf("%w: wrapper %s: %v", types.ErrTypeError, wrapper.ID, err)
	}

	// the inner object reappears at the version its wrapping deleted it at
	inner.Transfer(c.ctx.Sender())
	inner.PreviousTransaction = c.ctx.Digest()

	c.store.DeleteObject(wrapper.ID, wrapper.Version, false)
	c.write(inner)

	return nil
}

// abort(code: u64)
func nativeAbort(c *nativeCall) error {
	if err := c.expect(0, 1); err != nil {
		return err
	}

	code, err := c.pureU64(0)
	if err != nil {
		return err
	}

	return fmt.Errorf("%w: code %d", types.ErrMoveAbort, code)
}
