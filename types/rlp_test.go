package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testOrder() *Order {
	return &Order{
		Data: OrderData{
			Kind: &MoveCall{
				Package:       ObjectRef{ObjectID: StringToObjectID("0x2"), Digest: Digest{1}},
				Module:        "ObjectBasics",
				Function:      "create",
				TypeArguments: []string{"u64"},
				PureArguments: [][]byte{{0x1, 0x2}, {}},
				GasBudget:     100,
			},
			Sender: StringToAddress("0xa1"),
			Inputs: []ObjectRef{
				{ObjectID: StringToObjectID("0x10"), Version: 3, Digest: Digest{2}},
			},
			Gas: ObjectRef{ObjectID: StringToObjectID("0x11"), Version: 1, Digest: Digest{3}},
		},
		Signature: make([]byte, SignatureLength),
	}
}

func TestObjectRLP(t *testing.T) {
	t.Parallel()

	cases := []*Object{
		NewMoveObject(StringToObjectID("0x1"), StringToAddress("0xa1"), "0x2::Coin::Coin", []byte{1, 2, 3}, ZeroDigest),
		NewPackage(StringToObjectID("0x2"), ZeroAddress, map[string][]byte{
			"b": {0x2},
			"a": {0x1},
		}, Digest{9}),
	}

	for _, obj := range cases {
		decoded := &Object{}
		assert.NoError(t, decoded.UnmarshalRLP(obj.MarshalRLP()))
		assert.Equal(t, obj, decoded)
		assert.Equal(t, obj.Digest(), decoded.Digest())
	}
}

func TestObjectDigestCoversVersion(t *testing.T) {
	t.Parallel()

	obj := NewMoveObject(StringToObjectID("0x1"), StringToAddress("0xa1"), "T", nil, ZeroDigest)
	before := obj.Ref()

	next := obj.Copy()
	next.IncrementVersion()

	assert.Equal(t, SequenceNumber(0), obj.Version)
	assert.Equal(t, SequenceNumber(1), next.Version)
	assert.NotEqual(t, before.Digest, next.Digest())
	assert.False(t, before.Digest.IsReserved())
}

func TestOrderRLP(t *testing.T) {
	t.Parallel()

	order := testOrder()

	decoded := &Order{}
	assert.NoError(t, decoded.UnmarshalRLP(order.MarshalRLP()))
	assert.Equal(t, order.Digest(), decoded.Digest())

	kind, ok := decoded.Kind().(*MoveCall)
	assert.True(t, ok)
	assert.Equal(t, "create", kind.Function)
	assert.Equal(t, uint64(100), kind.GasBudget)
}

func TestOrderDigestIgnoresSignature(t *testing.T) {
	t.Parallel()

	a := testOrder()
	b := testOrder()
	b.Signature[0] = 0xff

	assert.Equal(t, a.Digest(), b.Digest())

	b.Data.Sender = StringToAddress("0xa2")
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestInputObjectsGasLast(t *testing.T) {
	t.Parallel()

	order := testOrder()
	inputs := order.InputObjects()

	assert.Len(t, inputs, 3)
	assert.False(t, inputs[0].IsPackage())
	assert.True(t, inputs[1].IsPackage())
	assert.Equal(t, StringToObjectID("0x2"), inputs[1].ObjectID())
	assert.Equal(t, order.Data.Gas, inputs[2].Ref)

	publish := &OrderData{
		Kind: &MoveModulePublish{Dependencies: []ObjectID{StringToObjectID("0x2")}},
		Gas:  order.Data.Gas,
	}
	inputs = publish.InputObjects()

	assert.Len(t, inputs, 2)
	assert.True(t, inputs[0].IsPackage())
	assert.Equal(t, order.Data.Gas.ObjectID, inputs[1].ObjectID())
}

func TestOrderInfoResponseRLP(t *testing.T) {
	t.Parallel()

	order := testOrder()
	seq := SequenceNumber(4)

	resp := &OrderInfoResponse{
		CertifiedOrder: &CertifiedOrder{
			Order: order,
			Signatures: []AuthoritySignature{
				{Authority: AuthorityName{2, 1}, Signature: make([]byte, SignatureLength)},
			},
		},
		SignedEffects: &SignedOrderEffects{
			Effects: &OrderEffects{
				Status:            NewFailureStatus(10, ErrMoveAbort),
				TransactionDigest: order.Digest(),
				Mutated: []ObjectRefOwner{
					{Ref: order.Data.Inputs[0], Owner: order.Data.Sender},
				},
				Deleted:      []ObjectRef{{ObjectID: StringToObjectID("0x12"), Version: 2, Digest: ObjectDigestDeleted}},
				GasObject:    ObjectRefOwner{Ref: order.Data.Gas, Owner: order.Data.Sender},
				Dependencies: []TransactionDigest{{7}},
			},
			Authority: AuthorityName{2, 1},
		},
	}

	decoded := &OrderInfoResponse{}
	assert.NoError(t, decoded.UnmarshalRLP(resp.MarshalRLP()))
	assert.Nil(t, decoded.SignedOrder)
	assert.Equal(t, resp.CertifiedOrder.Signatures, decoded.CertifiedOrder.Signatures)
	assert.Equal(t, resp.SignedEffects.Effects.Digest(), decoded.SignedEffects.Effects.Digest())
	assert.Equal(t, "move abort", decoded.SignedEffects.Effects.Status.Error)

	req := &ObjectInfoRequest{ObjectID: StringToObjectID("0x1"), RequestSequenceNumber: &seq, RequestLayout: true}
	decodedReq := &ObjectInfoRequest{}
	assert.NoError(t, decodedReq.UnmarshalRLP(req.MarshalRLP()))
	assert.Equal(t, req, decodedReq)
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	t.Parallel()

	order := testOrder()
	order.Data.Kind = nil

	assert.ErrorIs(t, (&Order{}).UnmarshalRLP(order.MarshalRLP()), ErrInvalidDecoding)
	assert.Error(t, (&Object{}).UnmarshalRLP([]byte{0xc0}))
}

func TestMarshalLeavesCallerBytesIntact(t *testing.T) {
	t.Parallel()

	module := []byte{0xcb, 0x87, 0x43, 0x6f, 0x75, 0x6e, 0x74, 0x65, 0x72, 0x82, 0xca, 0xfe}
	contents := []byte{0x1, 0x2, 0x3}

	publish := testOrder()
	publish.Data.Kind = &MoveModulePublish{Modules: [][]byte{module}, GasBudget: 10}

	obj := NewMoveObject(StringToObjectID("0x1"), StringToAddress("0xa1"), "T", contents, ZeroDigest)

	// pooled arenas hand the same values to later encodings, which write
	// integers into them
	for i := 0; i < 8; i++ {
		publish.MarshalRLP()
		obj.MarshalRLP()
		testOrder().MarshalRLP()
	}

	assert.Equal(t, []byte{0xcb, 0x87, 0x43, 0x6f, 0x75, 0x6e, 0x74, 0x65, 0x72, 0x82, 0xca, 0xfe}, module)
	assert.Equal(t, []byte{0x1, 0x2, 0x3}, contents)

	decoded := &Order{}
	assert.NoError(t, decoded.UnmarshalRLP(publish.MarshalRLP()))

	kind, ok := decoded.Kind().(*MoveModulePublish)
	assert.True(t, ok)
	assert.Equal(t, [][]byte{module}, kind.Modules)
}
