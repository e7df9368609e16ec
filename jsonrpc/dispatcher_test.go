package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/types"
)

type mockStore struct {
	sync.Mutex

	objectRequests []*types.ObjectInfoRequest
	orderErr       error
	objects        map[types.ObjectID]*types.Object
	accounts       map[types.Address][]types.ObjectRef
}

func newMockStore() *mockStore {
	return &mockStore{
		objects:  map[types.ObjectID]*types.Object{},
		accounts: map[types.Address][]types.ObjectRef{},
	}
}

func (m *mockStore) HandleOrder(_ context.Context, order *types.Order) (*types.OrderInfoResponse, error) {
	if m.orderErr != nil {
		return nil, m.orderErr
	}

	return &types.OrderInfoResponse{
		SignedOrder: &types.SignedOrder{Order: order, Signature: make([]byte, types.SignatureLength)},
	}, nil
}

func (m *mockStore) HandleConfirmationOrder(
	_ context.Context,
	cert *types.CertifiedOrder,
) (*types.OrderInfoResponse, error) {
	return &types.OrderInfoResponse{CertifiedOrder: cert}, nil
}

func (m *mockStore) HandleOrderInfoRequest(
	_ context.Context,
	_ *types.OrderInfoRequest,
) (*types.OrderInfoResponse, error) {
	return &types.OrderInfoResponse{}, nil
}

func (m *mockStore) HandleObjectInfoRequest(
	_ context.Context,
	req *types.ObjectInfoRequest,
) (*types.ObjectInfoResponse, error) {
	m.Lock()
	m.objectRequests = append(m.objectRequests, req)
	m.Unlock()

	obj, ok := m.objects[req.ObjectID]
	if !ok {
		return &types.ObjectInfoResponse{}, nil
	}

	return &types.ObjectInfoResponse{ObjectAndLock: &types.ObjectResponse{Object: obj}}, nil
}

func (m *mockStore) HandleAccountInfoRequest(
	_ context.Context,
	req *types.AccountInfoRequest,
) (*types.AccountInfoResponse, error) {
	return &types.AccountInfoResponse{Account: req.Account, Objects: m.accounts[req.Account]}, nil
}

func (m *mockStore) GetObjectVersion(id types.ObjectID, version types.SequenceNumber) (*types.Object, error) {
	obj, ok := m.objects[id]
	if !ok || obj.Version != version {
		return nil, nil
	}

	return obj, nil
}

func newTestDispatcher(store AuthorityStore) *dispatcher {
	return newDispatcher(hclog.NewNullLogger(), NilMetrics(), store, 20, DefaultNamespaces)
}

func expectJSONResult(data []byte, v interface{}) error {
	var resp SuccessResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return err
	}

	if resp.Error != nil {
		return resp.Error
	}

	return json.Unmarshal(resp.Result, v)
}

func expectError(t *testing.T, data []byte) *ObjectError {
	t.Helper()

	var resp ErrorResponse

	assert.NoError(t, json.Unmarshal(data, &resp))
	assert.NotNil(t, resp.Error)

	return resp.Error
}

func testOrder() *types.Order {
	return &types.Order{
		Data: types.OrderData{
			Kind:   &types.Transfer{Recipient: types.StringToAddress("0xb1")},
			Sender: types.StringToAddress("0xa1"),
			Inputs: []types.ObjectRef{{ObjectID: types.StringToObjectID("0x10"), Digest: types.Digest{1}}},
			Gas:    types.ObjectRef{ObjectID: types.StringToObjectID("0x11"), Digest: types.Digest{2}},
		},
		Signature: make([]byte, types.SignatureLength),
	}
}

func request(method string, params ...interface{}) []byte {
	if params == nil {
		params = []interface{}{}
	}

	data, err := json.Marshal(map[string]interface{}{
		"id":     1,
		"method": method,
		"params": params,
	})
	if err != nil {
		panic(err)
	}

	return data
}

func hexParam(b []byte) string {
	data, _ := argBytes(b).MarshalText()

	return string(data)
}

func TestDispatcherHandleOrder(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMockStore())
	order := testOrder()

	resp, err := d.Handle(request("authority_handleOrder", hexParam(order.MarshalRLP())))
	assert.NoError(t, err)

	var raw argBytes

	assert.NoError(t, expectJSONResult(resp, &raw))

	info := &types.OrderInfoResponse{}
	assert.NoError(t, info.UnmarshalRLP(raw))
	assert.Equal(t, order.Digest(), info.SignedOrder.Order.Digest())
}

func TestDispatcherAuthorityError(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	store.orderErr = fmt.Errorf("lock: %w", types.ErrLockConflict)

	d := newTestDispatcher(store)

	resp, err := d.Handle(request("authority_handleOrder", hexParam(testOrder().MarshalRLP())))
	assert.NoError(t, err)

	objErr := expectError(t, resp)
	assert.Equal(t, -32000, objErr.Code)
	assert.Contains(t, objErr.Message, types.ErrLockConflict.Error())
}

func TestDispatcherInvalidRequests(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMockStore())

	cases := []struct {
		name string
		req  []byte
		code int
	}{
		{"unknown method", request("authority_unknown"), -32601},
		{"unknown namespace", request("eth_blockNumber"), -32601},
		{"malformed method", request("clientVersion"), -32601},
		{"bad hex", request("authority_handleOrder", "0xzz"), -32602},
		{"bad rlp", request("authority_handleOrder", "0x01"), -32602},
		{"bad json", []byte(`{"method":`), -32600},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			resp, err := d.Handle(c.req)
			assert.NoError(t, err)
			assert.Equal(t, c.code, expectError(t, resp).Code)
		})
	}
}

func TestDispatcherGetObjectInfoOptionalParams(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	id := types.StringToObjectID("0x10")
	store.objects[id] = types.NewMoveObject(id, types.StringToAddress("0xa1"), "0x2::M::T", []byte{1}, types.ZeroDigest)

	d := newTestDispatcher(store)

	resp, err := d.Handle(request("authority_getObjectInfo", id.String()))
	assert.NoError(t, err)

	var raw argBytes

	assert.NoError(t, expectJSONResult(resp, &raw))

	info := &types.ObjectInfoResponse{}
	assert.NoError(t, info.UnmarshalRLP(raw))
	assert.Equal(t, store.objects[id].Ref(), info.ObjectAndLock.Object.Ref())

	_, err = d.Handle(request("authority_getObjectInfo", id.String(), "0x3", true))
	assert.NoError(t, err)

	assert.Len(t, store.objectRequests, 2)
	assert.Nil(t, store.objectRequests[0].RequestSequenceNumber)
	assert.False(t, store.objectRequests[0].RequestLayout)
	assert.Equal(t, types.SequenceNumber(3), *store.objectRequests[1].RequestSequenceNumber)
	assert.True(t, store.objectRequests[1].RequestLayout)
}

func TestDispatcherGetObjectVersion(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	id := types.StringToObjectID("0x10")
	store.objects[id] = types.NewMoveObject(id, types.StringToAddress("0xa1"), "0x2::M::T", []byte{1}, types.ZeroDigest)

	d := newTestDispatcher(store)

	resp, err := d.Handle(request("authority_getObjectVersion", id.String(), "0x0"))
	assert.NoError(t, err)

	var raw *argBytes

	assert.NoError(t, expectJSONResult(resp, &raw))

	obj := &types.Object{}
	assert.NoError(t, obj.UnmarshalRLP(*raw))
	assert.Equal(t, store.objects[id].Digest(), obj.Digest())

	resp, err = d.Handle(request("authority_getObjectVersion", id.String(), "0x5"))
	assert.NoError(t, err)

	raw = nil

	assert.NoError(t, expectJSONResult(resp, &raw))
	assert.Nil(t, raw)
}

func TestDispatcherGetAccountInfo(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	owner := types.StringToAddress("0xa1")
	ref := types.ObjectRef{ObjectID: types.StringToObjectID("0x10"), Version: 2, Digest: types.Digest{9}}
	store.accounts[owner] = []types.ObjectRef{ref}

	d := newTestDispatcher(store)

	resp, err := d.Handle(request("authority_getAccountInfo", owner.String()))
	assert.NoError(t, err)

	var info accountInfo

	assert.NoError(t, expectJSONResult(resp, &info))
	assert.Equal(t, owner, info.Account)
	assert.Equal(t, []objectRef{toObjectRef(ref)}, info.Objects)
}

func TestDispatcherBatch(t *testing.T) {
	t.Parallel()

	d := newDispatcher(hclog.NewNullLogger(), NilMetrics(), newMockStore(), 2, DefaultNamespaces)

	batch := fmt.Sprintf("[%s,%s]", request("authority_clientVersion"), request("web3_clientVersion"))

	resp, err := d.Handle([]byte(batch))
	assert.NoError(t, err)

	var responses []SuccessResponse

	assert.NoError(t, json.Unmarshal(resp, &responses))
	assert.Len(t, responses, 2)

	for _, r := range responses {
		assert.Nil(t, r.Error)
	}

	tooLong := fmt.Sprintf("[%s,%s,%s]",
		request("authority_clientVersion"),
		request("authority_clientVersion"),
		request("authority_clientVersion"),
	)

	resp, err = d.Handle([]byte(tooLong))
	assert.NoError(t, err)
	assert.Equal(t, -32600, expectError(t, resp).Code)
}

func TestWeb3EndpointSha3(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(newMockStore())

	resp, err := d.Handle([]byte(`{
		"method": "web3_sha3",
		"params": ["0x68656c6c6f20776f726c64"]
	}`))
	assert.NoError(t, err)

	var res string

	assert.NoError(t, expectJSONResult(resp, &res))
	assert.Equal(t, "0x47173285a8d7341e5e972fc677286384f802f8ef42a5ec5f03bbfa254cb01fad", res)
}
