package jsonrpc

import (
	"context"

	"github.com/dogechain-lab/objectchain/types"
	"github.com/dogechain-lab/objectchain/versioning"
)

// AuthorityStore is the authority behind the authority endpoint
type AuthorityStore interface {
	HandleOrder(ctx context.Context, order *types.Order) (*types.OrderInfoResponse, error)
	HandleConfirmationOrder(ctx context.Context, cert *types.CertifiedOrder) (*types.OrderInfoResponse, error)
	HandleOrderInfoRequest(ctx context.Context, req *types.OrderInfoRequest) (*types.OrderInfoResponse, error)
	HandleObjectInfoRequest(ctx context.Context, req *types.ObjectInfoRequest) (*types.ObjectInfoResponse, error)
	HandleAccountInfoRequest(ctx context.Context, req *types.AccountInfoRequest) (*types.AccountInfoResponse, error)
	GetObjectVersion(id types.ObjectID, version types.SequenceNumber) (*types.Object, error)
}

// Authority is the authority jsonrpc endpoint. Orders, certificates and
// the info responses travel as hex encoded rlp.
type Authority struct {
	store   AuthorityStore
	metrics *Metrics
}

// HandleOrder locks the inputs of a signed order (authority_handleOrder)
func (a *Authority) HandleOrder(raw argBytes) (interface{}, error) {
	a.metrics.AuthorityAPICounterInc(AuthorityHandleOrderLabel)

	order := &types.Order{}
	if err := order.UnmarshalRLP(raw); err != nil {
		return nil, NewInvalidParamsError("Invalid order: " + err.Error())
	}

	resp, err := a.store.HandleOrder(context.Background(), order)
	if err != nil {
		return nil, err
	}

	return argBytes(resp.MarshalRLP()), nil
}

// HandleConfirmationOrder executes a certificate (authority_handleConfirmationOrder)
func (a *Authority) HandleConfirmationOrder(raw argBytes) (interface{}, error) {
	a.metrics.AuthorityAPICounterInc(AuthorityHandleConfirmationOrderLabel)

	cert := &types.CertifiedOrder{}
	if err := cert.UnmarshalRLP(raw); err != nil {
		return nil, NewInvalidParamsError("Invalid certificate: " + err.Error())
	}

	resp, err := a.store.HandleConfirmationOrder(context.Background(), cert)
	if err != nil {
		return nil, err
	}

	return argBytes(resp.MarshalRLP()), nil
}

// GetOrderInfo returns what the authority recorded for a transaction
func (a *Authority) GetOrderInfo(digest types.TransactionDigest) (interface{}, error) {
	a.metrics.AuthorityAPICounterInc(AuthorityGetOrderInfoLabel)

	resp, err := a.store.HandleOrderInfoRequest(
		context.Background(),
		&types.OrderInfoRequest{TransactionDigest: digest},
	)
	if err != nil {
		return nil, err
	}

	return argBytes(resp.MarshalRLP()), nil
}

// GetObjectInfo returns the latest object with its lock. The version and
// the layout flag are optional.
func (a *Authority) GetObjectInfo(id types.ObjectID, version *argUint64, layout *bool) (interface{}, error) {
	a.metrics.AuthorityAPICounterInc(AuthorityGetObjectInfoLabel)

	req := &types.ObjectInfoRequest{ObjectID: id}

	if version != nil {
		seq := types.SequenceNumber(*version)
		req.RequestSequenceNumber = &seq
	}

	if layout != nil {
		req.RequestLayout = *layout
	}

	resp, err := a.store.HandleObjectInfoRequest(context.Background(), req)
	if err != nil {
		return nil, err
	}

	return argBytes(resp.MarshalRLP()), nil
}

// GetAccountInfo lists the objects owned by an address
func (a *Authority) GetAccountInfo(account types.Address) (interface{}, error) {
	a.metrics.AuthorityAPICounterInc(AuthorityGetAccountInfoLabel)

	resp, err := a.store.HandleAccountInfoRequest(
		context.Background(),
		&types.AccountInfoRequest{Account: account},
	)
	if err != nil {
		return nil, err
	}

	return toAccountInfo(resp), nil
}

// GetObjectVersion returns one historical version of an object, null if unknown
func (a *Authority) GetObjectVersion(id types.ObjectID, version argUint64) (interface{}, error) {
	a.metrics.AuthorityAPICounterInc(AuthorityGetObjectVersionLabel)

	obj, err := a.store.GetObjectVersion(id, types.SequenceNumber(version))
	if err != nil {
		return nil, err
	}

	if obj == nil {
		return nil, nil
	}

	return argBytes(obj.MarshalRLP()), nil
}

// ClientVersion returns the version of the authority client
func (a *Authority) ClientVersion() (interface{}, error) {
	a.metrics.AuthorityAPICounterInc(AuthorityClientVersionLabel)

	return versioning.ClientVersion(), nil
}
