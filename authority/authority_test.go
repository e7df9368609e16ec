package authority

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogechain-lab/objectchain/adapter"
	"github.com/dogechain-lab/objectchain/committee"
	"github.com/dogechain-lab/objectchain/crypto"
	"github.com/dogechain-lab/objectchain/gas"
	"github.com/dogechain-lab/objectchain/helper/kvdb/leveldb"
	"github.com/dogechain-lab/objectchain/store"
	"github.com/dogechain-lab/objectchain/types"
)

type testEnv struct {
	state   *State
	store   *store.Store
	authKey *btcec.PrivateKey

	alice, bob         *btcec.PrivateKey
	aliceAddr, bobAddr types.Address
}

func newKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()

	key, err := crypto.GenerateKey()
	assert.NoError(t, err)

	return key
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := leveldb.NewMemory()
	assert.NoError(t, err)

	s, err := store.NewStore(hclog.NewNullLogger(), db, nil)
	assert.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	authKey := newKey(t)
	signer := crypto.NewSigner(authKey)
	c := committee.NewCommittee(map[types.AuthorityName]uint64{signer.Name(): 1})

	env := &testEnv{
		state:   NewState(hclog.NewNullLogger(), c, signer, s, adapter.NewNativeAdapter(hclog.NewNullLogger()), nil, nil),
		store:   s,
		authKey: authKey,
		alice:   newKey(t),
		bob:     newKey(t),
	}

	env.aliceAddr = crypto.PubKeyToAddress(env.alice.PubKey())
	env.bobAddr = crypto.PubKeyToAddress(env.bob.PubKey())

	return env
}

func (e *testEnv) genesis(t *testing.T, objs ...*types.Object) {
	t.Helper()

	assert.NoError(t, e.state.ApplyGenesis(objs))
}

func (e *testEnv) object(t *testing.T, id types.ObjectID) *types.Object {
	t.Helper()

	obj, err := e.store.GetObject(id)
	assert.NoError(t, err)
	assert.NotNil(t, obj)

	return obj
}

func (e *testEnv) sign(t *testing.T, key *btcec.PrivateKey, data types.OrderData) *types.Order {
	t.Helper()

	order, err := crypto.SignOrder(key, data)
	assert.NoError(t, err)

	return order
}

func (e *testEnv) certify(t *testing.T, order *types.Order) *types.CertifiedOrder {
	t.Helper()

	digest := order.Digest()

	sig, err := crypto.Sign(e.authKey, digest[:])
	assert.NoError(t, err)

	return &types.CertifiedOrder{
		Order: order,
		Signatures: []types.AuthoritySignature{
			{Authority: e.state.Name(), Signature: sig},
		},
	}
}

// execute locks and confirms the order
func (e *testEnv) execute(t *testing.T, order *types.Order) *types.OrderEffects {
	t.Helper()

	ctx := context.Background()

	_, err := e.state.HandleOrder(ctx, order)
	assert.NoError(t, err)

	info, err := e.state.HandleConfirmationOrder(ctx, e.certify(t, order))
	assert.NoError(t, err)

	return info.SignedEffects.Effects
}

func gasBalance(t *testing.T, obj *types.Object) uint64 {
	t.Helper()

	balance, err := gas.GetGasBalance(obj)
	assert.NoError(t, err)

	return balance
}

func u64(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)

	return b
}

func TestTransferScenario(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	a := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	bobGas := gas.NewCoin(types.StringToObjectID("0x91"), env.bobAddr, 100)
	env.genesis(t, a, g, bobGas)

	order := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.bobAddr},
		Inputs: []types.ObjectRef{a.Ref()},
		Gas:    g.Ref(),
	})

	first, err := env.state.HandleOrder(ctx, order)
	assert.NoError(t, err)
	assert.NotNil(t, first.SignedOrder)
	assert.NoError(t, crypto.VerifySignedOrder(first.SignedOrder))

	// submitting again returns the identical signed order
	second, err := env.state.HandleOrder(ctx, order)
	assert.NoError(t, err)
	assert.Equal(t, first.SignedOrder.Signature, second.SignedOrder.Signature)

	objInfo, err := env.state.HandleObjectInfoRequest(ctx, &types.ObjectInfoRequest{ObjectID: a.ID})
	assert.NoError(t, err)
	assert.Equal(t, order.Digest(), objInfo.ObjectAndLock.Lock.Order.Digest())

	cert := env.certify(t, order)

	info, err := env.state.HandleConfirmationOrder(ctx, cert)
	assert.NoError(t, err)

	effects := info.SignedEffects.Effects
	assert.True(t, effects.Status.IsSuccess())
	assert.NoError(t, crypto.VerifySignedEffects(info.SignedEffects))
	assert.Empty(t, effects.Dependencies)
	assert.Len(t, effects.Mutated, 2)

	movedA := env.object(t, a.ID)
	assert.Equal(t, types.SequenceNumber(1), movedA.Version)
	assert.Equal(t, env.bobAddr, movedA.Owner)
	assert.Equal(t, order.Digest(), movedA.PreviousTransaction)

	paidG := env.object(t, g.ID)
	assert.Equal(t, types.SequenceNumber(1), paidG.Version)
	assert.Equal(t, 100-effects.Status.GasUsed, gasBalance(t, paidG))
	assert.Equal(t, paidG.RefOwner(), effects.GasObject)

	// confirming again changes nothing
	again, err := env.state.HandleConfirmationOrder(ctx, cert)
	assert.NoError(t, err)
	assert.Equal(t, effects.Digest(), again.SignedEffects.Effects.Digest())
	assert.Equal(t, movedA.Ref(), env.object(t, a.ID).Ref())

	account, err := env.state.HandleAccountInfoRequest(ctx, &types.AccountInfoRequest{Account: env.bobAddr})
	assert.NoError(t, err)
	assert.Contains(t, account.Objects, movedA.Ref())

	// the new version depends on the transfer
	back := env.sign(t, env.bob, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.aliceAddr},
		Inputs: []types.ObjectRef{movedA.Ref()},
		Gas:    bobGas.Ref(),
	})

	backEffects := env.execute(t, back)
	assert.True(t, backEffects.Status.IsSuccess())
	assert.Equal(t, []types.TransactionDigest{order.Digest()}, backEffects.Dependencies)
}

func TestObjectInfoParentCertificate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	a := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, a, g)

	order := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.bobAddr},
		Inputs: []types.ObjectRef{a.Ref()},
		Gas:    g.Ref(),
	})
	env.execute(t, order)

	v0, v1 := types.SequenceNumber(0), types.SequenceNumber(1)

	info, err := env.state.HandleObjectInfoRequest(ctx, &types.ObjectInfoRequest{
		ObjectID:              a.ID,
		RequestSequenceNumber: &v1,
		RequestLayout:         true,
	})
	assert.NoError(t, err)
	assert.Equal(t, order.Digest(), info.ParentCertificate.Digest())
	assert.Equal(t, v1, info.RequestedObjectReference.Version)
	assert.Nil(t, info.ObjectAndLock.Lock)
	assert.Equal(t, adapter.ObjectType, info.ObjectAndLock.Layout.Type)

	info, err = env.state.HandleObjectInfoRequest(ctx, &types.ObjectInfoRequest{
		ObjectID:              a.ID,
		RequestSequenceNumber: &v0,
	})
	assert.NoError(t, err)
	assert.Nil(t, info.ParentCertificate)
	assert.Equal(t, a.Ref(), *info.RequestedObjectReference)

	// read-only objects never report a lock
	info, err = env.state.HandleObjectInfoRequest(ctx, &types.ObjectInfoRequest{ObjectID: adapter.FrameworkPackageID})
	assert.NoError(t, err)
	assert.True(t, info.ObjectAndLock.Object.IsPackage())
	assert.Nil(t, info.ObjectAndLock.Lock)

	info, err = env.state.HandleObjectInfoRequest(ctx, &types.ObjectInfoRequest{ObjectID: types.StringToObjectID("0x404")})
	assert.NoError(t, err)
	assert.Nil(t, info.ObjectAndLock)
	assert.Nil(t, info.RequestedObjectReference)
}

func TestHandleOrderInvalidSignature(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, g)

	order := env.sign(t, env.alice, types.OrderData{Kind: &types.Transfer{Recipient: env.bobAddr}, Gas: g.Ref()})
	order.Data.Sender = env.bobAddr

	_, err := env.state.HandleOrder(context.Background(), order)
	assert.ErrorIs(t, err, types.ErrInvalidSignature)
}

func TestHandleOrderLockErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	a := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, a, g)

	stale := a.Ref()
	stale.Version = 1

	order := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.bobAddr},
		Inputs: []types.ObjectRef{stale, {ObjectID: types.StringToObjectID("0x404")}},
		Gas:    g.Ref(),
	})

	_, err := env.state.HandleOrder(context.Background(), order)
	assert.ErrorIs(t, err, types.ErrLockErrors)
	assert.ErrorIs(t, err, types.ErrUnexpectedSequenceNumber)
	assert.ErrorIs(t, err, types.ErrObjectNotFound)

	var lockErrs *types.LockErrors

	assert.True(t, errors.As(err, &lockErrs))
	assert.Len(t, lockErrs.Errors(), 2)

	// no lock was taken
	lock, err := env.store.GetOrderLock(a.Ref())
	assert.NoError(t, err)
	assert.Nil(t, lock)

	lock, err = env.store.GetOrderLock(g.Ref())
	assert.NoError(t, err)
	assert.Nil(t, lock)
}

func TestHandleOrderInputChecks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	a := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	bobs := adapter.NewObject(types.StringToObjectID("0xa1"), env.bobAddr, 1)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	poor := gas.NewCoin(types.StringToObjectID("0x91"), env.aliceAddr, gas.MinObjTransferGas-1)
	frozen := gas.NewCoin(types.StringToObjectID("0x92"), env.aliceAddr, 100)
	frozen.Data.Move.ReadOnly = true
	selfID := types.StringToObjectID("0xa2")
	self := adapter.NewObject(selfID, selfID.Address(), 1)
	env.genesis(t, a, bobs, g, poor, frozen, self)

	wrongDigest := a.Ref()
	wrongDigest.Digest = types.Digest{1}

	fwk := env.object(t, adapter.FrameworkPackageID)

	cases := []struct {
		name string
		data types.OrderData
		err  error
	}{
		{
			"incorrect signer",
			types.OrderData{Kind: &types.Transfer{}, Inputs: []types.ObjectRef{bobs.Ref()}, Gas: g.Ref()},
			types.ErrIncorrectSigner,
		},
		{
			"self-owned object",
			types.OrderData{Kind: &types.Transfer{}, Inputs: []types.ObjectRef{self.Ref()}, Gas: g.Ref()},
			types.ErrIncorrectSigner,
		},
		{
			"invalid digest",
			types.OrderData{Kind: &types.Transfer{}, Inputs: []types.ObjectRef{wrongDigest}, Gas: g.Ref()},
			types.ErrInvalidObjectDigest,
		},
		{
			"duplicate input",
			types.OrderData{Kind: &types.Transfer{}, Inputs: []types.ObjectRef{g.Ref()}, Gas: g.Ref()},
			types.ErrDuplicateObjectRefInput,
		},
		{
			"read-only gas",
			types.OrderData{Kind: &types.Transfer{}, Inputs: []types.ObjectRef{a.Ref()}, Gas: frozen.Ref()},
			types.ErrInsufficientGas,
		},
		{
			"poor gas",
			types.OrderData{Kind: &types.Transfer{}, Inputs: []types.ObjectRef{a.Ref()}, Gas: poor.Ref()},
			types.ErrInsufficientGas,
		},
		{
			"package as object",
			types.OrderData{Kind: &types.Transfer{}, Inputs: []types.ObjectRef{fwk.Ref()}, Gas: g.Ref()},
			types.ErrMovePackageAsObject,
		},
		{
			"object as package",
			types.OrderData{
				Kind: &types.MoveCall{Package: a.Ref(), Module: "M", Function: "f", GasBudget: 20},
				Gas:  g.Ref(),
			},
			types.ErrMoveObjectAsPackage,
		},
		{
			"budget too low",
			types.OrderData{
				Kind: &types.MoveCall{Package: fwk.Ref(), Module: adapter.ObjectBasicsModule, Function: "create"},
				Gas:  g.Ref(),
			},
			types.ErrGasBudgetTooLow,
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, err := env.state.HandleOrder(context.Background(), env.sign(t, env.alice, c.data))
			assert.ErrorIs(t, err, c.err)
		})
	}
}

func TestLockConflict(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	a := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, a, g)

	order1 := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.bobAddr},
		Inputs: []types.ObjectRef{a.Ref()},
		Gas:    g.Ref(),
	})
	order2 := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.aliceAddr},
		Inputs: []types.ObjectRef{a.Ref()},
		Gas:    g.Ref(),
	})

	_, err := env.state.HandleOrder(ctx, order1)
	assert.NoError(t, err)

	_, err = env.state.HandleOrder(ctx, order2)
	assert.ErrorIs(t, err, types.ErrLockConflict)
	assert.False(t, errors.Is(err, types.ErrLockErrors))

	lock, err := env.store.GetOrderLock(a.Ref())
	assert.NoError(t, err)
	assert.Equal(t, order1.Digest(), lock.Order.Digest())
}

func TestConcurrentLockExclusivity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	a := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, a, g)

	const workers = 12

	orders := make([]*types.Order, workers)
	for i := range orders {
		orders[i] = env.sign(t, env.alice, types.OrderData{
			Kind:   &types.Transfer{Recipient: types.BytesToAddress([]byte{byte(i + 1)})},
			Inputs: []types.ObjectRef{a.Ref()},
			Gas:    g.Ref(),
		})
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []types.TransactionDigest
		conflicts int
	)

	for _, order := range orders {
		wg.Add(1)

		go func(order *types.Order) {
			defer wg.Done()

			_, err := env.state.HandleOrder(context.Background(), order)

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				winners = append(winners, order.Digest())
			} else if errors.Is(err, types.ErrLockConflict) {
				conflicts++
			}
		}(order)
	}

	wg.Wait()

	assert.Len(t, winners, 1)
	assert.Equal(t, workers-1, conflicts)

	for _, ref := range []types.ObjectRef{a.Ref(), g.Ref()} {
		lock, err := env.store.GetOrderLock(ref)
		assert.NoError(t, err)
		assert.Equal(t, winners[0], lock.Order.Digest())
	}
}

func TestConcurrentConfirmation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	a := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, a, g)

	order := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.bobAddr},
		Inputs: []types.ObjectRef{a.Ref()},
		Gas:    g.Ref(),
	})

	_, err := env.state.HandleOrder(context.Background(), order)
	assert.NoError(t, err)

	cert := env.certify(t, order)

	const workers = 8

	var wg sync.WaitGroup

	digests := make([]types.Digest, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			info, err := env.state.HandleConfirmationOrder(context.Background(), cert)
			if err == nil {
				digests[i] = info.SignedEffects.Effects.Digest()
			}
		}(i)
	}

	wg.Wait()

	for _, d := range digests {
		assert.Equal(t, digests[0], d)
	}

	assert.Equal(t, types.SequenceNumber(1), env.object(t, a.ID).Version)
	assert.Equal(t, types.SequenceNumber(1), env.object(t, g.ID).Version)
}

func TestConfirmationInvalidCertificate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, g)

	order := env.sign(t, env.alice, types.OrderData{Kind: &types.Transfer{}, Gas: g.Ref()})

	_, err := env.state.HandleConfirmationOrder(context.Background(), &types.CertifiedOrder{Order: order})
	assert.ErrorIs(t, err, types.ErrInvalidCertificate)

	// a certificate signed by a stranger
	stranger := newKey(t)
	digest := order.Digest()
	sig, _ := crypto.Sign(stranger, digest[:])

	_, err = env.state.HandleConfirmationOrder(context.Background(), &types.CertifiedOrder{
		Order:      order,
		Signatures: []types.AuthoritySignature{{Authority: crypto.PubKeyToAuthorityName(stranger.PubKey()), Signature: sig}},
	})
	assert.ErrorIs(t, err, types.ErrInvalidCertificate)
}

func TestConfirmationStaleCertificate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	a := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, a, g)

	order := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.bobAddr},
		Inputs: []types.ObjectRef{a.Ref()},
		Gas:    g.Ref(),
	})
	env.execute(t, order)

	// a different certificate over the spent versions fails its checks
	other := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.aliceAddr},
		Inputs: []types.ObjectRef{a.Ref()},
		Gas:    g.Ref(),
	})

	_, err := env.state.HandleConfirmationOrder(ctx, env.certify(t, other))
	assert.ErrorIs(t, err, types.ErrUnexpectedSequenceNumber)
}

func TestFailedExecutionChargesGas(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	parent := adapter.NewObject(types.StringToObjectID("0xa0"), env.aliceAddr, 1)
	// owned by another object of the same order
	child := adapter.NewObject(types.StringToObjectID("0xa1"), parent.ID.Address(), 2)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, parent, child, g)

	// a transfer of two objects is locked but fails on execution
	order := env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.bobAddr},
		Inputs: []types.ObjectRef{child.Ref(), parent.Ref()},
		Gas:    g.Ref(),
	})

	effects := env.execute(t, order)
	assert.False(t, effects.Status.IsSuccess())
	assert.Contains(t, effects.Status.Error, types.ErrObjectInputArityViolation.Error())
	assert.Equal(t, gas.MinObjTransferGas, effects.Status.GasUsed)

	paid := env.object(t, g.ID)
	assert.Equal(t, 100-gas.MinObjTransferGas, gasBalance(t, paid))

	// other inputs keep their owner and contents and move to a fresh version
	for _, input := range []*types.Object{parent, child} {
		obj := env.object(t, input.ID)
		assert.Equal(t, input.Owner, obj.Owner)
		assert.Equal(t, input.Move().Contents, obj.Move().Contents)
		assert.Equal(t, input.Version.Increment(), obj.Version)
	}
}

func TestMoveCallFailureFloor(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 100)
	env.genesis(t, g)

	fwk := env.object(t, adapter.FrameworkPackageID)

	effects := env.execute(t, env.sign(t, env.alice, types.OrderData{
		Kind: &types.MoveCall{
			Package:       fwk.Ref(),
			Module:        adapter.ObjectBasicsModule,
			Function:      "abort",
			PureArguments: [][]byte{u64(7)},
			GasBudget:     50,
		},
		Gas: g.Ref(),
	}))

	assert.False(t, effects.Status.IsSuccess())
	assert.Contains(t, effects.Status.Error, types.ErrMoveAbort.Error())
	assert.GreaterOrEqual(t, effects.Status.GasUsed, gas.MinMoveCallGas)
	assert.Empty(t, effects.Created)
	assert.Equal(t, 100-effects.Status.GasUsed, gasBalance(t, env.object(t, g.ID)))
}

func TestMoveCallWrapUnwrap(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 1000)
	env.genesis(t, g)

	fwk := env.object(t, adapter.FrameworkPackageID)

	callData := func(function string, inputs []types.ObjectRef, pure ...[]byte) types.OrderData {
		return types.OrderData{
			Kind: &types.MoveCall{
				Package:       fwk.Ref(),
				Module:        adapter.ObjectBasicsModule,
				Function:      function,
				PureArguments: pure,
				GasBudget:     100,
			},
			Inputs: inputs,
			Gas:    env.object(t, g.ID).Ref(),
		}
	}

	created := env.execute(t, env.sign(t, env.alice, callData("create", nil, u64(5), env.aliceAddr.Bytes())))
	assert.True(t, created.Status.IsSuccess())
	assert.Len(t, created.Created, 1)

	x := env.object(t, created.Created[0].Ref.ObjectID)
	assert.Equal(t, env.aliceAddr, x.Owner)

	wrapped := env.execute(t, env.sign(t, env.alice, callData("wrap", []types.ObjectRef{x.Ref()})))
	assert.True(t, wrapped.Status.IsSuccess())
	assert.Equal(t, []types.ObjectRef{
		{ObjectID: x.ID, Version: x.Version.Increment(), Digest: types.ObjectDigestWrapped},
	}, wrapped.Wrapped)
	assert.Len(t, wrapped.Created, 1)

	latest, err := env.store.GetObject(x.ID)
	assert.NoError(t, err)
	assert.Nil(t, latest)

	w := env.object(t, wrapped.Created[0].Ref.ObjectID)

	unwrapped := env.execute(t, env.sign(t, env.alice, callData("unwrap", []types.ObjectRef{w.Ref()})))
	assert.True(t, unwrapped.Status.IsSuccess())
	assert.Empty(t, unwrapped.Created)
	assert.Len(t, unwrapped.Unwrapped, 1)
	assert.Len(t, unwrapped.Deleted, 1)

	restored := env.object(t, x.ID)
	assert.Equal(t, unwrapped.Unwrapped[0].Ref, restored.Ref())
	assert.Equal(t, x.Version+2, restored.Version)

	value, err := adapter.DecodeValue(restored)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), value)

	// the restored object can be locked again
	_, err = env.state.HandleOrder(context.Background(), env.sign(t, env.alice, types.OrderData{
		Kind:   &types.Transfer{Recipient: env.bobAddr},
		Inputs: []types.ObjectRef{restored.Ref()},
		Gas:    env.object(t, g.ID).Ref(),
	}))
	assert.NoError(t, err)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 1000)
	env.genesis(t, g)

	effects := env.execute(t, env.sign(t, env.alice, types.OrderData{
		Kind: &types.MoveModulePublish{
			Modules:      [][]byte{adapter.EncodeModule("Counter", []byte{0xca, 0xfe})},
			Dependencies: []types.ObjectID{adapter.FrameworkPackageID},
			GasBudget:    100,
		},
		Gas: g.Ref(),
	}))
	require.True(t, effects.Status.IsSuccess(), effects.Status.Error)
	require.Len(t, effects.Created, 1)

	pkg := env.object(t, effects.Created[0].Ref.ObjectID)
	assert.True(t, pkg.IsPackage())
	assert.Equal(t, env.aliceAddr, pkg.Owner)

	code, err := env.store.GetModule(types.ModuleID{Address: pkg.ID, Name: "Counter"})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe}, code)
}

func TestApplyGenesis(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	g := gas.NewCoin(types.StringToObjectID("0x90"), env.aliceAddr, 1000)

	env.genesis(t, g)
	// applying the same genesis twice is a no-op
	env.genesis(t, g)

	assert.ErrorIs(t, env.state.ApplyGenesis(nil), ErrGenesisMismatch)
	assert.Error(t, env.state.ApplyGenesis([]*types.Object{g, g}))

	fwk := env.object(t, adapter.FrameworkPackageID)
	assert.True(t, fwk.IsPackage())
}
