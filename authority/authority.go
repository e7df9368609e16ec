package authority

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/adapter"
	"github.com/dogechain-lab/objectchain/committee"
	"github.com/dogechain-lab/objectchain/crypto"
	"github.com/dogechain-lab/objectchain/gas"
	"github.com/dogechain-lab/objectchain/helper/telemetry"
	"github.com/dogechain-lab/objectchain/store"
	"github.com/dogechain-lab/objectchain/types"
)

// State is one authority. It locks the inputs of orders, executes
// certificates and answers state queries. All methods are safe for
// concurrent use; repeating a request produces no new changes.
type State struct {
	logger    hclog.Logger
	committee *committee.Committee
	signer    *crypto.Signer
	store     *store.Store
	adapter   adapter.Adapter
	metrics   *Metrics
	tracer    telemetry.Tracer
}

func NewState(
	logger hclog.Logger,
	committee *committee.Committee,
	signer *crypto.Signer,
	store *store.Store,
	adapter adapter.Adapter,
	metrics *Metrics,
	tracer telemetry.Tracer,
) *State {
	if tracer == nil {
		tracer = telemetry.NewNilTracerProvider().NewTracer("authority")
	}

	return &State{
		logger:    logger.Named("authority"),
		committee: committee,
		signer:    signer,
		store:     store,
		adapter:   adapter,
		metrics:   NewDummyMetrics(metrics),
		tracer:    tracer,
	}
}

// Name is the public identity of the authority
func (s *State) Name() types.AuthorityName {
	return s.signer.Name()
}

func (s *State) Committee() *committee.Committee {
	return s.committee
}

// checkOneLock checks a resolved input against what the order declares
func (s *State) checkOneLock(
	order *types.Order,
	kind types.InputObjectKind,
	obj *types.Object,
	mutable map[types.Address]struct{},
) error {
	if kind.IsPackage() {
		if !obj.IsPackage() {
			return fmt.Errorf("%w: %s", types.ErrMoveObjectAsPackage, kind.ID)
		}

		return nil
	}

	ref := kind.Ref

	if ref.Version > types.MaxSequenceNumber {
		return fmt.Errorf("%w: %s", types.ErrInvalidSequenceNumber, ref)
	}

	if obj.IsPackage() {
		return fmt.Errorf("%w: %s", types.ErrMovePackageAsObject, ref.ObjectID)
	}

	if obj.Version != ref.Version {
		return fmt.Errorf("%w: %s expected version %d", types.ErrUnexpectedSequenceNumber, ref.ObjectID, obj.Version)
	}

	if obj.Digest() != ref.Digest {
		return fmt.Errorf("%w: %s expected digest %s", types.ErrInvalidObjectDigest, ref.ObjectID, ref.Digest)
	}

	isGas := ref.ObjectID == order.Data.Gas.ObjectID

	if obj.IsReadOnly() {
		if isGas {
			return fmt.Errorf("%w: gas object %s is read-only", types.ErrInsufficientGas, ref.ObjectID)
		}

		return nil
	}

	// owned by the sender, or by another mutable input of the same order. An
	// object never authorizes itself.
	_, delegated := mutable[obj.Owner]
	if obj.Owner == obj.ID.Address() {
		delegated = false
	}

	if obj.Owner != order.Sender() && !delegated {
		return fmt.Errorf("%w: %s is owned by %s", types.ErrIncorrectSigner, ref.ObjectID, obj.Owner)
	}

	if isGas {
		return gas.CheckGasRequirement(order, obj)
	}

	return nil
}

// checkLocks resolves every input of the order and checks it. All the
// consistency problems found are reported together in a LockErrors.
func (s *State) checkLocks(order *types.Order) ([]types.InputObjectKind, []*types.Object, error) {
	kinds := order.InputObjects()
	if len(kinds) == 0 {
		return nil, nil, types.ErrObjectInputArityViolation
	}

	ids := make([]types.ObjectID, len(kinds))
	used := make(map[types.ObjectID]struct{}, len(kinds))

	for i, kind := range kinds {
		id := kind.ObjectID()
		if _, ok := used[id]; ok {
			return nil, nil, fmt.Errorf("%w: %s", types.ErrDuplicateObjectRefInput, id)
		}

		used[id] = struct{}{}
		ids[i] = id
	}

	objects, err := s.store.GetObjects(ids)
	if err != nil {
		return nil, nil, err
	}

	mutable := make(map[types.Address]struct{}, len(objects))

	for _, obj := range objects {
		if obj != nil && !obj.IsReadOnly() {
			mutable[obj.ID.Address()] = struct{}{}
		}
	}

	var errs types.LockErrorsBuilder

	for i, kind := range kinds {
		obj := objects[i]
		if obj == nil {
			errs.Add(fmt.Errorf("%w: %s", types.ErrObjectNotFound, ids[i]))

			continue
		}

		errs.Add(s.checkOneLock(order, kind, obj, mutable))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, nil, err
	}

	return kinds, objects, nil
}

// HandleOrder checks an order, signs it and locks its mutable inputs to it.
// It returns what the authority recorded for the order.
func (s *State) HandleOrder(ctx context.Context, order *types.Order) (*types.OrderInfoResponse, error) {
	span := s.tracer.StartWithContext(ctx, "authority.HandleOrder")
	defer span.End()

	resp, err := s.handleOrder(order)
	if err != nil {
		span.Fail(err)
	}

	return resp, err
}

func (s *State) handleOrder(order *types.Order) (*types.OrderInfoResponse, error) {
	if err := crypto.VerifyOrder(order); err != nil {
		s.metrics.OrdersRejectedInc()

		return nil, err
	}

	digest := order.Digest()

	kinds, objects, err := s.checkLocks(order)
	if err != nil {
		s.metrics.OrdersRejectedInc()
		s.logger.Debug("order rejected", "digest", digest, "err", err)

		return nil, err
	}

	refs := make([]types.ObjectRef, 0, len(kinds))

	for i, kind := range kinds {
		if !kind.IsPackage() && !objects[i].IsReadOnly() {
			refs = append(refs, kind.Ref)
		}
	}

	signed, err := s.signer.SignOrder(order)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetOrderLock(refs, signed); err != nil {
		if errors.Is(err, types.ErrLockConflict) {
			s.metrics.LockConflictsInc()
		}

		return nil, err
	}

	s.metrics.OrdersSignedInc()
	s.logger.Debug("order locked", "digest", digest, "inputs", len(refs))

	return s.store.GetOrderInfo(digest)
}

// HandleConfirmationOrder executes a certificate and commits its effects.
// Confirming an already executed certificate returns the recorded outcome.
func (s *State) HandleConfirmationOrder(
	ctx context.Context,
	cert *types.CertifiedOrder,
) (*types.OrderInfoResponse, error) {
	span := s.tracer.StartWithContext(ctx, "authority.HandleConfirmationOrder")
	defer span.End()

	begin := time.Now()

	resp, err := s.handleConfirmationOrder(span, cert)
	if err != nil {
		span.Fail(err)

		return nil, err
	}

	s.metrics.ConfirmationSecondsObserve(begin)

	return resp, nil
}

func (s *State) handleConfirmationOrder(
	span telemetry.Span,
	cert *types.CertifiedOrder,
) (*types.OrderInfoResponse, error) {
	if err := s.committee.CheckCertificate(cert); err != nil {
		return nil, err
	}

	order := cert.Order
	digest := order.Digest()

	span.SetAttribute("digest", digest.String())

	info, err := s.store.GetOrderInfo(digest)
	if err != nil {
		return nil, err
	}

	if info.CertifiedOrder != nil {
		return info, nil
	}

	_, objects, err := s.checkLocks(order)
	if err != nil {
		// a concurrent confirmation may have committed it meanwhile
		if info, infoErr := s.store.GetOrderInfo(digest); infoErr == nil && info.CertifiedOrder != nil {
			return info, nil
		}

		s.logger.Error("certificate inputs failed checks", "digest", digest, "err", err)

		return nil, err
	}

	dependencies := transactionDependencies(objects)

	txCtx := adapter.NewTxContext(order.Sender(), digest)

	ts, status, err := s.executeOrder(order, objects, txCtx)
	if err != nil {
		s.logger.Error("certificate execution", "digest", digest, "err", err)

		return nil, err
	}

	unwrapped, err := s.unwrappedObjectIDs(ts)
	if err != nil {
		return nil, err
	}

	ts.PatchUnwrappedVersions(unwrapped)

	effects := ts.Effects(status, order.Data.Gas.ObjectID, dependencies, unwrapped)

	signedEffects, err := s.signer.SignEffects(effects)
	if err != nil {
		return nil, err
	}

	resp, err := s.store.UpdateState(ts.Changes(), cert, signedEffects)
	if err != nil {
		s.logger.Error("commit certificate", "digest", digest, "err", err)

		return nil, err
	}

	s.metrics.CertificatesExecutedInc()
	s.metrics.GasUsedObserve(float64(status.GasUsed))

	if !status.IsSuccess() {
		s.metrics.ExecutionFailuresInc()
	}

	span.SetAttributes(map[string]interface{}{
		"success": status.IsSuccess(),
		"gasUsed": status.GasUsed,
	})

	s.logger.Debug("certificate executed", "digest", digest,
		"success", status.IsSuccess(), "gas", status.GasUsed)

	return resp, nil
}

// transactionDependencies are the distinct transactions that produced the
// inputs, genesis excluded, sorted
func transactionDependencies(objects []*types.Object) []types.TransactionDigest {
	seen := make(map[types.TransactionDigest]struct{}, len(objects))
	deps := make([]types.TransactionDigest, 0, len(objects))

	for _, obj := range objects {
		prev := obj.PreviousTransaction
		if prev == types.GenesisTransactionDigest {
			continue
		}

		if _, ok := seen[prev]; ok {
			continue
		}

		seen[prev] = struct{}{}
		deps = append(deps, prev)
	}

	sort.Slice(deps, func(i, j int) bool {
		return string(deps[i][:]) < string(deps[j][:])
	})

	return deps
}

// unwrappedObjectIDs finds the created objects that were deleted by an
// earlier wrapping at the version they are written with now
func (s *State) unwrappedObjectIDs(ts *TemporaryStore) ([]types.ObjectID, error) {
	created := ts.Created()
	if len(created) == 0 {
		return nil, nil
	}

	markers := make([]types.ObjectRef, len(created))
	for i, obj := range created {
		markers[i] = types.ObjectRef{ObjectID: obj.ID, Version: obj.Version, Digest: types.ObjectDigestDeleted}
	}

	parents, err := s.store.MultiGetParents(markers)
	if err != nil {
		return nil, err
	}

	ids := make([]types.ObjectID, 0)

	for i, parent := range parents {
		if parent != nil {
			ids = append(ids, created[i].ID)
		}
	}

	return ids, nil
}

// HandleOrderInfoRequest returns what the authority recorded for a transaction
func (s *State) HandleOrderInfoRequest(
	ctx context.Context,
	req *types.OrderInfoRequest,
) (*types.OrderInfoResponse, error) {
	span := s.tracer.StartWithContext(ctx, "authority.HandleOrderInfoRequest")
	defer span.End()

	return s.store.GetOrderInfo(req.TransactionDigest)
}

// HandleAccountInfoRequest lists the objects owned by an account
func (s *State) HandleAccountInfoRequest(
	ctx context.Context,
	req *types.AccountInfoRequest,
) (*types.AccountInfoResponse, error) {
	span := s.tracer.StartWithContext(ctx, "authority.HandleAccountInfoRequest")
	defer span.End()

	refs, err := s.store.GetAccountObjects(req.Account)
	if err != nil {
		return nil, err
	}

	return &types.AccountInfoResponse{Account: req.Account, Objects: refs}, nil
}

// HandleObjectInfoRequest returns the latest state of an object with its
// lock. With a sequence number it also returns the requested version ref and
// the certificate that produced it.
func (s *State) HandleObjectInfoRequest(
	ctx context.Context,
	req *types.ObjectInfoRequest,
) (*types.ObjectInfoResponse, error) {
	span := s.tracer.StartWithContext(ctx, "authority.HandleObjectInfoRequest")
	defer span.End()

	resp, err := s.handleObjectInfoRequest(req)
	if err != nil {
		span.Fail(err)
	}

	return resp, err
}

func (s *State) handleObjectInfoRequest(req *types.ObjectInfoRequest) (*types.ObjectInfoResponse, error) {
	resp := &types.ObjectInfoResponse{}

	var (
		entry *store.ParentEntry
		err   error
	)

	if req.RequestSequenceNumber != nil {
		entries, err := s.store.GetParentIterator(req.ObjectID, req.RequestSequenceNumber)
		if err != nil {
			return nil, err
		}

		if len(entries) > 0 {
			entry = &entries[0]
		}
	} else {
		entry, err = s.store.GetLatestParentEntry(req.ObjectID)
		if err != nil {
			return nil, err
		}
	}

	if entry != nil {
		ref := entry.Ref
		resp.RequestedObjectReference = &ref

		if entry.Transaction != types.GenesisTransactionDigest {
			cert, err := s.store.ReadCertificate(entry.Transaction)
			if err != nil {
				return nil, err
			}

			if cert == nil {
				return nil, fmt.Errorf("%w: %s", types.ErrCertificateNotFound, entry.Transaction)
			}

			resp.ParentCertificate = cert
		}
	}

	obj, err := s.store.GetObject(req.ObjectID)
	if err != nil || obj == nil {
		return resp, err
	}

	objectAndLock := &types.ObjectResponse{Object: obj}

	// read-only objects have no locks
	if !obj.IsReadOnly() {
		lock, err := s.store.GetOrderLock(obj.Ref())
		if err != nil {
			return nil, err
		}

		objectAndLock.Lock = lock
	}

	if req.RequestLayout {
		layout, err := s.adapter.Layout(obj, s.store)
		if err != nil {
			return nil, err
		}

		objectAndLock.Layout = layout
	}

	resp.ObjectAndLock = objectAndLock

	return resp, nil
}

// GetObjectVersion returns a historical object version, nil if unknown
func (s *State) GetObjectVersion(id types.ObjectID, version types.SequenceNumber) (*types.Object, error) {
	return s.store.GetObjectVersion(id, version)
}
