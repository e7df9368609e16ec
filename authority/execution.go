package authority

import (
	"fmt"

	"github.com/dogechain-lab/objectchain/adapter"
	"github.com/dogechain-lab/objectchain/gas"
	"github.com/dogechain-lab/objectchain/types"
)

func copyObjects(objs []*types.Object) []*types.Object {
	copied := make([]*types.Object, len(objs))
	for i, obj := range objs {
		copied[i] = obj.Copy()
	}

	return copied
}

// executeOrder runs the order against a fresh temporary store. The last
// input is always the gas object. A failed execution keeps only the gas
// charge, and every mutable input ends up written.
func (s *State) executeOrder(
	order *types.Order,
	inputs []*types.Object,
	txCtx *adapter.TxContext,
) (*TemporaryStore, types.ExecutionStatus, error) {
	if len(inputs) == 0 {
		return nil, types.ExecutionStatus{}, types.ErrObjectInputArityViolation
	}

	ts := NewTemporaryStore(inputs, txCtx.Digest())

	gasObject := inputs[len(inputs)-1].Copy()
	args := copyObjects(inputs[:len(inputs)-1])

	var (
		status types.ExecutionStatus
		err    error
	)

	switch kind := order.Kind().(type) {
	case *types.Transfer:
		status = transfer(ts, args, kind.Recipient, gasObject.Copy())
	case *types.MoveCall:
		if len(args) == 0 {
			return nil, status, types.ErrObjectInputArityViolation
		}

		pkg := args[len(args)-1]
		status, err = s.adapter.Execute(
			ts,
			pkg,
			kind.Module,
			kind.Function,
			kind.TypeArguments,
			args[:len(args)-1],
			kind.PureArguments,
			kind.GasBudget,
			gasObject.Copy(),
			txCtx,
		)
	case *types.MoveModulePublish:
		status, err = s.adapter.Publish(
			ts,
			kind.Modules,
			order.Sender(),
			txCtx,
			kind.GasBudget,
			gasObject.Copy(),
		)
	default:
		return nil, status, fmt.Errorf("%w: unknown order kind", types.ErrInvalidDecoding)
	}

	if err != nil {
		return nil, status, err
	}

	if !status.IsSuccess() {
		status, err = chargeFailure(ts, order.Kind(), status, gasObject)
		if err != nil {
			return nil, status, err
		}
	}

	ts.EnsureActiveInputsMutated()

	return ts, status, nil
}

// chargeFailure rolls the store back and charges the failure to the gas
// object alone. The charge is at least the minimum of the order kind, capped
// by the balance.
func chargeFailure(
	ts *TemporaryStore,
	kind types.OrderKind,
	status types.ExecutionStatus,
	gasObject *types.Object,
) (types.ExecutionStatus, error) {
	ts.Reset()

	balance, err := gas.GetGasBalance(gasObject)
	if err != nil {
		return status, err
	}

	charged := status.GasUsed
	if minimum := gas.MinimumGas(kind); charged < minimum {
		charged = minimum
	}

	if charged > balance {
		charged = balance
	}

	if err := gas.DeductGas(gasObject, charged); err != nil {
		return status, err
	}

	ts.WriteObject(gasObject)

	status.GasUsed = charged

	return status, nil
}

// transfer moves the single non gas input to the recipient
func transfer(
	ts *TemporaryStore,
	inputs []*types.Object,
	recipient types.Address,
	gasObject *types.Object,
) types.ExecutionStatus {
	if len(inputs) != 1 {
		return types.NewFailureStatus(gas.MinObjTransferGas, fmt.Errorf("%w: transfer takes one object, got %d",
			types.ErrObjectInputArityViolation, len(inputs)))
	}

	obj := inputs[0]

	if obj.IsReadOnly() {
		return types.NewFailureStatus(gas.MinObjTransferGas, fmt.Errorf("%w: %s",
			types.ErrCannotTransferReadOnlyObject, obj.ID))
	}

	cost := gas.CalculateObjectTransferCost(obj)
	if err := gas.TryDeductGas(gasObject, cost); err != nil {
		return types.NewFailureStatus(gas.MinObjTransferGas, err)
	}

	ts.WriteObject(gasObject)

	obj.Transfer(recipient)
	ts.WriteObject(obj)

	return types.NewSuccessStatus(cost)
}
