package gas

import (
	"encoding/binary"
	"fmt"

	"github.com/dogechain-lab/objectchain/types"
)

const (
	MinMoveCallGas    uint64 = 10
	MinMovePublishGas uint64 = 10
	MinObjTransferGas uint64 = 8
)

// CoinType is the Move type of the objects that pay for gas
const CoinType = "0x2::Coin::Coin<0x2::GAS::GAS>"

const coinContentsLength = types.AddressLength + 8

// NewCoin creates a gas coin object at version 0
func NewCoin(id types.ObjectID, owner types.Address, balance uint64) *types.Object {
	return types.NewMoveObject(id, owner, CoinType, EncodeCoin(id, balance), types.GenesisTransactionDigest)
}

// EncodeCoin returns the contents of a gas coin: its id then the big endian balance
func EncodeCoin(id types.ObjectID, balance uint64) []byte {
	contents := make([]byte, coinContentsLength)
	copy(contents, id.Bytes())
	binary.BigEndian.PutUint64(contents[types.AddressLength:], balance)

	return contents
}

// GetGasBalance returns the balance of a gas coin
func GetGasBalance(obj *types.Object) (uint64, error) {
	move := obj.Move()
	if move == nil || move.Type != CoinType {
		return 0, fmt.Errorf("%w: %s is not a gas coin", types.ErrTypeError, obj.ID)
	}

	if len(move.Contents) != coinContentsLength ||
		types.BytesToObjectID(move.Contents[:types.AddressLength]) != obj.ID {
		return 0, fmt.Errorf("%w: malformed gas coin %s", types.ErrTypeError, obj.ID)
	}

	return binary.BigEndian.Uint64(move.Contents[types.AddressLength:]), nil
}

// CheckGasRequirement verifies the gas object can pay the minimum or the
// declared budget of the order
func CheckGasRequirement(order *types.Order, gasObject *types.Object) error {
	switch kind := order.Kind().(type) {
	case *types.Transfer:
		balance, err := GetGasBalance(gasObject)
		if err != nil {
			return err
		}

		if balance < MinObjTransferGas {
			return fmt.Errorf(
				"%w: gas balance is %d, smaller than the minimum of %d for object transfer",
				types.ErrInsufficientGas, balance, MinObjTransferGas,
			)
		}

		return nil
	case *types.MoveCall:
		return checkBudget(kind.GasBudget, MinMoveCallGas, gasObject)
	case *types.MoveModulePublish:
		return checkBudget(kind.GasBudget, MinMovePublishGas, gasObject)
	default:
		return types.ErrInvalidDecoding
	}
}

func checkBudget(budget, minimum uint64, gasObject *types.Object) error {
	if budget < minimum {
		return fmt.Errorf("%w: gas budget is %d, smaller than the minimum of %d",
			types.ErrGasBudgetTooLow, budget, minimum)
	}

	balance, err := GetGasBalance(gasObject)
	if err != nil {
		return err
	}

	if balance < budget {
		return fmt.Errorf("%w: gas balance is %d, smaller than the budget %d",
			types.ErrGasBudgetTooHigh, balance, budget)
	}

	return nil
}

// MinimumGas is the smallest charge for an order kind
func MinimumGas(kind types.OrderKind) uint64 {
	switch kind.(type) {
	case *types.MoveCall:
		return MinMoveCallGas
	case *types.MoveModulePublish:
		return MinMovePublishGas
	default:
		return MinObjTransferGas
	}
}

// TryDeductGas charges amount to the gas coin as a new version, or fails
// without touching it when the balance is too low
func TryDeductGas(gasObject *types.Object, amount uint64) error {
	balance, err := GetGasBalance(gasObject)
	if err != nil {
		return err
	}

	if balance < amount {
		return fmt.Errorf("%w: gas balance is %d, not enough to pay %d",
			types.ErrInsufficientGas, balance, amount)
	}

	gasObject.UpdateContents(EncodeCoin(gasObject.ID, balance-amount))

	return nil
}

// DeductGas charges amount, emptying the coin when the balance is lower.
// It only fails on objects that are not gas coins.
func DeductGas(gasObject *types.Object, amount uint64) error {
	balance, err := GetGasBalance(gasObject)
	if err != nil {
		return err
	}

	if amount > balance {
		amount = balance
	}

	gasObject.UpdateContents(EncodeCoin(gasObject.ID, balance-amount))

	return nil
}

// CalculateObjectTransferCost is half the content size, at least the minimum
func CalculateObjectTransferCost(obj *types.Object) uint64 {
	cost := uint64(obj.Size()) / 2
	if cost < MinObjTransferGas {
		return MinObjTransferGas
	}

	return cost
}
