package gas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/types"
)

var (
	coinID = types.StringToObjectID("0x10")
	owner  = types.StringToAddress("0xa1")
)

func orderOf(kind types.OrderKind) *types.Order {
	return &types.Order{Data: types.OrderData{Kind: kind, Sender: owner}}
}

func TestGasBalance(t *testing.T) {
	t.Parallel()

	coin := NewCoin(coinID, owner, 100)

	balance, err := GetGasBalance(coin)
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), balance)

	other := types.NewMoveObject(coinID, owner, "0x2::ObjectBasics::Object", EncodeCoin(coinID, 1), types.ZeroDigest)
	_, err = GetGasBalance(other)
	assert.ErrorIs(t, err, types.ErrTypeError)

	// contents must name the coin itself
	forged := NewCoin(types.StringToObjectID("0x11"), owner, 1)
	forged.Data.Move.Contents = EncodeCoin(coinID, 1000)
	_, err = GetGasBalance(forged)
	assert.ErrorIs(t, err, types.ErrTypeError)
}

func TestCheckGasRequirement(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		kind    types.OrderKind
		balance uint64
		err     error
	}{
		{"transfer ok", &types.Transfer{}, MinObjTransferGas, nil},
		{"transfer poor", &types.Transfer{}, MinObjTransferGas - 1, types.ErrInsufficientGas},
		{"call ok", &types.MoveCall{GasBudget: 50}, 50, nil},
		{"call budget too low", &types.MoveCall{GasBudget: MinMoveCallGas - 1}, 100, types.ErrGasBudgetTooLow},
		{"call budget above balance", &types.MoveCall{GasBudget: 50}, 49, types.ErrGasBudgetTooHigh},
		{"publish ok", &types.MoveModulePublish{GasBudget: MinMovePublishGas}, 20, nil},
		{"publish budget too low", &types.MoveModulePublish{}, 20, types.ErrGasBudgetTooLow},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := CheckGasRequirement(orderOf(c.kind), NewCoin(coinID, owner, c.balance))
			if c.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.err)
			}
		})
	}
}

func TestDeductGas(t *testing.T) {
	t.Parallel()

	coin := NewCoin(coinID, owner, 20)

	assert.NoError(t, TryDeductGas(coin, 15))
	assert.Equal(t, types.SequenceNumber(1), coin.Version)

	balance, _ := GetGasBalance(coin)
	assert.Equal(t, uint64(5), balance)

	assert.ErrorIs(t, TryDeductGas(coin, 6), types.ErrInsufficientGas)
	assert.Equal(t, types.SequenceNumber(1), coin.Version)

	assert.NoError(t, DeductGas(coin, 100))
	assert.Equal(t, types.SequenceNumber(2), coin.Version)

	balance, _ = GetGasBalance(coin)
	assert.Equal(t, uint64(0), balance)
}

func TestCalculateObjectTransferCost(t *testing.T) {
	t.Parallel()

	small := types.NewMoveObject(coinID, owner, "T", []byte{1, 2}, types.ZeroDigest)
	assert.Equal(t, MinObjTransferGas, CalculateObjectTransferCost(small))

	large := types.NewMoveObject(coinID, owner, "T", make([]byte, 100), types.ZeroDigest)
	assert.Equal(t, uint64(50), CalculateObjectTransferCost(large))

	assert.Equal(t, MinMoveCallGas, MinimumGas(&types.MoveCall{}))
	assert.Equal(t, MinObjTransferGas, MinimumGas(&types.Transfer{}))
}
