package adapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/gas"
	"github.com/dogechain-lab/objectchain/types"
)

// nativeCall is the state of one native function invocation
type nativeCall struct {
	store   Storage
	ctx     *TxContext
	objects []*types.Object
	pure    [][]byte
	written int
}

func (c *nativeCall) write(obj *types.Object) {
	c.written += obj.Size()
	c.store.WriteObject(obj)
}

type nativeFunc func(c *nativeCall) error

// NativeAdapter executes calls against functions implemented in Go. Only
// packages registered with natives are callable; any other package fails
// with gas charged.
type NativeAdapter struct {
	logger  hclog.Logger
	natives map[types.ObjectID]map[string]nativeFunc
}

func NewNativeAdapter(logger hclog.Logger) *NativeAdapter {
	return &NativeAdapter{
		logger: logger.Named("adapter"),
		natives: map[types.ObjectID]map[string]nativeFunc{
			FrameworkPackageID: objectBasicsNatives(),
		},
	}
}

func nativeKey(module, function string) string {
	return module + "::" + function
}

// charge deducts the cost from the gas budget and the gas object, writing the
// gas object on success
func charge(store Storage, gasObject *types.Object, cost, budget uint64) types.ExecutionStatus {
	if cost > budget {
		return types.NewFailureStatus(budget, fmt.Errorf("%w: cost %d exceeds budget %d",
			types.ErrInsufficientGas, cost, budget))
	}

	if err := gas.TryDeductGas(gasObject, cost); err != nil {
		return types.NewFailureStatus(cost, err)
	}

	store.WriteObject(gasObject)

	return types.NewSuccessStatus(cost)
}

func capGas(used, budget uint64) uint64 {
	if used > budget {
		return budget
	}

	return used
}

func (a *NativeAdapter) Execute(
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
) (types.ExecutionStatus, error) {
	minimum := capGas(gas.MinMoveCallGas, gasBudget)

	code := pkg.Package()
	if code == nil {
		return types.NewFailureStatus(minimum, fmt.Errorf("%w: %s", types.ErrMoveObjectAsPackage, pkg.ID)), nil
	}

	if _, ok := code.Modules[module]; !ok {
		return types.NewFailureStatus(minimum, fmt.Errorf("%w: %s::%s", types.ErrModuleNotFound, pkg.ID, module)), nil
	}

	fn, ok := a.natives[pkg.ID][nativeKey(module, function)]
	if !ok {
		return types.NewFailureStatus(minimum, fmt.Errorf("%w: %s::%s::%s",
			types.ErrFunctionNotFound, pkg.ID, module, function)), nil
	}

	if len(typeArgs) != 0 {
		return types.NewFailureStatus(minimum, fmt.Errorf("%w: %s takes no type arguments",
			types.ErrTypeError, function)), nil
	}

	call := &nativeCall{
		store:   store,
		ctx:     ctx,
		objects: objectArgs,
		pure:    pureArgs,
	}

	if err := fn(call); err != nil {
		a.logger.Debug("native call failed", "function", nativeKey(module, function), "err", err)

		used := gas.MinMoveCallGas + uint64(call.written)/2

		return types.NewFailureStatus(capGas(used, gasBudget), err), nil
	}

	return charge(store, gasObject, gas.MinMoveCallGas+uint64(call.written)/2, gasBudget), nil
}

func (a *NativeAdapter) Publish(
	store Storage,
	modules [][]byte,
	sender types.Address,
	ctx *TxContext,
	gasBudget uint64,
	gasObject *types.Object,
) (types.ExecutionStatus, error) {
	minimum := capGas(gas.MinMovePublishGas, gasBudget)

	if len(modules) == 0 {
		return types.NewFailureStatus(minimum, fmt.Errorf("%w: no modules", types.ErrInvalidModule)), nil
	}

	decoded := make(map[string][]byte, len(modules))
	size := 0

	for _, raw := range modules {
		name, code, err := DecodeModule(raw)
		if err != nil {
			return types.NewFailureStatus(minimum, err), nil
		}

		if _, dup := decoded[name]; dup {
			return types.NewFailureStatus(minimum, fmt.Errorf("%w: duplicate module %s",
				types.ErrInvalidModule, name)), nil
		}

		decoded[name] = code
		size += len(raw)
	}

	pkg := types.NewPackage(ctx.FreshID(), sender, decoded, ctx.Digest())

	status := charge(store, gasObject, gas.MinMovePublishGas+uint64(size)/2, gasBudget)
	if status.IsSuccess() {
		store.WriteObject(pkg)
	}

	return status, nil
}

func (a *NativeAdapter) Layout(obj *types.Object, resolver ModuleResolver) (*types.ObjectLayout, error) {
	move := obj.Move()
	if move == nil {
		return nil, nil
	}

	if fields, ok := knownLayouts[move.Type]; ok {
		return &types.ObjectLayout{Type: move.Type, Fields: fields}, nil
	}

	module, err := parseModuleID(move.Type)
	if err != nil {
		return nil, err
	}

	code, err := resolver.GetModule(module)
	if err != nil {
		return nil, err
	}

	if code == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrModuleNotFound, module)
	}

	return &types.ObjectLayout{
		Type:   move.Type,
		Fields: []types.LayoutField{{Name: "contents", Type: "vector<u8>"}},
	}, nil
}

// parseModuleID extracts the module of a type written as address::module::name
func parseModuleID(typ string) (types.ModuleID, error) {
	parts := strings.SplitN(typ, "::", 3)
	if len(parts) != 3 {
		return types.ModuleID{}, fmt.Errorf("%w: malformed type %q", types.ErrTypeError, typ)
	}

	return types.ModuleID{Address: types.StringToObjectID(parts[0]), Name: parts[1]}, nil
}

// Natives lists the functions callable in a package, sorted
func (a *NativeAdapter) Natives(pkg types.ObjectID) []string {
	names := make([]string, 0, len(a.natives[pkg]))
	for name := range a.natives[pkg] {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
