package types

type InputKind uint8

const (
	InputMovePackage InputKind = iota
	InputMoveObject
)

// InputObjectKind is a resolved order input. Packages are referenced by id
// only; Move objects by their full reference.
type InputObjectKind struct {
	Kind InputKind
	ID   ObjectID
	Ref  ObjectRef
}

func MovePackageInput(id ObjectID) InputObjectKind {
	return InputObjectKind{Kind: InputMovePackage, ID: id}
}

func MoveObjectInput(ref ObjectRef) InputObjectKind {
	return InputObjectKind{Kind: InputMoveObject, ID: ref.ObjectID, Ref: ref}
}

func (k InputObjectKind) IsPackage() bool {
	return k.Kind == InputMovePackage
}

func (k InputObjectKind) ObjectID() ObjectID {
	if k.Kind == InputMovePackage {
		return k.ID
	}

	return k.Ref.ObjectID
}

// OrderKindType tags the closed set of order kinds
type OrderKindType uint8

const (
	OrderTransfer OrderKindType = iota
	OrderCall
	OrderPublish
)

func (t OrderKindType) String() string {
	switch t {
	case OrderTransfer:
		return "transfer"
	case OrderCall:
		return "call"
	case OrderPublish:
		return "publish"
	default:
		return "unknown"
	}
}

// OrderKind is implemented by Transfer, MoveCall and MoveModulePublish only
type OrderKind interface {
	Type() OrderKindType
	isOrderKind()
}

// Transfer moves exactly one object to the recipient
type Transfer struct {
	Recipient Address
}

// MoveCall invokes an entry function of a published package
type MoveCall struct {
	Package       ObjectRef
	Module        string
	Function      string
	TypeArguments []string
	PureArguments [][]byte
	GasBudget     uint64
}

// MoveModulePublish stores new modules as a package owned by the sender
type MoveModulePublish struct {
	Modules      [][]byte
	Dependencies []ObjectID
	GasBudget    uint64
}

func (*Transfer) Type() OrderKindType { return OrderTransfer }
func (*MoveCall) Type() OrderKindType { return OrderCall }
func (*MoveModulePublish) Type() OrderKindType { return OrderPublish }

func (*Transfer) isOrderKind() {}
func (*MoveCall) isOrderKind() {}
func (*MoveModulePublish) isOrderKind() {}

// OrderData is the signed part of an order. Inputs are the object arguments
// of a transfer or call, gas excluded.
type OrderData struct {
	Kind   OrderKind
	Sender Address
	Inputs []ObjectRef
	Gas    ObjectRef
}

// InputObjects lists every object the order reads. The gas object is always last.
func (d *OrderData) InputObjects() []InputObjectKind {
	inputs := make([]InputObjectKind, 0, len(d.Inputs)+2)

	switch k := d.Kind.(type) {
	case *Transfer:
		for _, ref := range d.Inputs {
			inputs = append(inputs, MoveObjectInput(ref))
		}
	case *MoveCall:
		for _, ref := range d.Inputs {
			inputs = append(inputs, MoveObjectInput(ref))
		}

		inputs = append(inputs, MovePackageInput(k.Package.ObjectID))
	case *MoveModulePublish:
		for _, id := range k.Dependencies {
			inputs = append(inputs, MovePackageInput(id))
		}
	}

	return append(inputs, MoveObjectInput(d.Gas))
}

// GasBudget is the declared budget of a call or publish, zero for transfers
func (d *OrderData) GasBudget() uint64 {
	switch k := d.Kind.(type) {
	case *MoveCall:
		return k.GasBudget
	case *MoveModulePublish:
		return k.GasBudget
	default:
		return 0
	}
}

// Digest is the transaction digest. It covers the order data only, so
// every signature over the same data names the same transaction.
func (d *OrderData) Digest() TransactionDigest {
	return hashRLP(d)
}

// Order is a client request signed by the sender
type Order struct {
	Data      OrderData
	Signature []byte
}

func (o *Order) Digest() TransactionDigest {
	return o.Data.Digest()
}

func (o *Order) Sender() Address {
	return o.Data.Sender
}

func (o *Order) Kind() OrderKind {
	return o.Data.Kind
}

func (o *Order) InputObjects() []InputObjectKind {
	return o.Data.InputObjects()
}

// AuthoritySignature is one authority's signature over a digest
type AuthoritySignature struct {
	Authority AuthorityName
	Signature []byte
}

// SignedOrder is an order an authority has locked its inputs for
type SignedOrder struct {
	Order     *Order
	Authority AuthorityName
	Signature []byte
}

// CertifiedOrder is an order with a quorum of authority signatures
type CertifiedOrder struct {
	Order      *Order
	Signatures []AuthoritySignature
}

func (c *CertifiedOrder) Digest() TransactionDigest {
	return c.Order.Digest()
}

type StatusKind uint8

const (
	StatusSuccess StatusKind = iota
	StatusFailure
)

// ExecutionStatus is the outcome of executing a certificate. A failure still
// carries the gas charged.
type ExecutionStatus struct {
	Kind    StatusKind
	GasUsed uint64
	Error   string
}

func NewSuccessStatus(gasUsed uint64) ExecutionStatus {
	return ExecutionStatus{Kind: StatusSuccess, GasUsed: gasUsed}
}

func NewFailureStatus(gasUsed uint64, err error) ExecutionStatus {
	status := ExecutionStatus{Kind: StatusFailure, GasUsed: gasUsed}
	if err != nil {
		status.Error = err.Error()
	}

	return status
}

func (s ExecutionStatus) IsSuccess() bool {
	return s.Kind == StatusSuccess
}

// OrderEffects summarizes the state changes of one executed certificate
type OrderEffects struct {
	Status            ExecutionStatus
	TransactionDigest TransactionDigest
	Created           []ObjectRefOwner
	Mutated           []ObjectRefOwner
	Unwrapped         []ObjectRefOwner
	Deleted           []ObjectRef
	Wrapped           []ObjectRef
	GasObject         ObjectRefOwner
	Dependencies      []TransactionDigest
}

func (e *OrderEffects) Digest() Digest {
	return hashRLP(e)
}

// SignedOrderEffects are effects signed by the executing authority
type SignedOrderEffects struct {
	Effects   *OrderEffects
	Authority AuthorityName
	Signature []byte
}

// OrderInfoResponse is everything an authority knows about one transaction
type OrderInfoResponse struct {
	SignedOrder    *SignedOrder
	CertifiedOrder *CertifiedOrder
	SignedEffects  *SignedOrderEffects
}

type OrderInfoRequest struct {
	TransactionDigest TransactionDigest
}

// ObjectInfoRequest asks for the latest state of an object. A set
// RequestSequenceNumber also selects a historical version whose parent
// certificate is returned.
type ObjectInfoRequest struct {
	ObjectID              ObjectID
	RequestSequenceNumber *SequenceNumber
	RequestLayout         bool
}

// ObjectResponse is the latest object state and its current lock
type ObjectResponse struct {
	Object *Object
	Lock   *SignedOrder
	Layout *ObjectLayout
}

type ObjectInfoResponse struct {
	ParentCertificate        *CertifiedOrder
	RequestedObjectReference *ObjectRef
	ObjectAndLock            *ObjectResponse
}

type AccountInfoRequest struct {
	Account Address
}

type AccountInfoResponse struct {
	Account Address
	Objects []ObjectRef
}
