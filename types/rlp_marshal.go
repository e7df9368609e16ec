package types

import (
	"github.com/dogechain-lab/fastrlp"

	"github.com/dogechain-lab/objectchain/helper/keccak"
)

var marshalArenaPool fastrlp.ArenaPool

type RLPMarshaler interface {
	MarshalRLPTo(dst []byte) []byte
}

type rlpWither interface {
	MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value
}

type marshalRLPFunc func(ar *fastrlp.Arena) *fastrlp.Value

func MarshalRLPTo(obj marshalRLPFunc, dst []byte) []byte {
	ar := marshalArenaPool.Get()
	dst = obj(ar).MarshalTo(dst)
	marshalArenaPool.Put(ar)

	return dst
}

func hashRLP(obj rlpWither) (d Digest) {
	ar := marshalArenaPool.Get()
	hash := keccak.DefaultKeccakPool.Get()

	defer func() {
		keccak.DefaultKeccakPool.Put(hash)
		marshalArenaPool.Put(ar)
	}()

	hash.WriteRlp(d[:0], obj.MarshalRLPWith(ar))

	return d
}

func boolValue(ar *fastrlp.Arena, b bool) *fastrlp.Value {
	if b {
		return ar.NewUint(1)
	}

	return ar.NewUint(0)
}

// optional values are encoded as an array of zero or one element
func optionalValue(ar *fastrlp.Arena, v *fastrlp.Value) *fastrlp.Value {
	vv := ar.NewArray()
	if v != nil {
		vv.Set(v)
	}

	return vv
}

func (r ObjectRef) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes(r.ObjectID.Bytes()))
	vv.Set(ar.NewUint(uint64(r.Version)))
	vv.Set(ar.NewCopyBytes(r.Digest.Bytes()))

	return vv
}

func (r ObjectRefOwner) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(r.Ref.MarshalRLPWith(ar))
	vv.Set(ar.NewCopyBytes(r.Owner.Bytes()))

	return vv
}

func refsValue(ar *fastrlp.Arena, refs []ObjectRef) *fastrlp.Value {
	vv := ar.NewArray()
	for _, ref := range refs {
		vv.Set(ref.MarshalRLPWith(ar))
	}

	return vv
}

func refOwnersValue(ar *fastrlp.Arena, refs []ObjectRefOwner) *fastrlp.Value {
	vv := ar.NewArray()
	for _, ref := range refs {
		vv.Set(ref.MarshalRLPWith(ar))
	}

	return vv
}

func (o *Object) MarshalRLP() []byte {
	return o.MarshalRLPTo(nil)
}

func (o *Object) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(o.MarshalRLPWith, dst)
}

func (o *Object) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes(o.ID.Bytes()))
	vv.Set(ar.NewUint(uint64(o.Version)))
	vv.Set(ar.NewCopyBytes(o.Owner.Bytes()))
	vv.Set(ar.NewCopyBytes(o.PreviousTransaction.Bytes()))
	vv.Set(ar.NewUint(uint64(o.Data.Kind)))

	payload := ar.NewArray()

	switch {
	case o.IsPackage():
		for _, name := range o.Data.Package.ModuleNames() {
			module := ar.NewArray()
			module.Set(ar.NewCopyBytes([]byte(name)))
			module.Set(ar.NewCopyBytes(o.Data.Package.Modules[name]))
			payload.Set(module)
		}
	case o.Data.Move != nil:
		payload.Set(ar.NewCopyBytes([]byte(o.Data.Move.Type)))
		payload.Set(boolValue(ar, o.Data.Move.ReadOnly))
		payload.Set(ar.NewCopyBytes(o.Data.Move.Contents))
	}

	vv.Set(payload)

	return vv
}

func (l *ObjectLayout) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes([]byte(l.Type)))

	fields := ar.NewArray()

	for _, f := range l.Fields {
		field := ar.NewArray()
		field.Set(ar.NewCopyBytes([]byte(f.Name)))
		field.Set(ar.NewCopyBytes([]byte(f.Type)))
		fields.Set(field)
	}

	vv.Set(fields)

	return vv
}

func orderKindValue(ar *fastrlp.Arena, kind OrderKind) *fastrlp.Value {
	vv := ar.NewArray()
	body := ar.NewArray()

	switch k := kind.(type) {
	case *Transfer:
		vv.Set(ar.NewUint(uint64(OrderTransfer)))
		body.Set(ar.NewCopyBytes(k.Recipient.Bytes()))
	case *MoveCall:
		vv.Set(ar.NewUint(uint64(OrderCall)))
		body.Set(k.Package.MarshalRLPWith(ar))
		body.Set(ar.NewCopyBytes([]byte(k.Module)))
		body.Set(ar.NewCopyBytes([]byte(k.Function)))

		typeArgs := ar.NewArray()
		for _, arg := range k.TypeArguments {
			typeArgs.Set(ar.NewCopyBytes([]byte(arg)))
		}

		body.Set(typeArgs)

		pureArgs := ar.NewArray()
		for _, arg := range k.PureArguments {
			pureArgs.Set(ar.NewCopyBytes(arg))
		}

		body.Set(pureArgs)
		body.Set(ar.NewUint(k.GasBudget))
	case *MoveModulePublish:
		vv.Set(ar.NewUint(uint64(OrderPublish)))

		modules := ar.NewArray()
		for _, module := range k.Modules {
			modules.Set(ar.NewCopyBytes(module))
		}

		body.Set(modules)

		deps := ar.NewArray()
		for _, dep := range k.Dependencies {
			deps.Set(ar.NewCopyBytes(dep.Bytes()))
		}

		body.Set(deps)
		body.Set(ar.NewUint(k.GasBudget))
	default:
		// nil kind, a tag no decoder accepts
		vv.Set(ar.NewUint(0xff))
	}

	vv.Set(body)

	return vv
}

func (d *OrderData) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(orderKindValue(ar, d.Kind))
	vv.Set(ar.NewCopyBytes(d.Sender.Bytes()))
	vv.Set(refsValue(ar, d.Inputs))
	vv.Set(d.Gas.MarshalRLPWith(ar))

	return vv
}

func (o *Order) MarshalRLP() []byte {
	return o.MarshalRLPTo(nil)
}

func (o *Order) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(o.MarshalRLPWith, dst)
}

func (o *Order) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(o.Data.MarshalRLPWith(ar))
	vv.Set(ar.NewCopyBytes(o.Signature))

	return vv
}

func (s *SignedOrder) MarshalRLP() []byte {
	return s.MarshalRLPTo(nil)
}

func (s *SignedOrder) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(s.MarshalRLPWith, dst)
}

func (s *SignedOrder) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(s.Order.MarshalRLPWith(ar))
	vv.Set(ar.NewCopyBytes(s.Authority.Bytes()))
	vv.Set(ar.NewCopyBytes(s.Signature))

	return vv
}

func (c *CertifiedOrder) MarshalRLP() []byte {
	return c.MarshalRLPTo(nil)
}

func (c *CertifiedOrder) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(c.MarshalRLPWith, dst)
}

func (c *CertifiedOrder) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(c.Order.MarshalRLPWith(ar))

	sigs := ar.NewArray()

	for _, sig := range c.Signatures {
		s := ar.NewArray()
		s.Set(ar.NewCopyBytes(sig.Authority.Bytes()))
		s.Set(ar.NewCopyBytes(sig.Signature))
		sigs.Set(s)
	}

	vv.Set(sigs)

	return vv
}

func (s ExecutionStatus) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(ar.NewUint(uint64(s.Kind)))
	vv.Set(ar.NewUint(s.GasUsed))
	vv.Set(ar.NewCopyBytes([]byte(s.Error)))

	return vv
}

func (e *OrderEffects) MarshalRLP() []byte {
	return e.MarshalRLPTo(nil)
}

func (e *OrderEffects) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(e.MarshalRLPWith, dst)
}

func (e *OrderEffects) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(e.Status.MarshalRLPWith(ar))
	vv.Set(ar.NewCopyBytes(e.TransactionDigest.Bytes()))
	vv.Set(refOwnersValue(ar, e.Created))
	vv.Set(refOwnersValue(ar, e.Mutated))
	vv.Set(refOwnersValue(ar, e.Unwrapped))
	vv.Set(refsValue(ar, e.Deleted))
	vv.Set(refsValue(ar, e.Wrapped))
	vv.Set(e.GasObject.MarshalRLPWith(ar))

	deps := ar.NewArray()
	for _, dep := range e.Dependencies {
		deps.Set(ar.NewCopyBytes(dep.Bytes()))
	}

	vv.Set(deps)

	return vv
}

func (s *SignedOrderEffects) MarshalRLP() []byte {
	return s.MarshalRLPTo(nil)
}

func (s *SignedOrderEffects) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(s.MarshalRLPWith, dst)
}

func (s *SignedOrderEffects) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(s.Effects.MarshalRLPWith(ar))
	vv.Set(ar.NewCopyBytes(s.Authority.Bytes()))
	vv.Set(ar.NewCopyBytes(s.Signature))

	return vv
}

func (r *OrderInfoResponse) MarshalRLP() []byte {
	return r.MarshalRLPTo(nil)
}

func (r *OrderInfoResponse) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(r.MarshalRLPWith, dst)
}

func (r *OrderInfoResponse) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	var signed, cert, effects *fastrlp.Value

	if r.SignedOrder != nil {
		signed = r.SignedOrder.MarshalRLPWith(ar)
	}

	if r.CertifiedOrder != nil {
		cert = r.CertifiedOrder.MarshalRLPWith(ar)
	}

	if r.SignedEffects != nil {
		effects = r.SignedEffects.MarshalRLPWith(ar)
	}

	vv := ar.NewArray()
	vv.Set(optionalValue(ar, signed))
	vv.Set(optionalValue(ar, cert))
	vv.Set(optionalValue(ar, effects))

	return vv
}

func (r *OrderInfoRequest) MarshalRLP() []byte {
	return r.MarshalRLPTo(nil)
}

func (r *OrderInfoRequest) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(r.MarshalRLPWith, dst)
}

func (r *OrderInfoRequest) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes(r.TransactionDigest.Bytes()))

	return vv
}

func (r *ObjectInfoRequest) MarshalRLP() []byte {
	return r.MarshalRLPTo(nil)
}

func (r *ObjectInfoRequest) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(r.MarshalRLPWith, dst)
}

func (r *ObjectInfoRequest) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	var seq *fastrlp.Value

	if r.RequestSequenceNumber != nil {
		seq = ar.NewUint(uint64(*r.RequestSequenceNumber))
	}

	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes(r.ObjectID.Bytes()))
	vv.Set(optionalValue(ar, seq))
	vv.Set(boolValue(ar, r.RequestLayout))

	return vv
}

func (r *ObjectResponse) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	var lock, layout *fastrlp.Value

	if r.Lock != nil {
		lock = r.Lock.MarshalRLPWith(ar)
	}

	if r.Layout != nil {
		layout = r.Layout.MarshalRLPWith(ar)
	}

	vv := ar.NewArray()
	vv.Set(r.Object.MarshalRLPWith(ar))
	vv.Set(optionalValue(ar, lock))
	vv.Set(optionalValue(ar, layout))

	return vv
}

func (r *ObjectInfoResponse) MarshalRLP() []byte {
	return r.MarshalRLPTo(nil)
}

func (r *ObjectInfoResponse) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(r.MarshalRLPWith, dst)
}

func (r *ObjectInfoResponse) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	var cert, ref, object *fastrlp.Value

	if r.ParentCertificate != nil {
		cert = r.ParentCertificate.MarshalRLPWith(ar)
	}

	if r.RequestedObjectReference != nil {
		ref = r.RequestedObjectReference.MarshalRLPWith(ar)
	}

	if r.ObjectAndLock != nil {
		object = r.ObjectAndLock.MarshalRLPWith(ar)
	}

	vv := ar.NewArray()
	vv.Set(optionalValue(ar, cert))
	vv.Set(optionalValue(ar, ref))
	vv.Set(optionalValue(ar, object))

	return vv
}

func (r *AccountInfoRequest) MarshalRLP() []byte {
	return r.MarshalRLPTo(nil)
}

func (r *AccountInfoRequest) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(r.MarshalRLPWith, dst)
}

func (r *AccountInfoRequest) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes(r.Account.Bytes()))

	return vv
}

func (r *AccountInfoResponse) MarshalRLP() []byte {
	return r.MarshalRLPTo(nil)
}

func (r *AccountInfoResponse) MarshalRLPTo(dst []byte) []byte {
	return MarshalRLPTo(r.MarshalRLPWith, dst)
}

func (r *AccountInfoResponse) MarshalRLPWith(ar *fastrlp.Arena) *fastrlp.Value {
	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes(r.Account.Bytes()))
	vv.Set(refsValue(ar, r.Objects))

	return vv
}
