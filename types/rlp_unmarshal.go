package types

import (
	"fmt"

	"github.com/dogechain-lab/fastrlp"
)

var unmarshalParserPool fastrlp.ParserPool

type RLPUnmarshaler interface {
	UnmarshalRLP(input []byte) error
}

type unmarshalRLPFunc func(p *fastrlp.Parser, v *fastrlp.Value) error

func UnmarshalRlp(obj unmarshalRLPFunc, input []byte) error {
	pr := unmarshalParserPool.Get()
	defer unmarshalParserPool.Put(pr)

	v, err := pr.Parse(input)
	if err != nil {
		return err
	}

	return obj(pr, v)
}

func decodeElems(v *fastrlp.Value, name string, expected int) ([]*fastrlp.Value, error) {
	elems, err := v.GetElems()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDecoding, name, err)
	}

	if len(elems) != expected {
		return nil, fmt.Errorf("%w: %s expected %d elements but found %d",
			ErrInvalidDecoding, name, expected, len(elems))
	}

	return elems, nil
}

func decodeList(v *fastrlp.Value, name string) ([]*fastrlp.Value, error) {
	elems, err := v.GetElems()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDecoding, name, err)
	}

	return elems, nil
}

// decodeOptional returns nil for the empty array
func decodeOptional(v *fastrlp.Value, name string) (*fastrlp.Value, error) {
	elems, err := decodeList(v, name)
	if err != nil {
		return nil, err
	}

	switch len(elems) {
	case 0:
		return nil, nil
	case 1:
		return elems[0], nil
	default:
		return nil, fmt.Errorf("%w: optional %s with %d elements", ErrInvalidDecoding, name, len(elems))
	}
}

func decodeFixed(v *fastrlp.Value, dst []byte, name string) error {
	b, err := v.GetBytes(dst[:0])
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDecoding, name, err)
	}

	if len(b) != len(dst) {
		return fmt.Errorf("%w: %s expected %d bytes but found %d", ErrInvalidDecoding, name, len(dst), len(b))
	}

	return nil
}

func decodeBytes(v *fastrlp.Value, name string) ([]byte, error) {
	b, err := v.GetBytes(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDecoding, name, err)
	}

	return b, nil
}

func decodeString(v *fastrlp.Value, name string) (string, error) {
	b, err := decodeBytes(v, name)

	return string(b), err
}

func decodeUint(v *fastrlp.Value, name string) (uint64, error) {
	n, err := v.GetUint64()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidDecoding, name, err)
	}

	return n, nil
}

func decodeBool(v *fastrlp.Value, name string) (bool, error) {
	n, err := decodeUint(v, name)
	if err != nil {
		return false, err
	}

	if n > 1 {
		return false, fmt.Errorf("%w: %s is not a bool", ErrInvalidDecoding, name)
	}

	return n == 1, nil
}

func decodeSequenceNumber(v *fastrlp.Value, name string) (SequenceNumber, error) {
	n, err := decodeUint(v, name)
	if err != nil {
		return 0, err
	}

	if SequenceNumber(n) > MaxSequenceNumber {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrInvalidSequenceNumber, name, n)
	}

	return SequenceNumber(n), nil
}

func decodeSignature(v *fastrlp.Value) ([]byte, error) {
	sig, err := decodeBytes(v, "signature")
	if err != nil {
		return nil, err
	}

	if len(sig) != 0 && len(sig) != SignatureLength {
		return nil, fmt.Errorf("%w: signature length %d", ErrInvalidDecoding, len(sig))
	}

	return sig, nil
}

func (r *ObjectRef) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "object ref", 3)
	if err != nil {
		return err
	}

	if err := decodeFixed(elems[0], r.ObjectID[:], "object id"); err != nil {
		return err
	}

	if r.Version, err = decodeSequenceNumber(elems[1], "version"); err != nil {
		return err
	}

	return decodeFixed(elems[2], r.Digest[:], "object digest")
}

func (r *ObjectRefOwner) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "object ref owner", 2)
	if err != nil {
		return err
	}

	if err := r.Ref.UnmarshalRLPFrom(p, elems[0]); err != nil {
		return err
	}

	return decodeFixed(elems[1], r.Owner[:], "owner")
}

func decodeRefs(p *fastrlp.Parser, v *fastrlp.Value, name string) ([]ObjectRef, error) {
	elems, err := decodeList(v, name)
	if err != nil {
		return nil, err
	}

	refs := make([]ObjectRef, len(elems))
	for i, elem := range elems {
		if err := refs[i].UnmarshalRLPFrom(p, elem); err != nil {
			return nil, err
		}
	}

	return refs, nil
}

func decodeRefOwners(p *fastrlp.Parser, v *fastrlp.Value, name string) ([]ObjectRefOwner, error) {
	elems, err := decodeList(v, name)
	if err != nil {
		return nil, err
	}

	refs := make([]ObjectRefOwner, len(elems))
	for i, elem := range elems {
		if err := refs[i].UnmarshalRLPFrom(p, elem); err != nil {
			return nil, err
		}
	}

	return refs, nil
}

func (o *Object) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(o.UnmarshalRLPFrom, input)
}

func (o *Object) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "object", 6)
	if err != nil {
		return err
	}

	if err := decodeFixed(elems[0], o.ID[:], "object id"); err != nil {
		return err
	}

	if o.Version, err = decodeSequenceNumber(elems[1], "version"); err != nil {
		return err
	}

	if err := decodeFixed(elems[2], o.Owner[:], "owner"); err != nil {
		return err
	}

	if err := decodeFixed(elems[3], o.PreviousTransaction[:], "previous transaction"); err != nil {
		return err
	}

	kind, err := decodeUint(elems[4], "data kind")
	if err != nil {
		return err
	}

	o.Data = Data{Kind: DataKind(kind)}

	switch DataKind(kind) {
	case DataMoveObject:
		payload, err := decodeElems(elems[5], "move object", 3)
		if err != nil {
			return err
		}

		m := &MoveObject{}

		if m.Type, err = decodeString(payload[0], "type"); err != nil {
			return err
		}

		if m.ReadOnly, err = decodeBool(payload[1], "read only"); err != nil {
			return err
		}

		if m.Contents, err = decodeBytes(payload[2], "contents"); err != nil {
			return err
		}

		o.Data.Move = m
	case DataMovePackage:
		modules, err := decodeList(elems[5], "package")
		if err != nil {
			return err
		}

		pkg := &MovePackage{Modules: make(map[string][]byte, len(modules))}

		for _, module := range modules {
			pair, err := decodeElems(module, "module", 2)
			if err != nil {
				return err
			}

			name, err := decodeString(pair[0], "module name")
			if err != nil {
				return err
			}

			if pkg.Modules[name], err = decodeBytes(pair[1], "module"); err != nil {
				return err
			}
		}

		o.Data.Package = pkg
	default:
		return fmt.Errorf("%w: unknown data kind %d", ErrInvalidDecoding, kind)
	}

	return nil
}

func (l *ObjectLayout) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "layout", 2)
	if err != nil {
		return err
	}

	if l.Type, err = decodeString(elems[0], "layout type"); err != nil {
		return err
	}

	fields, err := decodeList(elems[1], "layout fields")
	if err != nil {
		return err
	}

	l.Fields = make([]LayoutField, len(fields))

	for i, field := range fields {
		pair, err := decodeElems(field, "layout field", 2)
		if err != nil {
			return err
		}

		if l.Fields[i].Name, err = decodeString(pair[0], "field name"); err != nil {
			return err
		}

		if l.Fields[i].Type, err = decodeString(pair[1], "field type"); err != nil {
			return err
		}
	}

	return nil
}

func decodeOrderKind(p *fastrlp.Parser, v *fastrlp.Value) (OrderKind, error) {
	elems, err := decodeElems(v, "order kind", 2)
	if err != nil {
		return nil, err
	}

	tag, err := decodeUint(elems[0], "order kind tag")
	if err != nil {
		return nil, err
	}

	switch OrderKindType(tag) {
	case OrderTransfer:
		body, err := decodeElems(elems[1], "transfer", 1)
		if err != nil {
			return nil, err
		}

		k := &Transfer{}
		if err := decodeFixed(body[0], k.Recipient[:], "recipient"); err != nil {
			return nil, err
		}

		return k, nil
	case OrderCall:
		body, err := decodeElems(elems[1], "call", 6)
		if err != nil {
			return nil, err
		}

		k := &MoveCall{}

		if err := k.Package.UnmarshalRLPFrom(p, body[0]); err != nil {
			return nil, err
		}

		if k.Module, err = decodeString(body[1], "module"); err != nil {
			return nil, err
		}

		if k.Function, err = decodeString(body[2], "function"); err != nil {
			return nil, err
		}

		typeArgs, err := decodeList(body[3], "type arguments")
		if err != nil {
			return nil, err
		}

		for _, arg := range typeArgs {
			s, err := decodeString(arg, "type argument")
			if err != nil {
				return nil, err
			}

			k.TypeArguments = append(k.TypeArguments, s)
		}

		pureArgs, err := decodeList(body[4], "pure arguments")
		if err != nil {
			return nil, err
		}

		for _, arg := range pureArgs {
			b, err := decodeBytes(arg, "pure argument")
			if err != nil {
				return nil, err
			}

			k.PureArguments = append(k.PureArguments, b)
		}

		if k.GasBudget, err = decodeUint(body[5], "gas budget"); err != nil {
			return nil, err
		}

		return k, nil
	case OrderPublish:
		body, err := decodeElems(elems[1], "publish", 3)
		if err != nil {
			return nil, err
		}

		k := &MoveModulePublish{}

		modules, err := decodeList(body[0], "modules")
		if err != nil {
			return nil, err
		}

		for _, module := range modules {
			b, err := decodeBytes(module, "module")
			if err != nil {
				return nil, err
			}

			k.Modules = append(k.Modules, b)
		}

		deps, err := decodeList(body[1], "dependencies")
		if err != nil {
			return nil, err
		}

		for _, dep := range deps {
			var id ObjectID
			if err := decodeFixed(dep, id[:], "dependency"); err != nil {
				return nil, err
			}

			k.Dependencies = append(k.Dependencies, id)
		}

		if k.GasBudget, err = decodeUint(body[2], "gas budget"); err != nil {
			return nil, err
		}

		return k, nil
	default:
		return nil, fmt.Errorf("%w: unknown order kind %d", ErrInvalidDecoding, tag)
	}
}

func (d *OrderData) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "order data", 4)
	if err != nil {
		return err
	}

	if d.Kind, err = decodeOrderKind(p, elems[0]); err != nil {
		return err
	}

	if err := decodeFixed(elems[1], d.Sender[:], "sender"); err != nil {
		return err
	}

	if d.Inputs, err = decodeRefs(p, elems[2], "inputs"); err != nil {
		return err
	}

	return d.Gas.UnmarshalRLPFrom(p, elems[3])
}

func (o *Order) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(o.UnmarshalRLPFrom, input)
}

func (o *Order) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "order", 2)
	if err != nil {
		return err
	}

	if err := o.Data.UnmarshalRLPFrom(p, elems[0]); err != nil {
		return err
	}

	o.Signature, err = decodeSignature(elems[1])

	return err
}

func (s *SignedOrder) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(s.UnmarshalRLPFrom, input)
}

func (s *SignedOrder) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "signed order", 3)
	if err != nil {
		return err
	}

	s.Order = &Order{}
	if err := s.Order.UnmarshalRLPFrom(p, elems[0]); err != nil {
		return err
	}

	if err := decodeFixed(elems[1], s.Authority[:], "authority"); err != nil {
		return err
	}

	s.Signature, err = decodeSignature(elems[2])

	return err
}

func (c *CertifiedOrder) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(c.UnmarshalRLPFrom, input)
}

func (c *CertifiedOrder) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "certified order", 2)
	if err != nil {
		return err
	}

	c.Order = &Order{}
	if err := c.Order.UnmarshalRLPFrom(p, elems[0]); err != nil {
		return err
	}

	sigs, err := decodeList(elems[1], "signatures")
	if err != nil {
		return err
	}

	c.Signatures = make([]AuthoritySignature, len(sigs))

	for i, sig := range sigs {
		pair, err := decodeElems(sig, "authority signature", 2)
		if err != nil {
			return err
		}

		if err := decodeFixed(pair[0], c.Signatures[i].Authority[:], "authority"); err != nil {
			return err
		}

		if c.Signatures[i].Signature, err = decodeSignature(pair[1]); err != nil {
			return err
		}
	}

	return nil
}

func (s *ExecutionStatus) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "execution status", 3)
	if err != nil {
		return err
	}

	kind, err := decodeUint(elems[0], "status kind")
	if err != nil {
		return err
	}

	if StatusKind(kind) != StatusSuccess && StatusKind(kind) != StatusFailure {
		return fmt.Errorf("%w: unknown status kind %d", ErrInvalidDecoding, kind)
	}

	s.Kind = StatusKind(kind)

	if s.GasUsed, err = decodeUint(elems[1], "gas used"); err != nil {
		return err
	}

	s.Error, err = decodeString(elems[2], "status error")

	return err
}

func (e *OrderEffects) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(e.UnmarshalRLPFrom, input)
}

func (e *OrderEffects) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "effects", 9)
	if err != nil {
		return err
	}

	if err := e.Status.UnmarshalRLPFrom(p, elems[0]); err != nil {
		return err
	}

	if err := decodeFixed(elems[1], e.TransactionDigest[:], "transaction digest"); err != nil {
		return err
	}

	if e.Created, err = decodeRefOwners(p, elems[2], "created"); err != nil {
		return err
	}

	if e.Mutated, err = decodeRefOwners(p, elems[3], "mutated"); err != nil {
		return err
	}

	if e.Unwrapped, err = decodeRefOwners(p, elems[4], "unwrapped"); err != nil {
		return err
	}

	if e.Deleted, err = decodeRefs(p, elems[5], "deleted"); err != nil {
		return err
	}

	if e.Wrapped, err = decodeRefs(p, elems[6], "wrapped"); err != nil {
		return err
	}

	if err := e.GasObject.UnmarshalRLPFrom(p, elems[7]); err != nil {
		return err
	}

	deps, err := decodeList(elems[8], "dependencies")
	if err != nil {
		return err
	}

	e.Dependencies = make([]TransactionDigest, len(deps))

	for i, dep := range deps {
		if err := decodeFixed(dep, e.Dependencies[i][:], "dependency"); err != nil {
			return err
		}
	}

	return nil
}

func (s *SignedOrderEffects) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(s.UnmarshalRLPFrom, input)
}

func (s *SignedOrderEffects) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "signed effects", 3)
	if err != nil {
		return err
	}

	s.Effects = &OrderEffects{}
	if err := s.Effects.UnmarshalRLPFrom(p, elems[0]); err != nil {
		return err
	}

	if err := decodeFixed(elems[1], s.Authority[:], "authority"); err != nil {
		return err
	}

	s.Signature, err = decodeSignature(elems[2])

	return err
}

func (r *OrderInfoResponse) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(r.UnmarshalRLPFrom, input)
}

func (r *OrderInfoResponse) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "order info", 3)
	if err != nil {
		return err
	}

	signed, err := decodeOptional(elems[0], "signed order")
	if err != nil {
		return err
	}

	if signed != nil {
		r.SignedOrder = &SignedOrder{}
		if err := r.SignedOrder.UnmarshalRLPFrom(p, signed); err != nil {
			return err
		}
	}

	cert, err := decodeOptional(elems[1], "certified order")
	if err != nil {
		return err
	}

	if cert != nil {
		r.CertifiedOrder = &CertifiedOrder{}
		if err := r.CertifiedOrder.UnmarshalRLPFrom(p, cert); err != nil {
			return err
		}
	}

	effects, err := decodeOptional(elems[2], "signed effects")
	if err != nil {
		return err
	}

	if effects != nil {
		r.SignedEffects = &SignedOrderEffects{}
		if err := r.SignedEffects.UnmarshalRLPFrom(p, effects); err != nil {
			return err
		}
	}

	return nil
}

func (r *OrderInfoRequest) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(r.UnmarshalRLPFrom, input)
}

func (r *OrderInfoRequest) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "order info request", 1)
	if err != nil {
		return err
	}

	return decodeFixed(elems[0], r.TransactionDigest[:], "transaction digest")
}

func (r *ObjectInfoRequest) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(r.UnmarshalRLPFrom, input)
}

func (r *ObjectInfoRequest) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "object info request", 3)
	if err != nil {
		return err
	}

	if err := decodeFixed(elems[0], r.ObjectID[:], "object id"); err != nil {
		return err
	}

	seq, err := decodeOptional(elems[1], "sequence number")
	if err != nil {
		return err
	}

	if seq != nil {
		n, err := decodeSequenceNumber(seq, "sequence number")
		if err != nil {
			return err
		}

		r.RequestSequenceNumber = &n
	}

	r.RequestLayout, err = decodeBool(elems[2], "request layout")

	return err
}

func (r *ObjectResponse) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "object response", 3)
	if err != nil {
		return err
	}

	r.Object = &Object{}
	if err := r.Object.UnmarshalRLPFrom(p, elems[0]); err != nil {
		return err
	}

	lock, err := decodeOptional(elems[1], "lock")
	if err != nil {
		return err
	}

	if lock != nil {
		r.Lock = &SignedOrder{}
		if err := r.Lock.UnmarshalRLPFrom(p, lock); err != nil {
			return err
		}
	}

	layout, err := decodeOptional(elems[2], "layout")
	if err != nil {
		return err
	}

	if layout != nil {
		r.Layout = &ObjectLayout{}
		if err := r.Layout.UnmarshalRLPFrom(p, layout); err != nil {
			return err
		}
	}

	return nil
}

func (r *ObjectInfoResponse) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(r.UnmarshalRLPFrom, input)
}

func (r *ObjectInfoResponse) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "object info", 3)
	if err != nil {
		return err
	}

	cert, err := decodeOptional(elems[0], "parent certificate")
	if err != nil {
		return err
	}

	if cert != nil {
		r.ParentCertificate = &CertifiedOrder{}
		if err := r.ParentCertificate.UnmarshalRLPFrom(p, cert); err != nil {
			return err
		}
	}

	ref, err := decodeOptional(elems[1], "requested reference")
	if err != nil {
		return err
	}

	if ref != nil {
		r.RequestedObjectReference = &ObjectRef{}
		if err := r.RequestedObjectReference.UnmarshalRLPFrom(p, ref); err != nil {
			return err
		}
	}

	object, err := decodeOptional(elems[2], "object and lock")
	if err != nil {
		return err
	}

	if object != nil {
		r.ObjectAndLock = &ObjectResponse{}
		if err := r.ObjectAndLock.UnmarshalRLPFrom(p, object); err != nil {
			return err
		}
	}

	return nil
}

func (r *AccountInfoRequest) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(r.UnmarshalRLPFrom, input)
}

func (r *AccountInfoRequest) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "account info request", 1)
	if err != nil {
		return err
	}

	return decodeFixed(elems[0], r.Account[:], "account")
}

func (r *AccountInfoResponse) UnmarshalRLP(input []byte) error {
	return UnmarshalRlp(r.UnmarshalRLPFrom, input)
}

func (r *AccountInfoResponse) UnmarshalRLPFrom(p *fastrlp.Parser, v *fastrlp.Value) error {
	elems, err := decodeElems(v, "account info", 2)
	if err != nil {
		return err
	}

	if err := decodeFixed(elems[0], r.Account[:], "account"); err != nil {
		return err
	}

	r.Objects, err = decodeRefs(p, elems[1], "objects")

	return err
}
