package types

import (
	"fmt"
	"sort"
)

// ObjectRef identifies one exact historical state of an object
type ObjectRef struct {
	ObjectID ObjectID
	Version  SequenceNumber
	Digest   ObjectDigest
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s@%d(%s)", r.ObjectID, r.Version, r.Digest)
}

// ObjectRefOwner is an object reference together with the owner the
// referenced version was written with
type ObjectRefOwner struct {
	Ref   ObjectRef
	Owner Address
}

type DataKind uint8

const (
	DataMoveObject DataKind = iota
	DataMovePackage
)

// MoveObject is a Move struct value stored as an object
type MoveObject struct {
	Type     string
	ReadOnly bool
	Contents []byte
}

// MovePackage is a set of published Move modules keyed by module name
type MovePackage struct {
	Modules map[string][]byte
}

// ModuleNames returns the module names in ascending order
func (p *MovePackage) ModuleNames() []string {
	names := make([]string, 0, len(p.Modules))
	for name := range p.Modules {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Data is the payload of an object. Exactly one of Move and Package is set,
// matching Kind.
type Data struct {
	Kind    DataKind
	Move    *MoveObject
	Package *MovePackage
}

// Object is one version of a stored object. A new version is always written
// as a new value; stored versions are never edited in place.
type Object struct {
	ID                  ObjectID
	Version             SequenceNumber
	Owner               Address
	PreviousTransaction TransactionDigest
	Data                Data
}

// NewMoveObject creates a mutable Move object at version 0
func NewMoveObject(
	id ObjectID,
	owner Address,
	typ string,
	contents []byte,
	previous TransactionDigest,
) *Object {
	return &Object{
		ID:                  id,
		Owner:               owner,
		PreviousTransaction: previous,
		Data: Data{
			Kind: DataMoveObject,
			Move: &MoveObject{
				Type:     typ,
				Contents: CopyBytes(contents),
			},
		},
	}
}

// NewPackage creates a package object. Packages are always read-only.
func NewPackage(
	id ObjectID,
	owner Address,
	modules map[string][]byte,
	previous TransactionDigest,
) *Object {
	copied := make(map[string][]byte, len(modules))
	for name, code := range modules {
		copied[name] = CopyBytes(code)
	}

	return &Object{
		ID:                  id,
		Owner:               owner,
		PreviousTransaction: previous,
		Data: Data{
			Kind:    DataMovePackage,
			Package: &MovePackage{Modules: copied},
		},
	}
}

func (o *Object) IsPackage() bool {
	return o.Data.Kind == DataMovePackage && o.Data.Package != nil
}

// IsReadOnly reports whether the object is immutable. Read-only objects are
// never locked and can never be transferred or used to pay for gas.
func (o *Object) IsReadOnly() bool {
	if o.IsPackage() {
		return true
	}

	return o.Data.Move != nil && o.Data.Move.ReadOnly
}

// Move returns the Move struct payload, or nil for packages
func (o *Object) Move() *MoveObject {
	if o.Data.Kind != DataMoveObject {
		return nil
	}

	return o.Data.Move
}

// Package returns the package payload, or nil for Move objects
func (o *Object) Package() *MovePackage {
	if !o.IsPackage() {
		return nil
	}

	return o.Data.Package
}

// Type returns the Move type of the object, empty for packages
func (o *Object) Type() string {
	if m := o.Move(); m != nil {
		return m.Type
	}

	return ""
}

// Size is the encoded size of the payload used for gas accounting
func (o *Object) Size() int {
	if m := o.Move(); m != nil {
		return len(m.Contents)
	}

	size := 0

	if p := o.Package(); p != nil {
		for name, code := range p.Modules {
			size += len(name) + len(code)
		}
	}

	return size
}

// IncrementVersion bumps the object to its next version
func (o *Object) IncrementVersion() {
	o.Version = o.Version.Increment()
}

// Transfer hands the object to a new owner as a new version
func (o *Object) Transfer(recipient Address) {
	o.Owner = recipient
	o.IncrementVersion()
}

// UpdateContents replaces the Move contents as a new version
func (o *Object) UpdateContents(contents []byte) {
	if m := o.Move(); m != nil {
		m.Contents = CopyBytes(contents)
		o.IncrementVersion()
	}
}

// Digest is the keccak256 of the RLP encoding of the object
func (o *Object) Digest() ObjectDigest {
	return hashRLP(o)
}

// Ref returns the reference of this exact version
func (o *Object) Ref() ObjectRef {
	return ObjectRef{
		ObjectID: o.ID,
		Version:  o.Version,
		Digest:   o.Digest(),
	}
}

// RefOwner returns the reference together with the current owner
func (o *Object) RefOwner() ObjectRefOwner {
	return ObjectRefOwner{Ref: o.Ref(), Owner: o.Owner}
}

// Copy returns a deep copy
func (o *Object) Copy() *Object {
	oo := &Object{
		ID:                  o.ID,
		Version:             o.Version,
		Owner:               o.Owner,
		PreviousTransaction: o.PreviousTransaction,
		Data:                Data{Kind: o.Data.Kind},
	}

	if o.Data.Move != nil {
		oo.Data.Move = &MoveObject{
			Type:     o.Data.Move.Type,
			ReadOnly: o.Data.Move.ReadOnly,
			Contents: CopyBytes(o.Data.Move.Contents),
		}
	}

	if o.Data.Package != nil {
		modules := make(map[string][]byte, len(o.Data.Package.Modules))
		for name, code := range o.Data.Package.Modules {
			modules[name] = CopyBytes(code)
		}

		oo.Data.Package = &MovePackage{Modules: modules}
	}

	return oo
}

// ModuleID names one module of a published package
type ModuleID struct {
	Address ObjectID
	Name    string
}

func (m ModuleID) String() string {
	return fmt.Sprintf("%s::%s", m.Address, m.Name)
}

// LayoutField describes one field of a Move struct layout
type LayoutField struct {
	Name string
	Type string
}

// ObjectLayout describes how to decode the contents of a Move object
type ObjectLayout struct {
	Type   string
	Fields []LayoutField
}
