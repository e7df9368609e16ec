package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dogechain-lab/objectchain/adapter"
	"github.com/dogechain-lab/objectchain/committee"
	"github.com/dogechain-lab/objectchain/gas"
	"github.com/dogechain-lab/objectchain/types"
)

// Genesis object kinds
const (
	KindCoin   = "coin"
	KindObject = "object"
)

var (
	ErrEmptyCommittee   = errors.New("committee has no authorities")
	ErrZeroWeight       = errors.New("authority weight must be positive")
	ErrUnknownKind      = errors.New("unknown genesis object kind")
	ErrDuplicateObject  = errors.New("duplicate genesis object")
	ErrReservedObjectID = errors.New("genesis object id is reserved")
)

// Chain is the genesis file of an objectchain network
type Chain struct {
	Name      string             `json:"name"`
	Committee []*CommitteeMember `json:"committee"`
	Objects   []*GenesisObject   `json:"objects"`
}

// CommitteeMember is one authority and its voting weight
type CommitteeMember struct {
	Name   types.AuthorityName `json:"name"`
	Weight uint64              `json:"weight"`
}

// GenesisObject is an object created by the genesis transaction. Coins hold a
// gas balance, plain objects hold an ObjectBasics value.
type GenesisObject struct {
	ID    types.ObjectID `json:"id"`
	Owner types.Address  `json:"owner"`
	Kind  string         `json:"kind"`
	Value uint64         `json:"value"`
}

// Object builds the version 0 object
func (g *GenesisObject) Object() (*types.Object, error) {
	switch g.Kind {
	case KindCoin:
		return gas.NewCoin(g.ID, g.Owner, g.Value), nil
	case KindObject:
		return adapter.NewObject(g.ID, g.Owner, g.Value), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, g.Kind)
	}
}

// Validate checks the committee and the objects
func (c *Chain) Validate() error {
	if len(c.Committee) == 0 {
		return ErrEmptyCommittee
	}

	seenAuth := make(map[types.AuthorityName]struct{}, len(c.Committee))

	for _, m := range c.Committee {
		if m.Weight == 0 {
			return fmt.Errorf("%w: %s", ErrZeroWeight, m.Name)
		}

		if _, ok := seenAuth[m.Name]; ok {
			return fmt.Errorf("duplicate authority %s", m.Name)
		}

		seenAuth[m.Name] = struct{}{}
	}

	framework := adapter.FrameworkPackage().ID
	seen := make(map[types.ObjectID]struct{}, len(c.Objects))

	for _, obj := range c.Objects {
		if obj.ID == framework {
			return fmt.Errorf("%w: %s", ErrReservedObjectID, obj.ID)
		}

		if _, ok := seen[obj.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateObject, obj.ID)
		}

		seen[obj.ID] = struct{}{}

		if _, err := obj.Object(); err != nil {
			return err
		}
	}

	return nil
}

// BuildCommittee returns the committee the genesis file describes
func (c *Chain) BuildCommittee() *committee.Committee {
	votes := make(map[types.AuthorityName]uint64, len(c.Committee))

	for _, m := range c.Committee {
		votes[m.Name] = m.Weight
	}

	return committee.NewCommittee(votes)
}

// GenesisObjects builds every genesis object in file order
func (c *Chain) GenesisObjects() ([]*types.Object, error) {
	objs := make([]*types.Object, 0, len(c.Objects))

	for _, g := range c.Objects {
		obj, err := g.Object()
		if err != nil {
			return nil, err
		}

		objs = append(objs, obj)
	}

	return objs, nil
}

// Import decodes and validates a genesis file
func Import(chainfile string) (*Chain, error) {
	data, err := os.ReadFile(chainfile)
	if err != nil {
		return nil, err
	}

	return importChain(data)
}

func importChain(content []byte) (*Chain, error) {
	var chain *Chain

	if err := json.Unmarshal(content, &chain); err != nil {
		return nil, err
	}

	if chain == nil {
		return nil, ErrEmptyCommittee
	}

	if err := chain.Validate(); err != nil {
		return nil, err
	}

	return chain, nil
}
