package authority

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dogechain-lab/objectchain/adapter"
	"github.com/dogechain-lab/objectchain/helper/keccak"
	"github.com/dogechain-lab/objectchain/types"
)

var ErrGenesisMismatch = errors.New("store was bootstrapped with a different genesis")

// GenesisObjects returns the framework package followed by objs, sorted by id
func GenesisObjects(objs []*types.Object) []*types.Object {
	all := make([]*types.Object, 0, len(objs)+1)
	all = append(all, adapter.FrameworkPackage())
	all = append(all, objs...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ID.Compare(all[j].ID) < 0
	})

	return all
}

// GenesisDigest commits to the refs of the genesis objects
func GenesisDigest(objs []*types.Object) types.Digest {
	buf := make([]byte, 0, len(objs)*(types.AddressLength+types.DigestLength))

	for _, obj := range objs {
		ref := obj.Ref()

		buf = append(buf, ref.ObjectID.Bytes()...)
		buf = append(buf, ref.Digest.Bytes()...)
	}

	return types.BytesToDigest(keccak.Keccak256(nil, buf))
}

// ApplyGenesis writes the framework package and the genesis objects once. A
// store already bootstrapped with the same genesis is left untouched.
func (s *State) ApplyGenesis(objs []*types.Object) error {
	all := GenesisObjects(objs)

	for i := 1; i < len(all); i++ {
		if all[i].ID == all[i-1].ID {
			return fmt.Errorf("duplicate genesis object %s", all[i].ID)
		}
	}

	digest := GenesisDigest(all)

	applied, ok, err := s.store.IsGenesisApplied()
	if err != nil {
		return err
	}

	if ok {
		if applied != digest {
			return fmt.Errorf("%w: have %s, want %s", ErrGenesisMismatch, applied, digest)
		}

		s.logger.Info("genesis already applied", "digest", digest)

		return nil
	}

	if err := s.store.InsertObjects(all); err != nil {
		return err
	}

	if err := s.store.MarkGenesis(digest); err != nil {
		return err
	}

	s.logger.Info("genesis applied", "digest", digest, "objects", len(all))

	return nil
}
