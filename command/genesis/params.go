package genesis

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dogechain-lab/objectchain/chain"
	"github.com/dogechain-lab/objectchain/command"
	"github.com/dogechain-lab/objectchain/crypto"
	"github.com/dogechain-lab/objectchain/helper/common"
	"github.com/dogechain-lab/objectchain/helper/keccak"
	secretsHelper "github.com/dogechain-lab/objectchain/secrets/helper"
	"github.com/dogechain-lab/objectchain/types"
)

const (
	dirFlag          = "dir"
	nameFlag         = "name"
	authorityFlag    = "authority"
	authorityDirFlag = "authority-dir"
	coinFlag         = "coin"
	objectFlag       = "object"
)

var (
	params = &genesisParams{}
)

var (
	errNoAuthorities     = errors.New("at least one authority must be given with --authority or --authority-dir")
	errInvalidEntry      = errors.New("invalid entry")
	errGenesisFileExists = errors.New("genesis file already exists")
)

type genesisParams struct {
	genesisPath    string
	name           string
	authoritiesRaw []string
	authorityDirs  []string
	coinsRaw       []string
	objectsRaw     []string

	committee []*chain.CommitteeMember
	objects   []*chain.GenesisObject
}

func (p *genesisParams) validateFlags() error {
	if len(p.authoritiesRaw) == 0 && len(p.authorityDirs) == 0 {
		return errNoAuthorities
	}

	if common.FileExists(p.genesisPath) {
		return fmt.Errorf("%w: %s", errGenesisFileExists, p.genesisPath)
	}

	return nil
}

func (p *genesisParams) initRawParams() error {
	p.committee = nil
	p.objects = nil

	if err := p.initCommittee(); err != nil {
		return err
	}

	if err := p.initObjects(chain.KindCoin, p.coinsRaw); err != nil {
		return err
	}

	return p.initObjects(chain.KindObject, p.objectsRaw)
}

// initCommittee parses <name>[:<weight>] entries and the authority keys
// found in the given data directories
func (p *genesisParams) initCommittee() error {
	for _, raw := range p.authoritiesRaw {
		parts := strings.Split(raw, ":")
		if len(parts) > 2 {
			return fmt.Errorf("%w: %q", errInvalidEntry, raw)
		}

		var name types.AuthorityName
		if err := name.UnmarshalText([]byte(parts[0])); err != nil {
			return err
		}

		weight := uint64(1)

		if len(parts) == 2 {
			w, err := strconv.ParseUint(parts[1], 0, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", errInvalidEntry, raw)
			}

			weight = w
		}

		p.committee = append(p.committee, &chain.CommitteeMember{Name: name, Weight: weight})
	}

	for _, dir := range p.authorityDirs {
		manager, err := secretsHelper.SetupLocalSecretsManager(dir)
		if err != nil {
			return err
		}

		key, err := secretsHelper.LoadAuthorityKey(manager)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}

		p.committee = append(p.committee, &chain.CommitteeMember{
			Name:   crypto.PubKeyToAuthorityName(key.PubKey()),
			Weight: 1,
		})
	}

	return nil
}

// initObjects parses <owner>[:<amount>[:<id>]] entries
func (p *genesisParams) initObjects(kind string, entries []string) error {
	for i, raw := range entries {
		parts := strings.Split(raw, ":")
		if len(parts) > 3 {
			return fmt.Errorf("%w: %q", errInvalidEntry, raw)
		}

		var owner types.Address
		if err := owner.UnmarshalText([]byte(parts[0])); err != nil {
			return err
		}

		amount := uint64(0)
		if kind == chain.KindCoin {
			amount = command.DefaultCoinBalance
		}

		if len(parts) > 1 {
			v, err := strconv.ParseUint(parts[1], 0, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", errInvalidEntry, raw)
			}

			amount = v
		}

		id := genesisObjectID(kind, owner, uint64(i))

		if len(parts) == 3 {
			if err := id.UnmarshalText([]byte(parts[2])); err != nil {
				return err
			}
		}

		p.objects = append(p.objects, &chain.GenesisObject{
			ID:    id,
			Owner: owner,
			Kind:  kind,
			Value: amount,
		})
	}

	return nil
}

// genesisObjectID derives a stable id for the i-th object of a kind
func genesisObjectID(kind string, owner types.Address, i uint64) types.ObjectID {
	seed := make([]byte, 0, len(kind)+types.AddressLength+8)
	seed = append(seed, kind...)
	seed = append(seed, owner.Bytes()...)
	seed = binary.BigEndian.AppendUint64(seed, i)

	return types.BytesToObjectID(keccak.Keccak256(nil, seed))
}

func (p *genesisParams) generateGenesis() error {
	genesis := &chain.Chain{
		Name:      p.name,
		Committee: p.committee,
		Objects:   p.objects,
	}

	if err := genesis.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(genesis, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to generate genesis: %w", err)
	}

	if err := os.WriteFile(p.genesisPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write genesis: %w", err)
	}

	return nil
}

func (p *genesisParams) getResult() command.CommandResult {
	return &GenesisResult{
		Message:     fmt.Sprintf("Genesis written to %s", p.genesisPath),
		Authorities: len(p.committee),
		Objects:     len(p.objects),
	}
}
