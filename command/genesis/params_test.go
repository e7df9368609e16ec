package genesis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/chain"
	secretsHelper "github.com/dogechain-lab/objectchain/secrets/helper"
	"github.com/dogechain-lab/objectchain/types"
)

func TestGenerateGenesis(t *testing.T) {
	t.Parallel()

	authorityDir := t.TempDir()

	manager, err := secretsHelper.SetupLocalSecretsManager(authorityDir)
	assert.NoError(t, err)

	fromDir, err := secretsHelper.InitAuthorityKey(manager)
	assert.NoError(t, err)

	explicit := types.AuthorityName{2, 0xbb}
	owner := types.StringToAddress("0xa1")
	fixedID := types.StringToObjectID("0x5000")

	p := &genesisParams{
		genesisPath:    filepath.Join(t.TempDir(), "genesis.json"),
		name:           "local",
		authoritiesRaw: []string{explicit.String() + ":3"},
		authorityDirs:  []string{authorityDir},
		coinsRaw:       []string{owner.String(), owner.String() + ":42"},
		objectsRaw:     []string{owner.String() + ":7:" + fixedID.String()},
	}

	assert.NoError(t, p.validateFlags())
	assert.NoError(t, p.initRawParams())
	assert.NoError(t, p.generateGenesis())

	genesis, err := chain.Import(p.genesisPath)
	assert.NoError(t, err)

	committee := genesis.BuildCommittee()
	assert.Equal(t, uint64(3), committee.Weight(explicit))
	assert.Equal(t, uint64(1), committee.Weight(fromDir))

	assert.Len(t, genesis.Objects, 3)
	assert.Equal(t, uint64(1_000_000), genesis.Objects[0].Value)
	assert.Equal(t, uint64(42), genesis.Objects[1].Value)
	assert.NotEqual(t, genesis.Objects[0].ID, genesis.Objects[1].ID)
	assert.Equal(t, fixedID, genesis.Objects[2].ID)
	assert.Equal(t, chain.KindObject, genesis.Objects[2].Kind)

	// never overwrites an existing genesis
	assert.ErrorIs(t, p.validateFlags(), errGenesisFileExists)
}

func TestGenesisParamsErrors(t *testing.T) {
	t.Parallel()

	p := &genesisParams{genesisPath: filepath.Join(t.TempDir(), "genesis.json")}
	assert.ErrorIs(t, p.validateFlags(), errNoAuthorities)

	p.authoritiesRaw = []string{types.AuthorityName{2}.String() + ":x"}
	assert.ErrorIs(t, p.initRawParams(), errInvalidEntry)

	p.authoritiesRaw = []string{types.AuthorityName{2}.String()}
	p.coinsRaw = []string{"0xa1:1:2:3"}
	assert.ErrorIs(t, p.initRawParams(), errInvalidEntry)
}
