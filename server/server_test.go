package server

import (
	"context"
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/adapter"
	"github.com/dogechain-lab/objectchain/chain"
	"github.com/dogechain-lab/objectchain/gas"
	"github.com/dogechain-lab/objectchain/types"
)

func devConfig(t *testing.T) *Config {
	t.Helper()

	return &Config{
		DataDir: t.TempDir(),
		Dev:     true,
		JSONRPC: &JSONRPC{
			JSONRPCAddr:      &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0},
			BatchLengthLimit: 20,
			JSONNamespace:    []string{"authority", "web3"},
		},
		Telemetry: &Telemetry{},
		LogLevel:  hclog.Error,
	}
}

func TestDevServer(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(devConfig(t))
	assert.NoError(t, err)

	defer srv.Close()

	assert.Equal(t, "dev", srv.Chain().Name)
	assert.Equal(t, uint64(1), srv.State().Committee().Weight(srv.State().Name()))
	assert.NotNil(t, srv.JSONRPCAddr())

	info, err := srv.State().HandleObjectInfoRequest(context.Background(), &types.ObjectInfoRequest{
		ObjectID: adapter.FrameworkPackage().ID,
	})
	assert.NoError(t, err)
	assert.NotNil(t, info.ObjectAndLock)

	// closing twice is a no-op
	srv.Close()
}

func TestServerGenesis(t *testing.T) {
	t.Parallel()

	config := devConfig(t)
	config.JSONRPC = nil

	// learn the authority name from a first run on the same data dir
	first, err := NewServer(config)
	assert.NoError(t, err)

	name := first.State().Name()
	first.Close()

	coin := types.StringToObjectID("0x100")
	config.Chain = &chain.Chain{
		Name:      "local",
		Committee: []*chain.CommitteeMember{{Name: name, Weight: 1}},
		Objects: []*chain.GenesisObject{
			{ID: coin, Owner: types.StringToAddress("0xa1"), Kind: chain.KindCoin, Value: 500},
		},
	}

	srv, err := NewServer(config)
	assert.NoError(t, err)

	defer srv.Close()

	assert.Nil(t, srv.JSONRPCAddr())

	info, err := srv.State().HandleObjectInfoRequest(context.Background(), &types.ObjectInfoRequest{ObjectID: coin})
	assert.NoError(t, err)

	balance, err := gas.GetGasBalance(info.ObjectAndLock.Object)
	assert.NoError(t, err)
	assert.Equal(t, uint64(500), balance)
}

func TestServerRejectsForeignCommittee(t *testing.T) {
	t.Parallel()

	config := devConfig(t)
	config.JSONRPC = nil
	config.Chain = &chain.Chain{
		Name:      "foreign",
		Committee: []*chain.CommitteeMember{{Name: types.AuthorityName{2, 1}, Weight: 1}},
	}

	_, err := NewServer(config)
	assert.ErrorIs(t, err, ErrNotCommitteeMember)
}

func TestServerRequiresGenesis(t *testing.T) {
	t.Parallel()

	config := devConfig(t)
	config.Dev = false

	_, err := NewServer(config)
	assert.Error(t, err)
}
