package framework

import (
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/chain"
	"github.com/dogechain-lab/objectchain/secrets/helper"
	"github.com/dogechain-lab/objectchain/server"
	"github.com/dogechain-lab/objectchain/types"
)

// TestServer is one in-process authority
type TestServer struct {
	t *testing.T

	Name    types.AuthorityName
	DataDir string
	server  *server.Server
}

// NewTestServers starts n authorities that share one genesis. Each member
// votes with weight 1.
func NewTestServers(t *testing.T, n int, objects []*chain.GenesisObject) []*TestServer {
	t.Helper()

	srvs := make([]*TestServer, n)
	genesis := &chain.Chain{
		Name:    "e2e",
		Objects: objects,
	}

	for i := range srvs {
		dataDir := t.TempDir()

		manager, err := helper.SetupLocalSecretsManager(dataDir)
		if err != nil {
			t.Fatal(err)
		}

		name, err := helper.InitAuthorityKey(manager)
		if err != nil {
			t.Fatal(err)
		}

		srvs[i] = &TestServer{t: t, Name: name, DataDir: dataDir}
		genesis.Committee = append(genesis.Committee, &chain.CommitteeMember{Name: name, Weight: 1})
	}

	if err := genesis.Validate(); err != nil {
		t.Fatal(err)
	}

	for _, srv := range srvs {
		srv.start(genesis)
	}

	return srvs
}

func (s *TestServer) start(genesis *chain.Chain) {
	s.t.Helper()

	srv, err := server.NewServer(&server.Config{
		Chain:   genesis,
		DataDir: s.DataDir,
		Dev:     true,
		JSONRPC: &server.JSONRPC{
			JSONRPCAddr:      &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0},
			BatchLengthLimit: 20,
			JSONNamespace:    []string{"authority", "web3"},
			EnableWS:         true,
		},
		Telemetry: &server.Telemetry{},
		LogLevel:  hclog.Error,
	})
	if err != nil {
		s.t.Fatal(err)
	}

	s.server = srv
	s.t.Cleanup(srv.Close)
}

// JSONRPCAddr is the bound JSON-RPC address
func (s *TestServer) JSONRPCAddr() string {
	return s.server.JSONRPCAddr().String()
}

// Client dials the authority websocket endpoint
func (s *TestServer) Client() *Client {
	s.t.Helper()

	client, err := Dial(s.JSONRPCAddr())
	if err != nil {
		s.t.Fatal(err)
	}

	s.t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
