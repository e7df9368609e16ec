package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/dogechain-lab/objectchain/adapter"
	"github.com/dogechain-lab/objectchain/authority"
	"github.com/dogechain-lab/objectchain/chain"
	"github.com/dogechain-lab/objectchain/crypto"
	"github.com/dogechain-lab/objectchain/helper/common"
	"github.com/dogechain-lab/objectchain/helper/kvdb"
	"github.com/dogechain-lab/objectchain/helper/kvdb/leveldb"
	"github.com/dogechain-lab/objectchain/helper/telemetry"
	"github.com/dogechain-lab/objectchain/jsonrpc"
	"github.com/dogechain-lab/objectchain/secrets"
	secretsHelper "github.com/dogechain-lab/objectchain/secrets/helper"
	"github.com/dogechain-lab/objectchain/store"
	"github.com/dogechain-lab/objectchain/types"
)

var ErrNotCommitteeMember = errors.New("authority is not a committee member")

// Server is the central manager of one authority
type Server struct {
	logger hclog.Logger
	config *Config
	chain  *chain.Chain

	// authority stack
	db    kvdb.KVBatchStorage
	store *store.Store
	state *authority.State

	// jsonrpc stack
	jsonrpcServer *jsonrpc.JSONRPC

	serverMetrics *serverMetrics

	prometheusServer *http.Server

	tracerProvider telemetry.TracerProvider

	// secrets manager
	secretsManager secrets.SecretsManager

	closed *atomic.Bool
}

const (
	loggerDomainName = "objectchain"
	storeDirName     = "store"
)

var dirPaths = []string{
	storeDirName,
}

// newFileLogger returns logger instance that writes all logs to a specified file.
//
// If log file can't be created, it returns an error
func newFileLogger(config *Config) (hclog.Logger, error) {
	logFileWriter, err := os.OpenFile(
		config.LogFilePath,
		os.O_CREATE+os.O_RDWR+os.O_APPEND,
		0640,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create log file, %w", err)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   loggerDomainName,
		Level:  config.LogLevel,
		Output: logFileWriter,
	}), nil
}

// newCLILogger returns minimal logger instance that sends all logs to standard output
func newCLILogger(config *Config) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  loggerDomainName,
		Level: config.LogLevel,
	})
}

// newLoggerFromConfig creates a new logger which logs to a specified file.
//
// If log file is not set it outputs to standard output ( console ).
// If log file is specified, and it can't be created the server command will error out
func newLoggerFromConfig(config *Config) (hclog.Logger, error) {
	if config.LogFilePath != "" {
		fileLoggerInstance, err := newFileLogger(config)
		if err != nil {
			return nil, err
		}

		return fileLoggerInstance, nil
	}

	return newCLILogger(config), nil
}

func newLevelDBBuilder(logger hclog.Logger, config *Config, path string) leveldb.Builder {
	leveldbBuilder := leveldb.NewBuilder(
		logger,
		path,
	)

	opts := config.LeveldbOptions
	if opts == nil {
		return leveldbBuilder
	}

	leveldbBuilder.SetCacheSize(opts.CacheSize).
		SetHandles(opts.Handles).
		SetBloomKeyBits(opts.BloomKeyBits).
		SetCompactionTableSize(opts.CompactionTableSize).
		SetCompactionTotalSize(opts.CompactionTotalSize).
		SetNoSync(opts.NoSync)

	return leveldbBuilder
}

func storeConfig(config *Config) *store.Config {
	storeConfig := store.DefaultConfig()

	if opts := config.StoreOptions; opts != nil {
		if opts.ObjectCacheSize > 0 {
			storeConfig.ObjectCacheSize = opts.ObjectCacheSize
		}

		if opts.RawCacheSize > 0 {
			storeConfig.RawCacheSize = opts.RawCacheSize
		}
	}

	return storeConfig
}

// NewServer creates a new authority server, using the passed in configuration
func NewServer(config *Config) (*Server, error) {
	logger, err := newLoggerFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("could not setup new logger instance, %w", err)
	}

	m := &Server{
		logger: logger,
		config: config,
		chain:  config.Chain,
		closed: atomic.NewBool(false),
	}

	if err := m.start(); err != nil {
		m.Close()

		return nil, err
	}

	return m, nil
}

func (s *Server) start() error {
	config := s.config

	s.logger.Info("Data dir", "path", config.DataDir)

	// Generate all the paths in the dataDir
	if err := common.SetupDataDir(config.DataDir, dirPaths); err != nil {
		return fmt.Errorf("failed to create data directories: %w", err)
	}

	// Set up the secrets manager
	if err := s.setupSecretsManager(); err != nil {
		return fmt.Errorf("failed to set up the secrets manager: %w", err)
	}

	key, err := secretsHelper.LoadOrInitAuthorityKey(s.secretsManager)
	if err != nil {
		return fmt.Errorf("failed to load the authority key: %w", err)
	}

	signer := crypto.NewSigner(key)

	if err := s.setupChain(signer.Name()); err != nil {
		return err
	}

	if config.Telemetry != nil && config.Telemetry.PrometheusAddr != nil {
		s.serverMetrics = metricProvider(loggerDomainName, s.chain.Name, true)
		s.prometheusServer = s.startPrometheusServer(config.Telemetry.PrometheusAddr)
	} else {
		s.serverMetrics = metricProvider(loggerDomainName, s.chain.Name, false)
	}

	if err := s.setupTracer(); err != nil {
		return err
	}

	if err := s.setupStore(); err != nil {
		return err
	}

	s.state = authority.NewState(
		s.logger,
		s.chain.BuildCommittee(),
		signer,
		s.store,
		adapter.NewNativeAdapter(s.logger),
		s.serverMetrics.authority,
		s.tracerProvider.NewTracer("authority"),
	)

	genesis, err := s.chain.GenesisObjects()
	if err != nil {
		return err
	}

	if err := s.state.ApplyGenesis(genesis); err != nil {
		return err
	}

	s.logger.Info("authority ready", "name", s.state.Name(), "chain", s.chain.Name)

	// setup and start jsonrpc server
	return s.setupJSONRPC()
}

// setupChain checks the authority belongs to the committee. A dev server
// without genesis runs a committee of itself.
func (s *Server) setupChain(name types.AuthorityName) error {
	if s.chain == nil {
		if !s.config.Dev {
			return errors.New("genesis not defined")
		}

		s.chain = &chain.Chain{
			Name:      "dev",
			Committee: []*chain.CommitteeMember{{Name: name, Weight: 1}},
		}
	}

	if s.chain.BuildCommittee().Weight(name) == 0 {
		return fmt.Errorf("%w: %s", ErrNotCommitteeMember, name)
	}

	return nil
}

func (s *Server) setupTracer() error {
	if s.config.Telemetry == nil || s.config.Telemetry.JaegerURL == "" {
		s.tracerProvider = telemetry.NewNilTracerProvider()

		return nil
	}

	provider, err := telemetry.NewTracerProvider(s.config.Telemetry.JaegerURL, loggerDomainName)
	if err != nil {
		return fmt.Errorf("failed to set up jaeger tracer: %w", err)
	}

	s.tracerProvider = provider

	return nil
}

func (s *Server) setupStore() error {
	var err error

	if s.config.Dev {
		s.db, err = leveldb.NewMemory()
	} else {
		s.db, err = newLevelDBBuilder(
			s.logger,
			s.config,
			filepath.Join(s.config.DataDir, storeDirName),
		).Build()
	}

	if err != nil {
		return err
	}

	s.store, err = store.NewStore(s.logger, s.db, storeConfig(s.config))

	return err
}

// setupSecretsManager sets up the secrets manager
func (s *Server) setupSecretsManager() error {
	secretsManagerConfig := s.config.SecretsManager
	if secretsManagerConfig == nil {
		// No config provided, use default
		secretsManagerConfig = &secrets.SecretsManagerConfig{
			Type: secrets.Local,
		}
	}

	secretsManagerType := secretsManagerConfig.Type
	secretsManagerParams := &secrets.SecretsManagerParams{
		Logger: s.logger,
	}

	if secretsManagerType == secrets.Local {
		// The base directory is required for the local secrets manager
		secretsManagerParams.Extra = map[string]interface{}{
			secrets.Path: s.config.DataDir,
		}
	}

	// Grab the factory method
	secretsManagerFactory, ok := GetSecretsManager(secretsManagerType)
	if !ok {
		return fmt.Errorf("secrets manager type '%s' not found", secretsManagerType)
	}

	// Instantiate the secrets manager
	secretsManager, factoryErr := secretsManagerFactory(
		secretsManagerConfig,
		secretsManagerParams,
	)

	if factoryErr != nil {
		return fmt.Errorf("unable to instantiate secrets manager, %w", factoryErr)
	}

	s.secretsManager = secretsManager

	return nil
}

// setupJSONRPC sets up the JSONRPC server, using the set configuration
func (s *Server) setupJSONRPC() error {
	if s.config.JSONRPC == nil || s.config.JSONRPC.JSONRPCAddr == nil {
		s.logger.Info("JSON-RPC server disabled")

		return nil
	}

	// format the jsonrpc endpoint namespaces
	namespaces := make([]jsonrpc.Namespace, len(s.config.JSONRPC.JSONNamespace))
	for i, s := range s.config.JSONRPC.JSONNamespace {
		namespaces[i] = jsonrpc.Namespace(s)
	}

	conf := &jsonrpc.Config{
		Store:                    s.state,
		Authority:                s.state.Name(),
		Addr:                     s.config.JSONRPC.JSONRPCAddr,
		AccessControlAllowOrigin: s.config.JSONRPC.AccessControlAllowOrigin,
		BatchLengthLimit:         s.config.JSONRPC.BatchLengthLimit,
		JSONNamespaces:           namespaces,
		EnableWS:                 s.config.JSONRPC.EnableWS,
		EnablePProf:              s.config.JSONRPC.EnablePprof,
		Metrics:                  s.serverMetrics.jsonrpc,
	}

	srv, err := jsonrpc.NewJSONRPC(s.logger, conf)
	if err != nil {
		return err
	}

	s.jsonrpcServer = srv

	return nil
}

// Chain returns the genesis of the network
func (s *Server) Chain() *chain.Chain {
	return s.chain
}

// State returns the authority state
func (s *Server) State() *authority.State {
	return s.state
}

// JSONRPCAddr is the bound JSON-RPC address, nil when the server is disabled
func (s *Server) JSONRPCAddr() net.Addr {
	if s.jsonrpcServer == nil {
		return nil
	}

	return s.jsonrpcServer.Addr()
}

// Close closes the server
// sequence:
//
//	front: stop serving JSON-RPC, prometheus and tracing concurrently,
//		so no request reaches the authority anymore
//
//	store: safe close the object store and its database
func (s *Server) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var g errgroup.Group

	if s.jsonrpcServer != nil {
		g.Go(func() error {
			s.logger.Info("close jsonrpc server")

			if err := s.jsonrpcServer.Close(); err != nil {
				return fmt.Errorf("failed to close jsonrpc server: %w", err)
			}

			return nil
		})
	}

	if s.prometheusServer != nil {
		g.Go(func() error {
			if err := s.prometheusServer.Shutdown(ctx); err != nil {
				return fmt.Errorf("prometheus server shutdown error: %w", err)
			}

			return nil
		})
	}

	if s.tracerProvider != nil {
		g.Go(func() error {
			if err := s.tracerProvider.Shutdown(ctx); err != nil {
				return fmt.Errorf("failed to shutdown tracer: %w", err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to close front services", "err", err)
	}

	s.logger.Info("close object store")

	if s.store != nil {
		// the store owns the database
		if err := s.store.Close(); err != nil {
			s.logger.Error("failed to close store", "err", err)
		}
	} else if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("failed to close database", "err", err)
		}
	}
}

func (s *Server) startPrometheusServer(listenAddr *net.TCPAddr) *http.Server {
	srv := &http.Server{
		Addr: listenAddr.String(),
		Handler: promhttp.InstrumentMetricHandler(
			prometheus.DefaultRegisterer, promhttp.HandlerFor(
				prometheus.DefaultGatherer,
				promhttp.HandlerOpts{},
			),
		),
		ReadHeaderTimeout: time.Minute,
	}

	go func() {
		s.logger.Info("Prometheus server started", "addr", listenAddr.String())

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Prometheus HTTP server ListenAndServe", "err", err)
		}
	}()

	return srv
}
