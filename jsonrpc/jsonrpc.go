package jsonrpc

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/types"
	"github.com/dogechain-lab/objectchain/versioning"
)

const (
	_authorityServiceName = "objectchain authority"
)

// JSONRPC is an API backend
type JSONRPC struct {
	logger     hclog.Logger
	config     *Config
	dispatcher *dispatcher
	metrics    *Metrics
	server     *http.Server
	addr       net.Addr
}

type Config struct {
	Store                    AuthorityStore
	Authority                types.AuthorityName
	Addr                     *net.TCPAddr
	AccessControlAllowOrigin []string
	BatchLengthLimit         uint64
	JSONNamespaces           []Namespace
	EnableWS                 bool
	EnablePProf              bool // whether pprof enable or not

	Metrics *Metrics
}

// NewJSONRPC returns the JSONRPC http server
func NewJSONRPC(logger hclog.Logger, config *Config) (*JSONRPC, error) {
	namespaces := config.JSONNamespaces
	if len(namespaces) == 0 {
		namespaces = DefaultNamespaces
	}

	metrics := NewDummyMetrics(config.Metrics)

	srv := &JSONRPC{
		logger: logger.Named("jsonrpc"),
		config: config,
		dispatcher: newDispatcher(
			logger,
			metrics,
			config.Store,
			config.BatchLengthLimit,
			namespaces,
		),
		metrics: metrics,
	}

	// start http server
	if err := srv.setupHTTP(); err != nil {
		return nil, err
	}

	return srv, nil
}

// Addr is the address the server listens on
func (j *JSONRPC) Addr() net.Addr {
	return j.addr
}

func (j *JSONRPC) Close() error {
	if j.server == nil {
		return nil
	}

	err := j.server.Close()
	j.server = nil

	return err
}

func (j *JSONRPC) setupHTTP() error {
	lis, err := net.Listen("tcp", j.config.Addr.String())
	if err != nil {
		return err
	}

	j.addr = lis.Addr()
	j.logger.Info("http server started", "addr", j.addr.String())

	var mux *http.ServeMux
	if j.config.EnablePProf {
		// debug feature enabled
		mux = http.DefaultServeMux
	} else {
		// NewServeMux must be used, as it disables all debug features.
		// For some strange reason, with DefaultServeMux debug/vars is always enabled (but not debug/pprof).
		// If pprof need to be enabled, this should be DefaultServeMux
		mux = http.NewServeMux()
	}

	// The middleware factory returns a handler, so we need to wrap the handler function properly.
	jsonRPCHandler := http.HandlerFunc(j.handle)
	mux.Handle("/", middlewareFactory(j.config)(jsonRPCHandler))

	// would only enable websocket when set
	if j.config.EnableWS {
		mux.HandleFunc("/ws", j.handleWs)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: time.Minute,
	}

	j.server = srv

	go func() {
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed { //nolint:errorlint
			j.logger.Error("closed http connection", "err", err)
		}
	}()

	return nil
}

// The middlewareFactory builds a middleware which enables CORS using the provided config.
func middlewareFactory(config *Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			for _, allowedOrigin := range config.AccessControlAllowOrigin {
				if allowedOrigin == "*" {
					w.Header().Set("Access-Control-Allow-Origin", "*")

					break
				}

				if allowedOrigin == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)

					break
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// wsUpgrader defines upgrade parameters for the WS connection
var wsUpgrader = websocket.Upgrader{
	// Orders and certificates are small, the default 4096B buffers are
	// more than enough
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS rule - Allow requests from anywhere
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn is a websocket connection as seen by the dispatcher
type wsConn interface {
	ID() string
	WriteMessage(messageType int, data []byte) error
}

// wsWrapper is a wrapping object for the web socket connection and logger
type wsWrapper struct {
	sync.Mutex // basic r/w lock

	id     string          // connection id
	ws     *websocket.Conn // the actual WS connection
	logger hclog.Logger    // module logger
}

func (w *wsWrapper) ID() string {
	return w.id
}

// WriteMessage writes out the message to the WS peer
func (w *wsWrapper) WriteMessage(messageType int, data []byte) error {
	w.Lock()
	defer w.Unlock()
	writeErr := w.ws.WriteMessage(messageType, data)

	if writeErr != nil {
		w.logger.Error("unable to write WS message", "err", writeErr)
	}

	return writeErr
}

// isSupportedWSType returns a status indicating if the message type is supported
func isSupportedWSType(messageType int) bool {
	return messageType == websocket.TextMessage ||
		messageType == websocket.BinaryMessage
}

func (j *JSONRPC) handleWs(w http.ResponseWriter, req *http.Request) {
	// Upgrade the connection to a WS one
	ws, err := wsUpgrader.Upgrade(w, req, nil)
	if err != nil {
		j.logger.Error("unable to upgrade to a WS connection", "err", err)

		return
	}

	wrapConn := &wsWrapper{
		id: uuid.New().String(),
		ws: ws,
	}
	wrapConn.logger = j.logger.With("conn", wrapConn.id)

	// Defer WS closure
	defer func(ws *websocket.Conn) {
		j.metrics.WsConnectionsAdd(-1)

		if err := ws.Close(); err != nil {
			wrapConn.logger.Error("unable to gracefully close WS connection", "err", err)
		}
	}(ws)

	j.metrics.WsConnectionsAdd(1)
	wrapConn.logger.Info("websocket connection established")

	// Run the listen loop
	for {
		// Read the incoming message
		msgType, message, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure,
			) {
				// Accepted close codes
				wrapConn.logger.Info("closing WS connection gracefully")
			} else {
				wrapConn.logger.Error("unable to read WS message", "err", err)
				wrapConn.logger.Info("closing WS connection with error")
			}

			break
		}

		if isSupportedWSType(msgType) {
			go func() {
				resp, handleErr := j.dispatcher.HandleWs(message, wrapConn)
				if handleErr != nil {
					wrapConn.logger.Error("unable to handle WS request", "err", handleErr)

					_ = wrapConn.WriteMessage(
						msgType,
						[]byte(fmt.Sprintf("WS Handle error: %s", handleErr.Error())),
					)
				} else {
					_ = wrapConn.WriteMessage(msgType, resp)
				}
			}()
		}
	}
}

func (j *JSONRPC) handle(w http.ResponseWriter, req *http.Request) {
	defer j.metrics.RequestsCounterInc()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization",
	)

	switch req.Method {
	case http.MethodPost:
		j.handleJSONRPCRequest(w, req)
	case http.MethodGet:
		j.handleGetRequest(w)
	case http.MethodOptions:
		// nothing to return
	default:
		j.metrics.ErrorsCounterInc()
		_, _ = w.Write([]byte("method " + req.Method + " not allowed"))
	}
}

func (j *JSONRPC) handleJSONRPCRequest(w http.ResponseWriter, req *http.Request) {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		j.metrics.ErrorsCounterInc()
		_, _ = w.Write([]byte(err.Error()))

		return
	}

	// log request
	j.logger.Debug("handle", "request", string(data))

	startT := time.Now()

	// handle request
	resp, err := j.dispatcher.Handle(data)

	j.metrics.ResponseTimeObserve(startT)

	if err != nil {
		j.metrics.ErrorsCounterInc()
		_, _ = w.Write([]byte(err.Error()))
	} else {
		_, _ = w.Write(resp)
	}

	j.logger.Debug("handle", "response", string(resp))
}

type GetResponse struct {
	Name      string              `json:"name"`
	Authority types.AuthorityName `json:"authority"`
	Version   string              `json:"version"`
}

func (j *JSONRPC) handleGetRequest(writer io.Writer) {
	data := &GetResponse{
		Name:      _authorityServiceName,
		Authority: j.config.Authority,
		Version:   versioning.ClientVersion(),
	}

	resp, err := json.Marshal(data)
	if err != nil {
		j.metrics.ErrorsCounterInc()
		_, _ = writer.Write([]byte(err.Error()))

		return
	}

	if _, err = writer.Write(resp); err != nil {
		j.metrics.ErrorsCounterInc()
	}
}
