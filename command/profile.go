package command

import (
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// InitializePprofServer starts a standalone pprof server when --pprof is
// set. The returned server is nil otherwise.
func InitializePprofServer(cmd *cobra.Command, logger hclog.Logger) *http.Server {
	flag := cmd.Flag(PprofFlag)
	if flag == nil || !flag.Changed {
		return nil
	}

	address := cmd.Flag(PprofAddressFlag).Value.String()

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	for _, name := range []string{"goroutine", "heap", "threadcreate", "block", "mutex"} {
		mux.Handle("/debug/pprof/"+name, pprof.Handler(name))
	}

	pprofSvr := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("pprof server started", "addr", address)

		if err := pprofSvr.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failure in running pprof server", "err", err)
		}
	}()

	return pprofSvr
}
