package helper

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dogechain-lab/objectchain/command"
)

const (
	LocalHostBinding     = "127.0.0.1"
	AllInterfacesBinding = "0.0.0.0"
)

// HandleSignals is a helper method for handling signals sent to the console
// Like stop, error, etc.
func HandleSignals(
	closeFn func(),
	outputter command.OutputFormatter,
) error {
	signalCh := getTerminationSignalCh()
	sig := <-signalCh

	closeMessage := fmt.Sprintf("\n[SIGNAL] Caught signal: %v\n", sig)
	closeMessage += "Gracefully shutting down client...\n"

	_, _ = outputter.Write([]byte(closeMessage))

	// Call the close method
	gracefulCh := make(chan struct{})

	go func() {
		if closeFn != nil {
			closeFn()
		}

		close(gracefulCh)
	}()

	select {
	case <-signalCh:
		return errors.New("shutdown by signal channel")
	case <-time.After(5 * time.Second):
		return errors.New("shutdown by timeout")
	case <-gracefulCh:
		return nil
	}
}

// getTerminationSignalCh returns a channel to emit signals by OS
func getTerminationSignalCh() <-chan os.Signal {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	return signalCh
}

// FormatList formats a list, using a specific blank value replacement
func FormatList(in []string) string {
	return formatColumns(in, "|")
}

// FormatKV formats key value pairs:
//
// Key = Value
//
// Key = <none>
func FormatKV(in []string) string {
	return formatColumns(in, "=")
}

func formatColumns(in []string, glue string) string {
	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 0, 1, ' ', 0)

	for _, line := range in {
		cells := strings.Split(line, "|")

		for i, cell := range cells {
			if cell == "" {
				cell = "<none>"
			}

			if i > 0 {
				_, _ = fmt.Fprintf(w, "\t%s ", glue)
			}

			_, _ = fmt.Fprint(w, cell)
		}

		_, _ = fmt.Fprintln(w)
	}

	_ = w.Flush()

	return strings.TrimRight(b.String(), "\n")
}

// ResolveAddr resolves the passed in TCP address
// The second param is the default ip to bind to, if no ip address is specified
func ResolveAddr(address string, defaultIP string) (*net.TCPAddr, error) {
	addr, err := net.ResolveTCPAddr("tcp", address)

	if err != nil {
		return nil, fmt.Errorf("failed to parse addr '%s': %w", address, err)
	}

	if addr.IP == nil {
		addr.IP = net.ParseIP(defaultIP)
	}

	return addr, nil
}

func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		command.JSONOutputFlag,
		false,
		"get all outputs in json format (default false)",
	)
}

func RegisterJSONRPCFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		command.JSONRPCFlag,
		fmt.Sprintf("%s:%d", AllInterfacesBinding, command.DefaultJSONRPCPort),
		"the JSON-RPC interface",
	)
}

func GetJSONRPCAddress(cmd *cobra.Command) string {
	return cmd.Flag(command.JSONRPCFlag).Value.String()
}

// SetRequiredFlags marks the listed flags as required
func SetRequiredFlags(cmd *cobra.Command, requiredFlags []string) {
	for _, requiredFlag := range requiredFlags {
		_ = cmd.MarkFlagRequired(requiredFlag)
	}
}
