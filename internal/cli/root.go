// Package cli defines the walletkit commands. Every command is an
// independent, single-purpose tool; they share the internal packages but
// nothing at runtime.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"walletkit/internal/explorer"
	"walletkit/pkg/appcfg"
)

func NewRootCmd(cfg *appcfg.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "walletkit",
		Short:         "BIP39/BIP32 wallet tools: generate, derive, check balances",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(cfg),
		newKeyCmd(cfg),
		newDeriveCmd(cfg),
		newAddressesCmd(cfg),
		newCheckCmd(cfg),
		newCheckMultiCmd(cfg),
		newCheckBlockchainCmd(cfg),
		newVerifyCmd(cfg),
		newEncryptCmd(cfg),
		newDecryptCmd(cfg),
	)
	return root
}

// withInterrupt derives a context cancelled on SIGINT/SIGTERM.
func withInterrupt(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx
}

func newExplorerClient(cfg *appcfg.Config, timeoutSeconds int) *explorer.Client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = cfg.Explorer.TimeoutSeconds
	}
	return explorer.New(explorer.Options{
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
		UserAgent: cfg.Explorer.UserAgent,
	})
}

// promptHidden reads a line from the terminal without echo.
func promptHidden(label string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal: pass the value via a flag or file")
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	defer fmt.Fprintln(os.Stderr)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("read hidden input: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
