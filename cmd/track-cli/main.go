// track-cli looks up a repair order from the terminal, using the same
// configuration and store as the API.
//
//	track-cli 12345
//	track-cli --query 00112345678
//	track-cli --status "Pending part"
//
// Exit status is 0 on a match, 2 when no order matches and 1 on any other
// failure.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"repair-tracker/internal/core/config"
	"repair-tracker/internal/core/logger"
	"repair-tracker/internal/core/phone"
	orderadapter "repair-tracker/internal/features/orders/adapters"
	"repair-tracker/internal/features/orders/domain"
	orderservice "repair-tracker/internal/features/orders/service"

	"github.com/spf13/pflag"
)

const exitNotFound = 2

// exitError carries a process exit status.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var query, status, envDir, logLevel string

	flagSet := pflag.NewFlagSet("track-cli", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&query, "query", "q", "", "order id, tracking token, national id or phone fragment")
	flagSet.StringVar(&status, "status", "", "print the progress for a status label and exit")
	flagSet.StringVar(&envDir, "env-dir", ".", "directory holding the .env file")
	flagSet.StringVar(&logLevel, "log-level", "error", "log level for diagnostics on stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	rest := flagSet.Args()
	if query == "" && len(rest) > 0 {
		query = strings.Join(rest, " ")
	} else if len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := config.Load(envDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init("production", logLevel); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	aliases, err := cfg.Lookup.StatusAliasMap()
	if err != nil {
		return err
	}
	mapper, err := domain.NewProgressMapper(aliases)
	if err != nil {
		return err
	}

	if flagSet.Changed("status") {
		return printJSON(stdout, mapper.Map(status))
	}

	store := orderadapter.NewSupabaseAdapter(cfg.Store, phone.NewNormalizer(cfg.Lookup.PhoneRegion))
	svc := orderservice.NewLookupService(store, store, mapper)

	result, err := svc.Lookup(context.Background(), query)
	switch {
	case errors.Is(err, orderservice.ErrEmptyQuery):
		printHelp(stderr, flagSet)
		return nil
	case errors.Is(err, orderservice.ErrOrderNotFound):
		return &exitError{code: exitNotFound, err: err}
	case err != nil:
		return err
	}

	return printJSON(stdout, struct {
		QueryKind domain.QueryKind `json:"query_kind"`
		*orderservice.Result
	}{result.Query.Kind(), result})
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `Look up a repair order.

Usage:
  track-cli [flags] <query>

Flags:
%s`, flagSet.FlagUsages())
}
