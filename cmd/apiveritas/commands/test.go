package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mariogalea/qualitymatters-apiveritas"
	"github.com/mariogalea/qualitymatters-apiveritas/config"
	"github.com/mariogalea/qualitymatters-apiveritas/internal/cliutil"
	"github.com/mariogalea/qualitymatters-apiveritas/runner"
	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

// TestFlags contains flags for the test command
type TestFlags struct {
	ConfigPath string
}

// SetupTestFlags creates and configures a FlagSet for the test command.
// Returns the FlagSet and a TestFlags struct with bound flag variables.
func SetupTestFlags() (*flag.FlagSet, *TestFlags) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := &TestFlags{}

	fs.StringVar(&flags.ConfigPath, "config", config.DefaultPath, "path to the config file")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiveritas test [flags]\n\n")
		cliutil.Writef(fs.Output(), "Execute the declared HTTP requests and save each JSON response\n")
		cliutil.Writef(fs.Output(), "into a new timestamped snapshot folder.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apiveritas test\n")
		cliutil.Writef(fs.Output(), "  apiveritas test --config orders-api.yaml\n")
	}

	return fs, flags
}

// HandleTest executes the test command
func HandleTest(args []string) error {
	fs, flags := SetupTestFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, logger, err := LoadConfigAndLogger(flags.ConfigPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := runner.New(cfg.Timeout(), uint64(cfg.Request.MaxRetries), logger)
	run.UserAgent = apiveritas.UserAgent()

	startTime := time.Now()
	responses, err := run.Run(ctx, cfg.Requests())
	if err != nil {
		return fmt.Errorf("running requests: %w", err)
	}

	payloads := make(map[string][]byte, len(responses))
	failed := 0
	for _, resp := range responses {
		payloads[resp.Name] = resp.Body
		if resp.Err != nil {
			failed++
			cliutil.Writef(os.Stdout, "✗ %s: %v\n", resp.Name, resp.Err)
		} else {
			cliutil.Writef(os.Stdout, "✓ %s (%d, %v)\n", resp.Name, resp.StatusCode, resp.Duration.Round(time.Millisecond))
		}
	}

	folder, err := store.New(cfg.Payloads).Save(cfg.Suite, payloads)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	logger.Info("snapshot saved",
		zap.String("suite", cfg.Suite),
		zap.String("folder", folder),
		zap.Int("files", len(payloads)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	cliutil.Writef(os.Stdout, "\nSaved %d payloads to %s/%s/%s\n", len(payloads), cfg.Payloads, cfg.Suite, folder)

	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(responses))
	}
	return nil
}
