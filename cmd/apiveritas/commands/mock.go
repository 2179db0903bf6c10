package commands

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mariogalea/qualitymatters-apiveritas/config"
	"github.com/mariogalea/qualitymatters-apiveritas/internal/cliutil"
	"github.com/mariogalea/qualitymatters-apiveritas/mockserver"
)

// MockFlags contains flags for the mock command
type MockFlags struct {
	ConfigPath string
	Addr       string
}

// SetupMockFlags creates and configures a FlagSet for the mock command.
// Returns the FlagSet and a MockFlags struct with bound flag variables.
func SetupMockFlags() (*flag.FlagSet, *MockFlags) {
	fs := flag.NewFlagSet("mock", flag.ContinueOnError)
	flags := &MockFlags{}

	fs.StringVar(&flags.ConfigPath, "config", config.DefaultPath, "path to the config file")
	fs.StringVar(&flags.Addr, "addr", "", "listen address (default: addr from the config file)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiveritas mock [flags]\n\n")
		cliutil.Writef(fs.Output(), "Serve the canned JSON responses declared under mock.routes in the\n")
		cliutil.Writef(fs.Output(), "config file. Runs until interrupted.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apiveritas mock\n")
		cliutil.Writef(fs.Output(), "  apiveritas mock --addr :9999\n")
	}

	return fs, flags
}

// HandleMock executes the mock command
func HandleMock(args []string) error {
	fs, flags := SetupMockFlags()

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

	addr := flags.Addr
	if addr == "" {
		addr = cfg.Mock.Addr
	}

	routes := make([]mockserver.Route, 0, len(cfg.Mock.Routes))
	for _, route := range cfg.Mock.Routes {
		routes = append(routes, mockserver.Route{
			Method:   route.Method,
			Path:     route.Path,
			Status:   route.Status,
			Body:     route.Body,
			BodyFile: route.BodyFile,
		})
	}

	srv, err := mockserver.New(addr, routes, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
