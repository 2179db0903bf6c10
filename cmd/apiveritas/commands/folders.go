package commands

import (
	"errors"
	"flag"
	"os"

	"github.com/mariogalea/qualitymatters-apiveritas/config"
	"github.com/mariogalea/qualitymatters-apiveritas/internal/cliutil"
	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

// FoldersFlags contains flags for the folders command
type FoldersFlags struct {
	ConfigPath string
	Suite      string
	Format     string
}

// SetupFoldersFlags creates and configures a FlagSet for the folders command.
// Returns the FlagSet and a FoldersFlags struct with bound flag variables.
func SetupFoldersFlags() (*flag.FlagSet, *FoldersFlags) {
	fs := flag.NewFlagSet("folders", flag.ContinueOnError)
	flags := &FoldersFlags{}

	fs.StringVar(&flags.ConfigPath, "config", config.DefaultPath, "path to the config file")
	fs.StringVar(&flags.Suite, "suite", "", "suite name (default: suite from the config file)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiveritas folders [flags]\n\n")
		cliutil.Writef(fs.Output(), "List the snapshot folders recorded for a suite, newest first.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apiveritas folders\n")
		cliutil.Writef(fs.Output(), "  apiveritas folders --suite orders-api --format json\n")
	}

	return fs, flags
}

// HandleFolders executes the folders command
func HandleFolders(args []string) error {
	fs, flags := SetupFoldersFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}

	suite := flags.Suite
	if suite == "" {
		suite = cfg.Suite
	}

	folders, err := store.New(cfg.Payloads).Folders(suite)
	if err != nil {
		return err
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(struct {
			Suite   string   `json:"suite" yaml:"suite"`
			Folders []string `json:"folders" yaml:"folders"`
		}{Suite: suite, Folders: folders}, flags.Format)
	}

	if len(folders) == 0 {
		cliutil.Writef(os.Stdout, "No snapshot folders for suite %q\n", suite)
		return nil
	}
	for _, folder := range folders {
		cliutil.Writef(os.Stdout, "%s\n", folder)
	}
	return nil
}
