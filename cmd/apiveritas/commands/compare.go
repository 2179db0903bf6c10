package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mariogalea/qualitymatters-apiveritas/comparer"
	"github.com/mariogalea/qualitymatters-apiveritas/config"
	"github.com/mariogalea/qualitymatters-apiveritas/internal/cliutil"
	"github.com/mariogalea/qualitymatters-apiveritas/reporter"
	"github.com/mariogalea/qualitymatters-apiveritas/store"
)

// CompareFlags contains flags for the compare command
type CompareFlags struct {
	ConfigPath    string
	OldFolder     string
	NewFolder     string
	StrictSchema  bool
	StrictValues  bool
	TolerateEmpty bool
	Format        string
	Report        bool
}

// SetupCompareFlags creates and configures a FlagSet for the compare command.
// Returns the FlagSet and a CompareFlags struct with bound flag variables.
func SetupCompareFlags() (*flag.FlagSet, *CompareFlags) {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	flags := &CompareFlags{}

	fs.StringVar(&flags.ConfigPath, "config", config.DefaultPath, "path to the config file")
	fs.StringVar(&flags.OldFolder, "old", "", "baseline snapshot folder (default: second most recent)")
	fs.StringVar(&flags.NewFolder, "new", "", "candidate snapshot folder (default: most recent)")
	fs.BoolVar(&flags.StrictSchema, "strict-schema", false, "reject keys absent from the baseline")
	fs.BoolVar(&flags.StrictValues, "strict-values", false, "treat changed scalar values as blocking")
	fs.BoolVar(&flags.TolerateEmpty, "tolerate-empty", false, "treat empty responses as matched")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Report, "report", false, "write an HTML report to the reports directory")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiveritas compare [flags]\n\n")
		cliutil.Writef(fs.Output(), "Compare two snapshot folders and report contract differences.\n")
		cliutil.Writef(fs.Output(), "Defaults to the two most recent folders of the configured suite.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nStrictness flags override the config file only when given.\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apiveritas compare\n")
		cliutil.Writef(fs.Output(), "  apiveritas compare --strict-schema --strict-values\n")
		cliutil.Writef(fs.Output(), "  apiveritas compare --old 2025.01.02.000000 --new 2025.01.03.000000\n")
		cliutil.Writef(fs.Output(), "  apiveritas compare --format json | jq '.AnyDifferences'\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    All files matched\n")
		cliutil.Writef(fs.Output(), "  1    Differences found\n")
	}

	return fs, flags
}

// HandleCompare executes the compare command
func HandleCompare(args []string) error {
	fs, flags := SetupCompareFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	cfg, logger, err := LoadConfigAndLogger(flags.ConfigPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := cfg.Options()
	if flagWasSet(fs, "strict-schema") {
		opts.StrictSchema = flags.StrictSchema
	}
	if flagWasSet(fs, "strict-values") {
		opts.StrictValues = flags.StrictValues
	}
	if flagWasSet(fs, "tolerate-empty") {
		opts.TolerateEmptyResponses = flags.TolerateEmpty
	}

	cmp := comparer.New(opts, store.New(cfg.Payloads), logger)
	if flags.Report {
		htmlReporter, err := reporter.NewHTML(cfg.Reports)
		if err != nil {
			return err
		}
		cmp.Reporter = htmlReporter
	}

	oldFolder, newFolder := flags.OldFolder, flags.NewFolder
	if oldFolder == "" || newFolder == "" {
		pair, err := cmp.LatestTwoPayloadFolders(cfg.Suite)
		if err != nil {
			return fmt.Errorf("selecting snapshot folders: %w", err)
		}
		if pair == nil {
			return fmt.Errorf("suite %q has fewer than two snapshot folders; run 'apiveritas test' first", cfg.Suite)
		}
		if oldFolder == "" {
			oldFolder = pair.Previous
		}
		if newFolder == "" {
			newFolder = pair.Latest
		}
	}

	verdict, err := cmp.CompareFolders(oldFolder, newFolder, cfg.Suite)
	if err != nil {
		return fmt.Errorf("comparing snapshots: %w", err)
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(verdict, flags.Format); err != nil {
			return err
		}
	} else {
		reporter.Console(os.Stdout, verdict)
	}

	if verdict.AnyDifferences {
		os.Exit(1)
	}
	return nil
}
