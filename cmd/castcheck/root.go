package main

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/castcheck/internal/casts"
	"github.com/funvibe/castcheck/internal/config"
	"github.com/funvibe/castcheck/internal/subtyping"
	"github.com/funvibe/castcheck/internal/typesystem"
	"github.com/funvibe/castcheck/internal/universe"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	decls      []string
	color      string
	verbose    bool
}

// app is the state shared by all subcommands, built before any of them runs.
type app struct {
	settings *config.Settings
	universe *universe.Universe
	oracle   *subtyping.Checker
	engine   *casts.Engine
	logger   *zap.Logger
	out      io.Writer
	palette  palette
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:           "castcheck",
		Short:         "castcheck - decide whether casts between generic types can succeed and are checkable",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(opts, cmd.OutOrStdout())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetErr(os.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to castcheck.yaml (default: search upwards from the working directory)")
	flags.StringSliceVar(&opts.decls, "decls", nil, "Additional declaration files")
	flags.StringVar(&opts.color, "color", "", "Colour verdicts: auto, always or never")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every decision at debug level")

	root.AddCommand(newPossibleCmd(a))
	root.AddCommand(newErasedCmd(a))
	root.AddCommand(newReconstructCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newClassifiersCmd(a))
	return root
}

func (a *app) init(opts *options, out io.Writer) error {
	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return err
	}
	settings.Declarations = append(settings.Declarations, opts.decls...)
	switch opts.color {
	case "":
	case "auto", "always", "never":
		settings.Color = opts.color
	default:
		return fmt.Errorf("--color must be one of auto, always, never (got %q)", opts.color)
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	u, err := universe.Load(settings)
	if err != nil {
		return err
	}

	a.settings = settings
	a.universe = u
	a.logger = logger
	a.oracle = subtyping.New(subtyping.WithLogger(logger), subtyping.WithSettings(settings))
	a.engine = casts.New(a.oracle, u.Platform(), casts.WithLogger(logger), casts.WithSettings(settings))
	a.out = out
	a.palette = newPalette(settings.Color, out)

	logger.Debug("universe loaded",
		zap.Int("classifiers", len(u.IDs())),
		zap.Int("platform", u.Platform().Len()),
		zap.Strings("declarations", settings.Declarations))
	return nil
}

// loadSettings reads path, or the nearest castcheck.yaml when path is empty.
// Without any settings file the defaults apply.
func loadSettings(path string) (*config.Settings, error) {
	if path != "" {
		return config.LoadSettings(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	found, err := config.FindSettings(wd)
	if err != nil {
		return nil, err
	}
	if found == "" {
		return config.Default(), nil
	}
	return config.LoadSettings(found)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func (a *app) parse(expr string) (typesystem.Type, error) {
	return a.universe.ParseType(expr, nil)
}
