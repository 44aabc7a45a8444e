// Package cli wires the votive commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerissecure/votive"
	"github.com/aerissecure/votive/config"
	"github.com/aerissecure/votive/draft"
	"github.com/aerissecure/votive/internal/logging"
	"github.com/aerissecure/votive/templates"
)

// app is the state shared by every command after flag parsing.
type app struct {
	configPath string
	verbose    bool

	cfg config.Config
	log *zap.Logger
}

// Execute runs the command line. Cobra has already printed any error it
// returns.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:          "votive",
		Short:        "Compose vertical votive petitions",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "settings file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		composeCmd(a),
		previewCmd(a),
		templatesCmd(a),
		lunarCmd(a),
		draftCmd(a),
	)
	return cmd
}

func (a *app) setup() error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		Verbose:     a.verbose,
	})
	if err != nil {
		return err
	}
	a.log = logger
	a.log.Debug("config loaded", zap.String("path", path), zap.String("paper", cfg.Paper))
	return nil
}

func (a *app) registry() (*templates.Registry, error) {
	if a.cfg.TemplatesPath != "" {
		return templates.ParseFile(a.cfg.TemplatesPath)
	}
	return templates.New()
}

func (a *app) composer() (*votive.Composer, error) {
	reg, err := a.registry()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	return votive.NewComposer(
		votive.WithRegistry(reg),
		votive.WithEngine(a.cfg.Engine()),
		votive.WithLogger(a.log),
		votive.WithTempleName(a.cfg.TempleNameOr(votive.DefaultTempleName)),
	)
}

func (a *app) drafts() *draft.Store {
	return draft.NewStore(a.cfg.DraftsPath, draft.WithLogger(a.log))
}
