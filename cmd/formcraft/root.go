package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-formcraft/internal/config"
	"github.com/goliatone/go-formcraft/internal/logging"
	"github.com/goliatone/go-formcraft/pkg/renderers/tui"
	"github.com/goliatone/go-formcraft/pkg/tree"
)

// app carries the state shared by every command.
type app struct {
	out    io.Writer
	errOut io.Writer

	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger

	// ids and driver are replaced in tests.
	ids    tree.Generator
	driver tui.PromptDriver
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		v:      viper.New(),
		logger: zap.NewNop(),
		ids:    tree.UUIDGenerator{},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formcraft",
		Short:         "Build, render and fill multi-step form documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./formcraft.yaml)")
	flags.String("mode", "renderer", "presentation mode: builder, renderer or preview")
	flags.String("theme", "light", "theme: light or dark")
	flags.Bool("readonly", false, "render every control disabled")
	flags.String("renderer", "html", "output renderer: html or tui")
	flags.String("log-format", "human", "log format: human or json")
	flags.Bool("debug", false, "enable debug logging")

	_ = a.v.BindPFlag("mode", flags.Lookup("mode"))
	_ = a.v.BindPFlag("theme", flags.Lookup("theme"))
	_ = a.v.BindPFlag("readonly", flags.Lookup("readonly"))
	_ = a.v.BindPFlag("renderer", flags.Lookup("renderer"))
	_ = a.v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))

	root.AddCommand(
		a.renderCmd(),
		a.fillCmd(),
		a.addCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.stepCmd(),
		a.treeCmd(),
		a.typesCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{Debug: cfg.Debug, Format: cfg.LogFormat}, a.errOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
