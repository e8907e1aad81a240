package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formcraft/pkg/renderers/tui"
)

func (a *app) fillCmd() *cobra.Command {
	var (
		write  bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "fill [document]",
		Short: "Fill a document interactively in the terminal and print the submitted values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			s, err := a.openStore(cmd, path)
			if err != nil {
				return err
			}

			opts := []tui.Option{
				tui.WithOutput(a.out),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
			}
			if a.driver != nil {
				opts = append(opts, tui.WithPromptDriver(a.driver))
			}
			renderer, err := tui.New(opts...)
			if err != nil {
				return err
			}

			values, err := renderer.Run(cmd.Context(), s)
			if err != nil {
				return err
			}
			a.logger.Debug("form submitted", zap.Int("values", len(values)))

			encoded, err := renderer.Encode(values)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, string(encoded))

			if write {
				return a.finish(path, mutationFlags{write: true}, s.Document(), s.Document())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "store the filled values back into the document file")
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "submitted values format: json or pretty")
	return cmd
}
