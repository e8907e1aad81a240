package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcraft/pkg/host"
	"github.com/goliatone/go-formcraft/pkg/renderers/html"
	"github.com/goliatone/go-formcraft/pkg/renderers/tui"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		output     string
		step       int
		stylesheet []string
	)
	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render the current step of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, firstArg(args))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("step") {
				s.JumpTo(step - 1)
			}

			opts := []host.Option{host.WithStore(s), host.WithLogger(a.logger)}
			switch a.cfg.Renderer {
			case tui.Name:
				renderer, err := tui.New(tui.WithOutput(a.out))
				if err != nil {
					return err
				}
				opts = append(opts, host.WithRenderer(renderer))
			default:
				renderer, err := html.New(html.WithStylesheets(stylesheet...))
				if err != nil {
					return err
				}
				opts = append(opts, host.WithRenderer(renderer))
			}

			hostCfg := a.cfg.Host()
			hostCfg.Data = ""
			component, err := host.New(hostCfg, opts...)
			if err != nil {
				return err
			}
			out, err := component.Render(cmd.Context())
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				return nil
			}
			_, err = a.out.Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().IntVar(&step, "step", 1, "1-based step to render")
	cmd.Flags().StringSliceVar(&stylesheet, "stylesheet", nil, "stylesheet href to link (html renderer)")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
