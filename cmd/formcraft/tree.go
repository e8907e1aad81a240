package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/registry"
	"github.com/goliatone/go-formcraft/pkg/tree"
)

type outlineColors struct {
	step      func(format string, a ...any) string
	container func(format string, a ...any) string
	leaf      func(format string, a ...any) string
	unknown   func(format string, a ...any) string
	meta      func(format string, a ...any) string
}

func newOutlineColors() outlineColors {
	return outlineColors{
		step:      color.New(color.FgCyan, color.Bold).SprintfFunc(),
		container: color.New(color.FgYellow).SprintfFunc(),
		leaf:      color.New(color.FgGreen).SprintfFunc(),
		unknown:   color.New(color.FgRed).SprintfFunc(),
		meta:      color.New(color.Faint).SprintfFunc(),
	}
}

func (a *app) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [document]",
		Short: "Print the component tree of every step",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, firstArg(args))
			if err != nil {
				return err
			}
			writeOutline(a.out, s.Document(), s.Registry(), newOutlineColors())
			return nil
		},
	}
}

func writeOutline(w io.Writer, doc model.FormDocument, types *registry.Registry, colors outlineColors) {
	if len(doc.WizardSteps) == 0 {
		fmt.Fprintln(w, "(no steps)")
		return
	}
	for idx, step := range doc.WizardSteps {
		marker := " "
		if idx == doc.CurrentStepIndex {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s %s\n", marker, colors.step("%d. %s", idx+1, step.Title), colors.meta("#%s", step.ID))
		tree.WalkComponents(step.Components, func(node model.FormComponent, path tree.Path) bool {
			indent := strings.Repeat("  ", len(path))
			paint := colors.leaf
			d, known := types.Lookup(node.Type)
			switch {
			case !known:
				paint = colors.unknown
			case d.IsContainer():
				paint = colors.container
			}
			label := node.Label
			if label == "" {
				label = node.Key
			}
			line := fmt.Sprintf("%s%s %s", indent, label, paint("[%s]", node.Type))
			if node.Key != "" {
				line += " " + colors.meta("key=%s", node.Key)
			}
			line += " " + colors.meta("#%s", node.ID)
			if node.Conditional != nil && node.Conditional.Show {
				line += " " + colors.meta("when %s=%s", node.Conditional.When, node.Conditional.Eq)
			}
			fmt.Fprintln(w, line)
			return true
		})
	}
}

func (a *app) typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered component types by palette category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			colors := newOutlineColors()
			for _, category := range registry.NewDefault().Palette() {
				fmt.Fprintln(a.out, colors.step("%s", category.Name))
				for _, d := range category.Types {
					kind := string(d.Family)
					if d.Value != registry.ValueNone {
						kind += "/" + string(d.Value)
					}
					fmt.Fprintf(a.out, "  %-12s %-14s %s\n", d.Type, d.Label, colors.meta("%s", kind))
				}
			}
			return nil
		},
	}
}
