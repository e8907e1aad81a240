package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcraft/pkg/model"
)

func (a *app) addCmd() *cobra.Command {
	var (
		flags  mutationFlags
		parent string
	)
	cmd := &cobra.Command{
		Use:   "add <document> <type>",
		Short: "Add a component to the current step or into a container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			before := s.Document()
			created, err := s.Add(args[1], parent)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.errOut, "added %s (%s) key=%s\n", created.ID, created.Type, created.Key)
			return a.finish(args[0], flags, before, s.Document())
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&parent, "parent", "", "id of the container to add into")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var (
		flags mutationFlags
		sets  []string
		raw   string
	)
	cmd := &cobra.Command{
		Use:   "update <document> <id>",
		Short: "Replace attributes of a component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := buildPatch(raw, sets)
			if err != nil {
				return err
			}
			s, err := a.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			before := s.Document()
			if err := s.Update(args[1], patch); err != nil {
				return err
			}
			return a.finish(args[0], flags, before, s.Document())
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringArrayVar(&sets, "set", nil, "attribute=value; the value is parsed as JSON when possible")
	cmd.Flags().StringVar(&raw, "patch", "", "JSON object of attributes to replace")
	return cmd
}

// buildPatch merges a JSON object with key=value pairs; pairs win.
func buildPatch(raw string, sets []string) (model.Patch, error) {
	patch := model.Patch{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &patch); err != nil {
			return nil, fmt.Errorf("--patch: %w", err)
		}
	}
	for _, item := range sets {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: expected attribute=value", item)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			parsed = value
		}
		patch[key] = parsed
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("nothing to update: pass --set or --patch")
	}
	return patch, nil
}

func (a *app) deleteCmd() *cobra.Command {
	var flags mutationFlags
	cmd := &cobra.Command{
		Use:   "delete <document> <id>",
		Short: "Remove a component and everything nested in it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			before := s.Document()
			if err := s.Delete(args[1]); err != nil {
				return err
			}
			return a.finish(args[0], flags, before, s.Document())
		},
	}
	flags.bind(cmd)
	return cmd
}

func (a *app) stepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Add or remove wizard steps",
	}

	var (
		addFlags    mutationFlags
		title       string
		description string
	)
	add := &cobra.Command{
		Use:   "add <document>",
		Short: "Append a step and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			before := s.Document()
			step := s.AddStep(title)
			if description != "" {
				if err := s.UpdateStep(step.ID, model.StepPatch{Description: &description}); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.errOut, "added step %s (%s)\n", step.ID, step.Title)
			return a.finish(args[0], addFlags, before, s.Document())
		},
	}
	addFlags.bind(add)
	add.Flags().StringVar(&title, "title", "", "step title (default \"Step N\")")
	add.Flags().StringVar(&description, "description", "", "step description")

	var deleteFlags mutationFlags
	remove := &cobra.Command{
		Use:   "delete <document> <id>",
		Short: "Remove a step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd, args[0])
			if err != nil {
				return err
			}
			before := s.Document()
			if err := s.DeleteStep(args[1]); err != nil {
				return err
			}
			return a.finish(args[0], deleteFlags, before, s.Document())
		},
	}
	deleteFlags.bind(remove)

	cmd.AddCommand(add, remove)
	return cmd
}
