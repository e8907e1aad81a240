package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formcraft/pkg/codec"
	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/store"
)

// openStore loads the document at path into a new store. "-" reads stdin and
// an empty path falls back to the configured data text.
func (a *app) openStore(cmd *cobra.Command, path string) (*store.Store, error) {
	s := store.New(store.WithLogger(a.logger), store.WithIDGenerator(a.ids))

	var (
		payload codec.Payload
		err     error
	)
	switch path {
	case "":
		if a.cfg.Data == "" {
			return s, nil
		}
		payload, err = codec.Parse([]byte(a.cfg.Data))
	case "-":
		var data []byte
		data, err = io.ReadAll(cmd.InOrStdin())
		if err == nil {
			payload, err = codec.Parse(data)
		}
	default:
		payload, err = codec.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", displayPath(path), err)
	}
	s.LoadPayload(payload)
	a.logger.Debug("document loaded", zap.String("path", path))
	return s, nil
}

func displayPath(path string) string {
	switch path {
	case "":
		return "config data"
	case "-":
		return "stdin"
	default:
		return path
	}
}

// encodeFor picks YAML for .yaml/.yml targets and indented JSON otherwise.
func encodeFor(path string, doc model.FormDocument) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec.EncodeYAML(doc)
	default:
		data, err := codec.EncodeIndent(doc, "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

type mutationFlags struct {
	write bool
	diff  bool
}

func (f *mutationFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "write the result back to the source file")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "print a diff of the document instead of the result")
}

// finish reports the outcome of a mutation: a diff, the new document, or a
// write back to path.
func (a *app) finish(path string, flags mutationFlags, before, after model.FormDocument) error {
	old, err := encodeFor(path, before)
	if err != nil {
		return err
	}
	updated, err := encodeFor(path, after)
	if err != nil {
		return err
	}

	if flags.diff {
		fmt.Fprint(a.out, lineDiff(string(old), string(updated)))
	}
	if flags.write {
		if path == "" || path == "-" {
			return fmt.Errorf("--write needs a document file")
		}
		if err := os.WriteFile(path, updated, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
	if !flags.diff {
		_, err = a.out.Write(updated)
	}
	return err
}

// lineDiff renders a unified-style line diff with +/- markers.
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
