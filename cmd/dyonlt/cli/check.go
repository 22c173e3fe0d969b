package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/exprtools/borrowcheck/check"
	"github.com/exprtools/borrowcheck/internal/sexpr"
	"github.com/exprtools/borrowcheck/prelude/std"
	"github.com/exprtools/borrowcheck/typecheck/basic"
)

func newCheckCmd() *cobra.Command {
	var diffAgainst string
	var writeSnapshot string

	cmd := &cobra.Command{
		Use:   "check <glob>...",
		Short: "Run the lifetime and type-check pass over one or more program files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, globs []string) error {
			files, err := expandGlobs(globs)
			if err != nil {
				return err
			}

			pre := std.New()
			log := newLogger()
			snapshot := make(map[string]string)

			for _, path := range files {
				source, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				tree, err := sexpr.Parse(string(source))
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				types, err := check.Check(tree, pre, &check.Config{Logger: log, TypeChecker: basic.Checker{}})
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				for name, ty := range types {
					snapshot[fmt.Sprintf("%s::%s", path, name)] = ty.String()
				}
			}

			rendered := renderSnapshot(snapshot)

			if writeSnapshot != "" {
				if err := os.WriteFile(writeSnapshot, []byte(rendered), 0o644); err != nil {
					return err
				}
			}

			if diffAgainst != "" {
				prev, err := os.ReadFile(diffAgainst)
				if err != nil {
					return err
				}
				d, err := diffAgainstSnapshot(string(prev), rendered)
				if err != nil {
					return err
				}
				if d != "" {
					fmt.Fprint(cmd.OutOrStdout(), d)
					return fmt.Errorf("refined return types differ from %s", diffAgainst)
				}
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&diffAgainst, "diff", "", "compare refined return types against a previously written snapshot, failing on any difference")
	cmd.Flags().StringVar(&writeSnapshot, "write-snapshot", "", "write the refined return type snapshot to this path")

	return cmd
}

func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func renderSnapshot(snapshot map[string]string) string {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, snapshot[k])
	}
	return b.String()
}

func diffAgainstSnapshot(before, after string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
