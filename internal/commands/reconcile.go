package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diarymd-dev/diarymd/internal/reconcile"
	"github.com/diarymd-dev/diarymd/internal/statement"
)

func newReconcileCommand(a *app) *cobra.Command {
	var (
		diaries   []string
		format    string
		tolerance int
		output    string
		write     bool
		dryRun    bool
		commit    bool
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile <statement>",
		Short: "Match diary expenses against a bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && dryRun {
				return fmt.Errorf("--write and --dry-run are mutually exclusive")
			}
			statementPath := args[0]

			adapter, err := resolveAdapter(statementPath, format)
			if err != nil {
				return err
			}

			f, err := os.Open(statementPath)
			if err != nil {
				return err
			}
			defer f.Close()
			txns, rowErrs, err := adapter.Parse(f)
			if err != nil {
				return err
			}
			for _, re := range rowErrs {
				a.log.RowSkipped(adapter.Format(), re.Line, re.Err)
			}

			paths, err := a.diaryPaths(diaries)
			if err != nil {
				return err
			}
			expenses, err := collectExpenses(a, paths, a.cfg.DefaultSection)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("tolerance") {
				tolerance = a.cfg.ToleranceDays
			}
			report := reconcile.Match(expenses, txns, reconcile.Options{ToleranceDays: tolerance})
			a.log.MatchSummary(len(report.Matched), len(report.DiaryOnly), len(report.BankOnly))

			out := reconcile.RenderReport(report)
			if pretty {
				out = renderMarkdown(out)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			if dryRun {
				changes, err := reconcile.ApplyMarkers(report.Matched)
				if err != nil {
					return err
				}
				for _, path := range sortedKeys(changes) {
					c := changes[path]
					fmt.Fprint(cmd.OutOrStdout(), unifiedDiff(path, string(c.Before), string(c.After)))
				}
				return nil
			}

			if output == "" {
				output = a.cfg.Output
			}
			existing, comments, err := reconcile.LoadUnmatched(output)
			if err != nil {
				return err
			}
			merged := reconcile.MergeUnmatched(existing, report, filepath.Base(statementPath))
			if err := reconcile.WriteUnmatched(output, merged, comments); err != nil {
				return err
			}

			if !write {
				return nil
			}
			changes, err := reconcile.ApplyMarkers(report.Matched)
			if err != nil {
				return err
			}
			if err := reconcile.WriteChanges(changes); err != nil {
				return err
			}
			if commit || a.cfg.Git.AutoCommit {
				files := append(sortedKeys(changes), output)
				message := fmt.Sprintf("diary: reconcile %d expenses against %s", len(report.Matched), adapter.Format())
				if err := commitFiles(a, files, message, false); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&diaries, "diary", nil, "diary file (repeatable)")
	cmd.Flags().StringVar(&format, "format", "", "statement format: "+strings.Join(statement.DefaultRegistry().Formats(), "|"))
	cmd.Flags().IntVar(&tolerance, "tolerance", 0, "date tolerance in days")
	cmd.Flags().StringVar(&output, "output", "", "non-reconciled.csv location")
	cmd.Flags().BoolVar(&write, "write", false, "append reconciliation markers to the diary")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the marker diff without writing anything")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit diary changes after --write")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the report for the terminal")
	return cmd
}

// resolveAdapter picks the statement adapter, guessing from the file
// extension and name when --format is not given.
func resolveAdapter(path, format string) (statement.Adapter, error) {
	registry := statement.DefaultRegistry()
	if format != "" {
		adapter := registry.Get(format)
		if adapter == nil {
			return nil, fmt.Errorf("unknown format %q (known: %s)", format, strings.Join(registry.Formats(), ", "))
		}
		return adapter, nil
	}

	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".xlsx"):
		return registry.Get("banknorwegian"), nil
	case strings.HasSuffix(name, ".json"):
		return registry.Get("remember"), nil
	case strings.Contains(name, "wise"):
		return registry.Get("wise"), nil
	case strings.HasSuffix(name, ".csv"):
		return registry.Get("n26"), nil
	}
	return nil, fmt.Errorf("cannot guess format of %s, pass --format", path)
}

func sortedKeys(m map[string]reconcile.FileChange) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
