package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diarymd-dev/diarymd/internal/diary"
	"github.com/diarymd-dev/diarymd/internal/gitops"
	"github.com/diarymd-dev/diarymd/internal/model"
)

func newUpdateCommand(a *app) *cobra.Command {
	var (
		diaryPath   string
		dateStr     string
		section     string
		line        string
		amountStr   string
		currency    string
		lineType    string
		description string
		commit      bool
		push        bool
		dryRun      bool
		noCreate    bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Append a line to a day's subsection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if diaryPath == "" {
				paths, err := a.diaryPaths(nil)
				if err != nil {
					return err
				}
				diaryPath = paths[0]
			}

			date := time.Now()
			if dateStr != "" {
				parsed, err := time.Parse(model.DateFormat, dateStr)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				date = parsed
			}
			if section == "" {
				section = a.cfg.DefaultSection
			}

			entry, err := buildEntryLine(a, line, amountStr, currency, lineType, description)
			if err != nil {
				return err
			}

			before, err := os.ReadFile(diaryPath)
			if err != nil {
				return err
			}
			after, err := diary.AppendEntry(string(before), date, section, entry, diary.AppendOptions{
				AutoCreate: !noCreate,
			})
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), unifiedDiff(diaryPath, string(before), after))
				return nil
			}
			if err := os.WriteFile(diaryPath, []byte(after), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added to %s: %s\n", diaryPath, entry)

			if commit || a.cfg.Git.AutoCommit {
				if err := commitFiles(a, []string{diaryPath}, fmt.Sprintf("diary: add %s entry for %s", strings.ToLower(section), date.Format(model.DateFormat)), push); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&diaryPath, "diary", "", "diary file to update")
	cmd.Flags().StringVar(&dateStr, "date", "", "entry date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&section, "section", "", "target subsection")
	cmd.Flags().StringVar(&line, "line", "", "verbatim line to append")
	cmd.Flags().StringVar(&amountStr, "amount", "", "expense amount")
	cmd.Flags().StringVar(&currency, "currency", "", "expense currency (ISO 4217)")
	cmd.Flags().StringVar(&lineType, "type", "", "expense category")
	cmd.Flags().StringVar(&description, "description", "", "expense description")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the change")
	cmd.Flags().BoolVar(&push, "push", false, "push after committing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a diff instead of writing")
	cmd.Flags().BoolVar(&noCreate, "no-create", false, "fail when the day or section is missing")
	return cmd
}

// buildEntryLine accepts either a verbatim --line or the structured
// expense flags and produces the line to append.
func buildEntryLine(a *app, line, amountStr, currency, lineType, description string) (string, error) {
	if line != "" {
		if amountStr != "" || lineType != "" || description != "" {
			return "", fmt.Errorf("--line and the expense flags are mutually exclusive")
		}
		return line, nil
	}
	if amountStr == "" {
		return "", fmt.Errorf("either --line or --amount is required")
	}

	amount, err := model.ParseAmount(amountStr)
	if err != nil {
		return "", fmt.Errorf("--amount: %w", err)
	}
	if currency == "" {
		currency = a.cfg.DefaultCurrency
	}
	if !model.ValidCurrency(currency) {
		return "", fmt.Errorf("invalid currency %q", currency)
	}

	rec := model.ExpenseRecord{
		Amount:      amount,
		Currency:    currency,
		Category:    lineType,
		Description: description,
	}
	return rec.FormatLine(), nil
}

func commitFiles(a *app, files []string, message string, push bool) error {
	groups, err := gitops.GroupByRepo(files)
	if err != nil {
		return err
	}
	author := gitops.Author{Name: a.cfg.Git.AuthorName, Email: a.cfg.Git.AuthorEmail}
	for root, relFiles := range groups {
		hash, err := gitops.Commit(root, relFiles, message, author)
		if err != nil {
			return err
		}
		if hash != "" {
			a.log.Committed(root, hash)
		}
		if push {
			if err := gitops.Push(root); err != nil {
				return err
			}
		}
	}
	return nil
}
