package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/diarymd-dev/diarymd/internal/diary"
	"github.com/diarymd-dev/diarymd/internal/digest"
	"github.com/diarymd-dev/diarymd/internal/model"
)

func newDigestCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Summarize diary contents",
	}
	cmd.AddCommand(newDigestExpensesCommand(a))
	cmd.AddCommand(newDigestSelectSubsectionCommand(a))
	return cmd
}

func newDigestExpensesCommand(a *app) *cobra.Command {
	var (
		diaries []string
		fromStr string
		toStr   string
		section string
		convert string
		pretty  bool
	)

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Per-currency expense totals grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(fromStr, toStr)
			if err != nil {
				return err
			}
			if convert != "" && !model.ValidCurrency(convert) {
				return fmt.Errorf("invalid currency %q", convert)
			}
			if section == "" {
				section = a.cfg.DefaultSection
			}

			paths, err := a.diaryPaths(diaries)
			if err != nil {
				return err
			}
			records, err := collectExpenses(a, paths, section)
			if err != nil {
				return err
			}

			var inRange []model.ExpenseRecord
			for _, r := range records {
				if digest.InRange(r.Date, from, to) {
					inRange = append(inRange, r)
				}
			}

			summary := digest.Summarize(inRange, from, to)
			out := digest.RenderSummary(summary, convert, inRange)
			if pretty {
				out = renderMarkdown(out)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&diaries, "diary", nil, "diary file (repeatable)")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&section, "section", "", "expense subsection title")
	cmd.Flags().StringVar(&convert, "convert", "", "also report a grand total in this currency")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render for the terminal")
	return cmd
}

func newDigestSelectSubsectionCommand(a *app) *cobra.Command {
	var (
		diaries []string
		fromStr string
		toStr   string
		section string
		pretty  bool
	)

	cmd := &cobra.Command{
		Use:   "select-subsection",
		Short: "Extract one named subsection from every day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if section == "" {
				return fmt.Errorf("--section is required")
			}
			from, to, err := parseRange(fromStr, toStr)
			if err != nil {
				return err
			}
			paths, err := a.diaryPaths(diaries)
			if err != nil {
				return err
			}

			var excerpts []digest.Excerpt
			for _, path := range paths {
				d, err := diary.ParseFile(path)
				if err != nil {
					return err
				}
				excerpts = append(excerpts, digest.SelectSubsection(d, section, from, to)...)
			}

			out := digest.RenderExcerpts(excerpts)
			if pretty {
				out = renderMarkdown(out)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&diaries, "diary", nil, "diary file (repeatable)")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&section, "section", "", "subsection title to select")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render for the terminal")
	return cmd
}

func collectExpenses(a *app, paths []string, section string) ([]model.ExpenseRecord, error) {
	var records []model.ExpenseRecord
	for _, path := range paths {
		d, err := diary.ParseFile(path)
		if err != nil {
			return nil, err
		}
		found := diary.ExtractExpenses(d, section)
		a.log.DiaryParsed(path, len(d.Days()), len(found))
		records = append(records, found...)
	}
	return records, nil
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := parseDateFlag(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	to, err := parseDateFlag(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", toStr, fromStr)
	}
	return from, to, nil
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(model.DateFormat, s)
}
