package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"fab-progress/internal/database"
	"fab-progress/internal/models"
	"fab-progress/internal/progress"
)

func newReportCmd() *cobra.Command {
	var (
		f           models.Filters
		statuses    string
		top         int
		nonNegative bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print stage durations for the selected projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := cfg.RequireDB(); err != nil {
				return err
			}
			if err := database.Init(cfg.DBDSN, log); err != nil {
				return err
			}

			for _, s := range strings.Split(statuses, ",") {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				cat, ok := progress.ParseCategory(s)
				if !ok {
					return fmt.Errorf("unknown status %q", s)
				}
				f.Statuses = append(f.Statuses, string(cat))
			}

			projects, err := database.FindProjects(f)
			if err != nil {
				return err
			}
			recs := make([]progress.Record, len(projects))
			for i := range projects {
				recs[i] = projects[i].Record()
			}

			rep := progress.Analyze(recs, progress.AnalyzerOptions{Year: time.Now().Year(), TopN: top})
			if nonNegative {
				rep = rep.NonNegative()
			}
			return writeReport(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().StringVar(&f.Section, "section", "", "division to include")
	cmd.Flags().StringVar(&f.Year, "year", "", "handover year, e.g. 115")
	cmd.Flags().StringVar(&statuses, "status", "", "comma separated status keys or labels")
	cmd.Flags().IntVar(&top, "top", 3, "size of the fastest/slowest lists")
	cmd.Flags().BoolVar(&nonNegative, "nonnegative", false, "drop segments dated out of order")
	return cmd
}

func writeReport(w io.Writer, rep progress.Report) error {
	if len(rep.Rows) == 0 {
		_, err := fmt.Fprintln(w, "not enough stage dates to compute durations")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "CASE\tPROJECT\tSEGMENTS\tTOTAL")
	for _, row := range rep.Rows {
		segs := make([]string, len(row.Segments))
		for i, s := range row.Segments {
			segs[i] = fmt.Sprintf("%s→%s %d", s.From.Label(), s.To.Label(), s.Days)
		}
		total := "-"
		if row.HasTotal {
			total = fmt.Sprintf("%d", row.Total)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.CaseNumber, row.ProjectName, strings.Join(segs, ", "), total)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "STAGES\tMEAN DAYS\tRECORDS")
	for _, m := range rep.PairMeans {
		fmt.Fprintf(tw, "%s→%s\t%.1f\t%d\n", m.From.Label(), m.To.Label(), m.Mean, m.Count)
	}
	if rep.TotalMean != nil {
		fmt.Fprintf(tw, "total\t%.1f\t%d\n", *rep.TotalMean, countTotals(rep.Rows))
	}

	ranked := func(title string, rows []progress.Row) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "%s\tPROJECT\tTOTAL\tSTATUS\n", title)
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.CaseNumber, r.ProjectName, r.Total, r.Category.Palette().Label)
		}
	}
	ranked("FASTEST", rep.Fastest)
	ranked("SLOWEST", rep.Slowest)

	if an := rep.Anomalies(); len(an) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "OUT OF ORDER\tSTAGES\tDAYS")
		for _, a := range an {
			fmt.Fprintf(tw, "%s\t%s→%s\t%d\n", a.CaseNumber, a.Segment.From.Label(), a.Segment.To.Label(), a.Segment.Days)
		}
	}

	return tw.Flush()
}

func countTotals(rows []progress.Row) int {
	n := 0
	for _, r := range rows {
		if r.HasTotal {
			n++
		}
	}
	return n
}
