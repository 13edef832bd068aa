package main

import (
	"coachplus/coachlog/internal/bootstrap"
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/service"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newTemplateCmd(configPath *string) *cobra.Command {
	template := &cobra.Command{Use: "template", Short: "Manage session templates"}

	template.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				templates := app.Templates.List(ctx)
				if len(templates) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no templates")
					return nil
				}
				for _, t := range templates {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d sections\t%d%%\t%s\n", t.ID, t.Name, len(t.Sections), int(t.Intensity*100), t.DefaultTime)
				}
				return nil
			})
		},
	})

	var name, defaultTime string
	var sections []string
	var intensity float64
	var liveMinutes int
	var resistance bool
	add := &cobra.Command{
		Use:   "add --name <name> --section <text>...",
		Short: "Save a template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tpl := domain.Template{
				Name:                   strings.TrimSpace(name),
				Sections:               sections,
				Intensity:              intensity,
				LiveMinutes:            liveMinutes,
				IncludesResistanceWork: resistance,
			}
			if defaultTime != "" {
				tod, err := domain.ParseTimeOfDay(defaultTime)
				if err != nil {
					return err
				}
				tpl.DefaultTime = tod
			}
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				created, err := app.Templates.Create(ctx, tpl)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved template %s (%s)\n", created.Name, created.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "template name")
	add.Flags().StringArrayVar(&sections, "section", nil, "section text; repeat for more")
	add.Flags().Float64Var(&intensity, "intensity", 0, "intensity 0..1")
	add.Flags().IntVar(&liveMinutes, "live-minutes", 0, "minutes of live play")
	add.Flags().BoolVar(&resistance, "resistance", false, "includes resistance work")
	add.Flags().StringVar(&defaultTime, "time", "", "default time of day HH:MM")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.Templates.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted template %s\n", args[0])
				return nil
			})
		},
	}

	var applyDay string
	apply := &cobra.Command{
		Use:   "apply <id>",
		Short: "Log a practice from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				day, err := parseDayOrToday(app, applyDay)
				if err != nil {
					return err
				}
				tpl, err := app.Templates.Get(ctx, args[0])
				if err != nil {
					return err
				}
				s, err := app.Sessions.CreateFromTemplate(ctx, tpl, day)
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), app.Calendar, s)
				return nil
			})
		},
	}
	apply.Flags().StringVar(&applyDay, "day", "", "day YYYY-MM-DD (default today)")

	template.AddCommand(add, rm, apply)
	return template
}

func printStats(cmd *cobra.Command, title string, st service.Stats) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, title)
	_, _ = fmt.Fprintf(w, "  sessions:          %d\n", st.Sessions)
	_, _ = fmt.Fprintf(w, "  rest days:         %d\n", st.Rest)
	_, _ = fmt.Fprintf(w, "  competitions:      %d\n", st.Competitions)
	_, _ = fmt.Fprintf(w, "  resistance work:   %d\n", st.ResistanceWork)
	_, _ = fmt.Fprintf(w, "  live minutes:      %d\n", st.LiveMinutes)
	_, _ = fmt.Fprintf(w, "  average intensity: %d%%\n", int(st.AverageIntensity*100))
}

func newStatsCmd(configPath *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Week and month rollups"}

	var weekAnchor string
	week := &cobra.Command{
		Use:   "week",
		Short: "Stats for the week containing --anchor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				anchor, err := parseDayOrToday(app, weekAnchor)
				if err != nil {
					return err
				}
				year, n := app.Calendar.WeekOfYear(anchor)
				title := fmt.Sprintf("week %d of %d (from %s)", n, year, app.Calendar.DayKey(app.Calendar.StartOfWeek(anchor)))
				printStats(cmd, title, app.Stats.Week(ctx, anchor))
				return nil
			})
		},
	}
	week.Flags().StringVar(&weekAnchor, "anchor", "", "any day in the week, YYYY-MM-DD (default today)")

	var monthAnchor string
	month := &cobra.Command{
		Use:   "month",
		Short: "Stats for the month containing --anchor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				anchor, err := parseDayOrToday(app, monthAnchor)
				if err != nil {
					return err
				}
				printStats(cmd, app.Calendar.In(anchor).Format("January 2006"), app.Stats.Month(ctx, anchor))
				if f, ok := app.Focus.ForMonth(ctx, anchor); ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  goals: %s\n  focus: %s\n", f.Goals, f.Focus)
				}
				return nil
			})
		},
	}
	month.Flags().StringVar(&monthAnchor, "anchor", "", "any day in the month, YYYY-MM-DD (default today)")

	stats.AddCommand(week, month)
	return stats
}

func newFocusCmd(configPath *string) *cobra.Command {
	focus := &cobra.Command{Use: "focus", Short: "Monthly goals and focus"}

	var goals, focusText string
	set := &cobra.Command{
		Use:   "set <YYYY-MM>",
		Short: "Set the goals and focus for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				month, err := app.Calendar.ParseMonth(args[0])
				if err != nil {
					return err
				}
				f, err := app.Focus.Save(ctx, month, goals, focusText)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved focus for %d-%02d\n", f.Year, int(f.Month))
				return nil
			})
		},
	}
	set.Flags().StringVar(&goals, "goals", "", "goals for the month")
	set.Flags().StringVar(&focusText, "focus", "", "focus for the month")

	get := &cobra.Command{
		Use:   "get <YYYY-MM>",
		Short: "Show the goals and focus for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				month, err := app.Calendar.ParseMonth(args[0])
				if err != nil {
					return err
				}
				f, ok := app.Focus.ForMonth(ctx, month)
				if !ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no focus for %s\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goals: %s\nfocus: %s\n", f.Goals, f.Focus)
				return nil
			})
		},
	}

	focus.AddCommand(set, get)
	return focus
}

func newExportCmd(configPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write every collection to a YAML or JSON snapshot (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				snap := app.Backup.Export(ctx)
				if len(args) == 0 {
					return service.EncodeSnapshot(cmd.OutOrStdout(), snap, format)
				}
				if !cmd.Flags().Changed("format") {
					format = service.FormatFromPath(args[0])
				}
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				if err := service.EncodeSnapshot(f, snap, format); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "exported %d sessions to %s\n", len(snap.Sessions), args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", service.FormatYAML, "yaml|json")
	return cmd
}

func newImportCmd(configPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace every collection with a snapshot's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = service.FormatFromPath(args[0])
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			snap, err := service.DecodeSnapshot(f, format)
			if err != nil {
				return err
			}
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.Backup.Import(ctx, snap); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sessions, %d templates\n", len(snap.Sessions), len(snap.Templates))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "yaml|json (default from file extension)")
	return cmd
}
