package main

import (
	"coachplus/coachlog/internal/bootstrap"
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/service"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// sessionFlags are the content flags shared by add and recur.
type sessionFlags struct {
	at          string
	kind        string
	sections    []string
	intensity   float64
	liveMinutes int
	resistance  bool
	competition string
	results     string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.at, "time", "", "time of day HH:MM (default from sessions.default_time)")
	cmd.Flags().StringVar(&f.kind, "kind", string(domain.KindSession), "session|competition|rest")
	cmd.Flags().StringArrayVar(&f.sections, "section", nil, "section text; repeat for more (the first is the summary)")
	cmd.Flags().Float64Var(&f.intensity, "intensity", 0, "intensity or performance rating 0..1")
	cmd.Flags().IntVar(&f.liveMinutes, "live-minutes", 0, "minutes of live play")
	cmd.Flags().BoolVar(&f.resistance, "resistance", false, "includes resistance work")
	cmd.Flags().StringVar(&f.competition, "competition", "", "competition name")
	cmd.Flags().StringVar(&f.results, "results", "", "competition results")
}

func (f *sessionFlags) input(app *bootstrap.App, day time.Time) (service.CreateSessionInput, error) {
	kind, err := domain.ParseKind(f.kind)
	if err != nil {
		return service.CreateSessionInput{}, err
	}
	in := service.CreateSessionInput{
		Day:                    day,
		Kind:                   kind,
		Sections:               f.sections,
		Intensity:              f.intensity,
		LiveMinutes:            f.liveMinutes,
		IncludesResistanceWork: f.resistance,
	}
	if f.at != "" {
		tod, err := domain.ParseTimeOfDay(f.at)
		if err != nil {
			return service.CreateSessionInput{}, err
		}
		in.Time = app.Calendar.MergeTimeOfDay(day, tod)
	}
	if f.competition != "" {
		in.Competition = &domain.CompetitionInfo{Name: f.competition, Results: f.results}
	}
	return in, nil
}

func printSession(w io.Writer, cal domain.Calendar, s domain.Session) {
	line := fmt.Sprintf("%s %s\t%s\t%s", cal.DayKey(s.Date), domain.TimeOfDayOf(cal.In(s.Date)), s.Kind, s.DisplayTitle())
	if in := s.DisplayIntensity(); in != "" {
		line += "\t" + in
	}
	if d := s.DisplayDetails(); d != "" {
		line += "\t" + d
	}
	_, _ = fmt.Fprintln(w, line)
}

func printSessionDetail(w io.Writer, cal domain.Calendar, s domain.Session) {
	printSession(w, cal, s)
	for _, section := range s.Sections[min(1, len(s.Sections)):] {
		_, _ = fmt.Fprintf(w, "  - %s\n", section)
	}
}

func newSessionCmd(configPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Log, inspect and remove sessions"}

	var addFlags sessionFlags
	var addDay string
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a session for one day, replacing any entry for that day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				day, err := parseDayOrToday(app, addDay)
				if err != nil {
					return err
				}
				in, err := addFlags.input(app, day)
				if err != nil {
					return err
				}
				s, err := app.Sessions.CreateSession(ctx, in)
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), app.Calendar, s)
				return nil
			})
		},
	}
	add.Flags().StringVar(&addDay, "day", "", "day YYYY-MM-DD (default today)")
	addFlags.register(add)

	var recurFlags sessionFlags
	var from, to, pattern string
	recur := &cobra.Command{
		Use:   "recur --from <day> --to <day> --pattern <pattern>",
		Short: "Log the same session on a series of days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
				return fmt.Errorf("--from and --to are required")
			}
			p, err := domain.ParseRecurrencePattern(pattern)
			if err != nil {
				return err
			}
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				start, err := app.Calendar.ParseDay(from)
				if err != nil {
					return err
				}
				end, err := app.Calendar.ParseDay(to)
				if err != nil {
					return err
				}
				in, err := recurFlags.input(app, start)
				if err != nil {
					return err
				}
				report, err := app.Sessions.CreateRecurringSessions(ctx, service.RecurringInput{
					Start:                  start,
					End:                    end,
					Pattern:                p,
					Time:                   in.Time,
					Kind:                   in.Kind,
					Sections:               in.Sections,
					Intensity:              in.Intensity,
					IncludesResistanceWork: in.IncludesResistanceWork,
					LiveMinutes:            in.LiveMinutes,
					Competition:            in.Competition,
				})
				for _, s := range report.Created {
					printSession(cmd.OutOrStdout(), app.Calendar, s)
				}
				if err != nil {
					for _, d := range report.NotAttempted {
						_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", app.Calendar.DayKey(d))
					}
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %d sessions\n", len(report.Created))
				return nil
			})
		},
	}
	recur.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD")
	recur.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD (inclusive)")
	recur.Flags().StringVar(&pattern, "pattern", string(domain.RecurrenceWeekly), "none|daily|weekly|biweekly|monthly")
	recurFlags.register(recur)

	get := &cobra.Command{
		Use:   "get <day>",
		Short: "Show the session for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				day, err := app.Calendar.ParseDay(args[0])
				if err != nil {
					return err
				}
				s, ok := app.Sessions.SessionForDay(ctx, day)
				if !ok {
					return fmt.Errorf("%w: %s", service.ErrSessionNotFound, args[0])
				}
				printSessionDetail(cmd.OutOrStdout(), app.Calendar, s)
				return nil
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <day>",
		Short: "Remove the session for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				day, err := app.Calendar.ParseDay(args[0])
				if err != nil {
					return err
				}
				if err := app.Sessions.DeleteSession(ctx, day); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List all sessions, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				sessions := app.Sessions.ListSessions(ctx)
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					printSession(cmd.OutOrStdout(), app.Calendar, s)
				}
				return app.Sessions.LastError()
			})
		},
	}

	var searchKind string
	var minPerformance float64
	search := &cobra.Command{
		Use:   "search [text]",
		Short: "Search sessions, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := service.SearchQuery{MinPerformance: minPerformance}
			if len(args) == 1 {
				q.Text = args[0]
			}
			if searchKind != "" {
				k, err := domain.ParseKind(searchKind)
				if err != nil {
					return err
				}
				q.Kind = k
			}
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				results := app.Search.Search(ctx, q)
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matches")
					return nil
				}
				for _, s := range results {
					printSession(cmd.OutOrStdout(), app.Calendar, s)
				}
				return nil
			})
		},
	}
	search.Flags().StringVar(&searchKind, "kind", "", "only this kind")
	search.Flags().Float64Var(&minPerformance, "min-performance", 0, "minimum competition rating 0..1")

	session.AddCommand(add, recur, get, rm, ls, search)
	return session
}
