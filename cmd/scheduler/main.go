package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	scheduler "github.com/yj0602/mechanics-scheduler-plus"
	"github.com/yj0602/mechanics-scheduler-plus/config"
)

type options struct {
	fixturePath string
	configPath  string
	week        string
	start       string
}

func main() {
	var opts options

	flag.StringVar(&opts.fixturePath, "fixture", "", "YAML file with bookings and an availability room")
	flag.StringVar(&opts.configPath, "config", "", "directory holding scheduler.yaml")
	flag.StringVar(&opts.week, "week", "", "any date of the week to lay out, YYYY-MM-DD")
	flag.StringVar(&opts.start, "start", "", "start time to offer end times for, HH:mm, on -week date")
	flag.Parse()

	if errRun := run(context.Background(), &opts, os.Stdout); errRun != nil {
		fmt.Fprintln(os.Stderr, errRun)

		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	if opts.fixturePath == "" {
		return errors.New("missing -fixture")
	}

	cfg, errCfg := config.Load(configPaths(opts.configPath)...)
	if errCfg != nil {
		return errCfg
	}

	logger, errLogger := config.NewLogger(cfg)
	if errLogger != nil {
		return errLogger
	}
	defer logger.Sync() //nolint:errcheck

	file, errOpen := os.Open(opts.fixturePath)
	if errOpen != nil {
		return errOpen
	}
	defer file.Close()

	data, errDecode := decodeFixture(file)
	if errDecode != nil {
		return errDecode
	}

	ledger, errLedger := scheduler.NewLedger(
		&scheduler.ParamsNewLedger{
			Logger:   logger,
			Settings: cfg.Settings(),
		},
	)
	if errLedger != nil {
		return errLedger
	}

	return report(ctx, ledger, data, opts, out, logger)
}

func configPaths(path string) []string {
	if path == "" {
		return nil
	}

	return []string{path}
}

func report(ctx context.Context, ledger *scheduler.Ledger, data *fixture, opts *options, out io.Writer, logger *zap.Logger) error {
	for _, booking := range data.Bookings {
		var errBook error

		if booking.Kind == scheduler.KindConcert {
			_, errBook = ledger.BookConcert(
				ctx,
				&scheduler.ParamsBookConcert{
					ParamsBook:     *booking.params(),
					RehearsalStart: booking.RehearsalStart,
					RehearsalEnd:   booking.RehearsalEnd,
				},
			)
		} else {
			_, errBook = ledger.Book(ctx, booking.params())
		}

		if errBook != nil {
			// a refused booking is reported, the rest of the fixture still loads
			logger.Warn("fixture booking skipped", zap.Error(errBook))
		}
	}

	if opts.week != "" {
		week, errWeek := scheduler.ParseDate(opts.week)
		if errWeek != nil {
			return errWeek
		}

		if errLayout := writeWeek(ledger, week, out); errLayout != nil {
			return errLayout
		}

		if opts.start != "" {
			if errEnds := writeEndTimes(ledger, week, opts.start, out); errEnds != nil {
				return errEnds
			}
		}
	}

	if data.Room != nil {
		return writeRoom(data.Room, ledger.Settings().Granularity, out)
	}

	return nil
}

func writeWeek(ledger *scheduler.Ledger, week scheduler.Date, out io.Writer) error {
	days, errLayout := ledger.LayoutWeek(week)
	if errLayout != nil {
		return errLayout
	}

	for _, day := range days {
		fmt.Fprintf(out, "%s %s\n", day.Date, day.Date.Weekday())

		for _, cluster := range day.Clusters {
			fmt.Fprint(out, indent(cluster.String()))
		}
	}

	return nil
}

func writeEndTimes(ledger *scheduler.Ledger, date scheduler.Date, start string, out io.Writer) error {
	timeStart, errParse := scheduler.ParseTimeOfDay(start)
	if errParse != nil {
		return errParse
	}

	ends, errEnds := ledger.EndTimes(date, timeStart)
	if errEnds != nil {
		return errEnds
	}

	if len(ends) == 0 {
		fmt.Fprintf(out, "no valid booking possible starting %s %s\n", date, timeStart)

		return nil
	}

	rendered := make([]string, len(ends))

	for ix, end := range ends {
		rendered[ix] = end.String()
	}

	fmt.Fprintf(out, "end times from %s %s: %s\n", date, timeStart, strings.Join(rendered, ", "))

	return nil
}

func writeRoom(room *fixtureRoom, fallback scheduler.Granularity, out io.Writer) error {
	participants, errParticipants := room.participants()
	if errParticipants != nil {
		return errParticipants
	}

	ranges, errRanges := scheduler.CommonAvailability(
		&scheduler.ParamsCommonAvailability{
			Participants: participants,
			Window:       room.window(fallback),
		},
	)
	if errRanges != nil {
		return errRanges
	}

	fmt.Fprintf(out, "room %q, %d response(s)\n", room.Title, len(participants))

	if len(ranges) == 0 {
		fmt.Fprintln(out, "  no common time yet")

		return nil
	}

	for _, commonRange := range ranges {
		fmt.Fprintf(out, "  %s\n", commonRange)
	}

	return nil
}

func indent(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	return "  " + strings.Join(lines, "\n  ") + "\n"
}
