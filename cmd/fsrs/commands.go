package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/sky-flux/fsrs"
	"github.com/sky-flux/fsrs/config"
)

// reviewRow is one line of simulate or preview output.
type reviewRow struct {
	Review  int           `json:"review"`
	Rating  fsrs.Rating   `json:"rating"`
	Elapsed time.Duration `json:"elapsed"`
	Card    fsrs.Card     `json:"card"`
}

// replay reviews a new card with the given ratings. A missing elapsed entry
// means the review happened exactly when the card fell due.
func replay(s *fsrs.Scheduler, ratings []fsrs.Rating, elapsed []time.Duration) (fsrs.Card, []reviewRow) {
	card := fsrs.NewCard(1)
	rows := make([]reviewRow, 0, len(ratings))
	for i, r := range ratings {
		e := card.Interval
		if i < len(elapsed) {
			e = elapsed[i]
		}
		card = s.ReviewCard(card, r, e)
		rows = append(rows, reviewRow{Review: i + 1, Rating: r, Elapsed: e, Card: card})
	}
	return card, rows
}

func writeRows(w io.Writer, rows []reviewRow, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, r := range rows {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tRATING\tELAPSED\tSTATE\tSTEP\tINTERVAL\tSTABILITY\tDIFFICULTY")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%.4f\t%.4f\n",
			r.Review, r.Rating, formatInterval(r.Elapsed), r.Card.State, r.Card.Step,
			formatInterval(r.Card.Interval), r.Card.Stability, r.Card.Difficulty)
	}
	return tw.Flush()
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("fsrs "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func runSimulate(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("simulate", stderr)
	cfgPath := fs.String("config", "", "scheduler file (.yaml, .yml or .json)")
	ratingsFlag := fs.String("ratings", "", "comma separated ratings (again,hard,good,easy or 1-4)")
	elapsedFlag := fs.String("elapsed", "", "comma separated elapsed times per review; default: the previous interval")
	asJSON := fs.Bool("json", false, "print JSON lines")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ratings, err := parseRatings(*ratingsFlag)
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		return fmt.Errorf("%w: simulate needs -ratings", errUsage)
	}
	elapsed, err := parseElapsed(*elapsedFlag)
	if err != nil {
		return err
	}
	if elapsed != nil && len(elapsed) != len(ratings) {
		return fmt.Errorf("%w: %d elapsed values for %d ratings", errUsage, len(elapsed), len(ratings))
	}

	s, err := loadScheduler(*cfgPath)
	if err != nil {
		return err
	}
	_, rows := replay(s, ratings, elapsed)
	return writeRows(stdout, rows, *asJSON)
}

func runInterval(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("interval", stderr)
	cfgPath := fs.String("config", "", "scheduler file (.yaml, .yml or .json)")
	stability := fs.Float64("stability", 0, "memory stability in days")
	retention := fs.Float64("retention", 0, "desired retention override in (0, 1]")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *stability <= 0 {
		return fmt.Errorf("%w: interval needs -stability > 0", errUsage)
	}

	f := &config.File{}
	if *cfgPath != "" {
		var err error
		if f, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	if *retention != 0 {
		f.DesiredRetention = retention
	}
	s, err := f.NewScheduler(log.Logger)
	if err != nil {
		return err
	}

	ivl := s.CalculateNextReviewInterval(*stability)
	_, err = fmt.Fprintf(stdout, "%s\n", formatInterval(ivl))
	return err
}

func runPreview(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("preview", stderr)
	cfgPath := fs.String("config", "", "scheduler file (.yaml, .yml or .json)")
	ratingsFlag := fs.String("ratings", "", "comma separated review history; empty previews a new card")
	elapsedFlag := fs.String("elapsed", "", "comma separated elapsed times of the history")
	next := fs.String("next", "", "time until the previewed review; default: the card's interval")
	asJSON := fs.Bool("json", false, "print JSON lines")
	watchCfg := fs.Bool("watch", false, "re-print whenever the config file changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ratings, err := parseRatings(*ratingsFlag)
	if err != nil {
		return err
	}
	elapsed, err := parseElapsed(*elapsedFlag)
	if err != nil {
		return err
	}
	if elapsed != nil && len(elapsed) != len(ratings) {
		return fmt.Errorf("%w: %d elapsed values for %d ratings", errUsage, len(elapsed), len(ratings))
	}
	var nextElapsed *time.Duration
	if *next != "" {
		d, err := parseElapsed(*next)
		if err != nil {
			return err
		}
		if len(d) != 1 {
			return fmt.Errorf("%w: -next takes one duration", errUsage)
		}
		nextElapsed = &d[0]
	}
	if *watchCfg && *cfgPath == "" {
		return fmt.Errorf("%w: -watch needs -config", errUsage)
	}

	render := func(s *fsrs.Scheduler) error {
		card, _ := replay(s, ratings, elapsed)
		e := card.Interval
		if nextElapsed != nil {
			e = *nextElapsed
		}
		outcomes := s.PreviewCard(card, e)
		rows := make([]reviewRow, 0, len(outcomes))
		for _, r := range fsrs.Ratings {
			rows = append(rows, reviewRow{Review: len(ratings) + 1, Rating: r, Elapsed: e, Card: outcomes[r]})
		}
		return writeRows(stdout, rows, *asJSON)
	}

	s, err := loadScheduler(*cfgPath)
	if err != nil {
		return err
	}
	if err := render(s); err != nil {
		return err
	}
	if !*watchCfg {
		return nil
	}

	log.Info().Str("path", *cfgPath).Msg("watching config; press Ctrl+C to stop")
	return config.Watch(ctx, *cfgPath, log.Logger, func(f *config.File) {
		s, err := f.NewScheduler(log.Logger)
		if err != nil {
			log.Warn().Err(err).Msg("config rejected")
			return
		}
		fmt.Fprintln(stdout)
		if err := render(s); err != nil {
			log.Error().Err(err).Msg("preview failed")
		}
	})
}
