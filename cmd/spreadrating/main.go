package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/goserg/spreadrating/internal/config"
	"github.com/goserg/spreadrating/internal/domain"
	"github.com/goserg/spreadrating/internal/logger"
	"github.com/goserg/spreadrating/internal/rating"
	"github.com/goserg/spreadrating/internal/registry"
	"github.com/goserg/spreadrating/internal/results"
	"github.com/goserg/spreadrating/internal/service"
	"github.com/goserg/spreadrating/internal/storage"
	"github.com/goserg/spreadrating/internal/storage/sqlite"
	"github.com/goserg/spreadrating/internal/web"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := &cli.App{
		Name:  "spreadrating",
		Usage: "rate tournaments by game spread",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: config.DefaultPath, Usage: "path to the config file"},
			&cli.StringFlag{Name: "db", Usage: "sqlite file, overrides the config"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Commands: []*cli.Command{
			rateCommand(),
			rerateCommand(),
			exportCommand(),
			serveCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type env struct {
	cfg   config.Config
	log   *logrus.Logger
	calc  *rating.Calculator
	store storage.Storage
}

func setup(c *cli.Context, withStore bool) (*env, error) {
	l := logger.New(c.String("log-level"))
	cfg, err := config.New(c.String("config"))
	if err != nil {
		return nil, err
	}
	if db := c.String("db"); db != "" {
		cfg.Storage.SqliteFile = db
	}
	calc, err := rating.New(l, cfg.Rating)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: l, calc: calc}
	if withStore {
		store, err := sqlite.New(l, cfg.Storage.SqliteFile)
		if err != nil {
			return nil, err
		}
		e.store = store
	}
	return e, nil
}

func (e *env) Close() {
	if e.store == nil {
		return
	}
	if err := e.store.Close(); err != nil {
		e.log.WithError(err).Error("close storage")
	}
}

// service builds a rating service. Stored ratings are loaded unless fresh is
// set; the snapshot file, if any, is loaded on top.
func (e *env) service(ctx context.Context, snapshot string, fresh bool) (*service.RatingService, error) {
	reg := registry.New(int(e.cfg.Rating.InitialRating), e.cfg.Rating.MaxDeviation)
	reg.Exclude(e.cfg.Registry.RemovedPlayers...)
	rs := service.New(e.log, reg, e.calc, results.NewBuilder(e.cfg.Registry.ByeNames), e.store)
	if !fresh {
		if err := rs.Load(ctx); err != nil {
			return nil, err
		}
	}
	if snapshot != "" {
		states, err := readSnapshot(snapshot)
		if err != nil {
			return nil, err
		}
		reg.Load(states)
	}
	return rs, nil
}

func readSnapshot(path string) ([]domain.RatingState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return registry.ReadCSV(f)
}

func writeSnapshot(path string, states []domain.RatingState) error {
	if path == "" || path == "-" {
		return registry.WriteCSV(os.Stdout, states)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := registry.WriteCSV(f, states); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var (
	ratingsFlag = &cli.StringFlag{Name: "ratings", Usage: "ratings CSV to start from"}
	outFlag     = &cli.StringFlag{Name: "out", Usage: "write the ratings snapshot to this CSV"}
)

func rateCommand() *cli.Command {
	return &cli.Command{
		Name:      "rate",
		Usage:     "rate one tournament and store the result",
		ArgsUsage: "RESULTS_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "tournament name, defaults to the file name"},
			&cli.StringFlag{Name: "date", Usage: "tournament date", Required: true},
			&cli.BoolFlag{Name: "dry-run", Usage: "do not touch the database"},
			ratingsFlag,
			outFlag,
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("results file is required", 2)
			}
			date, err := registry.ParseDate(c.String("date"))
			if err != nil {
				return err
			}
			name := c.String("name")
			if name == "" {
				name = filepath.Base(path)
			}

			e, err := setup(c, !c.Bool("dry-run"))
			if err != nil {
				return err
			}
			defer e.Close()
			rs, err := e.service(c.Context, c.String("ratings"), false)
			if err != nil {
				return err
			}

			t, err := results.LoadFile(name, date, path)
			if err != nil {
				return err
			}
			report, err := rs.ProcessOneTournament(c.Context, t)
			if err != nil {
				return err
			}
			if err := rs.Persist(c.Context); err != nil {
				return err
			}
			if err := printReport(os.Stdout, report); err != nil {
				return err
			}
			if c.IsSet("out") {
				return writeSnapshot(c.String("out"), rs.Registry().Ranked())
			}
			return nil
		},
	}
}

func rerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "rerate",
		Usage:     "rate a whole schedule of tournaments in date order",
		ArgsUsage: "SCHEDULE_FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "save", Usage: "store ratings and reports in the database"},
			&cli.BoolFlag{Name: "quiet", Usage: "do not print tournament reports"},
			ratingsFlag,
			outFlag,
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("schedule file is required", 2)
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			entries, err := results.ReadSchedule(f, filepath.Dir(path))
			f.Close()
			if err != nil {
				return err
			}
			tournaments, err := results.Load(entries)
			if err != nil {
				return err
			}

			e, err := setup(c, c.Bool("save"))
			if err != nil {
				return err
			}
			defer e.Close()
			rs, err := e.service(c.Context, c.String("ratings"), true)
			if err != nil {
				return err
			}

			if err := rs.ResetHistory(c.Context); err != nil {
				return err
			}
			reports, err := rs.ProcessAll(c.Context, tournaments)
			if !c.Bool("quiet") {
				for _, report := range reports {
					if err := printReport(os.Stdout, report); err != nil {
						return err
					}
				}
			}
			if err != nil {
				return err
			}
			e.log.WithFields(logrus.Fields{
				"tournaments": len(reports),
				"players":     rs.Registry().Len(),
			}).Info("rerating done")
			return writeSnapshot(c.String("out"), rs.Registry().Ranked())
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the stored ratings as CSV",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "active", Usage: "only players of the active list"},
			outFlag,
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, true)
			if err != nil {
				return err
			}
			defer e.Close()
			rs, err := e.service(c.Context, "", false)
			if err != nil {
				return err
			}
			states := rs.Registry().Ranked()
			if c.Bool("active") {
				window := time.Duration(e.cfg.Registry.ActiveDays) * 24 * time.Hour
				states = rs.Registry().Active(time.Now(), window)
			}
			return writeSnapshot(c.String("out"), states)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the ratings over http",
		Action: func(c *cli.Context) error {
			e, err := setup(c, true)
			if err != nil {
				return err
			}
			defer e.Close()
			rs, err := e.service(c.Context, "", false)
			if err != nil {
				return err
			}
			server, err := web.New(e.log, rs, e.cfg.Server, e.cfg.Registry.ActiveDays)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, ctx := errgroup.WithContext(ctx)
			g.Go(server.Serve)
			g.Go(func() error {
				<-ctx.Done()
				e.log.Info("shutting down")
				return server.Shutdown()
			})
			return g.Wait()
		},
	}
}

func printReport(w io.Writer, report domain.TournamentReport) error {
	fmt.Fprintf(w, "%s (%s)\n", report.Name, report.Date.Format(time.DateOnly))
	for _, section := range report.Sections {
		if section.Name != "" {
			fmt.Fprintf(w, "\nSection %s\n", section.Name)
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Player\tW\tL\tSpread\tOld\tNew\t+/-\tDev\tGames\t")
		for _, p := range section.Players {
			fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%+d\t%d\t%d\t%+d\t%.2f\t%d\t\n",
				p.Name, p.Wins, p.Losses, p.Spread, p.OldRating, p.NewRating, p.RatingChange(), p.NewDeviation, p.CareerGames)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	for _, problem := range report.Problems {
		fmt.Fprintf(w, "! %s\n", problem)
	}
	fmt.Fprintln(w)
	return nil
}
