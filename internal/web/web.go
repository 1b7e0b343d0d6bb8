package web

import (
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	embedded "github.com/goserg/spreadrating"
	"github.com/goserg/spreadrating/internal/config"
	"github.com/goserg/spreadrating/internal/service"
	"github.com/goserg/spreadrating/internal/storage"
	"github.com/goserg/spreadrating/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultInterval = 100

type Server struct {
	ratingService *service.RatingService
	app           *fiber.App
	cfg           config.Server
	activeWindow  time.Duration
	log           *logrus.Entry
	now           func() time.Time
}

func New(l *logrus.Logger, rs *service.RatingService, cfg config.Server, activeDays int) (*Server, error) {
	server := Server{
		ratingService: rs,
		cfg:           cfg,
		activeWindow:  time.Duration(activeDays) * 24 * time.Hour,
		log: l.WithFields(map[string]interface{}{
			"from": "web",
		}),
		now: time.Now,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          server.handleError,
		DisableStartupMessage: true,
	})
	app.Get(webpath.Home, server.handleMain)
	app.Get(webpath.Tournament, server.handleTournamentPage)
	app.Get(webpath.Player, server.handlePlayerPage)

	app.Get(webpath.ApiRatings, server.handleRatings)
	app.Get(webpath.ApiRating, server.handleRating)
	app.Get(webpath.ApiTournaments, server.handleTournaments)
	app.Get(webpath.ApiTournament, server.handleTournament)
	app.Get(webpath.ApiHistogram, server.handleHistogram)
	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	s.log.WithField("addr", addr).Info("listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &ferr):
		code = ferr.Code
	case errors.Is(err, storage.ErrNotFound):
		code = fiber.StatusNotFound
	}
	if code == fiber.StatusInternalServerError {
		s.log.WithError(err).WithField("path", ctx.Path()).Error("request failed")
	}
	ctx.Status(code)
	if strings.HasPrefix(ctx.Path(), webpath.Api) {
		return ctx.JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Render("error", newData(strconv.Itoa(code)).WithErrors(err), "layouts/main")
}

func (s *Server) ratings(ctx *fiber.Ctx) []ratingDTO {
	reg := s.ratingService.Registry()
	if all, _ := strconv.ParseBool(ctx.Query("all")); all {
		return convertRatings(reg.Ranked())
	}
	return convertRatings(reg.Active(s.now(), s.activeWindow))
}

func (s *Server) handleMain(ctx *fiber.Ctx) error {
	tournaments, err := s.ratingService.Tournaments(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("index", newData("Ratings").
		With("Players", s.ratings(ctx)).
		With("Tournaments", tournaments), "layouts/main")
}

func (s *Server) handleTournamentPage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	report, err := s.ratingService.Tournament(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.Render("tournament", newData(report.Name).
		With("Tournament", convertTournament(report)), "layouts/main")
}

func (s *Server) player(ctx *fiber.Ctx) (playerDTO, error) {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return playerDTO{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	state, ok := s.ratingService.Registry().Get(name)
	if !ok {
		return playerDTO{}, storage.ErrNotFound
	}
	history, err := s.ratingService.History(ctx.Context(), name)
	if err != nil {
		return playerDTO{}, err
	}
	return playerDTO{
		ratingDTO:   convertRating(state),
		Tournaments: len(history),
		History:     convertHistory(history),
	}, nil
}

func (s *Server) handlePlayerPage(ctx *fiber.Ctx) error {
	player, err := s.player(ctx)
	if err != nil {
		return err
	}
	return ctx.Render("player", newData(player.Name).With("Player", player), "layouts/main")
}

func (s *Server) handleRatings(ctx *fiber.Ctx) error {
	return ctx.JSON(s.ratings(ctx))
}

func (s *Server) handleRating(ctx *fiber.Ctx) error {
	player, err := s.player(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(player)
}

func (s *Server) handleTournaments(ctx *fiber.Ctx) error {
	reports, err := s.ratingService.Tournaments(ctx.Context())
	if err != nil {
		return err
	}
	dtos := make([]tournamentDTO, 0, len(reports))
	for _, report := range reports {
		dtos = append(dtos, convertTournament(report))
	}
	return ctx.JSON(dtos)
}

func (s *Server) handleTournament(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	report, err := s.ratingService.Tournament(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(convertTournament(report))
}

func (s *Server) handleHistogram(ctx *fiber.Ctx) error {
	interval := defaultInterval
	if q := ctx.Query("interval"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "interval must be a positive number")
		}
		interval = n
	}
	bins := s.ratingService.Registry().Histogram(interval)
	dtos := make([]binDTO, 0, len(bins))
	for from, count := range bins {
		dtos = append(dtos, binDTO{From: from, To: from + interval - 1, Count: count})
	}
	sort.Slice(dtos, func(i, j int) bool {
		return dtos[i].From < dtos[j].From
	})
	return ctx.JSON(dtos)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
