package webpath

const (
	Home       = "/"
	Tournament = "/tournaments/:id"
	Player     = "/players/:name"

	Api            = "/api"
	ApiRatings     = Api + "/ratings"
	ApiRating      = ApiRatings + "/:name"
	ApiTournaments = Api + "/tournaments"
	ApiTournament  = ApiTournaments + "/:id"
	ApiHistogram   = Api + "/stats/histogram"
)

func Path() map[string]string {
	return map[string]string{
		"Home":           Home,
		"Tournaments":    "/tournaments",
		"Players":        "/players",
		"Api":            Api,
		"ApiRatings":     ApiRatings,
		"ApiTournaments": ApiTournaments,
		"ApiHistogram":   ApiHistogram,
	}
}
