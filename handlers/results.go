package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/horserace/models"
)

type addResultRequest struct {
	RaceID int           `json:"raceId"`
	Horse  *models.Horse `json:"horse"`
}

type archivedRunner struct {
	Placed    int    `json:"placed"`
	HorseID   int    `json:"horseID"`
	HorseName string `json:"horse"`
	Color     string `json:"color"`
	Condition int    `json:"condition"`
}

type archivedRace struct {
	RaceID   int              `json:"raceID"`
	Distance int              `json:"distance"`
	Runners  []archivedRunner `json:"runners"`
}

type archivedGame struct {
	SessionID  string         `json:"sessionID"`
	ArchivedAt time.Time      `json:"archivedAt"`
	Races      []archivedRace `json:"races"`
}

// AddResult records the next finisher of a race.
func (h *Handler) AddResult(c echo.Context) error {
	var req addResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Horse == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing horse")
	}
	st, _ := h.sessionStore(c)
	st.AddResult(req.RaceID, *req.Horse)
	return snapshot(c, st)
}

func (h *Handler) ClearResults(c echo.Context) error {
	st, _ := h.sessionStore(c)
	st.ClearResults()
	return snapshot(c, st)
}

// SaveArchive writes the caller's results to the archive.
func (h *Handler) SaveArchive(c echo.Context) error {
	if h.archive == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "archive disabled")
	}
	st, sid := h.sessionStore(c)

	n, err := h.archive.Save(c.Request().Context(), sid, st.Snapshot())
	if err != nil {
		h.log.Error("archive save failed", zap.String("session", sid), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]int{"archived": n})
}

// ListArchive returns archived games, optionally filtered by session.
func (h *Handler) ListArchive(c echo.Context) error {
	if h.archive == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "archive disabled")
	}

	rows, err := h.archive.List(c.Request().Context(), c.QueryParam("session"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, groupArchive(rows))
}

// groupArchive converts flat rows into session and race grouped slices,
// keeping the row order.
func groupArchive(rows []models.ArchivedResult) []archivedGame {
	order := []string{}
	games := map[string]*archivedGame{}
	raceIdx := map[string]map[int]int{}

	for _, row := range rows {
		g, ok := games[row.SessionID]
		if !ok {
			order = append(order, row.SessionID)
			g = &archivedGame{
				SessionID:  row.SessionID,
				ArchivedAt: row.ArchivedAt,
				Races:      []archivedRace{},
			}
			games[row.SessionID] = g
			raceIdx[row.SessionID] = map[int]int{}
		}

		i, ok := raceIdx[row.SessionID][row.RaceID]
		if !ok {
			i = len(g.Races)
			raceIdx[row.SessionID][row.RaceID] = i
			g.Races = append(g.Races, archivedRace{
				RaceID:   row.RaceID,
				Distance: row.Distance,
				Runners:  []archivedRunner{},
			})
		}
		g.Races[i].Runners = append(g.Races[i].Runners, archivedRunner{
			Placed:    row.Placed,
			HorseID:   row.HorseID,
			HorseName: row.HorseName,
			Color:     row.Color,
			Condition: row.Condition,
		})
	}

	out := make([]archivedGame, 0, len(order))
	for _, k := range order {
		out = append(out, *games[k])
	}
	return out
}
