package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/horserace/models"
)

type gameInProgressRequest struct {
	Value bool `json:"value"`
}

// State returns the full state of the caller's game.
func (h *Handler) State(c echo.Context) error {
	st, _ := h.sessionStore(c)
	return snapshot(c, st)
}

// CurrentRace returns the race at the runtime race index.
func (h *Handler) CurrentRace(c echo.Context) error {
	st, _ := h.sessionStore(c)
	race, ok := st.CurrentRace()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no races generated")
	}
	return c.JSON(http.StatusOK, race)
}

func (h *Handler) SetGameInProgress(c echo.Context) error {
	var req gameInProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, _ := h.sessionStore(c)
	st.SetGameInProgress(req.Value)
	return snapshot(c, st)
}

// GenerateHorses builds a new roster.
func (h *Handler) GenerateHorses(c echo.Context) error {
	st, _ := h.sessionStore(c)
	st.GenerateHorses()
	return snapshot(c, st)
}

// SetHorses replaces the roster with the request body.
func (h *Handler) SetHorses(c echo.Context) error {
	var horses []models.Horse
	if err := c.Bind(&horses); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, _ := h.sessionStore(c)
	st.SetHorses(horses)
	return snapshot(c, st)
}

// GenerateRaces draws the race fields from the current roster.
func (h *Handler) GenerateRaces(c echo.Context) error {
	st, _ := h.sessionStore(c)
	st.GenerateRaces()
	return snapshot(c, st)
}

// SetRaces replaces the race list with the request body.
func (h *Handler) SetRaces(c echo.Context) error {
	var races []models.Race
	if err := c.Bind(&races); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, _ := h.sessionStore(c)
	st.SetRaces(races)
	return snapshot(c, st)
}

// SetRaceState applies a partial runtime update. Keys outside
// models.RaceStatePatch are rejected.
func (h *Handler) SetRaceState(c echo.Context) error {
	var patch models.RaceStatePatch
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, _ := h.sessionStore(c)
	st.SetRaceState(patch)
	return snapshot(c, st)
}

// AddFinishedHorse appends the body horse to the finish order.
func (h *Handler) AddFinishedHorse(c echo.Context) error {
	var horse models.Horse
	if err := c.Bind(&horse); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, _ := h.sessionStore(c)
	st.AddFinishedHorse(horse)
	return snapshot(c, st)
}

func (h *Handler) SetWinner(c echo.Context) error {
	var horse models.Horse
	if err := c.Bind(&horse); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, _ := h.sessionStore(c)
	st.SetWinner(horse)
	return snapshot(c, st)
}

// IncrementRaceIndex moves to the next race, stopping at the last.
func (h *Handler) IncrementRaceIndex(c echo.Context) error {
	st, _ := h.sessionStore(c)
	st.IncrementRaceIndex()
	return snapshot(c, st)
}

func (h *Handler) TogglePause(c echo.Context) error {
	st, _ := h.sessionStore(c)
	st.TogglePause()
	return snapshot(c, st)
}

// ClearRuntime resets the race runtime and keeps roster, races and results.
func (h *Handler) ClearRuntime(c echo.Context) error {
	st, _ := h.sessionStore(c)
	st.ClearRuntime()
	return snapshot(c, st)
}

// ResetAll tears the whole game down.
func (h *Handler) ResetAll(c echo.Context) error {
	st, _ := h.sessionStore(c)
	st.ResetAll()
	return snapshot(c, st)
}
