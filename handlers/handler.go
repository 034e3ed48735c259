package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "github.com/padraicbc/horserace/middleware"
	"github.com/padraicbc/horserace/models"
	"github.com/padraicbc/horserace/store"
)

// Archiver persists finished games.
type Archiver interface {
	Save(ctx context.Context, sessionID string, st models.State) (int, error)
	List(ctx context.Context, sessionID string) ([]models.ArchivedResult, error)
}

// UserFinder looks up admin accounts.
type UserFinder interface {
	Find(ctx context.Context, username string) (*models.User, error)
}

// Options are the optional dependencies of a Handler. A nil Archive or
// Users disables the routes that need them.
type Options struct {
	Archive    Archiver
	Users      UserFinder
	SessionTTL time.Duration
	Logger     *zap.Logger
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	sessions   *store.Registry
	archive    Archiver
	users      UserFinder
	sessionTTL time.Duration
	log        *zap.Logger
	JWTKey     []byte
}

// New creates a Handler serving the stores held by sessions.
func New(sessions *store.Registry, jwtKey []byte, opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		sessions:   sessions,
		archive:    opts.Archive,
		users:      opts.Users,
		sessionTTL: opts.SessionTTL,
		log:        log,
		JWTKey:     jwtKey,
	}
}

// Register mounts every API route on e.
func (h *Handler) Register(e *echo.Echo, isAdmin func(string) bool) {
	api := e.Group("/api")

	// Public
	api.POST("/session", h.NewSession)
	api.POST("/signin", h.Signin)

	// Per-session game state
	g := api.Group("/game", mw.Session(h.JWTKey))
	g.GET("/state", h.State)
	g.GET("/race/current", h.CurrentRace)
	g.PUT("/game-in-progress", h.SetGameInProgress)
	g.POST("/horses/generate", h.GenerateHorses)
	g.PUT("/horses", h.SetHorses)
	g.POST("/races/generate", h.GenerateRaces)
	g.PUT("/races", h.SetRaces)
	g.POST("/results", h.AddResult)
	g.DELETE("/results", h.ClearResults)
	g.PATCH("/race-state", h.SetRaceState)
	g.POST("/race-state/finished", h.AddFinishedHorse)
	g.PUT("/race-state/winner", h.SetWinner)
	g.POST("/race-state/next", h.IncrementRaceIndex)
	g.POST("/race-state/pause", h.TogglePause)
	g.DELETE("/race-state", h.ClearRuntime)
	g.POST("/reset", h.ResetAll)
	g.POST("/archive", h.SaveArchive)

	// Admin
	api.GET("/archive", h.ListArchive, mw.Admin(h.JWTKey, isAdmin))
}

// sessionStore returns the store of the session in the request token.
func (h *Handler) sessionStore(c echo.Context) (*store.Store, string) {
	sid, _ := c.Get(mw.SessionKey).(string)
	return h.sessions.Get(sid), sid
}

// snapshot replies with the current state of st.
func snapshot(c echo.Context, st *store.Store) error {
	return c.JSON(http.StatusOK, st.Snapshot())
}
