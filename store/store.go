// Package store holds the state of one horse racing game: the roster, the
// races drawn from it, the runtime of the race on track and the results
// collected so far.
//
// A Store is created by its owner and passed to whoever needs it. Every
// method runs under the store mutex, so each call is atomic with respect to
// the others. No method returns an error: out of range values are clamped
// and calls that make no sense in the current state are ignored.
package store

import (
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/padraicbc/horserace/models"
)

// Store is the state container for a single game.
type Store struct {
	mu       sync.Mutex
	state    models.State
	rng      *rand.Rand
	collator *collate.Collator
	log      *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the random source used by the generators.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithSeed seeds the generators deterministically.
func WithSeed(seed uint64) Option {
	return func(s *Store) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a store in the initial state.
func New(opts ...Option) *Store {
	s := &Store{
		state:    models.NewState(),
		collator: collate.New(language.English),
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Horses = cloneHorses(s.state.Horses)
	st.Races = make([]models.Race, len(s.state.Races))
	for i, r := range s.state.Races {
		r.Horses = cloneHorses(r.Horses)
		st.Races[i] = r
	}
	st.Results = make([]models.ResultEntry, len(s.state.Results))
	for i, r := range s.state.Results {
		r.Horses = cloneHorses(r.Horses)
		st.Results[i] = r
	}
	st.RaceState = cloneRaceState(s.state.RaceState)
	return st
}

// CurrentRace returns the race at the runtime race index.
func (s *Store) CurrentRace() (models.Race, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.RaceState.RaceIndex
	if idx < 0 || idx >= len(s.state.Races) {
		return models.Race{}, false
	}
	r := s.state.Races[idx]
	r.Horses = cloneHorses(r.Horses)
	return r, true
}

func (s *Store) SetGameInProgress(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.GameInProgress = v
}

// SetHorses replaces the roster as given.
func (s *Store) SetHorses(horses []models.Horse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Horses = cloneHorses(horses)
}

// SetRaces replaces the race list as given. Races are not checked against
// the roster.
func (s *Store) SetRaces(races []models.Race) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setRaces(races)
}

func (s *Store) setRaces(races []models.Race) {
	out := make([]models.Race, len(races))
	for i, r := range races {
		r.Horses = cloneHorses(r.Horses)
		out[i] = r
	}
	s.state.Races = out
}

// AddResult appends horse to the finish order of raceID, creating the
// entry on the first finisher.
func (s *Store) AddResult(raceID int, horse models.Horse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Results {
		if s.state.Results[i].RaceID == raceID {
			s.state.Results[i].Horses = append(s.state.Results[i].Horses, horse)
			return
		}
	}
	s.state.Results = append(s.state.Results, models.ResultEntry{
		RaceID: raceID,
		Horses: []models.Horse{horse},
	})
	s.log.Debug("result opened", zap.Int("race_id", raceID), zap.String("first", horse.Name))
}

func (s *Store) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Results = []models.ResultEntry{}
}

// SetRaceState overwrites the runtime fields present in p. RaceIndex is
// clamped to the race list.
func (s *Store) SetRaceState(p models.RaceStatePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := &s.state.RaceState
	if p.Running != nil {
		rs.Running = *p.Running
	}
	if p.Paused != nil {
		rs.Paused = *p.Paused
	}
	if p.Horses != nil {
		rs.Horses = cloneHorses(*p.Horses)
	}
	if p.FinishedOrder != nil {
		rs.FinishedOrder = cloneHorses(*p.FinishedOrder)
	}
	if p.Winner.Set {
		rs.Winner = cloneHorse(p.Winner.Horse)
	}
	if p.RaceIndex != nil {
		rs.RaceIndex = s.clampRaceIndex(*p.RaceIndex)
	}
}

func (s *Store) AddFinishedHorse(horse models.Horse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.RaceState.FinishedOrder = append(s.state.RaceState.FinishedOrder, horse)
}

func (s *Store) SetWinner(horse models.Horse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.RaceState.Winner = &horse
}

// IncrementRaceIndex moves to the next race, stopping at the last one.
func (s *Store) IncrementRaceIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.RaceState.RaceIndex < len(s.state.Races)-1 {
		s.state.RaceState.RaceIndex++
	}
}

// TogglePause flips paused while a race is running.
func (s *Store) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.RaceState.Running {
		s.state.RaceState.Paused = !s.state.RaceState.Paused
	}
}

// ClearRuntime resets the race runtime only.
func (s *Store) ClearRuntime() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.RaceState = models.NewRaceState()
}

// ResetAll returns the store to its initial state.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.NewState()
	s.log.Debug("game reset")
}

func (s *Store) clampRaceIndex(i int) int {
	last := len(s.state.Races) - 1
	if i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	return i
}

func cloneHorses(in []models.Horse) []models.Horse {
	out := make([]models.Horse, len(in))
	copy(out, in)
	return out
}

func cloneHorse(h *models.Horse) *models.Horse {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

func cloneRaceState(rs models.RaceState) models.RaceState {
	rs.Horses = cloneHorses(rs.Horses)
	rs.FinishedOrder = cloneHorses(rs.FinishedOrder)
	rs.Winner = cloneHorse(rs.Winner)
	return rs
}
