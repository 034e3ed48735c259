package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padraicbc/horserace/models"
)

func horse(id int, name string) models.Horse {
	return models.Horse{ID: id, Name: name, Color: "gray", Condition: 50}
}

func racesOf(n int) []models.Race {
	races := make([]models.Race, n)
	for i := range races {
		races[i] = models.Race{ID: i + 1, Distance: Distances[i%len(Distances)]}
	}
	return races
}

func TestNewStoreInitialState(t *testing.T) {
	s := New(WithSeed(1))
	require.Equal(t, models.NewState(), s.Snapshot())
}

func TestIncrementRaceIndexClamps(t *testing.T) {
	s := New(WithSeed(1))
	s.SetRaces(racesOf(6))

	for range 10 {
		s.IncrementRaceIndex()
	}
	require.Equal(t, 5, s.Snapshot().RaceState.RaceIndex)
}

func TestIncrementRaceIndexWithoutRaces(t *testing.T) {
	s := New(WithSeed(1))
	s.IncrementRaceIndex()
	require.Equal(t, 0, s.Snapshot().RaceState.RaceIndex)
}

func TestTogglePause(t *testing.T) {
	s := New(WithSeed(1))

	s.TogglePause()
	require.False(t, s.Snapshot().RaceState.Paused, "toggle while stopped")

	running := true
	s.SetRaceState(models.RaceStatePatch{Running: &running})
	s.TogglePause()
	require.True(t, s.Snapshot().RaceState.Paused)
	s.TogglePause()
	require.False(t, s.Snapshot().RaceState.Paused)

	paused := true
	stopped := false
	s.SetRaceState(models.RaceStatePatch{Running: &stopped, Paused: &paused})
	s.TogglePause()
	require.True(t, s.Snapshot().RaceState.Paused, "paused flag kept once stopped")
}

func TestAddResult(t *testing.T) {
	a, b := horse(1, "A"), horse(2, "B")

	s := New(WithSeed(1))
	s.AddResult(1, a)
	s.AddResult(1, b)
	require.Equal(t, []models.ResultEntry{{RaceID: 1, Horses: []models.Horse{a, b}}}, s.Snapshot().Results)

	s = New(WithSeed(1))
	s.AddResult(1, a)
	s.AddResult(2, b)
	require.Equal(t, []models.ResultEntry{
		{RaceID: 1, Horses: []models.Horse{a}},
		{RaceID: 2, Horses: []models.Horse{b}},
	}, s.Snapshot().Results)

	s.ClearResults()
	require.Empty(t, s.Snapshot().Results)
	require.NotNil(t, s.Snapshot().Results)
}

func TestSetRaceStateMergesPresentFields(t *testing.T) {
	s := New(WithSeed(1))
	s.SetRaces(racesOf(6))
	field := []models.Horse{horse(1, "A"), horse(2, "B")}

	running := true
	idx := 3
	s.SetRaceState(models.RaceStatePatch{Running: &running, Horses: &field, RaceIndex: &idx})
	s.AddFinishedHorse(field[1])

	rs := s.Snapshot().RaceState
	require.True(t, rs.Running)
	require.False(t, rs.Paused)
	require.Equal(t, field, rs.Horses)
	require.Equal(t, []models.Horse{field[1]}, rs.FinishedOrder)
	require.Nil(t, rs.Winner)
	require.Equal(t, 3, rs.RaceIndex)

	w := field[0]
	s.SetRaceState(models.RaceStatePatch{Winner: models.SetWinner(&w)})
	require.Equal(t, &w, s.Snapshot().RaceState.Winner)
	require.True(t, s.Snapshot().RaceState.Running, "untouched by winner patch")

	s.SetRaceState(models.RaceStatePatch{Winner: models.SetWinner(nil)})
	require.Nil(t, s.Snapshot().RaceState.Winner)

	s.SetRaceState(models.RaceStatePatch{})
	require.Equal(t, 3, s.Snapshot().RaceState.RaceIndex)
}

func TestSetRaceStateClampsRaceIndex(t *testing.T) {
	s := New(WithSeed(1))
	s.SetRaces(racesOf(6))

	idx := 42
	s.SetRaceState(models.RaceStatePatch{RaceIndex: &idx})
	require.Equal(t, 5, s.Snapshot().RaceState.RaceIndex)

	idx = -3
	s.SetRaceState(models.RaceStatePatch{RaceIndex: &idx})
	require.Equal(t, 0, s.Snapshot().RaceState.RaceIndex)
}

func TestSetWinner(t *testing.T) {
	s := New(WithSeed(1))
	s.SetWinner(horse(7, "G"))
	require.Equal(t, 7, s.Snapshot().RaceState.Winner.ID)
}

func TestClearRuntimeKeepsGame(t *testing.T) {
	s := New(WithSeed(1))
	s.GenerateHorses()
	s.GenerateRaces()
	s.AddResult(1, horse(1, "A"))
	running := true
	s.SetRaceState(models.RaceStatePatch{Running: &running})
	s.IncrementRaceIndex()
	s.SetWinner(horse(1, "A"))

	before := s.Snapshot()
	s.ClearRuntime()
	after := s.Snapshot()

	require.Equal(t, models.NewRaceState(), after.RaceState)
	require.Equal(t, before.Horses, after.Horses)
	require.Equal(t, before.Races, after.Races)
	require.Equal(t, before.Results, after.Results)
}

func TestResetAll(t *testing.T) {
	s := New(WithSeed(1))
	s.SetGameInProgress(true)
	s.GenerateHorses()
	s.GenerateRaces()
	s.AddResult(1, horse(1, "A"))
	s.IncrementRaceIndex()

	s.ResetAll()
	require.Equal(t, models.NewState(), s.Snapshot())
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New(WithSeed(1))
	s.GenerateHorses()
	s.GenerateRaces()
	s.SetWinner(horse(1, "A"))

	snap := s.Snapshot()
	snap.Horses[0].Name = "changed"
	snap.Races[0].Horses[0].Name = "changed"
	snap.RaceState.Winner.Name = "changed"

	again := s.Snapshot()
	require.NotEqual(t, "changed", again.Horses[0].Name)
	require.NotEqual(t, "changed", again.Races[0].Horses[0].Name)
	require.Equal(t, "A", again.RaceState.Winner.Name)
}

func TestCurrentRace(t *testing.T) {
	s := New(WithSeed(1))
	_, ok := s.CurrentRace()
	require.False(t, ok)

	s.SetRaces(racesOf(6))
	s.IncrementRaceIndex()
	r, ok := s.CurrentRace()
	require.True(t, ok)
	require.Equal(t, 2, r.ID)
}
