package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/padraicbc/horserace/models"
)

func TestGenerateHorses(t *testing.T) {
	cl := collate.New(language.English)

	for seed := range uint64(50) {
		s := New(WithSeed(seed))
		s.GenerateHorses()
		horses := s.Snapshot().Horses

		require.Len(t, horses, RosterSize)
		ids := map[int]bool{}
		names := map[string]bool{}
		colors := map[string]bool{}
		for i, h := range horses {
			require.GreaterOrEqual(t, h.ID, 1)
			require.LessOrEqual(t, h.ID, RosterSize)
			require.GreaterOrEqual(t, h.Condition, 1)
			require.LessOrEqual(t, h.Condition, MaxCondition)
			require.Contains(t, horseNames, h.Name)
			require.Contains(t, horseColors, h.Color)
			ids[h.ID] = true
			names[h.Name] = true
			colors[h.Color] = true
			if i > 0 {
				require.LessOrEqual(t, cl.CompareString(horses[i-1].Name, h.Name), 0, "sorted by name")
			}
		}
		require.Len(t, ids, RosterSize)
		require.Len(t, names, RosterSize)
		require.Len(t, colors, RosterSize)
	}
}

func TestGenerateHorsesOverwrites(t *testing.T) {
	s := New(WithSeed(3))
	s.SetHorses([]models.Horse{horse(99, "Old")})
	s.GenerateHorses()
	require.Len(t, s.Snapshot().Horses, RosterSize)
}

func TestGenerateHorsesSeeded(t *testing.T) {
	a, b := New(WithSeed(9)), New(WithSeed(9))
	a.GenerateHorses()
	b.GenerateHorses()
	require.Equal(t, a.Snapshot().Horses, b.Snapshot().Horses)
}

func TestGenerateRaces(t *testing.T) {
	for seed := range uint64(50) {
		s := New(WithSeed(seed))
		s.GenerateHorses()
		s.GenerateRaces()
		st := s.Snapshot()

		inRoster := map[int]models.Horse{}
		for _, h := range st.Horses {
			inRoster[h.ID] = h
		}

		require.Len(t, st.Races, len(Distances))
		for i, r := range st.Races {
			require.Equal(t, i+1, r.ID)
			require.Equal(t, Distances[i], r.Distance)
			require.Len(t, r.Horses, FieldSize)
			seen := map[int]bool{}
			for _, h := range r.Horses {
				require.Equal(t, inRoster[h.ID], h, "drawn from roster")
				require.False(t, seen[h.ID], "duplicate horse in field")
				seen[h.ID] = true
			}
		}
	}
}

func TestGenerateRacesShortRoster(t *testing.T) {
	s := New(WithSeed(1))
	s.SetHorses([]models.Horse{horse(1, "A"), horse(2, "B"), horse(3, "C")})
	s.GenerateRaces()

	races := s.Snapshot().Races
	require.Len(t, races, len(Distances))
	for _, r := range races {
		require.Len(t, r.Horses, 3)
	}
}

func TestGenerateRacesEmptyRoster(t *testing.T) {
	s := New(WithSeed(1))
	s.GenerateRaces()
	for _, r := range s.Snapshot().Races {
		require.Empty(t, r.Horses)
	}
}
