package store

import (
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/padraicbc/horserace/models"
)

const (
	// RosterSize is the number of horses in a generated roster.
	RosterSize = 20
	// FieldSize is the number of horses drawn for each race.
	FieldSize = 10
	// MaxCondition is the upper bound of a horse's condition.
	MaxCondition = 100
)

// Distances are the race lengths in meters, one race each, in running order.
var Distances = []int{1200, 1400, 1600, 1800, 2000, 2200}

var horseNames = []string{
	"Thunderbolt", "Midnight Sun", "Silver Arrow", "Crimson Comet", "Golden Mirage",
	"Whisperwind", "Ironstride", "Phantom Blaze", "Luna’s Shadow", "Wildfire",
	"Star Dancer", "Misty Valley", "Storm Runner", "Jetstream", "Aurora Flame",
	"Velvet Thunder", "Dust Devil", "Nightshade", "Echo Spirit", "Royal Tempest",
	"Shadowfax", "Morning Glory", "Cinderheart", "High Voltage", "Eclipse Dancer",
	"Frozen Fire", "Rapid River", "Diamond Soul", "Majestic Dream", "Solar Wind",
	"Moonfire", "Lightning Step", "Ocean Whisper", "Valiant Star", "Frostbite",
	"Noble Heart", "Wild Majesty", "Desert Flame", "Silver Storm", "Tempest Wind",
	"Black Gokhce",
}

var horseColors = []string{
	"reddish", "green", "blue", "yellow", "purple", "orange", "teal", "dark-orange",
	"emerald-green", "sky-blue", "red", "dark-purple", "deep-blue", "turquoise",
	"bright-orange", "crimson", "gray", "silver", "dark-navy", "pink",
}

// GenerateHorses replaces the roster with RosterSize fresh horses sorted by
// name. Names and colors are drawn without replacement.
func (s *Store) GenerateHorses() {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := shuffle(s.rng, horseNames)
	colors := shuffle(s.rng, horseColors)

	horses := make([]models.Horse, RosterSize)
	for i := range horses {
		horses[i] = models.Horse{
			ID:        i + 1,
			Name:      names[i],
			Color:     colors[i],
			Condition: s.rng.IntN(MaxCondition) + 1,
		}
	}
	slices.SortStableFunc(horses, func(a, b models.Horse) int {
		return s.collator.CompareString(a.Name, b.Name)
	})

	s.state.Horses = horses
	s.log.Debug("roster generated", zap.Int("horses", len(horses)))
}

// GenerateRaces draws a field for every distance from the current roster.
// A roster smaller than FieldSize yields shorter fields.
func (s *Store) GenerateRaces() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Horses) < FieldSize {
		s.log.Warn("roster smaller than a field",
			zap.Int("horses", len(s.state.Horses)),
			zap.Int("field_size", FieldSize))
	}

	races := make([]models.Race, len(Distances))
	for i, d := range Distances {
		field := shuffle(s.rng, s.state.Horses)
		races[i] = models.Race{
			ID:       i + 1,
			Distance: d,
			Horses:   field[:min(FieldSize, len(field))],
		}
	}

	s.state.Races = races
	s.log.Debug("races generated", zap.Int("races", len(races)))
}

// shuffle returns a uniformly shuffled copy of in.
func shuffle[T any](r *rand.Rand, in []T) []T {
	out := slices.Clone(in)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
