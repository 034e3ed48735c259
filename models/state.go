package models

import "encoding/json"

// RaceState is the runtime of the race currently on track.
type RaceState struct {
	Running       bool    `json:"running"`
	Paused        bool    `json:"paused"`
	Horses        []Horse `json:"horses"`
	FinishedOrder []Horse `json:"finishedOrder"`
	Winner        *Horse  `json:"winner"`
	RaceIndex     int     `json:"raceIndex"`
}

// NewRaceState returns the zero runtime with non-nil sequences so it
// serializes as empty arrays.
func NewRaceState() RaceState {
	return RaceState{
		Horses:        []Horse{},
		FinishedOrder: []Horse{},
	}
}

// State is the readable snapshot of a game.
type State struct {
	GameInProgress bool          `json:"gameInProgress"`
	Horses         []Horse       `json:"horses"`
	Races          []Race        `json:"races"`
	Results        []ResultEntry `json:"results"`
	RaceState      RaceState     `json:"raceState"`
}

// NewState returns the initial game state.
func NewState() State {
	return State{
		Horses:    []Horse{},
		Races:     []Race{},
		Results:   []ResultEntry{},
		RaceState: NewRaceState(),
	}
}

// RaceStatePatch lists the runtime fields a caller may overwrite in one
// call. A nil field is left untouched.
type RaceStatePatch struct {
	Running       *bool       `json:"running,omitempty"`
	Paused        *bool       `json:"paused,omitempty"`
	Horses        *[]Horse    `json:"horses,omitempty"`
	FinishedOrder *[]Horse    `json:"finishedOrder,omitempty"`
	Winner        WinnerPatch `json:"winner"`
	RaceIndex     *int        `json:"raceIndex,omitempty"`
}

// WinnerPatch tells "winner not sent" apart from "winner: null".
type WinnerPatch struct {
	Set   bool
	Horse *Horse
}

// SetWinner returns a patch value that assigns h (nil clears the winner).
func SetWinner(h *Horse) WinnerPatch {
	return WinnerPatch{Set: true, Horse: h}
}

// UnmarshalJSON is only called when the key is present.
func (w *WinnerPatch) UnmarshalJSON(b []byte) error {
	w.Set = true
	if string(b) == "null" {
		w.Horse = nil
		return nil
	}
	var h Horse
	if err := json.Unmarshal(b, &h); err != nil {
		return err
	}
	w.Horse = &h
	return nil
}

// MarshalJSON writes null when not set.
func (w WinnerPatch) MarshalJSON() ([]byte, error) {
	if !w.Set || w.Horse == nil {
		return []byte("null"), nil
	}
	return json.Marshal(w.Horse)
}
