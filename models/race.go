package models

// Race is one leg of a game: a distance and the field drawn for it.
type Race struct {
	ID       int     `json:"id"`
	Distance int     `json:"distance"`
	Horses   []Horse `json:"horses"`
}
