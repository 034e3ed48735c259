package models

// Horse is a generated runner. Horses are immutable once a roster is built.
type Horse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Condition int    `json:"condition"`
}
