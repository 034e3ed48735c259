package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ResultEntry is the finish order recorded for one race.
type ResultEntry struct {
	RaceID int     `json:"id"`
	Horses []Horse `json:"horses"`
}

// ArchivedResult is one placing of an archived game.
type ArchivedResult struct {
	bun.BaseModel `bun:"table:archived_results,alias:ar"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	SessionID  string    `bun:"session_id,notnull" json:"sessionID"`
	RaceID     int       `bun:"race_id,notnull" json:"raceID"`
	Distance   int       `bun:"distance,notnull,default:0" json:"distance"`
	Placed     int       `bun:"placed,notnull" json:"placed"`
	HorseID    int       `bun:"horse_id,notnull" json:"horseID"`
	HorseName  string    `bun:"horse_name,notnull" json:"horseName"`
	Color      string    `bun:"color,notnull" json:"color"`
	Condition  int       `bun:"condition,notnull" json:"condition"`
	ArchivedAt time.Time `bun:"archived_at,nullzero,notnull,default:current_timestamp" json:"archivedAt"`
}
