package db

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/horserace/models"
)

// Archive stores finished games in PostgreSQL.
type Archive struct {
	db *bun.DB
}

// NewArchive wraps an open database.
func NewArchive(db *bun.DB) *Archive {
	return &Archive{db: db}
}

// ArchiveRows flattens the results of st into one row per placing.
// Distance is 0 for result entries whose race is no longer in st.
func ArchiveRows(sessionID string, st models.State, at time.Time) []models.ArchivedResult {
	distances := make(map[int]int, len(st.Races))
	for _, r := range st.Races {
		distances[r.ID] = r.Distance
	}

	var rows []models.ArchivedResult
	for _, res := range st.Results {
		for i, h := range res.Horses {
			rows = append(rows, models.ArchivedResult{
				SessionID:  sessionID,
				RaceID:     res.RaceID,
				Distance:   distances[res.RaceID],
				Placed:     i + 1,
				HorseID:    h.ID,
				HorseName:  h.Name,
				Color:      h.Color,
				Condition:  h.Condition,
				ArchivedAt: at,
			})
		}
	}
	return rows
}

// Save replaces the archived results of sessionID with those of st and
// returns the number of rows written.
func (a *Archive) Save(ctx context.Context, sessionID string, st models.State) (int, error) {
	rows := ArchiveRows(sessionID, st, time.Now().UTC())

	err := a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.ArchivedResult)(nil)).
			Where("session_id = ?", sessionID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete previous archive: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert archive rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// List returns archived rows, optionally for one session, ordered by
// session, race and placing.
func (a *Archive) List(ctx context.Context, sessionID string) ([]models.ArchivedResult, error) {
	var rows []models.ArchivedResult
	q := a.db.NewSelect().
		Model(&rows).
		OrderExpr("ar.archived_at DESC, ar.session_id, ar.race_id, ar.placed")
	if sessionID != "" {
		q = q.Where("ar.session_id = ?", sessionID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	return rows, nil
}

// Users reads admin accounts.
type Users struct {
	db *bun.DB
}

// NewUsers wraps an open database.
func NewUsers(db *bun.DB) *Users {
	return &Users{db: db}
}

// Find returns the user named username.
func (u *Users) Find(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := u.db.NewSelect().Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Upsert creates username or replaces its password hash.
func (u *Users) Upsert(ctx context.Context, username, passwordHash string) error {
	user := &models.User{Username: username, Password: passwordHash}
	_, err := u.db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
