package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Port)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10*time.Minute, cfg.SweepInterval)
	require.Zero(t, cfg.RaceSeed)
	require.Empty(t, cfg.TLSDomains)
	require.False(t, cfg.ArchiveEnabled())
	require.True(t, cfg.IsAdmin(" Admin "))
	require.False(t, cfg.IsAdmin("guest"))
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")
	v.Set("DB_PASS", "pw")
	v.Set("TLS_DOMAINS", "a.example, b.example,")
	v.Set("RACE_SEED", "42")
	v.Set("SESSION_TTL", "90m")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.True(t, cfg.ArchiveEnabled())
	require.Equal(t, "postgres://horserace:pw@localhost:5432/horserace?sslmode=disable", cfg.PostgresDSN())
	require.Equal(t, []string{"a.example", "b.example"}, cfg.TLSDomains)
	require.Equal(t, uint64(42), cfg.RaceSeed)
	require.Equal(t, 90*time.Minute, cfg.SessionTTL)
}

func TestDatabaseURLWins(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")
	v.Set("DB_PASS", "pw")
	v.Set("DATABASE_URL", "postgres://u:p@db/x")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@db/x", cfg.PostgresDSN())
}

func TestFromViperRequiresSecret(t *testing.T) {
	_, err := FromViper(viper.New())
	require.ErrorContains(t, err, "JWT_SECRET")
}
