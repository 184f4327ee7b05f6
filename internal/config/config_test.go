package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// run from a temp dir so a developer's config.yaml is not picked up
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Cache.TTLMinutes)

	assert.Equal(t, 30, cfg.Scoring.ForumHighPoints)
	assert.Equal(t, 25, cfg.Scoring.FundingPoints)
	assert.Equal(t, 20, cfg.Scoring.NewsFundingPoints)
	assert.Equal(t, 15, cfg.Scoring.OptimalSizePoints)
	assert.Equal(t, 10, cfg.Scoring.MinEmployees)
	assert.Equal(t, 500, cfg.Scoring.MaxEmployees)
	assert.Equal(t, 90, cfg.Scoring.ContactConfidenceThreshold)
	assert.Contains(t, cfg.Scoring.PrimaryMarkets, "toronto")

	assert.Equal(t, 6, cfg.Gate.ForumIntentMin)
	assert.Equal(t, 2, cfg.Gate.NewsMentionsMin)
	assert.Equal(t, 3, cfg.Gate.BackfillCount)

	assert.Equal(t, 15, cfg.Pipeline.MaxResults)
	assert.Equal(t, 60, cfg.Pipeline.HighIntentThreshold)
}

func TestLoadEnvOverride(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("LEADGEN_SERVER_PORT", "9090")
	t.Setenv("LEADGEN_HUNTER_KEY", "hk_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "hk_test", cfg.Hunter.Key)
}

func TestApplyWeightsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	data := []byte(`scoring:
  forum_high_points: 40
  min_employees: 5
  primary_markets:
    - halifax
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg := ScoringConfig{
		ForumHighPoints: 30,
		FundingPoints:   25,
		MinEmployees:    10,
		MaxEmployees:    500,
		PrimaryMarkets:  []string{"toronto"},
	}
	require.NoError(t, ApplyWeightsFile(&cfg, path))

	assert.Equal(t, 40, cfg.ForumHighPoints)
	assert.Equal(t, 25, cfg.FundingPoints, "absent key keeps configured value")
	assert.Equal(t, 5, cfg.MinEmployees)
	assert.Equal(t, 500, cfg.MaxEmployees)
	assert.Equal(t, []string{"halifax"}, cfg.PrimaryMarkets)
}

func TestApplyWeightsFileMissing(t *testing.T) {
	cfg := ScoringConfig{ForumHighPoints: 30}
	err := ApplyWeightsFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Equal(t, 30, cfg.ForumHighPoints)
}
