package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Mwangaza Primary School")
	cfg.Reminders.LeadDays = 7

	path := filepath.Join(t.TempDir(), "shulebooks.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.School.Name, got.School.Name)
	assert.Equal(t, cfg.School.Currency, got.School.Currency)
	assert.Equal(t, cfg.Fiscal.YearStart, got.Fiscal.YearStart)
	assert.Equal(t, cfg.Database.Path, got.Database.Path)
	assert.Equal(t, 7, got.Reminders.LeadDays)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Mwangaza Primary School")

	assert.Equal(t, "Mwangaza Primary School", cfg.School.Name)
	assert.Equal(t, "KES", cfg.School.Currency)
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.Equal(t, "books.db", cfg.Database.Path)
	assert.Equal(t, 3, cfg.Reminders.LeadDays)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Mwangaza Primary School")
	path := filepath.Join(t.TempDir(), "shulebooks.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Mwangaza Primary School")
	assert.Contains(t, contents, "currency: KES")
	assert.Contains(t, contents, "year_start: 01-01")
	assert.Contains(t, contents, "lead_days: 3")
}
