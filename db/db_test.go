package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrplus/leavemgr/models"
)

func TestConnectMemory(t *testing.T) {
	database, err := Connect(":memory:", false)
	require.NoError(t, err)

	// Migrations ran
	for _, table := range []string{
		"employees", "users", "leave_requests", "work_reports",
		"projects", "clients", "payments", "holidays", "sessions",
	} {
		assert.True(t, database.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestConnectFileCreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "leavemgr.db")

	database, err := Connect(dsn, false)
	require.NoError(t, err)

	emp := models.Employee{Name: "Alice Johnson"}
	require.NoError(t, database.Create(&emp).Error)

	var count int64
	require.NoError(t, database.Model(&models.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("libsql://db.example.io"))
	assert.True(t, isURL("https://db.example.io"))
	assert.False(t, isURL(":memory:"))
	assert.False(t, isURL("/var/lib/leavemgr.db"))
}
