package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	require.NoError(t, Initialize(path, "production"))
	t.Cleanup(func() {
		Close()
		DB = nil
	})

	assert.FileExists(t, path)

	type probeRow struct {
		ID   uint
		Name string
	}
	require.NoError(t, AutoMigrate(&probeRow{}))
	require.NoError(t, DB.Create(&probeRow{Name: "x"}).Error)
}

func TestAutoMigrateWithoutDatabase(t *testing.T) {
	saved := DB
	DB = nil
	defer func() { DB = saved }()

	assert.Error(t, AutoMigrate())
	assert.NoError(t, Close())
}
