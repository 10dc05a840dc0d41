// pkg/environment/settings_test.go

package environment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFakeTool(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755))
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("MONGODB_BIN_PATH", "/opt/mongodb/bin")
	t.Setenv("BACKUP_DIR", "/var/backups/mongo")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "/opt/mongodb/bin", s.BinPath)
	assert.Equal(t, "/var/backups/mongo", s.BackupDir)
}

func TestBackupRootDefault(t *testing.T) {
	s := Settings{}
	assert.Equal(t, filepath.Join(os.TempDir(), "mongoferry_backups"), s.BackupRoot())

	s.BackupDir = "/custom"
	assert.Equal(t, "/custom", s.BackupRoot())
}

func TestToolPathExplicitDir(t *testing.T) {
	dir := t.TempDir()
	writeFakeTool(t, dir, "mongodump")
	writeFakeTool(t, dir, "mongorestore")

	s := Settings{BinPath: dir}
	got, err := s.ToolPath()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestToolPathExplicitDirMissingBinary(t *testing.T) {
	dir := t.TempDir()
	writeFakeTool(t, dir, "mongodump")

	s := Settings{BinPath: dir}
	_, err := s.ToolPath()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongorestore")
}

func TestToolPathFallsBackToPATH(t *testing.T) {
	dir := t.TempDir()
	writeFakeTool(t, dir, "mongodump")
	writeFakeTool(t, dir, "mongorestore")
	t.Setenv("PATH", dir)

	s := Settings{}
	got, err := s.ToolPath()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestToolPathNotFoundAnywhere(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	s := Settings{}
	_, err := s.ToolPath()
	require.Error(t, err)
	require.Error(t, s.CheckTools())
}
