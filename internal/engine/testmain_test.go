package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	// Defaults for all limits; snapshot DB goes to a throwaway dir.
	dir, err := os.MkdirTemp("", "go_candidate_test")
	if err != nil {
		panic(err)
	}
	Init(Config{SnapshotDBPath: filepath.Join(dir, "snapshots.db")})
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
