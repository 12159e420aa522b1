package tui

import "github.com/Veraticus/museum-pulse/internal/dataset"

// snapshotMsg delivers a (possibly unchanged) snapshot after a reload.
type snapshotMsg struct {
	err      error
	snapshot *dataset.Snapshot
	changed  bool
}

// statusMsg replaces the status line.
type statusMsg string
