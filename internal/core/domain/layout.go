package domain

import "path/filepath"

const (
	// MirrorDirName is the name of the local working directory.
	MirrorDirName = ".mirror"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "mirror.yaml"

	// StateFileName is the name of the state file.
	StateFileName = "state.json"

	// CacheFileName is the name of the expansion cache database.
	CacheFileName = "expansions.db"

	// MemoryPath selects an in-memory expansion cache.
	MemoryPath = ":memory:"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default path of the state file.
func DefaultStatePath() string {
	return filepath.Join(MirrorDirName, StateFileName)
}

// DefaultCachePath returns the default path of the expansion cache database.
func DefaultCachePath() string {
	return filepath.Join(MirrorDirName, CacheFileName)
}
