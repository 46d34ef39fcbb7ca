package cache

import "log/slog"

// MakeCache picks a backend from the configured directory. An empty or
// "memory" dir means batches only live for the process lifetime.
func MakeCache(dir string) Cache {
	if dir == "" || dir == "memory" {
		slog.Info("using in-memory cache")
		return NewInMemoryCache()
	}
	slog.Info("using file cache", "dir", dir)
	return NewFileCache(dir)
}
