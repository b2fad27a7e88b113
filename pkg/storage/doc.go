// Package storage manages the seed output directory.
//
// The Manager works over an afero.Fs: the OS filesystem in production and an
// in-memory filesystem in tests. It handles:
//   - creating the output directory and its parents (idempotent)
//   - writing image files through a temporary file and rename
//   - overwriting files left by a previous run
//
// Usage:
//
//	manager := storage.NewManager(afero.NewOsFs(), "uploads/profile-pictures")
//	if err := manager.EnsureDir(); err != nil {
//	    return err
//	}
//	path, err := manager.Save("profile_001.jpg", body)
package storage
