package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/samber/oops"
	"github.com/tmpe/globalconfig/lib/util"
	"github.com/tmpe/globalconfig/lib/util/logger"
)

var log = logger.GetLogger()

const (
	// PrimaryFilename is the name of the live global config file.
	PrimaryFilename = "TMPE_GlobalConfig.xml"
	// BackupPrefix is the base name of backups of stale config files.
	BackupPrefix = PrimaryFilename + ".bak"

	filePerm       = 0o644
	lockTimeout    = 10 * time.Second
	lockRetryDelay = 50 * time.Millisecond
)

var (
	ErrNotFound             = errors.New("global config file not found")
	ErrIO                   = errors.New("global config storage i/o failure")
	ErrTimestampUnavailable = errors.New("global config modification time unavailable")
	ErrBackupSlotsExhausted = errors.New("no free backup slot")
)

// Options configures a Store. Zero values select the standard file names and
// unbounded backup probing.
type Options struct {
	Dir             string
	Primary         string
	BackupPrefix    string
	MaxBackupProbes int
}

// Store is the file-backed storage accessor for the global config.
type Store struct {
	dir          string
	primary      string
	backupPrefix string
	maxProbes    int
}

// New creates a Store. The directory is created lazily on the first write.
func New(opts Options) *Store {
	s := &Store{
		dir:          opts.Dir,
		primary:      opts.Primary,
		backupPrefix: opts.BackupPrefix,
		maxProbes:    opts.MaxBackupProbes,
	}
	if s.dir == "" {
		s.dir = "."
	}
	if s.primary == "" {
		s.primary = PrimaryFilename
	}
	if s.backupPrefix == "" {
		s.backupPrefix = s.primary + ".bak"
	}
	if s.maxProbes < 0 {
		s.maxProbes = 0
	}
	return s
}

// Dir returns the directory holding the config files.
func (s *Store) Dir() string { return s.dir }

// PrimaryName returns the primary file name, relative to Dir.
func (s *Store) PrimaryName() string { return s.primary }

// BackupPrefix returns the backup base name, relative to Dir.
func (s *Store) BackupPrefix() string { return s.backupPrefix }

// Path resolves filename inside the store directory. Absolute names are
// returned unchanged.
func (s *Store) Path(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.dir, filename)
}

// Load reads the primary file together with its modification time.
func (s *Store) Load() ([]byte, time.Time, error) {
	path := s.Path(s.primary)

	info, err := os.Stat(path)
	if err != nil {
		if util.IsNotExist(err) {
			return nil, time.Time{}, oops.Wrapf(ErrNotFound, "loading '%s'", path)
		}
		return nil, time.Time{}, oops.Wrapf(errors.Join(ErrIO, err), "stat '%s'", path)
	}

	log.WithFields(logger.Fields{
		"at":   "Store.Load",
		"file": path,
	}).Debug("Loading global config file")

	data, err := os.ReadFile(path)
	if err != nil {
		if util.IsNotExist(err) {
			return nil, time.Time{}, oops.Wrapf(ErrNotFound, "loading '%s'", path)
		}
		return nil, time.Time{}, oops.Wrapf(errors.Join(ErrIO, err), "reading '%s'", path)
	}
	return data, info.ModTime(), nil
}

// Write replaces filename (the primary file when empty) with data and returns
// the file's modification time after the write.
func (s *Store) Write(data []byte, filename string) (time.Time, error) {
	if filename == "" {
		filename = s.primary
	}
	path := s.Path(filename)

	log.WithFields(logger.Fields{
		"at":   "Store.Write",
		"file": path,
		"size": len(data),
	}).Debug("Writing global config file")

	err := s.withLock(func() error {
		return atomicWriteFile(path, data, filePerm)
	})
	if err != nil {
		return time.Time{}, oops.Wrapf(errors.Join(ErrIO, err), "writing '%s'", path)
	}
	return s.LastModified(filename)
}

// LastModified returns the modification time of filename (the primary file
// when empty).
func (s *Store) LastModified(filename string) (time.Time, error) {
	if filename == "" {
		filename = s.primary
	}
	path := s.Path(filename)
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, oops.Wrapf(errors.Join(ErrTimestampUnavailable, err), "stat '%s'", path)
	}
	return info.ModTime(), nil
}

// ResolveBackupSlot returns the first of prefix, prefix.0, prefix.1, ... that
// does not exist yet. The returned name is relative to Dir like prefix.
func (s *Store) ResolveBackupSlot(prefix string) (string, error) {
	if prefix == "" {
		prefix = s.backupPrefix
	}
	candidate := prefix
	for i := 0; util.CheckFileExists(s.Path(candidate)); i++ {
		if s.maxProbes > 0 && i >= s.maxProbes {
			return "", oops.Wrapf(ErrBackupSlotsExhausted, "probed %d names for '%s'", i+1, prefix)
		}
		candidate = prefix + "." + strconv.Itoa(i)
	}
	return candidate, nil
}

// LockPath returns the advisory lock file taken around writes. It is a hidden
// sibling of the primary file and stays in place between writes.
func (s *Store) LockPath() string {
	return filepath.Join(s.dir, "."+filepath.Base(s.primary)+".lock")
}

func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return oops.Wrapf(err, "creating config directory '%s'", s.dir)
	}
	fl := flock.New(s.LockPath())

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return oops.Wrapf(err, "acquiring lock for '%s'", s.primary)
	}
	if !locked {
		return oops.Errorf("timed out acquiring lock for '%s'", s.primary)
	}
	defer func() { _ = fl.Unlock() }()

	return fn()
}

// atomicWriteFile writes data to a temp file next to path, syncs it and
// renames it over path.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return oops.Wrapf(err, "creating directory for '%s'", path)
	}

	tmp, err := os.CreateTemp(dir, ".tmpe-*.tmp")
	if err != nil {
		return oops.Wrapf(err, "creating temp file for '%s'", path)
	}

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return oops.Wrapf(err, "writing temp file for '%s'", path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return oops.Wrapf(err, "syncing temp file for '%s'", path)
	}
	if err := tmp.Close(); err != nil {
		return oops.Wrapf(err, "closing temp file for '%s'", path)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return oops.Wrapf(err, "setting permissions on temp file for '%s'", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return oops.Wrapf(err, "renaming temp file to '%s'", path)
	}

	success = true
	return nil
}
