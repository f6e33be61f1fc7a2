package migrate

import (
	"errors"
	"time"

	"github.com/samber/oops"
	"github.com/tmpe/globalconfig/lib/util/logger"
)

var log = logger.GetLogger()

const (
	// LatestVersion is the newest config schema this code understands.
	LatestVersion = 1
	// VersionCheckDisabled marks a config that must never be migrated.
	VersionCheckDisabled = -1
)

// ErrBackupFailed is returned when a stale config could not be preserved.
var ErrBackupFailed = errors.New("could not back up stale global config")

// Decision is the outcome of a version check.
type Decision int

const (
	Accept Decision = iota
	Migrate
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Migrate:
		return "migrate"
	default:
		return "unknown"
	}
}

// Versioned is implemented by payloads that declare a schema version.
type Versioned interface {
	ConfigVersion() int
}

// Check returns Migrate iff the declared version is older than LatestVersion
// and the check has not been disabled.
func Check(v Versioned) Decision {
	version := v.ConfigVersion()
	if version != VersionCheckDisabled && version < LatestVersion {
		return Migrate
	}
	return Accept
}

// BackupStorage is the part of the storage accessor the migrator needs.
type BackupStorage interface {
	ResolveBackupSlot(prefix string) (string, error)
	Write(data []byte, filename string) (modTime time.Time, err error)
	BackupPrefix() string
}

// Migrator copies stale configs into collision-free backup slots.
type Migrator struct {
	store BackupStorage
}

// NewMigrator creates a Migrator writing backups through store.
func NewMigrator(store BackupStorage) *Migrator {
	return &Migrator{store: store}
}

// Backup writes raw, the stale file's exact bytes, to the first unused
// backup slot and returns the slot's name. Existing backups are never
// overwritten.
func (m *Migrator) Backup(raw []byte) (string, error) {
	slot, err := m.store.ResolveBackupSlot(m.store.BackupPrefix())
	if err != nil {
		return "", oops.Wrapf(errors.Join(ErrBackupFailed, err), "resolving backup slot")
	}

	log.WithFields(logger.Fields{
		"at":   "Migrator.Backup",
		"file": slot,
		"size": len(raw),
	}).Info("Backing up stale global config")

	if _, err := m.store.Write(raw, slot); err != nil {
		return slot, oops.Wrapf(errors.Join(ErrBackupFailed, err), "writing backup config to '%s'", slot)
	}
	return slot, nil
}
