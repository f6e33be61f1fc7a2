package lifecycle

import (
	"time"

	"github.com/tmpe/globalconfig/lib/codec"
	"github.com/tmpe/globalconfig/lib/globalconfig"
	"github.com/tmpe/globalconfig/lib/migrate"
	"github.com/tmpe/globalconfig/lib/util/logger"
)

var log = logger.GetLogger()

// DefaultTickShift turns the host frame index into a polling epoch. At 60
// frames per second an epoch lasts a little over four seconds.
const DefaultTickShift = 8

// State is the lifecycle state of a Service.
type State int

const (
	Uninitialized State = iota
	Loading
	Live
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Live:
		return "live"
	default:
		return "unknown"
	}
}

// Storage is the file access the Service needs. *storage.Store implements it.
type Storage interface {
	Load() ([]byte, time.Time, error)
	Write(data []byte, filename string) (time.Time, error)
	LastModified(filename string) (time.Time, error)
	ResolveBackupSlot(prefix string) (string, error)
	PrimaryName() string
	BackupPrefix() string
}

// TickSource reports the host simulation's frame index.
type TickSource interface {
	CurrentFrame() uint32
}

// Options configures a Service.
type Options struct {
	Storage Storage
	// Codec defaults to codec.XML.
	Codec codec.Codec
	// Ticks is required when DiagnosticPolling is set.
	Ticks             TickSource
	DiagnosticPolling bool
	// TickShift of 0 selects DefaultTickShift.
	TickShift uint
	// Now is used when no file timestamp can be determined. Defaults to time.Now.
	Now func() time.Time
}

// Service owns the live global config and its persisted file.
type Service struct {
	store    Storage
	codec    codec.Codec
	migrator *migrate.Migrator
	ticks    TickSource
	polling  bool
	shift    uint
	now      func() time.Time

	state      State
	current    *globalconfig.Config
	modified   time.Time
	generation uint64

	epoch    uint32
	epochSet bool
}

// New creates a Service. Nothing is read from disk until Init or the first
// call to Instance.
func New(opts Options) *Service {
	s := &Service{
		store:   opts.Storage,
		codec:   opts.Codec,
		ticks:   opts.Ticks,
		polling: opts.DiagnosticPolling,
		shift:   opts.TickShift,
		now:     opts.Now,
	}
	if s.codec == nil {
		s.codec = codec.XML{}
	}
	if s.shift == 0 {
		s.shift = DefaultTickShift
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.polling && s.ticks == nil {
		log.WithFields(logger.Fields{
			"at":     "lifecycle.New",
			"reason": "no tick source",
		}).Warn("Diagnostic polling disabled")
		s.polling = false
	}
	s.migrator = migrate.NewMigrator(s.store)
	return s
}

// Init loads the config if that has not happened yet. Hosts call it once at
// startup so the first consumer does not pay for the load.
func (s *Service) Init() {
	if s.current == nil {
		s.instantiate()
	}
}

// Instance returns the live config, loading it on first use. With diagnostic
// polling enabled it also reloads the file when it was edited externally.
// The returned value must not be modified.
func (s *Service) Instance() *globalconfig.Config {
	if s.current == nil {
		s.instantiate()
		return s.current
	}
	if s.polling {
		s.pollFreshness()
	}
	return s.current
}

// State returns the current lifecycle state.
func (s *Service) State() State { return s.state }

// ModifiedTime returns the cached modification time of the primary file.
func (s *Service) ModifiedTime() time.Time { return s.modified }

// Generation counts how many payloads have been adopted. It changes exactly
// when Instance starts returning a different value.
func (s *Service) Generation() uint64 { return s.generation }

// DiagnosticPolling reports whether Instance checks for external edits.
func (s *Service) DiagnosticPolling() bool { return s.polling }

func (s *Service) instantiate() {
	s.Reload(true)
	if s.polling {
		s.epoch = s.currentEpoch()
		s.epochSet = true
	}
}

// Reload reads the primary file and adopts its content. With checkVersion
// set, a stale version is backed up and replaced by defaults.
func (s *Service) Reload(checkVersion bool) {
	s.state = Loading

	cfg, raw, err := s.load()
	if err != nil {
		s.logLoadFailure(err)
		s.writeDefault()
		return
	}

	if checkVersion && migrate.Check(cfg) == migrate.Migrate {
		log.WithFields(logger.Fields{
			"at":      "Service.Reload",
			"version": cfg.Version,
			"latest":  migrate.LatestVersion,
		}).Info("Global config is outdated. Backing up and resetting.")
		if slot, err := s.migrator.Backup(raw); err != nil {
			log.WithError(err).WithFields(logger.Fields{
				"at":   "Service.Reload",
				"file": slot,
				"kind": KindOf(err).String(),
			}).Warn("Error occurred while saving backup config")
		}
		s.Reset()
		return
	}

	s.adopt(cfg, s.persist(cfg))
}

// Reset replaces the live config with defaults and overwrites the primary file.
func (s *Service) Reset() {
	log.WithField("at", "Service.Reset").Info("Resetting global config.")
	s.writeDefault()
}

func (s *Service) writeDefault() {
	cfg := globalconfig.Default()
	s.adopt(cfg, s.persist(cfg))
}

func (s *Service) adopt(cfg *globalconfig.Config, modified time.Time) {
	s.current = cfg
	s.modified = modified
	s.state = Live
	s.generation++
}

// load reads and decodes the primary file. raw is returned whenever the read
// succeeded, even if decoding failed.
func (s *Service) load() (cfg *globalconfig.Config, raw []byte, err error) {
	log.WithFields(logger.Fields{
		"at":   "Service.load",
		"file": s.store.PrimaryName(),
	}).Info("Loading global config from file")

	raw, _, err = s.store.Load()
	if err != nil {
		return nil, nil, err
	}
	cfg, err = s.codec.Decode(raw)
	if err != nil {
		return nil, raw, err
	}
	log.WithField("version", cfg.Version).Debug("Global config loaded.")
	return cfg, raw, nil
}

func (s *Service) logLoadFailure(err error) {
	entry := log.WithError(err).WithFields(logger.Fields{
		"at":   "Service.Reload",
		"file": s.store.PrimaryName(),
		"kind": KindOf(err).String(),
	})
	switch KindOf(err) {
	case KindStorageNotFound:
		entry.Info("No global config found. Generating default config.")
	case KindDecode:
		entry.Warn("Global config is malformed. Generating default config.")
	default:
		entry.Warn("Could not load global config. Generating default config.")
	}
}

// persist writes cfg to the primary file and returns the timestamp to cache.
// Failures are logged; the fallback timestamp is the file's current one, or
// the wall clock when even that is unavailable.
func (s *Service) persist(cfg *globalconfig.Config) time.Time {
	log.WithFields(logger.Fields{
		"at":     "Service.persist",
		"file":   s.store.PrimaryName(),
		"format": s.codec.Name(),
	}).Info("Writing global config to file")

	data, err := s.codec.Encode(cfg)
	if err == nil {
		var modified time.Time
		modified, err = s.store.Write(data, "")
		if err == nil {
			return modified
		}
	}

	entry := log.WithError(err).WithFields(logger.Fields{
		"at":   "Service.persist",
		"file": s.store.PrimaryName(),
		"kind": KindOf(err).String(),
	})
	switch KindOf(err) {
	case KindTimestampUnavailable:
		entry.Warn("Could not determine modification date of global config")
		return s.now()
	default:
		entry.Error("Could not write global config")
	}
	return s.fallbackModTime()
}

func (s *Service) fallbackModTime() time.Time {
	modified, err := s.store.LastModified("")
	if err == nil {
		return modified
	}
	log.WithError(err).WithField("at", "Service.fallbackModTime").
		Warn("Could not determine modification date of global config")
	return s.now()
}

func (s *Service) currentEpoch() uint32 {
	return s.ticks.CurrentFrame() >> s.shift
}

// pollFreshness runs reloadIfNewer at most once per epoch change. The first
// observed epoch only arms the check.
func (s *Service) pollFreshness() {
	epoch := s.currentEpoch()
	if !s.epochSet {
		s.epoch = epoch
		s.epochSet = true
		return
	}
	if epoch == s.epoch {
		return
	}
	s.epoch = epoch
	s.reloadIfNewer()
}

func (s *Service) reloadIfNewer() {
	modified, err := s.store.LastModified("")
	if err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":   "Service.reloadIfNewer",
			"kind": KindOf(err).String(),
		}).Warn("Could not determine modification date of global config.")
		return
	}
	if !modified.After(s.modified) {
		return
	}

	log.WithFields(logger.Fields{
		"at":       "Service.reloadIfNewer",
		"modified": modified,
		"cached":   s.modified,
	}).Info("Detected modification of global config.")
	s.Reload(false)
	if s.modified.Before(modified) {
		s.modified = modified
	}
}
