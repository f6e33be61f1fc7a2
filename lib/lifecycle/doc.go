// Package lifecycle owns the live global config.
//
// A Service is created once at host startup and passed to every consumer.
// Instance returns the current payload, loading it on first use. Reload and
// Reset replace the payload wholesale; a consumer holding an older pointer
// keeps reading superseded (but intact) values, so call Instance whenever
// current values matter.
//
// # Loading
//
// Reload reads and decodes the primary file. A missing, unreadable or
// malformed file is replaced by freshly written defaults. A file whose
// version predates migrate.LatestVersion is copied to a backup slot and the
// config is reset. Accepted files are written back re-encoded, which
// normalizes formatting and adds fields introduced since the file was saved.
// The cached modification time is taken after that write, so it always
// reflects this process's own last write.
//
// # Diagnostic polling
//
// With DiagnosticPolling enabled, Instance also checks the primary file's
// modification time, at most once per epoch of the host's frame counter
// (frame >> TickShift). A file modified after our last write is reloaded
// without the version check. There is no background goroutine: the check
// runs inside Instance on the caller's goroutine.
//
// # Errors
//
// No error ever reaches a caller of Instance, Reload or Reset. Every failure
// is classified with KindOf, logged, and answered with a fallback; at worst
// the service holds unpersisted in-memory defaults.
//
// # Concurrency
//
// A Service performs no locking. All calls must come from the host's main
// loop or be serialized by the caller.
package lifecycle
