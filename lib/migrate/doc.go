// Package migrate decides whether a persisted global config can be adopted or
// must be replaced.
//
// Any version older than LatestVersion is treated as a breaking schema change:
// individual fields are never carried forward. The stale file is copied into
// a fresh backup slot so the user can recover customizations by hand, and the
// caller resets the live config to defaults.
//
// A version of VersionCheckDisabled (-1) opts a file out of the check; it is
// always accepted as-is.
package migrate
