// Package storage reads and writes the global config file and its backups.
//
// A Store is bound to one directory. The primary file and the backup prefix
// are fixed at construction; writes go through a temp file and rename, so a
// crash mid-write leaves either the old or the new content, never a
// truncated file. Writes also take an advisory lock on ".<primary>.lock" in
// the same directory. That empty hidden file is created on the first write and
// left in place afterwards; removing it between writes would let two processes
// lock different inodes.
//
// Backup names are resolved by probing "<prefix>", "<prefix>.0",
// "<prefix>.1", ... and returning the first name that does not exist.
//
// Errors match ErrNotFound, ErrIO, ErrTimestampUnavailable or
// ErrBackupSlotsExhausted under errors.Is.
package storage
