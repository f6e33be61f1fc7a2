// Package codec turns a globalconfig.Config into bytes and back.
//
// XML is the native format and matches files written by earlier releases:
// a GlobalConfig root in the http://www.viathinksoft.de/tmpe namespace with
// one element per field. YAML and TOML carry the same field names and exist
// for users who prefer hand-editing those formats.
//
// Every codec decodes on top of globalconfig.Default(), so fields missing from
// the document keep their defaults. Malformed or empty input fails with an
// error matching ErrDecode.
package codec
