package lifecycle

import (
	"errors"

	"github.com/tmpe/globalconfig/lib/codec"
	"github.com/tmpe/globalconfig/lib/storage"
)

// ErrorKind classifies failures met while loading or persisting the config.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindStorageNotFound
	KindStorageIO
	KindDecode
	KindEncode
	KindTimestampUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindStorageNotFound:
		return "storage_not_found"
	case KindStorageIO:
		return "storage_io"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	case KindTimestampUnavailable:
		return "timestamp_unavailable"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of err. A nil error is KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, storage.ErrNotFound):
		return KindStorageNotFound
	case errors.Is(err, storage.ErrTimestampUnavailable):
		return KindTimestampUnavailable
	case errors.Is(err, storage.ErrIO), errors.Is(err, storage.ErrBackupSlotsExhausted):
		return KindStorageIO
	case errors.Is(err, codec.ErrDecode):
		return KindDecode
	case errors.Is(err, codec.ErrEncode):
		return KindEncode
	default:
		return KindUnknown
	}
}
