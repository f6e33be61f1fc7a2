//go:build !windows

package signals

import (
	"os"
	"syscall"
)

var watched = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}

func classify(sig os.Signal) (Event, bool) {
	switch sig {
	case syscall.SIGHUP:
		return Reload, true
	case syscall.SIGINT, syscall.SIGTERM:
		return Shutdown, true
	default:
		return 0, false
	}
}
