//go:build windows

package signals

import "os"

// Windows has no SIGHUP; reloads there come from the watch loop only.
var watched = []os.Signal{os.Interrupt}

func classify(sig os.Signal) (Event, bool) {
	if sig == os.Interrupt {
		return Shutdown, true
	}
	return 0, false
}
