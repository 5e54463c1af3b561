package host

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// machineModel reads the hardware identifier. On iOS hw.machine holds the
// device identifier (e.g. "iPhone7,2"); on macOS hw.model holds the Mac model.
func machineModel() (string, error) {
	if runtime.GOOS == "ios" {
		return unix.Sysctl("hw.machine")
	}
	return unix.Sysctl("hw.model")
}
