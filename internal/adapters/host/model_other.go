//go:build !darwin

package host

import "errors"

var errNoHardwareModel = errors.New("hardware model not exposed on this platform")

func machineModel() (string, error) {
	return "", errNoHardwareModel
}
