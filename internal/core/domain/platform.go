package domain

import (
	"runtime"

	"go.trai.ch/zerr"
)

// Platform identifies the host operating system family used to pick archives.
type Platform string

const (
	// PlatformWindows is the Windows archive flavour.
	PlatformWindows Platform = "win"
	// PlatformLinux is the Linux archive flavour.
	PlatformLinux Platform = "linux"
	// PlatformMac is the macOS archive flavour.
	PlatformMac Platform = "mac"
)

// DetectPlatform maps a GOOS value to a Platform.
func DetectPlatform(goos string) (Platform, error) {
	switch goos {
	case "windows":
		return PlatformWindows, nil
	case "linux":
		return PlatformLinux, nil
	case "darwin":
		return PlatformMac, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnsupportedPlatform, "no archives are published for this operating system"),
			"goos", goos)
	}
}

// HostPlatform returns the Platform of the running process.
func HostPlatform() (Platform, error) {
	return DetectPlatform(runtime.GOOS)
}
