package platform

import (
	"fmt"
	"os/exec"
	"runtime"
)

// SupportedOS represents supported operating systems
type SupportedOS string

const (
	Linux   SupportedOS = "linux"
	Windows SupportedOS = "windows"
	Darwin  SupportedOS = "darwin"
	FreeBSD SupportedOS = "freebsd"
)

// GetOS returns the current operating system
func GetOS() SupportedOS {
	return SupportedOS(runtime.GOOS)
}

// IsSupported returns true if the current OS is supported
func IsSupported() bool {
	switch GetOS() {
	case Linux, Windows, Darwin, FreeBSD:
		return true
	}
	return false
}

// ValidateSupport returns an error if the current OS is not supported
func ValidateSupport() error {
	if !IsSupported() {
		return fmt.Errorf("unsupported operating system: %s. Supported: linux, windows, darwin, freebsd", runtime.GOOS)
	}
	return nil
}

// ShellCommand wraps a command line in the platform shell
func ShellCommand(command string) *exec.Cmd {
	if GetOS() == Windows {
		return exec.Command("cmd", "/C", command)
	}
	return exec.Command("/bin/sh", "-c", command)
}
