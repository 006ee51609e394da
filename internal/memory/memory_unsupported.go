//go:build !linux

package memory

// newPlatformReader falls back to gopsutil, there is no /proc/meminfo here
func newPlatformReader() Reader {
	return &VirtualMemoryReader{}
}
