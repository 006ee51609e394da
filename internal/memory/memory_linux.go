//go:build linux

package memory

// newPlatformReader creates a reader for the kernel pseudo-file
func newPlatformReader() Reader {
	return &FileReader{Path: DefaultPath}
}
