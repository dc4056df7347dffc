package magick

import "os"

// Capabilities answers which optional encoder binaries exist on the host.
// It is an external query the builder consumes; absence of a binary silently
// falls back to the default pipeline, never an error.
type Capabilities interface {
	// WebP reports whether a WebP encoder is installed.
	WebP() bool
	// MozJPEG returns the cjpeg binary path when MozJPEG is installed.
	MozJPEG() (string, bool)
}

// Well-known install locations, checked in order.
var (
	defaultWebPPaths = []string{
		"/usr/bin/cwebp",
		"/usr/local/bin/cwebp",
		"/opt/homebrew/bin/cwebp",
	}
	defaultMozJPEGPaths = []string{
		"/opt/mozjpeg/bin/cjpeg",
		"/usr/local/opt/mozjpeg/bin/cjpeg",
		"/usr/local/bin/cjpeg",
	}
)

// BinaryProbe implements Capabilities with a filesystem probe: the binary
// must exist and carry an executable bit.
type BinaryProbe struct {
	webpPaths    []string
	mozjpegPaths []string
}

var _ Capabilities = (*BinaryProbe)(nil)

func NewBinaryProbe() *BinaryProbe {
	return &BinaryProbe{
		webpPaths:    defaultWebPPaths,
		mozjpegPaths: defaultMozJPEGPaths,
	}
}

// NewBinaryProbeWithPaths overrides the search lists; empty slices keep the
// defaults.
func NewBinaryProbeWithPaths(webpPaths, mozjpegPaths []string) *BinaryProbe {
	p := NewBinaryProbe()
	if len(webpPaths) > 0 {
		p.webpPaths = webpPaths
	}
	if len(mozjpegPaths) > 0 {
		p.mozjpegPaths = mozjpegPaths
	}
	return p
}

func (p *BinaryProbe) WebP() bool {
	_, ok := firstExecutable(p.webpPaths)
	return ok
}

func (p *BinaryProbe) MozJPEG() (string, bool) {
	return firstExecutable(p.mozjpegPaths)
}

func firstExecutable(paths []string) (string, bool) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0111 != 0 {
			return path, true
		}
	}
	return "", false
}

// StaticCapabilities is a deterministic Capabilities for tests.
type StaticCapabilities struct {
	WebPAvailable bool
	MozJPEGPath   string
}

var _ Capabilities = (*StaticCapabilities)(nil)

func (c *StaticCapabilities) WebP() bool {
	return c.WebPAvailable
}

func (c *StaticCapabilities) MozJPEG() (string, bool) {
	return c.MozJPEGPath, c.MozJPEGPath != ""
}
