package probe

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"convertd/internal/magick"
)

var pdfMagic = []byte("%PDF")

// File probes a source image on disk and returns the descriptor the command
// builder consumes. PDF sources are recognized by header and carry no pixel
// dimensions; everything else goes through the registered image decoders.
func File(path string) (magick.SourceInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return magick.SourceInfo{}, fmt.Errorf("probe: open source: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := Reader(f)
	if err != nil {
		return magick.SourceInfo{}, err
	}
	info.Path = path
	return info, nil
}

// Reader probes image data from a stream. The returned descriptor has no
// path; callers that know one attach it themselves.
func Reader(r io.Reader) (magick.SourceInfo, error) {
	header := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return magick.SourceInfo{}, fmt.Errorf("probe: read header: %w", err)
	}
	header = header[:n]

	if bytes.HasPrefix(header, pdfMagic) {
		return magick.SourceInfo{Format: magick.FormatPDF}, nil
	}

	cfg, format, err := image.DecodeConfig(io.MultiReader(bytes.NewReader(header), r))
	if err != nil {
		return magick.SourceInfo{}, fmt.Errorf("probe: unrecognized image data: %w", err)
	}

	return magick.SourceInfo{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: magick.ParseFormat(format),
	}, nil
}
