package magick

import "strings"

// Format identifies the container format of a source or target image.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
	FormatGIF
	FormatWEBP
	FormatPDF
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	case FormatWEBP:
		return "webp"
	case FormatPDF:
		return "pdf"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name or file extension to a Format.
// Unrecognized names map to FormatUnknown rather than an error.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "jpeg", "jpg":
		return FormatJPEG
	case "png":
		return FormatPNG
	case "gif":
		return FormatGIF
	case "webp":
		return FormatWEBP
	case "pdf":
		return FormatPDF
	case "bmp":
		return FormatBMP
	case "tiff", "tif":
		return FormatTIFF
	default:
		return FormatUnknown
	}
}

// SourceInfo describes an already-probed source image. It is owned by the
// caller and treated as read-only for the duration of one conversion.
type SourceInfo struct {
	Path   string
	Width  int
	Height int
	Format Format
}
