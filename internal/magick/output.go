package magick

// OutputSpec describes where the converted image goes and which encoder
// pipeline the caller wants for it.
type OutputSpec struct {
	Path      string
	Extension string
	WebP      bool
	MozJPEG   bool
}

// Format derives the target format from the output extension.
func (s OutputSpec) Format() Format {
	return ParseFormat(s.Extension)
}
