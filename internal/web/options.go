package web

import (
	"net/url"

	"convertd/internal/magick"
)

// recognizedParams are the query parameters forwarded into the option bag,
// one per recognized option name. Unknown parameters are ignored.
var recognizedParams = []string{
	magick.OptWidth,
	magick.OptHeight,
	magick.OptCrop,
	magick.OptGravity,
	magick.OptResize,
	magick.OptPreserveNaturalSize,
	magick.OptColorspace,
	magick.OptMonochrome,
	magick.OptStrip,
	magick.OptThread,
	magick.OptQuality,
	magick.OptDensity,
	magick.OptGIFFrame,
	magick.OptWebPLossless,
	magick.OptBackground,
	magick.OptRotate,
	magick.OptUnsharp,
	magick.OptSharpen,
	magick.OptBlur,
	magick.OptFilter,
	magick.OptPageNumber,
}

// parseOptions maps HTTP query parameters onto the option bag. A parameter
// present without a value enters the bag as a bare flag ("") so presence and
// truthiness stay distinguishable downstream.
func parseOptions(values url.Values) *magick.Options {
	opts := magick.NewOptions()
	for _, name := range recognizedParams {
		if !values.Has(name) {
			continue
		}
		v := values.Get(name)
		if v == "" {
			// Bare flag syntax, e.g. ?crop&width=..&height=..
			v = "true"
		}
		opts.Set(name, v)
	}
	return opts
}
