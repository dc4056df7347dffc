package magick

import "strconv"

// Pipeline is the resolved output encoder, exactly one per request.
type Pipeline int

const (
	PipelineDefault Pipeline = iota
	PipelineWebP
	PipelineMozJPEG
)

func (p Pipeline) String() string {
	switch p {
	case PipelineWebP:
		return "webp"
	case PipelineMozJPEG:
		return "mozjpeg"
	default:
		return "default"
	}
}

// selectPipeline resolves the encoder priority chain once per request:
// WebP wins when its encoder exists and the target is WebP, MozJPEG when its
// binary exists and the output is flagged for it, otherwise the primary tool
// writes the file itself.
func selectPipeline(caps Capabilities, out OutputSpec) (Pipeline, string) {
	if caps.WebP() && (out.WebP || out.Format() == FormatWEBP) {
		return PipelineWebP, ""
	}
	if path, ok := caps.MozJPEG(); ok && out.MozJPEG {
		return PipelineMozJPEG, path
	}
	return PipelineDefault, ""
}

// trailingArgs renders the quality/encoder clause that terminates every
// command. For MozJPEG it returns the receiving side of the pipe separately.
func trailingArgs(pipeline Pipeline, cjpegPath string, opts *Options, out OutputSpec, defaultQuality int) (primary, chained []arg) {
	quality, ok := opts.Int(OptQuality)
	if !ok {
		quality = defaultQuality
	}
	q := strconv.Itoa(quality)

	switch pipeline {
	case PipelineWebP:
		lossless := "false"
		if opts.Bool(OptWebPLossless) {
			lossless = "true"
		}
		primary = []arg{
			{text: "-quality"},
			{text: q, quote: true},
			{text: "-define"},
			{text: "webp:lossless=" + lossless},
			{text: out.Path, quote: true},
		}
	case PipelineMozJPEG:
		// The primary tool streams an uncompressed targa image to stdout;
		// cjpeg compresses it on the receiving side of the pipe.
		primary = []arg{
			{text: "tga:-"},
		}
		chained = []arg{
			{text: cjpegPath},
			{text: "-quality"},
			{text: q, quote: true},
			{text: "-outfile"},
			{text: out.Path, quote: true},
			{text: "-targa"},
		}
	default:
		primary = []arg{
			{text: "-quality"},
			{text: q, quote: true},
			{text: out.Path, quote: true},
		}
	}
	return primary, chained
}
