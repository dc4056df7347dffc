package magick

import (
	"strconv"
	"strings"
)

// arg is one command-line token. quote marks values that originated from
// user-controlled option data and must be shell-escaped when the command is
// rendered as a string; fixed flags stay bare.
type arg struct {
	text  string
	quote bool
}

// Command is the finished, ordered argument sequence for one conversion.
// The MozJPEG pipeline is the only case with a second process; its argv is
// kept separate so an execution layer that avoids a shell can wire the pipe
// itself.
type Command struct {
	pipeline Pipeline
	primary  []arg
	chained  []arg
}

func (c *Command) Pipeline() Pipeline {
	return c.pipeline
}

// Argv returns the primary tool's argument vector, binary path first.
func (c *Command) Argv() []string {
	return texts(c.primary)
}

// ChainedArgv returns the receiving side of the MozJPEG pipe, or nil for
// single-process pipelines.
func (c *Command) ChainedArgv() []string {
	if len(c.chained) == 0 {
		return nil
	}
	return texts(c.chained)
}

// String renders the shell-ready command line. User-supplied values are
// quoted; the pipe between the two MozJPEG stages is encoded literally.
func (c *Command) String() string {
	var b strings.Builder
	writeArgs(&b, c.primary)
	if len(c.chained) > 0 {
		b.WriteString(" | ")
		writeArgs(&b, c.chained)
	}
	return b.String()
}

func writeArgs(b *strings.Builder, args []arg) {
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		if a.quote {
			b.WriteString(shellQuote(a.text))
		} else {
			b.WriteString(a.text)
		}
	}
}

func texts(args []arg) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.text
	}
	return out
}

// Config holds the builder's fixed collaborators and defaults.
type Config struct {
	// ConvertPath is the primary conversion binary.
	ConvertPath string
	// DefaultQuality is used when the request carries no quality option.
	DefaultQuality int
	// Capabilities answers encoder availability; nil uses the filesystem
	// probe against well-known install paths.
	Capabilities Capabilities
}

func DefaultConfig() *Config {
	return &Config{
		ConvertPath:    "convert",
		DefaultQuality: 85,
		Capabilities:   NewBinaryProbe(),
	}
}

// Builder synthesizes convert command lines. It is stateless across
// requests; each Build gets its own working option bag and geometry memo.
type Builder struct {
	config *Config
}

func NewBuilder(cfg *Config) *Builder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ConvertPath == "" {
		cfg.ConvertPath = "convert"
	}
	if cfg.DefaultQuality <= 0 {
		cfg.DefaultQuality = 85
	}
	if cfg.Capabilities == nil {
		cfg.Capabilities = NewBinaryProbe()
	}
	return &Builder{config: cfg}
}

// Build resolves the options against the source and assembles the full
// ordered argument sequence. Argument order is semantically significant for
// the underlying tool and must not be rearranged.
func (b *Builder) Build(src SourceInfo, opts *Options, out OutputSpec) (*Command, error) {
	if src.Path == "" {
		return nil, ErrMissingSourcePath
	}
	if opts == nil {
		opts = NewOptions()
	}

	// Work on a copy; the preserve-natural-size clamp mutates dimensions.
	working := opts.Clone()
	geo := newGeometry(working, src)
	geo.clampToSource()

	args := []arg{{text: b.config.ConvertPath}}

	if src.Format == FormatPDF {
		if density, ok := working.String(OptDensity); ok && density != "" {
			args = append(args, arg{text: "-density"}, arg{text: density, quote: true})
		}
	}

	if src.Format == FormatGIF {
		// Flatten animation deltas so individual frames are addressable.
		args = append(args, arg{text: "-coalesce"})
	}

	args = append(args, arg{text: "-auto-orient"})
	args = append(args, arg{text: sourceToken(src, working, out), quote: true})
	args = append(args, geo.sizeArgs()...)

	if colorspace, ok := working.String(OptColorspace); ok && colorspace != "" {
		args = append(args, arg{text: "-colorspace"}, arg{text: colorspace, quote: true})
	}

	if working.Bool(OptMonochrome) {
		args = append(args, arg{text: "-monochrome"})
	}

	args = append(args, forwardedArgs(working)...)

	if working.Bool(OptStrip) {
		// -thumbnail already strips implicitly; the explicit flag is kept
		// as an idempotent reinforcement.
		args = append(args, arg{text: "-strip"})
	}

	if threads, ok := working.Int(OptThread); ok {
		args = append(args,
			arg{text: "-limit"},
			arg{text: "thread"},
			arg{text: strconv.Itoa(threads), quote: true},
		)
	}

	pipeline, cjpegPath := selectPipeline(b.config.Capabilities, out)
	primaryTail, chained := trailingArgs(pipeline, cjpegPath, working, out, b.config.DefaultQuality)
	args = append(args, primaryTail...)

	return &Command{
		pipeline: pipeline,
		primary:  args,
		chained:  chained,
	}, nil
}

// sourceToken renders the input path with its reader-selector suffix: a
// 0-based page index for PDFs, or a frame index when an animated GIF
// collapses to a still output format.
func sourceToken(src SourceInfo, opts *Options, out OutputSpec) string {
	switch src.Format {
	case FormatPDF:
		page, ok := opts.Int(OptPageNumber)
		if !ok || page < 1 {
			page = 1
		}
		return src.Path + "[" + strconv.Itoa(page-1) + "]"
	case FormatGIF:
		if out.Format() == FormatGIF {
			return src.Path
		}
		frame, ok := opts.Int(OptGIFFrame)
		if !ok || frame < 0 {
			frame = 0
		}
		return src.Path + "[" + strconv.Itoa(frame) + "]"
	default:
		return src.Path
	}
}

// forwardedOptions is the fixed passthrough set, emitted in this order.
var forwardedOptions = []string{
	OptBackground,
	OptRotate,
	OptUnsharp,
	OptSharpen,
	OptBlur,
	OptFilter,
}

func forwardedArgs(opts *Options) []arg {
	var args []arg
	for _, name := range forwardedOptions {
		if !opts.Bool(name) {
			continue
		}
		value, _ := opts.String(name)
		args = append(args, arg{text: "-" + name}, arg{text: value, quote: true})
	}
	return args
}
