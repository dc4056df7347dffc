package magick

// resizeMode is the resolved resize strategy for one request.
type resizeMode int

const (
	resizeNone resizeMode = iota
	resizeSimple
	resizeCrop
)

// memo keys for values that must be computed at most once per request.
const (
	memoDimensions     = "dimensions"
	memoResizeOperator = "resizeOperator"
)

// geometry resolves the size clause for a single conversion request. The
// memo map makes the dimension string and resize operator referentially
// transparent within the request: once read, later mutation of the option
// bag must not change them, so the preserve-natural-size clamp has to run
// before the first read.
type geometry struct {
	opts *Options
	src  SourceInfo
	memo map[string]string
}

func newGeometry(opts *Options, src SourceInfo) *geometry {
	return &geometry{
		opts: opts,
		src:  src,
		memo: make(map[string]string, 2),
	}
}

func (g *geometry) mode() resizeMode {
	hasWidth := g.opts.Has(OptWidth)
	hasHeight := g.opts.Has(OptHeight)
	if hasWidth && hasHeight && g.opts.Bool(OptCrop) {
		return resizeCrop
	}
	if hasWidth || hasHeight {
		return resizeSimple
	}
	return resizeNone
}

// clampToSource applies the preserve-natural-size adjustment: in crop mode,
// never upscale past the source dimensions. Mutates the working option bag,
// which is why it must run before dimensions() is first called.
func (g *geometry) clampToSource() {
	if g.mode() != resizeCrop || !g.opts.Bool(OptPreserveNaturalSize) {
		return
	}
	if w, ok := g.opts.Int(OptWidth); ok && g.src.Width > 0 && w > g.src.Width {
		g.opts.SetInt(OptWidth, g.src.Width)
	}
	if h, ok := g.opts.Int(OptHeight); ok && g.src.Height > 0 && h > g.src.Height {
		g.opts.SetInt(OptHeight, g.src.Height)
	}
}

// dimensions returns the WxH geometry string, computed once per request.
// Either axis may be absent; the tool preserves aspect ratio on that axis.
func (g *geometry) dimensions() string {
	if v, ok := g.memo[memoDimensions]; ok {
		return v
	}
	var dims string
	if w, ok := g.opts.String(OptWidth); ok {
		dims += w
	}
	if h, ok := g.opts.String(OptHeight); ok {
		dims += "x" + h
	}
	g.memo[memoDimensions] = dims
	return dims
}

// resizeOperator picks -resize or -thumbnail, computed once per request.
// -thumbnail is the default; it also strips metadata implicitly.
func (g *geometry) resizeOperator() string {
	if v, ok := g.memo[memoResizeOperator]; ok {
		return v
	}
	op := "-thumbnail"
	if g.opts.Bool(OptResize) {
		op = "-resize"
	}
	g.memo[memoResizeOperator] = op
	return op
}

// sizeArgs renders the full size clause as argument tokens. Empty when no
// resize was requested.
func (g *geometry) sizeArgs() []arg {
	switch g.mode() {
	case resizeCrop:
		dims := g.dimensions()
		gravity, ok := g.opts.String(OptGravity)
		if !ok || gravity == "" {
			gravity = "center"
		}
		// The ^ modifier fills the target box, -extent hard-crops the
		// overflow anchored at the gravity point.
		return []arg{
			{text: g.resizeOperator()},
			{text: dims + "^", quote: true},
			{text: "-gravity"},
			{text: gravity, quote: true},
			{text: "-extent"},
			{text: dims, quote: true},
		}
	case resizeSimple:
		dims := g.dimensions()
		if g.opts.Bool(OptPreserveNaturalSize) {
			// Tool-native shrink-only modifier. Deliberately separate
			// from the crop-mode clamp above.
			dims += ">"
		}
		return []arg{
			{text: g.resizeOperator()},
			{text: dims, quote: true},
		}
	default:
		return nil
	}
}
