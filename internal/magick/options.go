package magick

import "strconv"

// Recognized option names. Anything else in the bag is ignored.
const (
	OptWidth               = "width"
	OptHeight              = "height"
	OptCrop                = "crop"
	OptGravity             = "gravity"
	OptResize              = "resize"
	OptPreserveNaturalSize = "preserve-natural-size"
	OptColorspace          = "colorspace"
	OptMonochrome          = "monochrome"
	OptStrip               = "strip"
	OptThread              = "thread"
	OptQuality             = "quality"
	OptDensity             = "density"
	OptGIFFrame            = "gif-frame"
	OptWebPLossless        = "webp-lossless"
	OptBackground          = "background"
	OptRotate              = "rotate"
	OptUnsharp             = "unsharp"
	OptSharpen             = "sharpen"
	OptBlur                = "blur"
	OptFilter              = "filter"
	OptPageNumber          = "page_number"
)

// Options is the per-request option bag. Values are stored as strings; the
// typed accessors make presence and truthiness explicit so callers never rely
// on implicit coercion. An absent option means "no effect", never an error.
type Options struct {
	values map[string]string
}

func NewOptions() *Options {
	return &Options{values: make(map[string]string)}
}

// Set is the single write path into the bag.
func (o *Options) Set(name, value string) {
	o.values[name] = value
}

func (o *Options) SetInt(name string, value int) {
	o.Set(name, strconv.Itoa(value))
}

func (o *Options) SetBool(name string, value bool) {
	o.Set(name, strconv.FormatBool(value))
}

func (o *Options) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// String returns the raw value and whether the option is present.
func (o *Options) String(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Int returns the option parsed as an integer. A present but unparsable
// value reports absent.
func (o *Options) Int(name string) (int, bool) {
	v, ok := o.values[name]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool reports whether the option is present and truthy. A present-but-false
// value ("false", "0", "no", "off", empty) behaves the same as absent for
// flag-style options.
func (o *Options) Bool(name string) bool {
	v, ok := o.values[name]
	if !ok {
		return false
	}
	switch v {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// Clone copies the bag so per-request adjustments never leak back into the
// caller's original.
func (o *Options) Clone() *Options {
	c := NewOptions()
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}
