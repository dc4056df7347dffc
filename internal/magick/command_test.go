package magick

import (
	"errors"
	"strings"
	"testing"
)

func testBuilder(caps Capabilities) *Builder {
	if caps == nil {
		caps = &StaticCapabilities{}
	}
	return NewBuilder(&Config{
		ConvertPath:    "convert",
		DefaultQuality: 85,
		Capabilities:   caps,
	})
}

func jpegSource(width, height int) SourceInfo {
	return SourceInfo{
		Path:   "/tmp/source.jpg",
		Width:  width,
		Height: height,
		Format: FormatJPEG,
	}
}

func jpegOutput() OutputSpec {
	return OutputSpec{Path: "/tmp/out.jpg", Extension: "jpg"}
}

func TestBuild_MissingSourcePath(t *testing.T) {
	b := testBuilder(nil)

	_, err := b.Build(SourceInfo{Format: FormatJPEG}, NewOptions(), jpegOutput())
	if !errors.Is(err, ErrMissingSourcePath) {
		t.Fatalf("Build() error = %v, want ErrMissingSourcePath", err)
	}
}

func TestBuild_NoResize(t *testing.T) {
	b := testBuilder(nil)

	cmd, err := b.Build(jpegSource(1000, 1000), NewOptions(), jpegOutput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := cmd.String()
	for _, op := range []string{"-thumbnail", "-resize", "-extent"} {
		if strings.Contains(got, op) {
			t.Errorf("command %q should not contain %q without width/height", got, op)
		}
	}
	if !strings.Contains(got, "-auto-orient") {
		t.Errorf("command %q missing -auto-orient", got)
	}
}

func TestBuild_SimpleResize(t *testing.T) {
	tests := []struct {
		name string
		set  func(o *Options)
		want string
	}{
		{
			name: "width only",
			set:  func(o *Options) { o.SetInt(OptWidth, 800) },
			want: "-thumbnail 800",
		},
		{
			name: "height only",
			set:  func(o *Options) { o.SetInt(OptHeight, 600) },
			want: "-thumbnail x600",
		},
		{
			name: "width and height without crop",
			set: func(o *Options) {
				o.SetInt(OptWidth, 800)
				o.SetInt(OptHeight, 600)
			},
			want: "-thumbnail 800x600",
		},
		{
			name: "resize operator forced",
			set: func(o *Options) {
				o.SetInt(OptWidth, 800)
				o.SetBool(OptResize, true)
			},
			want: "-resize 800",
		},
		{
			name: "preserve natural size appends shrink-only modifier",
			set: func(o *Options) {
				o.SetInt(OptWidth, 800)
				o.SetBool(OptPreserveNaturalSize, true)
			},
			want: "-thumbnail '800>'",
		},
	}

	b := testBuilder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			tt.set(opts)

			cmd, err := b.Build(jpegSource(1000, 1000), opts, jpegOutput())
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := cmd.String(); !strings.Contains(got, tt.want) {
				t.Errorf("command %q missing %q", got, tt.want)
			}
		})
	}
}

func TestBuild_CropResize(t *testing.T) {
	opts := NewOptions()
	opts.SetInt(OptWidth, 800)
	opts.SetInt(OptHeight, 600)
	opts.SetBool(OptCrop, true)
	opts.Set(OptGravity, "center")

	b := testBuilder(nil)
	cmd, err := b.Build(jpegSource(1000, 1000), opts, jpegOutput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := "-thumbnail '800x600^' -gravity center -extent 800x600"
	if got := cmd.String(); !strings.Contains(got, want) {
		t.Errorf("command %q missing crop clause %q", got, want)
	}
}

func TestBuild_CropClamp(t *testing.T) {
	// A 2000px target on a 500px-wide source must clamp before the
	// dimension string is built.
	opts := NewOptions()
	opts.SetInt(OptWidth, 2000)
	opts.SetInt(OptHeight, 2000)
	opts.SetBool(OptCrop, true)
	opts.SetBool(OptPreserveNaturalSize, true)

	b := testBuilder(nil)
	cmd, err := b.Build(jpegSource(500, 400), opts, jpegOutput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := cmd.String()
	if !strings.Contains(got, "'500x400^'") || !strings.Contains(got, "-extent 500x400") {
		t.Errorf("command %q should clamp to source dimensions 500x400", got)
	}
	if strings.Contains(got, "2000") {
		t.Errorf("command %q still carries the unclamped dimension", got)
	}

	// The caller's bag must keep its original values.
	if w, _ := opts.Int(OptWidth); w != 2000 {
		t.Errorf("caller width = %d, want untouched 2000", w)
	}
}

func TestBuild_PDFSource(t *testing.T) {
	opts := NewOptions()
	opts.SetInt(OptPageNumber, 2)
	opts.SetInt(OptDensity, 150)

	b := testBuilder(nil)
	src := SourceInfo{Path: "/tmp/doc.pdf", Format: FormatPDF}
	cmd, err := b.Build(src, opts, OutputSpec{Path: "/tmp/out.png", Extension: "png"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := cmd.String()
	if !strings.Contains(got, "-density 150") {
		t.Errorf("command %q missing -density 150", got)
	}
	if !strings.Contains(got, "'/tmp/doc.pdf[1]'") {
		t.Errorf("command %q should select 0-based page [1]", got)
	}
	if !strings.HasPrefix(got, "convert -density 150 -auto-orient") {
		t.Errorf("density must precede -auto-orient, got %q", got)
	}
}

func TestBuild_PDFDefaultsToFirstPage(t *testing.T) {
	b := testBuilder(nil)
	src := SourceInfo{Path: "/tmp/doc.pdf", Format: FormatPDF}

	cmd, err := b.Build(src, NewOptions(), OutputSpec{Path: "/tmp/out.png", Extension: "png"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := cmd.String(); !strings.Contains(got, "'/tmp/doc.pdf[0]'") {
		t.Errorf("command %q should default to page [0]", got)
	}
}

func TestBuild_GIFSource(t *testing.T) {
	tests := []struct {
		name       string
		outExt     string
		frame      int
		setFrame   bool
		wantToken  string
		wantSuffix bool
	}{
		{
			name:       "gif to jpeg selects frame",
			outExt:     "jpg",
			frame:      3,
			setFrame:   true,
			wantToken:  "'/tmp/anim.gif[3]'",
			wantSuffix: true,
		},
		{
			name:       "gif to jpeg defaults to first frame",
			outExt:     "jpg",
			wantToken:  "'/tmp/anim.gif[0]'",
			wantSuffix: true,
		},
		{
			name:      "gif to gif keeps all frames",
			outExt:    "gif",
			frame:     3,
			setFrame:  true,
			wantToken: "/tmp/anim.gif -",
		},
	}

	b := testBuilder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			if tt.setFrame {
				opts.SetInt(OptGIFFrame, tt.frame)
			}

			src := SourceInfo{Path: "/tmp/anim.gif", Format: FormatGIF}
			out := OutputSpec{Path: "/tmp/out." + tt.outExt, Extension: tt.outExt}
			cmd, err := b.Build(src, opts, out)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			got := cmd.String()
			if !strings.Contains(got, "-coalesce") {
				t.Errorf("command %q missing -coalesce for GIF source", got)
			}
			if !strings.Contains(got, tt.wantToken) {
				t.Errorf("command %q missing source token %q", got, tt.wantToken)
			}
		})
	}
}

func TestBuild_ArgumentOrder(t *testing.T) {
	opts := NewOptions()
	opts.SetInt(OptWidth, 400)
	opts.Set(OptColorspace, "sRGB")
	opts.SetBool(OptMonochrome, true)
	opts.Set(OptRotate, "90")
	opts.SetBool(OptStrip, true)
	opts.SetInt(OptThread, 2)
	opts.SetInt(OptQuality, 70)

	b := testBuilder(nil)
	cmd, err := b.Build(jpegSource(1000, 1000), opts, jpegOutput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := cmd.String()
	ordered := []string{
		"-auto-orient",
		"/tmp/source.jpg",
		"-thumbnail 400",
		"-colorspace sRGB",
		"-monochrome",
		"-rotate 90",
		"-strip",
		"-limit thread 2",
		"-quality 70",
		"/tmp/out.jpg",
	}

	pos := -1
	for _, token := range ordered {
		idx := strings.Index(got, token)
		if idx < 0 {
			t.Fatalf("command %q missing %q", got, token)
		}
		if idx <= pos {
			t.Errorf("token %q out of order in %q", token, got)
		}
		pos = idx
	}
}

func TestBuild_ForwardedOrder(t *testing.T) {
	opts := NewOptions()
	// Set in reverse to prove emission order is fixed, not insertion order.
	opts.Set(OptFilter, "Lanczos")
	opts.Set(OptBlur, "0x1")
	opts.Set(OptSharpen, "0x2")
	opts.Set(OptUnsharp, "0x0.5")
	opts.Set(OptRotate, "180")
	opts.Set(OptBackground, "white")

	b := testBuilder(nil)
	cmd, err := b.Build(jpegSource(1000, 1000), opts, jpegOutput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := cmd.String()
	want := "-background white -rotate 180 -unsharp 0x0.5 -sharpen 0x2 -blur 0x1 -filter Lanczos"
	if !strings.Contains(got, want) {
		t.Errorf("command %q missing fixed-order passthrough %q", got, want)
	}
}

func TestBuild_EmptyValuesOmitted(t *testing.T) {
	opts := NewOptions()
	opts.Set(OptColorspace, "")
	opts.Set(OptRotate, "")
	opts.Set(OptBackground, "")

	b := testBuilder(nil)
	cmd, err := b.Build(jpegSource(1000, 1000), opts, jpegOutput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := cmd.String()
	for _, flag := range []string{"-colorspace", "-rotate", "-background"} {
		if strings.Contains(got, flag) {
			t.Errorf("command %q must omit %s with a blank value", got, flag)
		}
	}
}

func TestBuild_SelectorQuotedInShellForm(t *testing.T) {
	// Page and frame selectors carry shell glob metacharacters; the
	// rendered string must quote them so a sibling file matching the
	// pattern (e.g. /tmp/doc.pdf0) cannot substitute for the source.
	b := testBuilder(nil)
	src := SourceInfo{Path: "/tmp/doc.pdf", Format: FormatPDF}

	cmd, err := b.Build(src, NewOptions(), OutputSpec{Path: "/tmp/out.png", Extension: "png"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := cmd.String(); !strings.Contains(got, "'/tmp/doc.pdf[0]'") {
		t.Errorf("command %q must quote the bracketed source token", got)
	}
	found := false
	for _, a := range cmd.Argv() {
		if a == "/tmp/doc.pdf[0]" {
			found = true
		}
	}
	if !found {
		t.Errorf("argv %v should carry the selector unquoted", cmd.Argv())
	}
}

func TestBuild_ShellEscaping(t *testing.T) {
	opts := NewOptions()
	opts.Set(OptBackground, "white; rm -rf /")

	b := testBuilder(nil)
	src := SourceInfo{Path: "/tmp/my photo.jpg", Format: FormatJPEG, Width: 100, Height: 100}
	cmd, err := b.Build(src, opts, OutputSpec{Path: "/tmp/out's.jpg", Extension: "jpg"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := cmd.String()
	if !strings.Contains(got, "'/tmp/my photo.jpg'") {
		t.Errorf("command %q must quote the source path", got)
	}
	if !strings.Contains(got, "'white; rm -rf /'") {
		t.Errorf("command %q must quote the injected option value", got)
	}
	if !strings.Contains(got, `'/tmp/out'\''s.jpg'`) {
		t.Errorf("command %q must escape the single quote in the output path", got)
	}

	// The argv form carries raw, unquoted values.
	argv := cmd.Argv()
	found := false
	for _, a := range argv {
		if a == "white; rm -rf /" {
			found = true
		}
	}
	if !found {
		t.Errorf("argv %v should carry the raw option value", argv)
	}
}
