package cli

import (
	"testing"

	"github.com/spf13/pflag"

	"convertd/internal/magick"
)

func TestFlagOptions(t *testing.T) {
	cmd := convertCmd
	t.Cleanup(func() { resetConvertFlags(t) })

	mustSet := func(name, value string) {
		t.Helper()
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("setting flag %s: %v", name, err)
		}
	}

	mustSet("width", "800")
	mustSet("crop", "true")
	mustSet("gravity", "north")
	mustSet("page", "3")

	opts := flagOptions(cmd)

	if w, ok := opts.Int(magick.OptWidth); !ok || w != 800 {
		t.Errorf("width = %d, %v", w, ok)
	}
	if !opts.Bool(magick.OptCrop) {
		t.Errorf("crop should be truthy")
	}
	if g, _ := opts.String(magick.OptGravity); g != "north" {
		t.Errorf("gravity = %q", g)
	}
	if p, ok := opts.Int(magick.OptPageNumber); !ok || p != 3 {
		t.Errorf("page_number = %d, %v", p, ok)
	}

	// Untouched flags must not enter the bag even though they have defaults.
	if opts.Has(magick.OptHeight) {
		t.Errorf("unset height flag leaked into the bag")
	}
	if opts.Has(magick.OptQuality) {
		t.Errorf("unset quality flag leaked into the bag")
	}
}

func resetConvertFlags(t *testing.T) {
	t.Helper()
	convertCmd.Flags().Visit(func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Errorf("resetting flag %s: %v", f.Name, err)
		}
		f.Changed = false
	})
}

func TestOutputSpecFor(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		outDir     string
		format     string
		mozjpeg    bool
		input      string
		src        magick.SourceInfo
		wantPath   string
		wantExt    string
		wantWebP   bool
		wantMozJPG bool
	}{
		{
			name:     "explicit output derives extension",
			output:   "/tmp/out.webp",
			input:    "/tmp/in.jpg",
			src:      magick.SourceInfo{Format: magick.FormatJPEG},
			wantPath: "/tmp/out.webp",
			wantExt:  "webp",
			wantWebP: true,
		},
		{
			name:     "format flag beats output extension",
			output:   "/tmp/out.bin",
			format:   "png",
			input:    "/tmp/in.jpg",
			src:      magick.SourceInfo{Format: magick.FormatJPEG},
			wantPath: "/tmp/out.bin",
			wantExt:  "png",
		},
		{
			name:     "out-dir batch naming",
			outDir:   "/tmp/thumbs",
			format:   "webp",
			input:    "/data/photos/cat.jpeg",
			src:      magick.SourceInfo{Format: magick.FormatJPEG},
			wantPath: "/tmp/thumbs/cat.webp",
			wantExt:  "webp",
			wantWebP: true,
		},
		{
			name:     "pdf source defaults to jpg",
			outDir:   "/tmp/pages",
			input:    "/data/doc.pdf",
			src:      magick.SourceInfo{Format: magick.FormatPDF},
			wantPath: "/tmp/pages/doc.jpg",
			wantExt:  "jpg",
		},
		{
			name:       "mozjpeg only for jpeg targets",
			output:     "/tmp/out.jpg",
			mozjpeg:    true,
			input:      "/tmp/in.png",
			src:        magick.SourceInfo{Format: magick.FormatPNG},
			wantPath:   "/tmp/out.jpg",
			wantExt:    "jpg",
			wantMozJPG: true,
		},
		{
			name:     "mozjpeg ignored for webp target",
			output:   "/tmp/out.webp",
			mozjpeg:  true,
			input:    "/tmp/in.jpg",
			src:      magick.SourceInfo{Format: magick.FormatJPEG},
			wantPath: "/tmp/out.webp",
			wantExt:  "webp",
			wantWebP: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			convertOutput = tt.output
			convertOutDir = tt.outDir
			convertFormat = tt.format
			convertMozJPEG = tt.mozjpeg
			t.Cleanup(func() {
				convertOutput, convertOutDir, convertFormat, convertMozJPEG = "", "", "", false
			})

			out := outputSpecFor(tt.input, tt.src)
			if out.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", out.Path, tt.wantPath)
			}
			if out.Extension != tt.wantExt {
				t.Errorf("Extension = %q, want %q", out.Extension, tt.wantExt)
			}
			if out.WebP != tt.wantWebP {
				t.Errorf("WebP = %v, want %v", out.WebP, tt.wantWebP)
			}
			if out.MozJPEG != tt.wantMozJPG {
				t.Errorf("MozJPEG = %v, want %v", out.MozJPEG, tt.wantMozJPG)
			}
		})
	}
}
