package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"convertd/internal/magick"
	"convertd/internal/probe"
	"convertd/internal/runner"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>...",
	Short: "Convert images through the external ImageMagick pipeline",
	Long: `Convert one or more images. With a single input, -o names the output
file; with several, --out-dir receives one output per input.

Examples:
  cvt convert photo.jpg -o thumb.jpg --width 200
  cvt convert photo.jpg -o cover.jpg --width 800 --height 600 --crop --gravity north
  cvt convert scan.pdf -o page2.png --page 2 --density 150
  cvt convert *.jpg --out-dir webp/ --format webp
  cvt convert photo.jpg -o out.jpg --width 4000 --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var (
	convertOutput  string
	convertOutDir  string
	convertFormat  string
	convertMozJPEG bool
	convertDryRun  bool
)

// optionFlags maps each recognized option to the convert command flag of the
// same name. Presence is read back via Changed so absent flags stay absent
// in the bag.
var optionFlags = []string{
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
}

func init() {
	f := convertCmd.Flags()

	f.StringVarP(&convertOutput, "output", "o", "", "Output file (single input)")
	f.StringVar(&convertOutDir, "out-dir", "", "Output directory (multiple inputs)")
	f.StringVar(&convertFormat, "format", "", "Target format (jpg, png, gif, webp, ...)")
	f.BoolVar(&convertMozJPEG, "mozjpeg", false, "Compress JPEG output through MozJPEG when installed")
	f.BoolVar(&convertDryRun, "dry-run", false, "Print the synthesized command instead of running it")

	f.Int(magick.OptWidth, 0, "Target width in pixels")
	f.Int(magick.OptHeight, 0, "Target height in pixels")
	f.Bool(magick.OptCrop, false, "Crop to exact width x height")
	f.String(magick.OptGravity, "", "Crop anchor (center, north, southeast, ...)")
	f.Bool(magick.OptResize, false, "Use -resize instead of -thumbnail")
	f.Bool(magick.OptPreserveNaturalSize, false, "Never upscale past the source dimensions")
	f.String(magick.OptColorspace, "", "Target colorspace (sRGB, Gray, CMYK, ...)")
	f.Bool(magick.OptMonochrome, false, "Reduce to black and white")
	f.Bool(magick.OptStrip, false, "Strip embedded metadata")
	f.Int(magick.OptThread, 0, "Thread limit for the conversion")
	f.Int(magick.OptQuality, 0, "Output quality (0-100)")
	f.Int(magick.OptDensity, 0, "Rasterization density for PDF sources")
	f.Int(magick.OptGIFFrame, 0, "Frame to keep when flattening an animated GIF")
	f.Bool(magick.OptWebPLossless, false, "Lossless WebP encoding")
	f.String(magick.OptBackground, "", "Background color")
	f.String(magick.OptRotate, "", "Rotation in degrees")
	f.String(magick.OptUnsharp, "", "Unsharp mask geometry")
	f.String(magick.OptSharpen, "", "Sharpen geometry")
	f.String(magick.OptBlur, "", "Blur geometry")
	f.String(magick.OptFilter, "", "Resampling filter name")
	f.Int("page", 0, "PDF page to convert (1-based)")
}

// flagOptions turns explicitly set flags into the option bag.
func flagOptions(cmd *cobra.Command) *magick.Options {
	opts := magick.NewOptions()
	for _, name := range optionFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		// Every flag type round-trips through its string form.
		opts.Set(name, cmd.Flags().Lookup(name).Value.String())
	}
	if cmd.Flags().Changed("page") {
		page, _ := cmd.Flags().GetInt("page")
		opts.SetInt(magick.OptPageNumber, page)
	}
	return opts
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) > 1 && convertOutput != "" {
		return fmt.Errorf("-o only applies to a single input; use --out-dir")
	}
	if len(args) > 1 && convertOutDir == "" {
		return fmt.Errorf("multiple inputs need --out-dir")
	}

	builder := magick.NewBuilder(&magick.Config{
		ConvertPath:    cfg.ConvertPath,
		DefaultQuality: cfg.DefaultQuality,
		Capabilities:   magick.NewBinaryProbeWithPaths(cfg.CWebPSearchPaths, cfg.CJpegSearchPaths),
	})
	run := runner.New(&runner.Config{Timeout: cfg.ConvertTimeout})

	var bar *progressbar.ProgressBar
	if len(args) > 1 && !printer.IsJSON() && !printer.IsQuiet() && !convertDryRun {
		bar = progressbar.Default(int64(len(args)), "converting")
	}

	ctx := context.Background()
	var failed int
	var results []map[string]interface{}

	for _, input := range args {
		result := map[string]interface{}{"input": input}

		err := convertOne(ctx, cmd, builder, run, input, result)
		if err != nil {
			printer.Error("%s: %v", input, err)
			result["error"] = err.Error()
			failed++
		}

		results = append(results, result)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if printer.IsJSON() {
		if err := printer.JSON(map[string]interface{}{
			"results": results,
			"total":   len(args),
			"failed":  failed,
		}); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(args))
	}
	return nil
}

func convertOne(ctx context.Context, cmd *cobra.Command, builder *magick.Builder, run *runner.Runner, input string, result map[string]interface{}) error {
	src, err := probe.File(input)
	if err != nil {
		return err
	}

	out := outputSpecFor(input, src)
	opts := flagOptions(cmd)

	command, err := builder.Build(src, opts, out)
	if err != nil {
		return err
	}

	result["output"] = out.Path
	result["pipeline"] = command.Pipeline().String()

	if convertDryRun {
		result["command"] = command.String()
		printer.Println(command.String())
		return nil
	}

	if err := run.Run(ctx, command); err != nil {
		return err
	}

	printer.Success("%s → %s (%s)", input, out.Path, command.Pipeline())
	return nil
}

func outputSpecFor(input string, src magick.SourceInfo) magick.OutputSpec {
	ext := strings.ToLower(strings.TrimPrefix(convertFormat, "."))
	path := convertOutput

	if path != "" && ext == "" {
		ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	if ext == "" {
		ext = src.Format.String()
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	if magick.ParseFormat(ext) == magick.FormatUnknown || ext == "pdf" {
		ext = "jpg"
	}

	if path == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		path = filepath.Join(convertOutDir, base+"."+ext)
	}

	format := magick.ParseFormat(ext)
	return magick.OutputSpec{
		Path:      path,
		Extension: ext,
		WebP:      format == magick.FormatWEBP,
		MozJPEG:   convertMozJPEG && format == magick.FormatJPEG,
	}
}
