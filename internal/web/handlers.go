package web

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"convertd/internal/apperror"
	"convertd/internal/config"
	"convertd/internal/logger"
	"convertd/internal/magick"
	"convertd/internal/metrics"
	"convertd/internal/probe"
	"convertd/internal/runner"
	"convertd/internal/tracing"
)

type Handler struct {
	config  *config.Config
	builder *magick.Builder
	runner  *runner.Runner
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		config: cfg,
		builder: magick.NewBuilder(&magick.Config{
			ConvertPath:    cfg.ConvertPath,
			DefaultQuality: cfg.DefaultQuality,
			Capabilities:   magick.NewBinaryProbeWithPaths(cfg.CWebPSearchPaths, cfg.CJpegSearchPaths),
		}),
		runner: runner.New(&runner.Config{Timeout: cfg.ConvertTimeout}),
	}
}

// Convert accepts a multipart upload, resolves the query options into a
// convert command, executes it, and streams the result back.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apperror.WriteJSON(w, apperror.ErrFileTooLarge)
			return
		}
		apperror.WriteJSON(w, apperror.Wrap(apperror.ErrMissingFile, err))
		return
	}
	defer func() { _ = file.Close() }()

	tempDir, err := os.MkdirTemp(h.config.TempDir, "convert-*")
	if err != nil {
		apperror.WriteJSON(w, apperror.Wrap(apperror.ErrInternal, err))
		return
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	srcPath := filepath.Join(tempDir, "input-"+uuid.New().String())
	size, err := writeUpload(srcPath, file)
	if err != nil {
		apperror.WriteJSON(w, apperror.Wrap(apperror.ErrInternal, err))
		return
	}
	metrics.ConversionInputBytes.Observe(float64(size))

	src, err := probe.File(srcPath)
	if err != nil {
		apperror.WriteJSON(w, apperror.Wrap(apperror.ErrUnsupportedMedia, err))
		return
	}

	opts := parseOptions(r.URL.Query())
	out := h.outputSpec(r, tempDir, src)

	cmd, err := h.builder.Build(src, opts, out)
	if err != nil {
		apperror.WriteJSON(w, apperror.Wrap(apperror.ErrBadRequest, err))
		return
	}

	log.Debug("command synthesized",
		"pipeline", cmd.Pipeline().String(),
		"source_format", src.Format.String(),
		"command", cmd.String(),
	)

	runCtx, span := tracing.StartConversion(r.Context(), cmd.Pipeline().String(), src.Format.String())
	start := time.Now()
	err = h.runner.Run(runCtx, cmd)
	metrics.RecordConversion(cmd.Pipeline().String(), err, time.Since(start).Seconds())
	if err != nil {
		tracing.RecordError(runCtx, err)
		span.End()
		log.Error("conversion failed", "error", err)
		apperror.WriteJSON(w, apperror.Wrap(apperror.ErrConversionFailed, err))
		return
	}
	span.End()

	result, err := os.Open(out.Path)
	if err != nil {
		apperror.WriteJSON(w, apperror.Wrap(apperror.ErrInternal, err))
		return
	}
	defer func() { _ = result.Close() }()

	w.Header().Set("Content-Type", contentType(out.Format()))
	w.Header().Set("Content-Disposition", `attachment; filename="`+outputFilename(header.Filename, out.Extension)+`"`)
	_, _ = io.Copy(w, result)
}

// outputSpec derives the target from the format query parameter, falling
// back to JPEG for formats the tool cannot write back (e.g. PDF sources).
func (h *Handler) outputSpec(r *http.Request, tempDir string, src magick.SourceInfo) magick.OutputSpec {
	ext := strings.ToLower(r.URL.Query().Get("format"))
	if ext == "" {
		ext = src.Format.String()
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	if magick.ParseFormat(ext) == magick.FormatUnknown || ext == "pdf" {
		ext = "jpg"
	}

	format := magick.ParseFormat(ext)
	moz := r.URL.Query().Get("mozjpeg")
	mozjpeg := format == magick.FormatJPEG && moz != "" && moz != "false" && moz != "0"

	return magick.OutputSpec{
		Path:      filepath.Join(tempDir, "output-"+uuid.New().String()+"."+ext),
		Extension: ext,
		WebP:      format == magick.FormatWEBP,
		MozJPEG:   mozjpeg,
	}
}

func writeUpload(path string, src io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()
	return io.Copy(f, src)
}

func contentType(format magick.Format) string {
	switch format {
	case magick.FormatPNG:
		return "image/png"
	case magick.FormatGIF:
		return "image/gif"
	case magick.FormatWEBP:
		return "image/webp"
	case magick.FormatBMP:
		return "image/bmp"
	case magick.FormatTIFF:
		return "image/tiff"
	default:
		return "image/jpeg"
	}
}

func outputFilename(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		base = "converted"
	}
	return base + "." + ext
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
