package handler

import (
	"embed"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/unrolled/render"

	"github.com/angeloszaimis/dirserve/internal/listing"
	"github.com/angeloszaimis/dirserve/internal/metrics"
)

// BaseDir is the root every request path is resolved against.
const BaseDir = "."

const (
	msgNotFound    = "File not found"
	msgReadFailed  = "Could not read file"
	msgInvalidUTF8 = "File content is not valid UTF-8"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type FileListHandler struct {
	logger           *slog.Logger
	fs               afero.Fs
	render           *render.Render
	metricsCollector *metrics.Collector
}

type result struct {
	outcome    metrics.EventType
	statusCode int
	bytes      int64
}

func NewFileListHandler(logger *slog.Logger, fs afero.Fs, collector *metrics.Collector) *FileListHandler {
	return &FileListHandler{
		logger: logger,
		fs:     fs,
		render: render.New(render.Options{
			Directory:  "templates",
			FileSystem: &render.EmbedFileSystem{FS: templateFS},
			Extensions: []string{".tmpl"},
			Charset:    "utf-8",
		}),
		metricsCollector: collector,
	}
}

func (h *FileListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestPath := tailPath(r)

	log := h.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("path", requestPath))

	res := h.serve(w, requestPath, log)

	duration := time.Since(start)
	log.Debug("Request served",
		slog.String("outcome", string(res.outcome)),
		slog.Int("status", res.statusCode),
		slog.Duration("duration", duration))

	h.emitEvent(metrics.MetricEvent{
		Type:       res.outcome,
		Timestamp:  time.Now(),
		Path:       requestPath,
		Duration:   duration,
		StatusCode: res.statusCode,
		Bytes:      res.bytes,
	})
}

func (h *FileListHandler) serve(w http.ResponseWriter, requestPath string, log *slog.Logger) result {
	target, ok := resolve(requestPath)
	if !ok {
		log.Warn("Rejected path outside base directory")
		return h.text(w, http.StatusNotFound, metrics.EventNotFound, msgNotFound, log)
	}

	infos, err := listing.Read(h.fs, target)
	if err == nil {
		return h.list(w, requestPath, infos, log)
	}

	log.Debug("Not a readable directory, trying file", slog.String("target", target), slog.Any("err", err))

	return h.file(w, target, log)
}

func (h *FileListHandler) list(w http.ResponseWriter, requestPath string, infos []os.FileInfo, log *slog.Logger) result {
	entries := listing.Build(requestPath, infos)

	log.Debug("Listing directory",
		slog.Int("entries", len(entries)),
		slog.Int("hidden", len(infos)-len(entries)))

	if err := h.render.HTML(w, http.StatusOK, "listing", entries); err != nil {
		log.Error("Failed to render listing", slog.Any("err", err))
		return h.text(w, http.StatusInternalServerError, metrics.EventReadFailed, msgReadFailed, log)
	}

	return result{outcome: metrics.EventListingServed, statusCode: http.StatusOK}
}

func (h *FileListHandler) file(w http.ResponseWriter, target string, log *slog.Logger) result {
	f, err := h.fs.Open(target)
	if err != nil {
		return h.text(w, http.StatusNotFound, metrics.EventNotFound, msgNotFound, log)
	}
	defer f.Close()

	content, err := afero.ReadAll(f)
	if err != nil {
		log.Warn("Failed to read file", slog.Any("err", err))
		return h.text(w, http.StatusInternalServerError, metrics.EventReadFailed, msgReadFailed, log)
	}

	if !utf8.Valid(content) {
		return h.text(w, http.StatusInternalServerError, metrics.EventInvalidUTF8, msgInvalidUTF8, log)
	}

	log.Debug("Serving file", slog.String("size", humanize.Bytes(uint64(len(content)))))

	res := h.text(w, http.StatusOK, metrics.EventFileServed, string(content), log)
	res.bytes = int64(len(content))

	return res
}

func (h *FileListHandler) text(w http.ResponseWriter, status int, outcome metrics.EventType, body string, log *slog.Logger) result {
	if err := h.render.Text(w, status, body); err != nil {
		log.Error("Failed to write response", slog.Any("err", err))
	}

	return result{outcome: outcome, statusCode: status}
}

func (h *FileListHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}

	h.metricsCollector.Emit(event)
}

// tailPath returns the part of the URL after the leading slash.
func tailPath(r *http.Request) string {
	if p := r.PathValue("path"); p != "" {
		return p
	}

	return strings.TrimPrefix(r.URL.Path, "/")
}

// resolve maps a tail path to a location under BaseDir. It refuses anything
// that would leave BaseDir.
func resolve(requestPath string) (string, bool) {
	p := strings.TrimPrefix(requestPath, "./")
	if p == "" {
		return BaseDir, true
	}

	if !filepath.IsLocal(p) {
		return "", false
	}

	return BaseDir + "/" + p, true
}
