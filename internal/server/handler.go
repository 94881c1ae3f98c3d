package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/jsmodule"
	"github.com/jsmodule/cli/internal/output"
)

const (
	contentTypeJS   = "text/javascript; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Handler serves the resolve endpoint and the bundles it hands out.
type Handler struct {
	svc *jsmodule.Service
	log *log.Logger
}

// NewHandler returns the routed, logged handler for svc.
//
// Routes:
//
//	GET /resolve?file=a.js&file=b.js   {"js": [...]}
//	GET {bundlePath}{key}              bundle content
//	GET /healthz                       ok
//	GET /{id}                          script content, for debug-mode lists
func NewHandler(svc *jsmodule.Service) http.Handler {
	h := &Handler{svc: svc, log: output.With("http")}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /resolve", h.handleResolve)
	mux.HandleFunc("GET "+svc.BundlePath(), h.handleBundle)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	if svc.BundlePath() != "/" {
		mux.HandleFunc("GET /", h.handleContent)
	}

	return CORS(h.logRequests(mux))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	files := r.URL.Query()["file"]
	if files == nil {
		files = []string{}
	}

	res, err := h.svc.Resolve(files)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.Warn("writing response", "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) handleBundle(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, h.svc.BundlePath())
	if strings.Contains(key, "/") {
		h.writeError(w, r, oerrors.InvalidArgument("key", "must not contain '/'"))
		return
	}

	content, err := h.svc.Cache().FindContent(key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// Keys are content digests, so a bundle never changes under its key.
	w.Header().Set("Content-Type", contentTypeJS)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("ETag", `"`+key+`"`)
	if match := r.Header.Get("If-None-Match"); match == `"`+key+`"` {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write([]byte(content))
}

func (h *Handler) handleContent(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/")
	content, err := h.svc.Content(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(id))
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(content))
}

// contentTypeFor picks a Content-Type from the extension of id.
func contentTypeFor(id string) string {
	ext := path.Ext(id)
	if ext == ".js" {
		return contentTypeJS
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "text/plain; charset=utf-8"
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		h.log.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: err.Error(), Kind: string(oerrors.Kind(err))})
}

// StatusFor maps an error to the HTTP status it is reported with.
func StatusFor(err error) int {
	switch oerrors.Kind(err) {
	case oerrors.KindInvalidArgument:
		return http.StatusBadRequest
	case oerrors.KindDescriptorFormat, oerrors.KindCyclicDependency:
		return http.StatusUnprocessableEntity
	case oerrors.KindResourceUnavailable, oerrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		h.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
