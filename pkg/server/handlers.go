package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/boxsize/pkg/buildinfo"
	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/pipeline"
	"github.com/matzehuels/boxsize/pkg/render/dot"
)

// SizeResponse is the body of a successful POST /v1/size.
type SizeResponse struct {
	Report   *document.Report `json:"report"`
	DocHash  string           `json:"doc_hash"`
	CacheHit bool             `json:"cache_hit"`
}

type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

var contentTypes = map[string]string{
	dot.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	dot.FormatSVG: "image/svg+xml",
	dot.FormatPNG: "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	res, err := s.size(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(res.CacheHit))
	s.respondJSON(w, http.StatusOK, SizeResponse{
		Report:   res.Report,
		DocHash:  res.DocHash,
		CacheHit: res.CacheHit,
	})
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ropts := pipeline.RenderOptions{Format: q.Get("format")}
	detailed, err := boolParam(q.Get("detailed"), "detailed")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ropts.Detailed = detailed
	ropts.SetDefaults()
	if err := ropts.Validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.size(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out, hit, err := s.runner.Render(r.Context(), res.Report, ropts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[ropts.Format])
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// size decodes the request body and runs the sizing pipeline on it.
func (s *Server) size(w http.ResponseWriter, r *http.Request) (*pipeline.Result, error) {
	format, err := document.FormatFromContentType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	opts, err := sizeOptions(r)
	if err != nil {
		return nil, err
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	doc, err := document.Decode(body, format)
	if err != nil {
		return nil, err
	}

	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	return s.runner.Size(r.Context(), doc, opts)
}

func sizeOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	var err error
	if opts.Width, err = intParam(q.Get("width"), "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q.Get("height"), "height"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh"), "refresh"); err != nil {
		return opts, err
	}
	opts.Mode = pipeline.Mode(q.Get("mode"))
	return opts, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not an integer", name, v)
	}
	return n, nil
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", name, v)
	}
	return b, nil
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// respondJSON sends v as a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// respondError maps err to a status and a {code, message} body. Internal
// errors are logged and their details withheld.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		err = errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxErr.Limit)
	}

	status := errors.HTTPStatus(err)
	resp := errorResponse{
		Code:      errors.GetCode(err),
		Message:   detail(err),
		RequestID: RequestID(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", resp.RequestID)
		resp.Code = errors.ErrCodeInternal
		resp.Message = "internal error"
	}
	s.respondJSON(w, status, resp)
}

// detail returns the user message of err followed by its cause, if any.
func detail(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return errors.UserMessage(err)
}
