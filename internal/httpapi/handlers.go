package httpapi

import (
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/ls"
	"github.com/jpl-au/pubd/internal/publish"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/jpl-au/pubd/internal/validate"
	"golang.org/x/crypto/blake2b"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := ls.Options{
		Prefix:    q.Get("prefix"),
		Published: q.Get("published") == "true",
		Sort:      ls.SortName,
	}

	res, err := ls.Run(r.Context(), io.Discard, s.svc, opts)

	log.Event("http:list", "list").Author("http").Path(opts.Prefix).
		Detail("published", opts.Published).Detail("count", res.Count()).Write(err)

	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res.ToJSON())
}

func (s *Server) getObject(w http.ResponseWriter, r *http.Request) {
	target, err := objectParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := s.svc.Resolve(r.Context(), target, false)

	log.Event("http:read", "read").Author("http").Path(target).Write(err)

	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	tag := etag(o)
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, o.ToJSON(true))
}

// toggle serves POST /objects/{key}/publish and /objects/{key}/unpublish.
func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	target, err := objectParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	target, op, ok := splitAction(target)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}

	author := r.Header.Get(AuthorHeader)
	if author == "" {
		author = s.author
	}

	fn := s.svc.Publish
	if op == "unpublish" {
		fn = s.svc.Unpublish
	}

	l := log.Event("http:"+op, op).Author(author).Path(target)

	o, err := fn(r.Context(), target, author)
	publishTotal.WithLabelValues(op, outcome(err)).Inc()
	if err != nil {
		l.Write(err)
		writeError(w, statusFor(err), errorMessage(err))
		return
	}
	l.Resolved(o.Path).ResultRevision(o.Revision).Write(nil)

	writeJSON(w, http.StatusOK, o.ToJSON(false))
}

// objectParam returns the unescaped wildcard after /objects/.
func objectParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "*")
	p, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(p, "/"), nil
}

// splitAction separates the trailing publish or unpublish segment.
func splitAction(p string) (target, op string, ok bool) {
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "", "", false
	}
	switch op = p[i+1:]; op {
	case "publish", "unpublish":
		return p[:i], op, true
	}
	return "", "", false
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	if code := publish.StatusCode(err); code != 0 {
		return code
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, validate.ErrInvalidPath), errors.Is(err, validate.ErrPathTooLong):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errorMessage returns a publish error's message verbatim, and the full
// error text otherwise.
func errorMessage(err error) string {
	var pe *publish.Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, publish.ErrConflict):
		return outcomeConflict
	case errors.Is(err, publish.ErrPersistence):
		return outcomePersistence
	case errors.Is(err, store.ErrNotFound):
		return outcomeNotFound
	}
	return outcomeError
}

// etag identifies one stored state of an object. Every save bumps the
// revision, and the hash covers content and tags so a publish never reuses
// a validator.
func etag(o *store.Object) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(o.Content))
	for _, t := range o.Tags() {
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(t, "\x1f")))
	}
	return `"` + o.Key + "-" + strconv.Itoa(o.Revision) + "-" + hex.EncodeToString(h.Sum(nil)[:8]) + `"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	data, _ := store.MarshalJSON(errorBody{Code: code, Message: msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}
