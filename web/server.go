package main

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/DeafMist/top-headlines/internal/config"
	"github.com/DeafMist/top-headlines/internal/headlines"
	"github.com/DeafMist/top-headlines/internal/models"
	"github.com/DeafMist/top-headlines/internal/render"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	maxRequestIDLen = 64
)

type storiesFetcher interface {
	TopStories(ctx context.Context) ([]models.Story, error)
}

type pageRenderer interface {
	Render(w io.Writer, page string, data render.Page) error
}

type server struct {
	log     *slog.Logger
	cfg     *config.Web
	stories storiesFetcher
	pages   pageRenderer
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/name/{name}", s.handleName)
	r.Get("/headlines/{name}", s.handleHeadlines)
	r.Get("/link/{name}", s.handleLink)
	r.Get("/images/{name}", s.handleImages)

	return r
}

func (s *server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "<h1>Welcome!</h1>")
}

func (s *server) handleName(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, render.PageName, render.Page{Name: pathName(r)})
}

func (s *server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	s.renderStories(w, r, render.PageHeadlines, func(stories []models.Story) (any, error) {
		return headlines.Titles(stories)
	})
}

func (s *server) handleLink(w http.ResponseWriter, r *http.Request) {
	s.renderStories(w, r, render.PageLink, func(stories []models.Story) (any, error) {
		return headlines.Links(stories)
	})
}

func (s *server) handleImages(w http.ResponseWriter, r *http.Request) {
	s.renderStories(w, r, render.PageImages, func(stories []models.Story) (any, error) {
		return headlines.Images(stories)
	})
}

// renderStories fetches the feed, keeps the first headlines.Limit stories,
// projects them for the page and renders it.
func (s *server) renderStories(w http.ResponseWriter, r *http.Request, page string, project func([]models.Story) (any, error)) {
	stories, err := s.stories.TopStories(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	views, err := project(headlines.Top(stories, headlines.Limit))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, page, render.Page{Name: pathName(r), Headlines: views})
}

func (s *server) render(w http.ResponseWriter, r *http.Request, page string, data render.Page) {
	var buf bytes.Buffer
	if err := s.pages.Render(&buf, page, data); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("write response", slog.String("request_id", middleware.GetReqID(r.Context())), slog.Any("err", err))
	}
}

// fail answers with a 500. The error text is only shown in debug mode.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqID(r.Context())
	s.log.Error("request failed",
		slog.String("path", r.URL.Path),
		slog.String("request_id", reqID),
		slog.Any("err", err),
	)

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusInternalServerError)
	if s.cfg != nil && s.cfg.Debug {
		_, _ = fmt.Fprintf(w, "<h1>Internal Server Error</h1>\n<pre>%s</pre>\n<p>request %s</p>\n",
			html.EscapeString(err.Error()), html.EscapeString(reqID))
		return
	}
	_, _ = io.WriteString(w, "<h1>Internal Server Error</h1>\n<p>The server encountered an internal error and was unable to complete your request.</p>\n")
}

// pathName returns the {name} segment decoded, exactly as the client sent it.
func pathName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// requestID tags every request with an id, reusing a sane client supplied
// X-Request-Id and otherwise generating a UUIDv4.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("took", time.Since(start)),
				slog.String("remote", r.RemoteAddr),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
