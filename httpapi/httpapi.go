// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package httpapi serves record exports as HTTP downloads.
package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/UNO-SOFT/recsheet"
	"github.com/UNO-SOFT/recsheet/download"
	"github.com/UNO-SOFT/recsheet/sheetlib"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodySize limits the size of the posted records.
const MaxBodySize = 64 << 20

// Server exports posted JSON records.
type Server struct {
	Library    recsheet.Library
	Executor   recsheet.Executor
	Logger     *slog.Logger
	Store      *download.Store
	Classifier recsheet.Classifier
}

// Handler returns the router:
//
//	POST /export?format=xlsx&file=datos.xlsx&sheet=Datos
//	GET  /healthz
//
// Unset fields get their defaults in a copy; s itself is not modified.
func (s *Server) Handler() http.Handler {
	s = s.withDefaults()
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequest)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Post("/export", s.export)
	return r
}

// withDefaults returns a copy of s with the unset fields filled.
func (s *Server) withDefaults() *Server {
	c := *s
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Store == nil {
		c.Store = &download.Store{}
	}
	if c.Library == nil {
		c.Library = sheetlib.New()
	}
	return &c
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := recsheet.ParseFormat(q.Get("format"))
	if err != nil {
		http.Error(w, err.Error()+": "+q.Get("format"), http.StatusBadRequest)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := recsheet.ParseJSONRecords(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	host := download.NewResponseHost(w, s.Store)
	exp := recsheet.Exporter{
		Library:    s.Library,
		Host:       host,
		Executor:   s.Executor,
		Logger:     s.Logger.With("request", middleware.GetReqID(r.Context())),
		Format:     format,
		Classifier: s.Classifier,
	}
	if err := exp.Export(q.Get("file"), q.Get("sheet"), records); err != nil {
		s.Logger.Error("export", "error", err)
		if !host.Written() {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if !host.Written() {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "bytes", ww.BytesWritten(), "dur", time.Since(start),
			"request", middleware.GetReqID(r.Context()))
	})
}
