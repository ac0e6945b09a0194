// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/negroni"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/diffeo/go-notebook/restserver"
)

// serveHTTP runs the REST interface on the specified local address.
// This serves connections until the listener fails.
func serveHTTP(store notebook.Store, bind string, logRequests bool, token string) error {
	r := mux.NewRouter()
	restserver.PopulateRouter(r, store)
	r.Handle("/metrics", promhttp.Handler())

	n := negroni.New()
	if logRequests {
		n.Use(negroni.NewLogger())
	}
	n.Use(negroni.HandlerFunc(countRequests))
	if token != "" {
		n.Use(negroni.HandlerFunc(requireToken(token)))
	}
	n.UseHandler(r)

	return http.ListenAndServe(bind, n)
}

// requireToken rejects API requests that do not carry the configured
// bearer token.  /metrics stays open for the Prometheus scraper.
func requireToken(token string) negroni.HandlerFunc {
	header := "Bearer " + token
	return func(w http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
		if req.URL.Path != "/metrics" && req.Header.Get("Authorization") != header {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "bad or missing bearer token", http.StatusUnauthorized)
			return
		}
		next(w, req)
	}
}
