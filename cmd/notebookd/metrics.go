// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/negroni"
)

var httpRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "notebook",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests to the notebook API",
	},
	[]string{
		"method",
		"status",
	},
)

func init() {
	prometheus.MustRegister(httpRequests)
}

// countRequests is a negroni middleware that counts requests by method
// and response status.
func countRequests(w http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	next(w, req)
	status := 0
	if nw, ok := w.(negroni.ResponseWriter); ok {
		status = nw.Status()
	}
	httpRequests.With(prometheus.Labels{
		"method": req.Method,
		"status": strconv.Itoa(status),
	}).Inc()
}
