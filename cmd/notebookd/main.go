// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package notebookd provides the notebook storage daemon.  It serves
// the notebook REST API over HTTP from any of the supported storage
// backends, plus Prometheus metrics on /metrics.
package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/diffeo/go-notebook/backend"
)

func main() {
	httpBind := flag.String("http", ":5980",
		"[ip]:port for HTTP REST interface")
	storage := backend.Backend{Implementation: "memory", Address: ""}
	flag.Var(&storage, "backend", "impl[:address] of the storage backend")
	config := flag.String("config", "", "server configuration YAML file")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	token := flag.String("token", "",
		"if set, require this bearer token on API requests")
	flag.Parse()

	if *config != "" {
		cfg, err := loadConfigYaml(*config)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not load YAML configuration")
			return
		}

		// The configuration file fills in anything the command
		// line didn't say explicitly
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["http"] && cfg.HTTP != "" {
			*httpBind = cfg.HTTP
		}
		if !set["backend"] && cfg.Backend != "" {
			if err := storage.Set(cfg.Backend); err != nil {
				logrus.WithFields(logrus.Fields{
					"err": err,
				}).Fatal("Invalid backend in configuration")
				return
			}
		}
		if !set["log-requests"] && cfg.LogRequests {
			*logRequests = true
		}
		if !set["token"] && cfg.Token != "" {
			*token = cfg.Token
		}
	}

	store, err := storage.Store()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not create notebook backend")
		return
	}

	logrus.WithFields(logrus.Fields{
		"bind":    *httpBind,
		"backend": storage.String(),
	}).Info("Starting notebook server")

	err = serveHTTP(store, *httpBind, *logRequests, *token)
	logrus.WithFields(logrus.Fields{
		"err": err,
	}).Fatal("HTTP server failed")
}
