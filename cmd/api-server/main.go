package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/projectflow-dev/projectflow/internal/formstore"
	"github.com/projectflow-dev/projectflow/internal/logger"
	"github.com/projectflow-dev/projectflow/internal/projectstore"
	"github.com/projectflow-dev/projectflow/internal/server"
	"github.com/projectflow-dev/projectflow/internal/userstore"
	"github.com/projectflow-dev/projectflow/pkg/renderer"
	"github.com/projectflow-dev/projectflow/pkg/util"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	snapshot := flag.String("snapshot", util.GetEnv("PF_SNAPSHOT", ""), "snapshot file for form persistence")
	seedDir := flag.String("seed-dir", util.GetEnv("PF_SEED_DIR", ""), "directory of form JSON files to load and watch")
	openapi := flag.String("openapi", "", "write OpenAPI JSON and exit")
	flag.Parse()

	logger.Set(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	forms := formstore.New()
	if *snapshot != "" {
		// Hydrate attaches the snapshotter so later mutations persist
		if err := formstore.Hydrate(forms, *snapshot); err != nil {
			logger.L.Error("load snapshot", "path", *snapshot, "err", err)
			os.Exit(1)
		}
	}
	if *seedDir != "" {
		if err := formstore.LoadDir(forms, *seedDir, logger.L); err != nil {
			logger.L.Error("load seed dir", "dir", *seedDir, "err", err)
			os.Exit(1)
		}
	}
	formstore.Seed(forms)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *seedDir != "" {
		w := formstore.NewWatcher(*seedDir, forms, time.Second, logger.L)
		stop, err := w.Start(ctx)
		if err != nil {
			logger.L.Error("watch seed dir", "dir", *seedDir, "err", err)
		} else {
			defer stop()
		}
	}

	rend := renderer.New(
		renderer.WithResolver(renderer.NewResolver()),
		renderer.WithLogger(logger.L),
	)

	r, api := server.New(server.Config{
		Forms:    forms,
		Projects: projectstore.New(),
		Users:    userstore.New(),
		Renderer: rend,
	})

	if *openapi != "" {
		data, err := json.MarshalIndent(api.OpenAPI(), "", "  ")
		if err != nil {
			logger.L.Error("marshal openapi", "err", err)
			os.Exit(1)
		}
		p := filepath.Clean(*openapi)
		if err := os.WriteFile(p, data, 0o600); err != nil {
			logger.L.Error("write openapi", "err", err)
			os.Exit(1)
		}
		return
	}

	logger.L.Info("listening", "addr", *addr)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.L.Error("server error", "err", err)
		os.Exit(1)
	}
}
