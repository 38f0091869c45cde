// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"log/slog"
	"net/http"

	"chatty/cli/internal/backend/grpcclient"
	"chatty/cli/internal/config"
)

// New creates the API implementation selected by cfg.Transport.
func New(cfg config.Config, log *slog.Logger) (API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Transport == config.TransportGRPC {
		return grpcclient.New(grpcclient.Options{
			Addr:     cfg.GRPCAddress(),
			Insecure: cfg.GRPCInsecure(),
			Timeout:  cfg.Timeout(),
			Logger:   log,
		}), nil
	}
	return NewHTTP(cfg.HTTPBaseURL(), &http.Client{Timeout: cfg.Timeout()}, log), nil
}
