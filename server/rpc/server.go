/*
 * Copyright 2025 The DocVault Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package rpc provides the HTTP API of the DocVault server. Handlers resolve
// the authenticated principal and the current height and pass both down into
// the business logic explicitly.
package rpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/docvault-team/docvault/server/backend"
	"github.com/docvault-team/docvault/server/logging"
	"github.com/docvault-team/docvault/server/rpc/auth"
)

const shutdownTimeout = 10 * time.Second

// Server is a normal server that processes the logic requested by the client.
type Server struct {
	conf         *Config
	backend      *backend.Backend
	tokenManager *auth.TokenManager
	logger       logging.Logger

	httpServer    *http.Server
	serviceCtx    context.Context
	serviceCancel context.CancelFunc
}

// NewServer creates a new instance of Server.
func NewServer(conf *Config, be *backend.Backend) (*Server, error) {
	serviceCtx, serviceCancel := context.WithCancel(context.Background())

	s := &Server{
		conf:    conf,
		backend: be,
		tokenManager: auth.NewTokenManager(
			be.Config.SecretKey,
			be.Config.ParseTokenDuration(),
		),
		logger: logging.New("rpc"),

		serviceCtx:    serviceCtx,
		serviceCancel: serviceCancel,
	}

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", conf.Port),
		Handler: s.newRouter(),
	}

	return s, nil
}

// TokenManager returns the token manager of this server.
func (s *Server) TokenManager() *auth.TokenManager {
	return s.tokenManager
}

func (s *Server) newRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(s.loggingMiddleware)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", s.handleHealthz)

	router.Route("/v1", func(r chi.Router) {
		r.Use(s.handledCounterMiddleware)
		r.Use(auth.RequireAuth(s.tokenManager))

		r.Post("/vaults", s.handleRegisterVault)
		r.Get("/vaults", s.handleListVaults)
		r.Get("/vaults/{id}", s.handleGetVault)
		r.Put("/vaults/{id}", s.handleUpdateVault)

		r.Post("/vaults/{id}/grants", s.handleDelegateAccess)
		r.Get("/vaults/{id}/grants", s.handleListGrants)
		r.Get("/vaults/{id}/grants/{delegate}", s.handleGetGrant)

		r.Get("/stats", s.handleStats)
		r.Get("/events", s.handleEvents)
	})

	return router
}

// Start starts this server by opening the rpc port.
func (s *Server) Start() error {
	return s.listenAndServe()
}

// Shutdown shuts down this server.
func (s *Server) Shutdown(graceful bool) {
	s.serviceCancel()

	if graceful {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Errorf("HTTP server shutdown: %v", err)
		}
		return
	}

	if err := s.httpServer.Close(); err != nil {
		s.logger.Errorf("HTTP server close: %v", err)
	}
}

func (s *Server) listenAndServe() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.logger.Error(err)
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		s.logger.Infof("serving RPC on %d", s.conf.Port)

		var err error
		if s.conf.CertFile != "" && s.conf.KeyFile != "" {
			err = s.httpServer.ServeTLS(lis, s.conf.CertFile, s.conf.KeyFile)
		} else {
			err = s.httpServer.Serve(lis)
		}
		if err != http.ErrServerClosed {
			s.logger.Error(err)
		}
	}()

	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
