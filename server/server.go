// Package server exposes the ledger operations over HTTP. The caller
// identity is taken from the request body as supplied: authenticating
// callers is the job of whatever sits in front of this API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mixtapeorg/libmixtape-go/store"
)

// Server serves the ledger API and persists state through a Store.
type Server struct {
	core  *Core
	store store.Store
	log   *zap.Logger
	http  *http.Server
}

// New creates a Server over the given core and store. Pass a MemStore
// for ephemeral deployments.
func New(core *Core, st store.Store, log *zap.Logger, listenAddr string) *Server {
	s := &Server{core: core, store: st, log: log}
	s.http = &http.Server{
		Addr:         listenAddr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Router builds the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(s.log))

	api := r.PathPrefix("/v1").Subrouter()

	api.HandleFunc("/records", s.handleCreateRecord).Methods(http.MethodPost)
	api.HandleFunc("/records", s.handleListRecords).Methods(http.MethodGet)
	api.HandleFunc("/records/{id}", s.handleGetRecord).Methods(http.MethodGet)
	api.HandleFunc("/records/{id}/tracks", s.handleAddTrack).Methods(http.MethodPost)
	api.HandleFunc("/records/{id}/transfer", s.handleTransfer).Methods(http.MethodPost)
	api.HandleFunc("/records/{id}/approve", s.handleApprove).Methods(http.MethodPost)
	api.HandleFunc("/records/{id}/play", s.handlePlay).Methods(http.MethodPost)

	api.HandleFunc("/accounts/{address}/likes", s.handleLike).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{address}/likes", s.handleGetLikes).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{address}/likes/{actor}", s.handleUnlike).Methods(http.MethodDelete)
	api.HandleFunc("/accounts/{address}/comments", s.handleAddComment).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{address}/comments", s.handleGetComments).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{address}/balance", s.handleGetBalance).Methods(http.MethodGet)

	api.HandleFunc("/treasury", s.handleGetTreasury).Methods(http.MethodGet)
	api.HandleFunc("/treasury/fee-rate", s.handleSetFeeRate).Methods(http.MethodPut)
	api.HandleFunc("/treasury/withdraw", s.handleWithdraw).Methods(http.MethodPost)

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully and
// writes a final snapshot.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("shutdown", zap.Error(err))
	}
	s.persist()
	return nil
}

// persist writes the current state through the store. Persistence
// failures are logged, not surfaced: the in-memory state remains
// authoritative and the next successful save catches up.
func (s *Server) persist() {
	if err := s.store.SaveSnapshot(s.core.Snapshot()); err != nil {
		s.log.Error("persist snapshot", zap.Error(err))
	}
}
