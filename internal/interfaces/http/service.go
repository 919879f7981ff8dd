package httpinterface

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/nimbuswallet/nimbusd/internal/core/application"
)

// ServiceOpts defines the dependencies needed for creating the HTTP
// interface with the NewService method.
type ServiceOpts struct {
	Port        int
	NoCors      bool
	BalanceSvc  application.BalanceService
	ActivitySvc application.ActivityService
	TransferSvc application.TransferService
	Provider    application.SnapshotProvider
}

// Service is the HTTP surface the mobile shell queries for balances and
// activity. It owns no state, every request is answered from the engine.
type Service struct {
	opts   ServiceOpts
	server *http.Server
}

// NewService returns an HTTP Service ready to be started.
func NewService(opts ServiceOpts) *Service {
	svc := &Service{opts: opts}

	router := mux.NewRouter()
	router.HandleFunc("/v1/balance", svc.getBalance).Methods(http.MethodGet)
	router.HandleFunc("/v1/activity", svc.getActivity).Methods(http.MethodGet)
	router.HandleFunc(
		"/v1/activity/{id}/tags", svc.addTag,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/v1/activity/{id}/tags/{tag}", svc.removeTag,
	).Methods(http.MethodDelete)
	router.HandleFunc(
		"/v1/transfers", svc.recordTransfer,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/v1/transfers/pending", svc.getPendingTransfers,
	).Methods(http.MethodGet)
	router.HandleFunc(
		"/v1/transfers/{ref}/resolve", svc.resolveTransfer,
	).Methods(http.MethodPost)
	router.HandleFunc("/v1/refresh", svc.refresh).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	var handler http.Handler = router
	if !opts.NoCors {
		handler = cors.Default().Handler(router)
	}

	svc.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return svc
}

// Start serves the interface until Stop is called.
func (s *Service) Start() error {
	log.Infof("http interface is listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ServeHTTP dispatches the request through the service router without
// binding a listener.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}
