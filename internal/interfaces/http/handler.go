package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/nimbuswallet/nimbusd/internal/core/application"
	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/pkg/satutil"
)

type balanceResponse struct {
	application.BalanceSnapshot
	TotalBtc string `json:"totalBtc"`
}

type recordTransferRequest struct {
	Type      domain.TransferType `json:"type"`
	AmountSat int64               `json:"amountSat"`
	TxID      string              `json:"txid,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) getBalance(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.opts.BalanceSvc.GetBalanceSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		BalanceSnapshot: *snapshot,
		TotalBtc:        satutil.ToBTC(snapshot.TotalSat).String(),
	})
}

func (s *Service) getActivity(w http.ResponseWriter, r *http.Request) {
	filter := parseActivityFilter(r)
	entries, err := s.opts.ActivitySvc.GetActivityFeed(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Service) addTag(w http.ResponseWriter, r *http.Request) {
	activityID := mux.Vars(r)["id"]

	var body struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.opts.ActivitySvc.AddTag(r.Context(), activityID, body.Tag); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) removeTag(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := s.opts.ActivitySvc.RemoveTag(r.Context(), vars["id"], vars["tag"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) recordTransfer(w http.ResponseWriter, r *http.Request) {
	var body recordTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	transfer, err := s.opts.TransferSvc.RecordTransferStart(
		r.Context(), body.Type, body.AmountSat, body.TxID,
	)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidAmount) ||
			errors.Is(err, domain.ErrInvalidTransferType) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusCreated, transfer)
}

func (s *Service) getPendingTransfers(w http.ResponseWriter, r *http.Request) {
	var types []domain.TransferType
	if raw := r.URL.Query().Get("type"); raw != "" {
		types = append(types, domain.TransferType(raw))
	}

	pending, err := s.opts.TransferSvc.PendingTransfers(r.Context(), types...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Service) resolveTransfer(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	if err := s.opts.TransferSvc.ResolveTransfer(r.Context(), ref); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) refresh(w http.ResponseWriter, r *http.Request) {
	if _, err := s.opts.Provider.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseActivityFilter(r *http.Request) application.ActivityFilter {
	query := r.URL.Query()

	filter := application.ActivityFilter{
		Direction: application.DirectionFilter(query.Get("direction")),
		// transfers are part of the feed unless the caller opts out.
		IncludeTransfers: query.Get("includeTransfers") != "false",
	}
	if kind := query.Get("type"); kind != "" {
		filter.Kinds = []domain.ActivityKind{domain.ActivityKind(kind)}
	}
	if tags := query.Get("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	return filter
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warnf("trying to encode http response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
