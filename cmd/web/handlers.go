// Copyright 2023 Niklas Kohl
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nkohl/pfennig/lib/moneymoney"
)

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.client.ExportAccounts(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.client.ExportCategories(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	params, err := transactionParams(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := s.client.ExportTransactions(r.Context(), params)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	var params moneymoney.ExportPortfolioParams
	q := r.URL.Query()
	if v := q.Get("account"); v != "" {
		params = params.WithAccount(v)
	}
	if v := q.Get("assetClass"); v != "" {
		params = params.WithAssetClass(v)
	}
	positions, err := s.client.ExportPortfolio(r.Context(), params)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, positions)
}

// transactionParams reads the export filter from the query string.
func transactionParams(q url.Values) (moneymoney.ExportTransactionsParams, error) {
	var params moneymoney.ExportTransactionsParams
	if v := q.Get("from"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, fmt.Errorf("invalid from date %q, want YYYY-MM-DD", v)
		}
		params = params.WithFrom(day)
	}
	if v := q.Get("to"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, fmt.Errorf("invalid to date %q, want YYYY-MM-DD", v)
		}
		params = params.WithTo(day)
	}
	if v := q.Get("account"); v != "" {
		params = params.WithAccount(v)
	}
	if v := q.Get("category"); v != "" {
		params = params.WithCategory(v)
	}
	return params, nil
}

// fail maps a client error onto a status code. A failed osascript round
// trip is a bad gateway, a rejected filter a bad request, anything else an
// internal error.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var terr *moneymoney.TransportError
	switch {
	case errors.As(err, &terr):
		s.writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, moneymoney.ErrDegenerateDateRange):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.log.Warn().Int("status", status).Str("error", message).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": message})
}
