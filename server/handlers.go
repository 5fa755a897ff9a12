// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	riverrors "rivaas.dev/preflight/errors"
	"rivaas.dev/preflight/limits"
	"rivaas.dev/preflight/request"
)

var contentTypes = map[request.Format]string{
	request.FormatJSON:    "application/json",
	request.FormatYAML:    "application/yaml",
	request.FormatMsgPack: "application/msgpack",
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, _, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result := s.validator.Validate(req)
	s.logger.DebugContext(r.Context(), "request validated",
		"shape", req.Shape(),
		"violations", result.Len(),
	)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	req, format, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	fixed, err := s.validator.ValidateOrFix(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := request.Encode(fixed, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleLimits(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"limits": limits.All()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads the body of r as the shape named in the path. The body
// format follows Content-Type.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (request.Request, request.Format, error) {
	format := request.FormatFromContentType(r.Header.Get("Content-Type"))

	shape, err := request.ParseShape(r.PathValue("shape"))
	if err != nil {
		return nil, format, riverrors.WithStatus(err, http.StatusNotFound)
	}

	req, err := request.DecodeReader(shape, format, http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, format, riverrors.WithStatus(err, http.StatusRequestEntityTooLarge)
		}
		return nil, format, riverrors.WithStatus(err, http.StatusBadRequest)
	}

	return req, format, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if werr := riverrors.Write(w, r, s.formatter, err); werr != nil {
		s.logger.WarnContext(r.Context(), "failed to write error response", "error", werr)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}
