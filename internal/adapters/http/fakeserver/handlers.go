package fakeserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/pkg/logger"
	"github.com/tidwall/sjson"
)

const maxBodyBytes = 1 << 20

func wrap[T, R any](fn func(T) (R, error)) func(T) (any, error) {
	return func(in T) (any, error) {
		return fn(in)
	}
}

// bodyHandler decodes a JSON body into T. An empty body is the zero T.
func bodyHandler[T any](s *Server, fn func(T) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
			s.fail(w, r, fmt.Errorf("%w: %v", ErrInvalid, err))
			return
		}
		out, err := fn(in)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.succeed(w, out)
	}
}

// idHandler decodes the id query parameter.
func idHandler(s *Server, fn func(int64) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q binding.IDQuery
		if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
			s.fail(w, r, fmt.Errorf("%w: %v", ErrInvalid, err))
			return
		}
		if q.ID <= 0 {
			s.fail(w, r, fmt.Errorf("%w: id is required", ErrInvalid))
			return
		}
		out, err := fn(q.ID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.succeed(w, out)
	}
}

func bareHandler(s *Server, fn func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.succeed(w, fn())
	}
}

func (s *Server) succeed(w http.ResponseWriter, data any) {
	s.writeEnvelope(w, s.profile.Envelope.SuccessCode, "ok", data)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := codeFor(err)
	s.logger.Debug(r.Context(), "request rejected",
		logger.String("path", r.URL.Path),
		logger.String("code", code),
		logger.Error(err),
	)
	s.writeEnvelope(w, code, err.Error(), nil)
}

// writeEnvelope writes {code, message, data} under the profile's field names.
// Failures carry no data field.
func (s *Server) writeEnvelope(w http.ResponseWriter, code, message string, data any) {
	env := s.profile.Envelope
	raw := []byte(`{}`)
	var err error
	if raw, err = sjson.SetBytes(raw, env.CodeField, code); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if raw, err = sjson.SetBytes(raw, env.MessageField, message); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if code == env.SuccessCode {
		payload, mErr := json.Marshal(data)
		if mErr != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": mErr.Error()})
			return
		}
		if raw, err = sjson.SetRawBytes(raw, env.DataField, payload); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
