// Package swagger serves a machine-readable description of the admin API.
package swagger

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/sideline/internal/adapters/http/transport"
)

// Error constants.
var (
	ErrServe = errors.New("swagger serve failed")
)

// Register attaches the OpenAPI document route to r.
//
//	GET /openapi.json -> document for profile
func Register(r *mux.Router, profile transport.Profile) {
	if r == nil {
		panic("router is nil")
	}

	r.HandleFunc("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		doc, err := Document(profile)
		if err != nil {
			http.Error(w, ErrServe.Error()+": "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	}).Methods(http.MethodGet)
}
