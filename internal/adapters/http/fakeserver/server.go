// Package fakeserver is an in-memory development backend for the zodiac
// admin API. It serves every route of the binding table under a profile's
// prefix and wraps results in that profile's envelope.
package fakeserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/okian/sideline/internal/adapters/http/swagger"
	"github.com/okian/sideline/internal/adapters/http/transport"
	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/internal/domain/types"
	"github.com/okian/sideline/pkg/logger"
	"github.com/okian/sideline/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server routes the admin API onto a Store.
type Server struct {
	profile  transport.Profile
	store    *Store
	token    string
	logger   logger.Logger
	metrics  *metrics.Manager
	gatherer prometheus.Gatherer

	router  *mux.Router
	decoder *schema.Decoder
}

// New builds a server for profile.
func New(profile transport.Profile, opts ...Option) *Server {
	s := &Server{
		profile:  profile,
		logger:   logger.Nop(),
		metrics:  metrics.Default(),
		gatherer: metrics.GetRegistry(),
		router:   mux.NewRouter(),
		decoder:  schema.NewDecoder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewStore()
	}
	s.decoder.IgnoreUnknownKeys(true)
	s.logger = s.logger.Named("fakeserver").With(logger.String("profile", profile.Name))
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Store returns the backing store.
func (s *Server) Store() *Store { return s.store }

func (s *Server) routes() {
	s.router.Use(s.metricsMiddleware)

	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	swagger.Register(s.router, s.profile)

	// A PathPrefix subrouter answers 404 for a known path with the wrong
	// method, so the prefix goes on each route instead.
	api := s.router.NewRoute().Subrouter()
	api.Use(s.authMiddleware)

	st := s.store
	handlers := map[string]http.HandlerFunc{
		binding.AmountList.Name:        bodyHandler(s, func(p types.AmountListParams) (any, error) { return st.ListAmounts(p), nil }),
		binding.AmountAddByNum.Name:    bodyHandler(s, wrap(st.AddAmountByNum)),
		binding.AmountAddByZodiac.Name: bodyHandler(s, wrap(st.AddAmountByZodiac)),
		binding.AmountAddCustom.Name:   bodyHandler(s, wrap(st.AddAmountCustom)),
		binding.AmountDelete.Name:      idHandler(s, func(id int64) (any, error) { return st.DeleteAmount(id), nil }),

		binding.NumberAdd.Name:    bodyHandler(s, wrap(st.AddNumber)),
		binding.NumberDelete.Name: idHandler(s, func(id int64) (any, error) { return st.DeleteNumber(id), nil }),
		binding.NumberUpdate.Name: bodyHandler(s, wrap(st.UpdateNumber)),
		binding.NumberDetail.Name: idHandler(s, wrap(st.NumberDetail)),

		binding.ZodiacList.Name:     bareHandler(s, func() any { return st.ListZodiacs() }),
		binding.ZodiacAdd.Name:      bodyHandler(s, wrap(st.AddZodiac)),
		binding.ZodiacUpdate.Name:   bodyHandler(s, wrap(st.UpdateZodiac)),
		binding.ZodiacDelete.Name:   idHandler(s, wrap(st.DeleteZodiac)),
		binding.ZodiacHomeType.Name: bareHandler(s, func() any { return st.HomeTypes() }),
	}
	for _, b := range binding.Table() {
		api.HandleFunc(s.profile.PathPrefix+b.Path, handlers[b.Name]).Methods(b.Method).Name(b.Name)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
