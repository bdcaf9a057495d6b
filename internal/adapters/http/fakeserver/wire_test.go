package fakeserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/okian/sideline/internal/adapters/http/fakeserver"
	"github.com/okian/sideline/internal/adapters/http/transport"
	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func TestWireFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	backend := fakeserver.New(transport.ProfileDemo,
		fakeserver.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(reg)), reg),
	)
	srv := httptest.NewServer(backend.Handler())
	defer srv.Close()

	e := httpexpect.Default(t, srv.URL)
	api := "/api"

	detail := e.GET(api+binding.NumberDetail.Path).WithQuery("id", 12).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	detail.Value("status").String().Equal("200")
	detail.Value("result").Object().Value("zodiacName").String().Equal("Pig")
	detail.Value("result").Object().Value("color").String().Equal("red")

	id := e.POST(api + binding.AmountAddCustom.Path).
		WithJSON(map[string]any{"items": []map[string]any{{"num": 5, "amount": 2.5}}}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("result").Number()
	id.Equal(1)

	page := e.POST(api + binding.AmountList.Path).
		WithJSON(map[string]any{"current": 1, "size": 5, "kind": "custom"}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("result").Object()
	page.Value("total").Number().Equal(1)
	page.Value("records").Array().Length().Equal(1)
	page.Value("records").Array().Value(0).Object().Value("total").Number().Equal(2.5)

	missing := e.GET(api+binding.NumberDetail.Path).WithQuery("id", 404).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	missing.Value("status").String().Equal(fakeserver.CodeNotFound)
	missing.NotContainsKey("result")

	e.GET(binding.NumberDetail.Path).WithQuery("id", 1).
		Expect().
		Status(http.StatusNotFound)
}
