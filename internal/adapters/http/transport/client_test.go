package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/okian/sideline/internal/adapters/http/transport"
	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/internal/domain/types"
	"github.com/okian/sideline/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// captured is what the test backend saw.
type captured struct {
	method string
	path   string
	query  string
	body   string
	header http.Header
}

type backend struct {
	mu       sync.Mutex
	requests []captured
	status   int
	reply    string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, captured{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		body:   string(raw),
		header: r.Header.Clone(),
	})
	status, reply := b.status, b.reply
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

func (b *backend) respond(status int, reply string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status, b.reply = status, reply
}

func (b *backend) last() captured {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1]
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func isolatedMetrics() *metrics.Manager {
	return metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
}

func TestClientRequest(t *testing.T) {
	Convey("Given a backend and a demo profile client", t, func() {
		be := &backend{}
		srv := httptest.NewServer(be)
		defer srv.Close()

		client := transport.New(
			transport.WithBaseURL(srv.URL+"/"),
			transport.WithProfile(transport.ProfileDemo),
			transport.WithLogoutCodes("8888", "8889"),
			transport.WithMetrics(isolatedMetrics()),
		)
		ctx := context.Background()

		Convey("A query invocation is sent as GET under the /api prefix", func() {
			be.respond(0, `{"status":200,"message":"ok","result":true}`)
			inv, err := binding.AmountDelete.ByID(42)
			So(err, ShouldBeNil)

			var ok bool
			err = client.Request(ctx, inv, &ok)

			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(be.count(), ShouldEqual, 1)
			got := be.last()
			So(got.method, ShouldEqual, http.MethodGet)
			So(got.path, ShouldEqual, "/api/sideline/zodiac/record/delete")
			So(got.query, ShouldEqual, "id=42")
			So(got.body, ShouldEqual, "")
			So(got.header.Get("Content-Type"), ShouldEqual, "")
			So(got.header.Get("Authorization"), ShouldEqual, "")
			_, uerr := uuid.Parse(got.header.Get(transport.HeaderRequestID))
			So(uerr, ShouldBeNil)
		})

		Convey("A body invocation is sent as a JSON POST", func() {
			be.respond(0, `{"status":"200","message":"","result":7}`)

			var id int64
			err := client.Request(ctx, binding.ZodiacAdd.Body(types.AddZodiacParams{Name: "Rat"}), &id)

			So(err, ShouldBeNil)
			So(id, ShouldEqual, 7)
			got := be.last()
			So(got.method, ShouldEqual, http.MethodPost)
			So(got.path, ShouldEqual, "/api/sideline/zodiac/zh/add")
			So(got.query, ShouldEqual, "")
			So(got.body, ShouldEqual, `{"name":"Rat"}`)
			So(got.header.Get("Content-Type"), ShouldEqual, "application/json")
		})

		Convey("A bare invocation carries no query and no body", func() {
			be.respond(0, `{"status":200,"result":[{"value":1,"label":"domestic"}]}`)

			var out []types.HomeType
			err := client.Request(ctx, binding.ZodiacHomeType.Bare(), &out)

			So(err, ShouldBeNil)
			So(out, ShouldResemble, []types.HomeType{{Value: 1, Label: "domestic"}})
			So(be.last().query, ShouldEqual, "")
			So(be.last().body, ShouldEqual, "")
		})

		Convey("A null result leaves the output untouched", func() {
			be.respond(0, `{"status":200,"result":null}`)
			out := []types.ZodiacList{{ID: 1}}

			So(client.Request(ctx, binding.ZodiacList.Bare(), &out), ShouldBeNil)
			So(out, ShouldHaveLength, 1)
		})

		Convey("A nil output discards the payload", func() {
			be.respond(0, `{"status":200,"result":{"id":1}}`)
			So(client.Request(ctx, binding.ZodiacList.Bare(), nil), ShouldBeNil)
		})

		Convey("A non-success code is a backend error", func() {
			be.respond(0, `{"status":1001,"message":"zodiac name taken"}`)

			err := client.Request(ctx, binding.ZodiacAdd.Body(types.AddZodiacParams{Name: "Rat"}), new(int64))

			So(errors.Is(err, transport.ErrTransport), ShouldBeTrue)
			So(errors.Is(err, transport.ErrBackend), ShouldBeTrue)
			So(errors.Is(err, transport.ErrLoggedOut), ShouldBeFalse)
			var te *transport.Error
			So(errors.As(err, &te), ShouldBeTrue)
			So(te.Code, ShouldEqual, "1001")
			So(te.Message, ShouldEqual, "zodiac name taken")
			So(te.Binding, ShouldEqual, "zodiac.add")
			So(err.Error(), ShouldContainSubstring, "zodiac name taken")
		})

		Convey("A logout code is reported as logged out", func() {
			be.respond(0, `{"status":"8888","message":"token expired"}`)

			err := client.Request(ctx, binding.ZodiacList.Bare(), nil)

			So(errors.Is(err, transport.ErrLoggedOut), ShouldBeTrue)
			So(transport.KindOf(err), ShouldEqual, transport.KindLoggedOut)
		})

		Convey("A non-2xx status is a status error carrying the message", func() {
			be.respond(http.StatusBadGateway, `{"message":"upstream down"}`)

			err := client.Request(ctx, binding.ZodiacList.Bare(), nil)

			So(errors.Is(err, transport.ErrStatus), ShouldBeTrue)
			var te *transport.Error
			So(errors.As(err, &te), ShouldBeTrue)
			So(te.Status, ShouldEqual, http.StatusBadGateway)
			So(te.Message, ShouldEqual, "upstream down")
		})

		Convey("A body that is not JSON is a decode error", func() {
			be.respond(0, `<html>login</html>`)

			err := client.Request(ctx, binding.ZodiacList.Bare(), nil)

			So(transport.KindOf(err), ShouldEqual, transport.KindDecode)
		})

		Convey("An envelope without the code field is a decode error", func() {
			be.respond(0, `{"code":"0000","data":1}`)

			err := client.Request(ctx, binding.ZodiacList.Bare(), nil)

			So(transport.KindOf(err), ShouldEqual, transport.KindDecode)
		})

		Convey("A payload of the wrong shape is a decode error", func() {
			be.respond(0, `{"status":200,"result":"many"}`)

			var id int64
			err := client.Request(ctx, binding.ZodiacAdd.Body(types.AddZodiacParams{}), &id)

			So(transport.KindOf(err), ShouldEqual, transport.KindDecode)
		})

		Convey("An unencodable body never reaches the backend", func() {
			err := client.Request(ctx, binding.ZodiacAdd.Body(make(chan int)), nil)

			So(transport.KindOf(err), ShouldEqual, transport.KindEncode)
			So(be.count(), ShouldEqual, 0)
		})

		Convey("A canceled context surfaces as a network error", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			err := client.Request(cctx, binding.ZodiacList.Bare(), nil)

			So(transport.KindOf(err), ShouldEqual, transport.KindNetwork)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given a default profile client with a token", t, func() {
		be := &backend{reply: `{"code":"0000","msg":"","data":true}`}
		srv := httptest.NewServer(be)
		defer srv.Close()

		client := transport.New(
			transport.WithBaseURL(srv.URL),
			transport.WithProfile(transport.ProfileDefault),
			transport.WithToken("secret"),
			transport.WithTimeout(time.Second),
			transport.WithMetrics(isolatedMetrics()),
		)

		Convey("Paths carry no prefix and requests are authenticated", func() {
			inv, err := binding.NumberDelete.ByID(5)
			So(err, ShouldBeNil)

			var ok bool
			So(client.Request(context.Background(), inv, &ok), ShouldBeNil)

			So(ok, ShouldBeTrue)
			So(be.last().path, ShouldEqual, "/sideline/zodiac/num/delete")
			So(be.last().header.Get("Authorization"), ShouldEqual, "Bearer secret")
			So(client.URL(binding.NumberDelete), ShouldEqual, srv.URL+"/sideline/zodiac/num/delete")
			So(client.Profile().Name, ShouldEqual, "default")
		})

		Convey("The demo success code is a failure here", func() {
			be.respond(0, `{"code":"200","data":true}`)
			err := client.Request(context.Background(), binding.ZodiacList.Bare(), nil)
			So(errors.Is(err, transport.ErrBackend), ShouldBeTrue)
		})
	})

	Convey("Given a backend that is gone", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client := transport.New(transport.WithBaseURL(url), transport.WithMetrics(isolatedMetrics()))

		Convey("The error is a network transport error", func() {
			err := client.Request(context.Background(), binding.ZodiacList.Bare(), nil)
			So(errors.Is(err, transport.ErrTransport), ShouldBeTrue)
			So(transport.KindOf(err), ShouldEqual, transport.KindNetwork)
		})
	})
}

func TestProfiles(t *testing.T) {
	Convey("ProfileByName resolves the built-in profiles", t, func() {
		p, err := transport.ProfileByName("demo")
		So(err, ShouldBeNil)
		So(p.PathPrefix, ShouldEqual, "/api")
		So(p.Envelope.SuccessCode, ShouldEqual, "200")

		p, err = transport.ProfileByName("default")
		So(err, ShouldBeNil)
		So(p.PathPrefix, ShouldEqual, "")
		So(p.Envelope.DataField, ShouldEqual, "data")

		_, err = transport.ProfileByName("legacy")
		So(err, ShouldNotBeNil)
	})

	Convey("KindOf ignores foreign errors", t, func() {
		So(transport.KindOf(errors.New("x")), ShouldEqual, transport.Kind(""))
	})

	Convey("RequesterFunc forwards the call", t, func() {
		var seen binding.Invocation
		r := transport.RequesterFunc(func(_ context.Context, inv binding.Invocation, _ any) error {
			seen = inv
			return nil
		})
		So(r.Request(context.Background(), binding.ZodiacList.Bare(), nil), ShouldBeNil)
		So(seen.Binding, ShouldResemble, binding.ZodiacList)
	})
}
