package swagger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/okian/sideline/internal/adapters/http/transport"
	"github.com/okian/sideline/internal/domain/binding"
	"github.com/smartystreets/goconvey/convey"
	"github.com/tidwall/gjson"
)

func TestDocument(t *testing.T) {
	convey.Convey("Given the demo profile", t, func() {
		doc, err := Document(transport.ProfileDemo)
		convey.So(err, convey.ShouldBeNil)
		convey.So(gjson.ValidBytes(doc), convey.ShouldBeTrue)

		convey.Convey("Then every binding is described under the /api prefix", func() {
			paths := gjson.GetBytes(doc, "paths")
			count := 0
			paths.ForEach(func(_, _ gjson.Result) bool { count++; return true })
			convey.So(count, convey.ShouldEqual, len(binding.Table()))

			op := paths.Get(escape("/api"+binding.AmountDelete.Path) + ".get")
			convey.So(op.Get("operationId").String(), convey.ShouldEqual, "amount.delete")
			convey.So(op.Get("parameters.0.name").String(), convey.ShouldEqual, "id")
			convey.So(op.Get("tags.0").String(), convey.ShouldEqual, "amount")

			add := paths.Get(escape("/api"+binding.ZodiacAdd.Path) + ".post")
			convey.So(add.Get("requestBody.required").Bool(), convey.ShouldBeTrue)

			list := paths.Get(escape("/api"+binding.ZodiacList.Path) + ".get")
			convey.So(list.Get("parameters").Exists(), convey.ShouldBeFalse)
			convey.So(list.Get("requestBody").Exists(), convey.ShouldBeFalse)
		})

		convey.Convey("Then the envelope uses the profile field names", func() {
			env := gjson.GetBytes(doc, "components.schemas.Envelope")
			convey.So(env.Get("required.0").String(), convey.ShouldEqual, "status")
			convey.So(env.Get("properties.result").Exists(), convey.ShouldBeTrue)
			convey.So(env.Get("properties.status.example").String(), convey.ShouldEqual, "200")
		})
	})

	convey.Convey("Given the default profile", t, func() {
		doc, err := Document(transport.ProfileDefault)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then paths carry no prefix", func() {
			convey.So(gjson.GetBytes(doc, "paths."+escape(binding.NumberDetail.Path)+".get").Exists(), convey.ShouldBeTrue)
			convey.So(gjson.GetBytes(doc, "info.version").String(), convey.ShouldEqual, "default")
		})
	})
}

func TestRegister(t *testing.T) {
	convey.Convey("Given a router with the swagger route", t, func() {
		r := mux.NewRouter()
		Register(r, transport.ProfileDefault)

		convey.Convey("Then it serves the document as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.json", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/json; charset=utf-8")
			convey.So(gjson.Get(w.Body.String(), "openapi").String(), convey.ShouldEqual, openAPIVersion)
		})

		convey.Convey("Then other methods are refused", func() {
			req := httptest.NewRequest(http.MethodPost, "/openapi.json", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
		})
	})

	convey.Convey("Given a nil router", t, func() {
		convey.So(func() { Register(nil, transport.ProfileDemo) }, convey.ShouldPanic)
	})

	convey.Convey("ErrServe is defined", t, func() {
		convey.So(ErrServe.Error(), convey.ShouldEqual, "swagger serve failed")
	})
}
