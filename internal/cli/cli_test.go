package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/sideline/internal/adapters/http/fakeserver"
	"github.com/okian/sideline/internal/adapters/http/transport"
	"github.com/okian/sideline/internal/cli"
	"github.com/okian/sideline/internal/domain/types"
	"github.com/okian/sideline/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := cli.Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	os.Unsetenv("SIDELINE_CONFIG")
	os.Unsetenv("SIDELINE_BASE_URL")
	os.Unsetenv("SIDELINE_PROFILE")

	convey.Convey("Given a default profile backend", t, func() {
		reg := prometheus.NewRegistry()
		srv := httptest.NewServer(fakeserver.New(transport.ProfileDefault,
			fakeserver.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(reg)), reg),
		).Handler())
		defer srv.Close()

		base := []string{"--base-url", srv.URL, "--profile", "default"}
		with := func(args ...string) []string { return append(append([]string{}, base...), args...) }

		convey.Convey("A bare operation prints its result", func() {
			code, out, _ := run(with("zodiac.list")...)
			convey.So(code, convey.ShouldEqual, cli.ExitOK)

			var zs []types.ZodiacList
			convey.So(json.Unmarshal([]byte(out), &zs), convey.ShouldBeNil)
			convey.So(zs, convey.ShouldHaveLength, 12)
		})

		convey.Convey("A body operation reads inline --data", func() {
			code, out, _ := run(with("--data", `{"name":"Cat","homeType":1}`, "zodiac.add")...)
			convey.So(code, convey.ShouldEqual, cli.ExitOK)
			convey.So(out, convey.ShouldEqual, "13\n")
		})

		convey.Convey("A body operation reads --data from a file", func() {
			path := filepath.Join(t.TempDir(), "stake.json")
			convey.So(os.WriteFile(path, []byte(`{"nums":[1,2],"amount":5}`), 0o600), convey.ShouldBeNil)

			code, out, _ := run(with("-d", "@"+path, "amount.add-by-num")...)
			convey.So(code, convey.ShouldEqual, cli.ExitOK)
			convey.So(out, convey.ShouldEqual, "1\n")
		})

		convey.Convey("A single id prints the bare result", func() {
			code, out, _ := run(with("number.detail", "7")...)
			convey.So(code, convey.ShouldEqual, cli.ExitOK)

			var d types.NumberDetail
			convey.So(json.Unmarshal([]byte(out), &d), convey.ShouldBeNil)
			convey.So(d.ZodiacName, convey.ShouldEqual, "Horse")
		})

		convey.Convey("Several ids fan out and report per id", func() {
			code, out, errOut := run(with("--workers", "2", "number.detail", "1", "999", "3")...)
			convey.So(code, convey.ShouldEqual, cli.ExitFailed)
			convey.So(errOut, convey.ShouldContainSubstring, "id 999")

			var results []struct {
				ID    int64              `json:"id"`
				Value types.NumberDetail `json:"value"`
				Error string             `json:"error"`
			}
			convey.So(json.Unmarshal([]byte(out), &results), convey.ShouldBeNil)
			convey.So(results, convey.ShouldHaveLength, 3)
			convey.So(results[0].Value.Num, convey.ShouldEqual, 1)
			convey.So(results[1].ID, convey.ShouldEqual, 999)
			convey.So(results[1].Error, convey.ShouldContainSubstring, fakeserver.CodeNotFound)
			convey.So(results[2].Value.Num, convey.ShouldEqual, 3)
		})

		convey.Convey("A backend rejection fails the run", func() {
			code, out, errOut := run(with("number.detail", "999")...)
			convey.So(code, convey.ShouldEqual, cli.ExitFailed)
			convey.So(out, convey.ShouldBeEmpty)
			convey.So(errOut, convey.ShouldContainSubstring, "number.detail")
		})

		convey.Convey("Input errors are usage errors", func() {
			code, _, _ := run(with("zodiac.delete")...)
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)

			code, _, _ = run(with("zodiac.delete", "abc")...)
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)

			for _, id := range []string{"010", "0x10", "12.0", "0", "99999999999999999999"} {
				code, _, errOut := run(with("amount.delete", id)...)
				convey.So(code, convey.ShouldEqual, cli.ExitUsage)
				convey.So(errOut, convey.ShouldContainSubstring, "invalid id")
			}

			code, _, _ = run(with("--data", `{"id":1}`, "number.detail", "1")...)
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)

			code, _, _ = run(with("--data", "{", "zodiac.add")...)
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)

			code, _, _ = run(with("zodiac.list", "1")...)
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)

			code, _, errOut := run(with("zodiac.rename")...)
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)
			convey.So(errOut, convey.ShouldContainSubstring, "unknown operation")
		})
	})

	convey.Convey("Given no backend", t, func() {
		convey.Convey("--list prints every binding", func() {
			code, out, _ := run("--list")
			convey.So(code, convey.ShouldEqual, cli.ExitOK)
			convey.So(out, convey.ShouldContainSubstring, "amount.add-by-custom")
			convey.So(out, convey.ShouldContainSubstring, "/sideline/zodiac/zh/home-type")
		})

		convey.Convey("--list filters by glob", func() {
			code, out, _ := run("--list", "zodiac.*", "number.de*")
			convey.So(code, convey.ShouldEqual, cli.ExitOK)
			convey.So(out, convey.ShouldContainSubstring, "zodiac.home-type")
			convey.So(out, convey.ShouldContainSubstring, "number.detail")
			convey.So(out, convey.ShouldContainSubstring, "number.delete")
			convey.So(out, convey.ShouldNotContainSubstring, "number.add")
			convey.So(out, convey.ShouldNotContainSubstring, "amount.")

			code, _, _ = run("--list", "[")
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)
		})

		convey.Convey("An unknown profile is rejected", func() {
			code, _, _ := run("--profile", "legacy", "zodiac.list")
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)
		})

		convey.Convey("A missing operation prints usage", func() {
			code, _, errOut := run()
			convey.So(code, convey.ShouldEqual, cli.ExitUsage)
			convey.So(errOut, convey.ShouldContainSubstring, "Usage:")
		})

		convey.Convey("--help exits cleanly", func() {
			code, _, _ := run("--help")
			convey.So(code, convey.ShouldEqual, cli.ExitOK)
		})
	})
}
