package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/smartystreets/goconvey/convey"

	"github.com/creativeminds/analytics/internal/adapters/http/api"
	"github.com/creativeminds/analytics/internal/adapters/repository"
	service "github.com/creativeminds/analytics/internal/app"
	"github.com/creativeminds/analytics/internal/config"
	"github.com/creativeminds/analytics/internal/probe"
	"github.com/creativeminds/analytics/pkg/logger"
	"github.com/creativeminds/analytics/pkg/metrics"
)

func init() {
	_ = logger.Init(logger.WithOutput(&bytes.Buffer{}))
}

var testdataDir = filepath.Join("..", "internal", "adapters", "repository", "testdata")

// seededStore opens an in-memory sqlite database with the repository fixtures.
func seededStore() (repository.Store, error) {
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	store := repository.NewSQLStore(db, repository.WithMaxOpenConns(1), repository.WithQueryTimeout(time.Second))
	for _, name := range []string{"schema.sql", "seed.sql"} {
		stmts, err := os.ReadFile(filepath.Join(testdataDir, name))
		if err != nil {
			return nil, err
		}
		if _, err := db.Exec(string(stmts)); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func testCLI() *cli {
	return &cli{openStore: func(context.Context, *config.Config) (repository.Store, error) {
		return seededStore()
	}}
}

func execute(ctx context.Context, c *cli, args ...string) (string, error) {
	root := newRootCommand(c)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	convey.Convey("Given the report command over a seeded store", t, func() {
		ctx := context.Background()
		c := testCLI()

		convey.Convey("When rendering the dashboard as JSON", func() {
			out, err := execute(ctx, c, "report", "dashboard")

			convey.Convey("Then stdout should carry only the report envelope", func() {
				convey.So(err, convey.ShouldBeNil)
				var body map[string]any
				convey.So(json.Unmarshal([]byte(out), &body), convey.ShouldBeNil)
				convey.So(body, convey.ShouldContainKey, "metricas")
				convey.So(body, convey.ShouldContainKey, "proyectos_destacados")
				convey.So(body["metricas"].(map[string]any)["total_proyectos"], convey.ShouldEqual, 3.0)
			})
		})

		convey.Convey("When rendering one project as YAML", func() {
			out, err := execute(ctx, c, "report", "proyecto", "--id", "1", "--format", "yaml")

			convey.Convey("Then the YAML should use the Spanish keys", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "proyecto:")
				convey.So(out, convey.ShouldContainSubstring, "nombre: Portal web")
				convey.So(out, convey.ShouldContainSubstring, "recomendaciones:")
			})
		})

		convey.Convey("When the project does not exist", func() {
			_, err := execute(ctx, c, "report", "proyecto", "--id", "99")

			convey.Convey("Then the not found kind should surface", func() {
				convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
				convey.So(errors.Is(err, service.ErrReport), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the usage is wrong", func() {
			for _, args := range [][]string{
				{"report", "nope"},
				{"report", "proyecto"},
				{"report", "dashboard", "--format", "xml"},
			} {
				_, err := execute(ctx, c, args...)
				convey.So(errors.Is(err, ErrUsage), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When the store cannot be opened", func() {
			failing := &cli{openStore: func(context.Context, *config.Config) (repository.Store, error) {
				return nil, repository.ErrUnavailable
			}}
			_, err := execute(ctx, failing, "report", "equipos")

			convey.Convey("Then the command should fail with the store error", func() {
				convey.So(errors.Is(err, repository.ErrUnavailable), convey.ShouldBeTrue)
			})
		})
	})
}

func TestProbeCommand(t *testing.T) {
	convey.Convey("Given a running API over a seeded store", t, func() {
		store, err := seededStore()
		convey.So(err, convey.ShouldBeNil)
		defer store.Close()

		handler := api.NewServer(service.New(service.WithStore(store))).Handler(context.Background())
		srv := httptest.NewServer(handler)
		defer srv.Close()

		convey.Convey("When probing every route as JSON", func() {
			out, err := execute(context.Background(), testCLI(),
				"probe", "--base-url", srv.URL, "--project-id", "1", "--format", "json")

			convey.Convey("Then every route should answer 200", func() {
				convey.So(err, convey.ShouldBeNil)
				var sum probe.Summary
				convey.So(json.Unmarshal([]byte(out), &sum), convey.ShouldBeNil)
				convey.So(sum.Failed, convey.ShouldEqual, 0)
				convey.So(sum.Results, convey.ShouldHaveLength, 11)
				for _, r := range sum.Results {
					convey.So(r.Status, convey.ShouldEqual, 200)
				}
			})
		})

		convey.Convey("When a probed project is missing", func() {
			out, err := execute(context.Background(), testCLI(),
				"probe", "--base-url", srv.URL, "--project-id", "99")

			convey.Convey("Then the table should show the failure and the command should fail", func() {
				convey.So(errors.Is(err, probe.ErrProbe), convey.ShouldBeTrue)
				convey.So(out, convey.ShouldContainSubstring, "/proyectos/99")
				convey.So(out, convey.ShouldContainSubstring, "1 of 11 routes failed")
			})
		})
	})
}

func TestServeCommand(t *testing.T) {
	convey.Convey("Given the serve command on an ephemeral port", t, func() {
		_ = os.Setenv("CM_ADDR", "127.0.0.1:0")
		defer func() { _ = os.Unsetenv("CM_ADDR") }()

		convey.Convey("When the context is canceled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			_, err := execute(ctx, testCLI(), "serve")

			convey.Convey("Then the server should shut down cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When metrics are configured through the environment", func() {
			_ = os.Setenv("CM_METRICS_ENABLED", "false")
			_ = os.Setenv("CM_ENVIRONMENT", "staging")
			defer func() {
				_ = os.Unsetenv("CM_METRICS_ENABLED")
				_ = os.Unsetenv("CM_ENVIRONMENT")
				metrics.Configure()
			}()
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			_, err := execute(ctx, testCLI(), "serve")

			convey.Convey("Then the global manager follows the config", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(metrics.Global().Enabled(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the store cannot be opened", func() {
			failing := &cli{openStore: func(context.Context, *config.Config) (repository.Store, error) {
				return nil, repository.ErrUnavailable
			}}
			_, err := execute(context.Background(), failing, "serve")

			convey.Convey("Then serve should fail before listening", func() {
				convey.So(errors.Is(err, ErrServe), convey.ShouldBeTrue)
				convey.So(errors.Is(err, repository.ErrUnavailable), convey.ShouldBeTrue)
			})
		})
	})
}

func TestBootstrap(t *testing.T) {
	convey.Convey("Given an invalid configuration", t, func() {
		_ = os.Setenv("CM_DB_DRIVER", "oracle")
		defer func() { _ = os.Unsetenv("CM_DB_DRIVER") }()

		convey.Convey("Then every command should fail during bootstrap", func() {
			_, err := execute(context.Background(), testCLI(), "report", "dashboard")
			convey.So(errors.Is(err, ErrBootstrap), convey.ShouldBeTrue)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("And the updater loop should stop with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx, 10*time.Millisecond)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("metrics updater did not stop")
			}
		})
	})
}
