// Package probe calls every route of a running analytics instance and
// reports status codes and latencies.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/creativeminds/analytics/pkg/logger"
)

// ErrProbe marks a run where at least one route failed.
var ErrProbe = errors.New("probe failed")

const (
	defaultWorkers = 4
	defaultTimeout = 30 * time.Second
)

// Paths lists the analytics routes relative to the prefix. The project
// detail route is appended when a project id is configured.
func Paths(projectID int64) []string {
	paths := []string{
		"/health",
		"/dashboard",
		"/proyectos",
		"/empleados",
		"/equipos",
		"/recursos",
		"/metricas/rendimiento",
		"/metricas/historicas",
		"/predicciones",
		"/recomendaciones",
	}
	if projectID > 0 {
		paths = append(paths, "/proyectos/"+strconv.FormatInt(projectID, 10))
	}
	return paths
}

// Run probes every route with a small worker pool. Results keep the order
// of Paths. The returned error wraps ErrProbe when any route failed.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	start := time.Now()
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}
	base := strings.TrimRight(cfg.BaseURL, "/") + strings.TrimRight(cfg.Prefix, "/")

	paths := Paths(cfg.ProjectID)
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = probeOne(ctx, client, base, path)
			return nil
		})
	}
	_ = g.Wait()

	sum := Summary{Results: results, Duration: time.Since(start)}
	for _, r := range results {
		if !r.OK() {
			sum.Failed++
			logger.Get().Warn(ctx, "probe route failed",
				logger.String("path", r.Path),
				logger.Int("status", r.Status),
				logger.String("error", r.Err))
		}
	}
	if sum.Failed > 0 {
		return sum, fmt.Errorf("%w: %d of %d routes", ErrProbe, sum.Failed, len(results))
	}
	return sum, nil
}

func probeOne(ctx context.Context, client *http.Client, base, path string) (res Result) {
	res.Path = path
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, http.NoBody)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	resp, err := client.Do(req)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	res.Status = resp.StatusCode
	return res
}
