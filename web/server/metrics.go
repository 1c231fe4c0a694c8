package server

import (
	"net/http"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	pathKey   = tag.MustNewKey("path")
	methodKey = tag.MustNewKey("method")
)

// requestMetrics counts handled requests by path and method
type requestMetrics struct {
	requestCount     *stats.Int64Measure
	requestCountView *view.View
}

func newRequestMetrics() *requestMetrics {
	m := &requestMetrics{}

	m.requestCount = stats.Int64("raytracer/http_requests", "", stats.UnitDimensionless)
	m.requestCountView = &view.View{
		Name:        "raytracer/http_requests",
		Description: "Counter of requests that have been handled",

		TagKeys: []tag.Key{pathKey, methodKey},

		Measure:     m.requestCount,
		Aggregation: view.Count(),
	}

	return m
}

func (m *requestMetrics) register() error {
	return view.Register(m.requestCountView)
}

func (m *requestMetrics) unregister() {
	view.Unregister(m.requestCountView)
}

// wrap records every request served by inner
func (m *requestMetrics) wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner.ServeHTTP(w, r)

		glog.V(1).Infof("Served path=%q method=%s remoteaddr=%q", r.URL.Path, r.Method, r.RemoteAddr)

		stats.RecordWithOptions(
			r.Context(),
			stats.WithTags(
				tag.Insert(pathKey, r.URL.Path),
				tag.Insert(methodKey, r.Method),
			),
			stats.WithMeasurements(m.requestCount.M(1)))
	})
}
