package request

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/uvolink/uvolink/util"
)

type roundTripper struct {
	log  *util.Logger
	base http.RoundTripper
}

var (
	reqMetric *prometheus.SummaryVec
	resMetric *prometheus.CounterVec

	metricsOnce sync.Once
)

func registerMetrics() {
	labels := []string{"host"}

	reqMetric = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "uvolink",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Summary of request durations",
	}, labels)

	resMetric = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uvolink",
		Subsystem: "http",
		Name:      "request_total",
		Help:      "Total count of requests by response status",
	}, append(labels, "status"))

	prometheus.MustRegister(reqMetric, resMetric)
}

// NewTripper creates a logging roundtrip handler
func NewTripper(log *util.Logger, base http.RoundTripper) http.RoundTripper {
	metricsOnce.Do(registerMetrics)

	return &roundTripper{
		log:  log,
		base: base,
	}
}

func (r *roundTripper) dump(v []byte) {
	if len(v) > 0 {
		r.log.TRACE.Println(util.Redact(string(v)))
	}
}

// RoundTrip executes the request while collecting metrics and tracing
// redacted payloads
func (r *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	if r.log.GetStdoutThreshold() <= jww.LevelTrace {
		body, err := httputil.DumpRequestOut(req, true)
		if err == nil {
			r.dump(body)
		}
	}

	resp, err := r.base.RoundTrip(req)

	if err == nil {
		reqMetric.WithLabelValues(req.URL.Hostname()).Observe(time.Since(startTime).Seconds())
		resMetric.WithLabelValues(req.URL.Hostname(), resp.Status).Add(1)

		if r.log.GetStdoutThreshold() <= jww.LevelTrace {
			body, errDump := httputil.DumpResponse(resp, false)
			if errDump == nil {
				r.dump(body)
			}

			var b bytes.Buffer
			if _, errRead := io.Copy(&b, resp.Body); errRead == nil {
				_ = resp.Body.Close()
				resp.Body = io.NopCloser(&b)
				r.dump(b.Bytes())
			}
		}
	} else {
		resMetric.WithLabelValues(req.URL.Hostname(), "error").Add(1)
	}

	return resp, err
}
