// Package metrics records latency and outcome counts for pipeline
// executions, using an HDR histogram for accurate percentiles.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	http "github.com/riposte-dev/riposte/http"
)

// Histogram bounds: 1 microsecond to 1 hour, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = int64(time.Hour / time.Microsecond)
	histogramSigFigs = 3
)

// Recorder aggregates outcomes across Execute calls. Counters use atomic
// updates and the histogram is mutex protected, so a single Recorder may
// observe concurrent executions.
type Recorder struct {
	latency   *hdrhistogram.Histogram
	latencyMu sync.Mutex

	successes  atomic.Int64
	httpErrors atomic.Int64
	timeouts   atomic.Int64
	exceptions atomic.Int64
	faults     atomic.Int64
}

// Summary is a point-in-time snapshot of a Recorder.
type Summary struct {
	Total      int64
	Successes  int64
	HTTPErrors int64
	Timeouts   int64
	Exceptions int64
	Faults     int64

	P50 time.Duration
	P95 time.Duration
	P99 time.Duration
	Max time.Duration
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		latency: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Install chains the recorder onto the client's hooks. Hooks already present
// keep firing after the recorder has observed the call.
func (r *Recorder) Install(c *http.Client) {
	prevPost := c.Hooks.PostSend
	c.Hooks.PostSend = func(req *http.Request, rep http.Report) {
		r.observe(rep)
		if prevPost != nil {
			prevPost(req, rep)
		}
	}

	prevException := c.Hooks.OnException
	c.Hooks.OnException = func(req *http.Request, e *http.Error) {
		r.exceptions.Add(1)
		if prevException != nil {
			prevException(req, e)
		}
	}

	prevFault := c.Hooks.OnFault
	c.Hooks.OnFault = func(req *http.Request, e *http.Error) {
		r.faults.Add(1)
		if prevFault != nil {
			prevFault(req, e)
		}
	}
}

// observe classifies one round-trip report. Timeouts arrive here through
// PostSend because the pipeline classifies them as HTTP errors.
func (r *Recorder) observe(rep http.Report) {
	switch {
	case rep.IsSuccess():
		r.successes.Add(1)
	case rep.StatusCode == http.StatusTimeout:
		r.timeouts.Add(1)
	default:
		r.httpErrors.Add(1)
	}

	micros := rep.Duration.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}
	r.latencyMu.Lock()
	r.latency.RecordValue(micros)
	r.latencyMu.Unlock()
}

// Snapshot returns current counts and latency percentiles.
func (r *Recorder) Snapshot() Summary {
	s := Summary{
		Successes:  r.successes.Load(),
		HTTPErrors: r.httpErrors.Load(),
		Timeouts:   r.timeouts.Load(),
		Exceptions: r.exceptions.Load(),
		Faults:     r.faults.Load(),
	}
	s.Total = s.Successes + s.HTTPErrors + s.Timeouts + s.Exceptions + s.Faults

	r.latencyMu.Lock()
	defer r.latencyMu.Unlock()
	if r.latency.TotalCount() > 0 {
		s.P50 = time.Duration(r.latency.ValueAtQuantile(50)) * time.Microsecond
		s.P95 = time.Duration(r.latency.ValueAtQuantile(95)) * time.Microsecond
		s.P99 = time.Duration(r.latency.ValueAtQuantile(99)) * time.Microsecond
		s.Max = time.Duration(r.latency.Max()) * time.Microsecond
	}
	return s
}
