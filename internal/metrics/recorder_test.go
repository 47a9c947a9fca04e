package metrics

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	http "github.com/riposte-dev/riposte/http"
)

type scriptedDoer struct {
	responses []func() (*nethttp.Response, error)
	next      int
}

func (d *scriptedDoer) Do(req *nethttp.Request) (*nethttp.Response, error) {
	f := d.responses[d.next%len(d.responses)]
	d.next++
	return f()
}

func canned(status int, body string) func() (*nethttp.Response, error) {
	return func() (*nethttp.Response, error) {
		return &nethttp.Response{
			StatusCode: status,
			Header:     make(nethttp.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

func TestRecorder_MixedOutcomes(t *testing.T) {
	transport := &scriptedDoer{responses: []func() (*nethttp.Response, error){
		canned(200, `{"ok":true}`),
		canned(500, `{"message":"down"}`),
		func() (*nethttp.Response, error) { return nil, errors.New("refused") },
	}}

	recorder := NewRecorder()
	client := http.NewClient(http.WithTransport(transport))
	recorder.Install(client)

	req := http.NewRequest(http.MethodGet, "api.example.com", "/probe")
	for i := 0; i < 3; i++ {
		http.Execute(context.Background(), client, req, http.Raw)
	}

	s := recorder.Snapshot()
	assert.Equal(t, int64(3), s.Total)
	assert.Equal(t, int64(1), s.Successes)
	assert.Equal(t, int64(1), s.HTTPErrors)
	assert.Equal(t, int64(1), s.Exceptions)
	assert.Equal(t, int64(0), s.Timeouts)
	assert.Equal(t, int64(0), s.Faults)
}

func TestRecorder_Percentiles(t *testing.T) {
	recorder := NewRecorder()
	for i := 1; i <= 100; i++ {
		recorder.observe(http.Report{
			StatusCode: 200,
			Data:       struct{}{},
			Duration:   time.Duration(i) * time.Millisecond,
		})
	}

	s := recorder.Snapshot()
	require.Equal(t, int64(100), s.Total)
	assert.InDelta(t, 50, s.P50.Milliseconds(), 2)
	assert.InDelta(t, 95, s.P95.Milliseconds(), 2)
	assert.InDelta(t, 100, s.Max.Milliseconds(), 2)
}

func TestRecorder_CountsTimeoutStatus(t *testing.T) {
	recorder := NewRecorder()
	recorder.observe(http.Report{
		StatusCode: http.StatusTimeout,
		Error:      &http.Error{Message: http.TimeoutMessage},
		Duration:   time.Millisecond,
	})

	s := recorder.Snapshot()
	assert.Equal(t, int64(1), s.Timeouts)
	assert.Equal(t, int64(0), s.HTTPErrors)
}

func TestRecorder_PreservesExistingHooks(t *testing.T) {
	transport := &scriptedDoer{responses: []func() (*nethttp.Response, error){
		canned(200, `{}`),
	}}

	var callerPostSends int
	client := http.NewClient(
		http.WithTransport(transport),
		http.WithHooks(http.Hooks{
			PostSend: func(r *http.Request, rep http.Report) { callerPostSends++ },
		}),
	)

	recorder := NewRecorder()
	recorder.Install(client)

	req := http.NewRequest(http.MethodGet, "api.example.com", "/probe")
	http.Execute(context.Background(), client, req, http.Raw)

	assert.Equal(t, 1, callerPostSends)
	assert.Equal(t, int64(1), recorder.Snapshot().Successes)
}
