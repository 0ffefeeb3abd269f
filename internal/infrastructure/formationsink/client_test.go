package formationsink

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/platform/logging"
	"github.com/riskibarqy/formation-editor/internal/platform/resilience"
)

func startSink(t *testing.T, handler fasthttp.RequestHandler) *fasthttp.Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: handler}
	go func() {
		_ = server.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = server.Shutdown()
		_ = ln.Close()
	})

	return &fasthttp.Client{
		Dial: func(string) (net.Conn, error) {
			return ln.Dial()
		},
	}
}

func newTestClient(t *testing.T, httpClient *fasthttp.Client, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	client, err := NewClient(ClientConfig{
		HTTPClient:     httpClient,
		URL:            "http://sink.local/save_formation",
		Timeout:        time.Second,
		MaxRetries:     retries,
		RetryBackoff:   time.Millisecond,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
	require.NoError(t, err)
	return client
}

func sampleSnapshot() formation.Snapshot {
	return formation.Snapshot{
		TemplateName: "4-4-2",
		TeamID:       "demo-fc",
		Positions: []formation.Assignment{
			{SlotID: "gk", PlayerID: "1"},
			{SlotID: "lb"},
			{SlotID: "st1", PlayerID: "9"},
		},
	}
}

func TestClient_PublishSendsLegacyPayload(t *testing.T) {
	var got payload
	httpClient := startSink(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Method()) != fasthttp.MethodPost || string(ctx.Path()) != "/save_formation" {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		if err := sonic.Unmarshal(ctx.PostBody(), &got); err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"success":true}`)
	})
	client := newTestClient(t, httpClient, 0, resilience.CircuitBreakerConfig{})

	result, err := client.Publish(context.Background(), sampleSnapshot())
	require.NoError(t, err)
	require.True(t, result.Success)

	require.Equal(t, "demo-fc", got.TeamID)
	require.Equal(t, "4-4-2", got.FormationType)
	require.Equal(t, map[string]string{"gk": "1", "st1": "9"}, got.Positions)
}

func TestClient_PublishSurfacesRejection(t *testing.T) {
	httpClient := startSink(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString(`{"success":false,"error":"Team not found"}`)
	})
	client := newTestClient(t, httpClient, 0, resilience.CircuitBreakerConfig{})

	result, err := client.Publish(context.Background(), sampleSnapshot())
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "Team not found", result.Error)
}

func TestClient_PublishSurfacesRejectionWithClientErrorStatus(t *testing.T) {
	httpClient := startSink(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetBodyString(`{"success":false,"error":"Invalid formation"}`)
	})
	client := newTestClient(t, httpClient, 2, resilience.CircuitBreakerConfig{})

	result, err := client.Publish(context.Background(), sampleSnapshot())
	require.NoError(t, err)
	require.Equal(t, "Invalid formation", result.Error)
}

func TestClient_PublishRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	httpClient := startSink(t, func(ctx *fasthttp.RequestCtx) {
		if calls.Add(1) < 3 {
			ctx.SetStatusCode(fasthttp.StatusBadGateway)
			ctx.SetBodyString("upstream down")
			return
		}
		ctx.SetBodyString(`{"success":true}`)
	})
	client := newTestClient(t, httpClient, 2, resilience.CircuitBreakerConfig{})

	result, err := client.Publish(context.Background(), sampleSnapshot())
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, int32(3), calls.Load())
}

func TestClient_PublishGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	httpClient := startSink(t, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	})
	client := newTestClient(t, httpClient, 1, resilience.CircuitBreakerConfig{})

	_, err := client.Publish(context.Background(), sampleSnapshot())
	require.Error(t, err)
	require.True(t, isTransient(err))
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_PublishRejectsUndecodableBody(t *testing.T) {
	httpClient := startSink(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("<html>ok</html>")
	})
	client := newTestClient(t, httpClient, 3, resilience.CircuitBreakerConfig{})

	_, err := client.Publish(context.Background(), sampleSnapshot())
	require.Error(t, err)
	require.False(t, isTransient(err))
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	httpClient := startSink(t, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	})
	client := newTestClient(t, httpClient, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for range 2 {
		_, err := client.Publish(context.Background(), sampleSnapshot())
		require.Error(t, err)
	}

	_, err := client.Publish(context.Background(), sampleSnapshot())
	require.True(t, errors.Is(err, resilience.ErrCircuitOpen))
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_PublishHonorsCanceledContext(t *testing.T) {
	httpClient := startSink(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"success":true}`)
	})
	client := newTestClient(t, httpClient, 0, resilience.CircuitBreakerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Publish(ctx, sampleSnapshot())
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_ValidatesURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://sink.local", "http://"} {
		if _, err := NewClient(ClientConfig{URL: raw}); err == nil {
			t.Fatalf("expected error for url %q", raw)
		}
	}
}
