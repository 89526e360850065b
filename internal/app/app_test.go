package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/orderrelay/internal/config"
	testhelpers "github.com/polkiloo/orderrelay/internal/test"
	"github.com/polkiloo/orderrelay/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestSweeper() *worker.QuoteSweeper {
	facade, _, _ := newFacade(&testhelpers.UpstreamStub{})
	return worker.NewQuoteSweeper(facade, 10*time.Millisecond, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
	if server.ReadHeaderTimeout != readHeaderTimeout {
		t.Fatalf("expected read header timeout %v, got %v", readHeaderTimeout, server.ReadHeaderTimeout)
	}
}

func TestNewQuoteSweeperUsesConfig(t *testing.T) {
	facade, _, _ := newFacade(&testhelpers.UpstreamStub{})
	sweeper := newQuoteSweeper(sweeperParams{
		Facade: facade,
		Config: &config.Config{SweepInterval: 15 * time.Second},
		Logger: discardLogger(),
	})
	if sweeper == nil {
		t.Fatal("expected quote sweeper instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Sweeper:    newTestSweeper(),
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := recorder.Start(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Stop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
	if shutdowner.Calls() != 0 {
		t.Fatalf("expected no shutdown request, got %d", shutdowner.Calls())
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "bad addr"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Sweeper:    newTestSweeper(),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderOrder(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	var order []string
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { order = append(order, "start-1"); return nil },
		OnStop:  func(context.Context) error { order = append(order, "stop-1"); return nil },
	})
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { order = append(order, "start-2"); return nil },
		OnStop:  func(context.Context) error { order = append(order, "stop-2"); return nil },
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := recorder.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	want := []string{"start-1", "start-2", "stop-2", "stop-1"}
	if len(order) != len(want) {
		t.Fatalf("unexpected hook order %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected hook order %v", order)
		}
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
	if shutdowner.Calls() != 1 {
		t.Fatalf("expected one recorded call, got %d", shutdowner.Calls())
	}
}
