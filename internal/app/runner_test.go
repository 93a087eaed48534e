package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

type fakeService struct {
	name     string
	startErr error
	stopped  atomic.Bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnCancel(t *testing.T) {
	a := &fakeService{name: "a"}
	b := &fakeService{name: "b"}
	runner := NewRunner(a, b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, nil) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled run should return nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
	if !a.stopped.Load() || !b.stopped.Load() {
		t.Fatalf("every service should be stopped")
	}
}

func TestRunnerReturnsFirstStartError(t *testing.T) {
	boom := errors.New("listen failed")
	failing := &fakeService{name: "http", startErr: boom}
	idle := &fakeService{name: "worker"}

	err := NewRunner(failing, idle).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want start error, got %v", err)
	}
	if !idle.stopped.Load() {
		t.Fatalf("idle service should be stopped after failure")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.ShutdownTimeout != 10*time.Second || opts.Logger == nil {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) want %s got %s err=%v", raw, want, got, err)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("cron should be rejected")
	}
	if !ModeAll.servesHTTP() || !ModeAll.consumesQueue() || ModeAPI.consumesQueue() || ModeWorker.servesHTTP() {
		t.Fatalf("unexpected mode capabilities")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner(nil).Run(context.Background(), time.Second, nil); !errors.Is(err, ErrNoServices) {
		t.Fatalf("want ErrNoServices, got %v", err)
	}
}

func TestHTTPServiceStopsOnCancel(t *testing.T) {
	svc := NewHTTPService("127.0.0.1:0", http.NotFoundHandler(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewRunner(svc).Run(ctx, time.Second, nil) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("http service should shut down cleanly, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("http service did not stop")
	}
}
