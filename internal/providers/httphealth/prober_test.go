package httphealth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReadyOn200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewProber(server.URL+"/health", time.Second)
	if !prober.Ready(context.Background()) {
		t.Fatalf("expected ready on 200")
	}
}

func TestNotReadyOnErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	prober := NewProber(server.URL+"/health", time.Second)
	if prober.Ready(context.Background()) {
		t.Fatalf("expected not ready on 503")
	}
}

func TestNotReadyOnConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL + "/health"
	server.Close()

	prober := NewProber(url, time.Second)
	if prober.Ready(context.Background()) {
		t.Fatalf("expected not ready when the backend is down")
	}
}

func TestProbeTimeoutBoundsHungConnections(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	prober := NewProber(server.URL+"/health", 50*time.Millisecond)

	start := time.Now()
	if prober.Ready(context.Background()) {
		t.Fatalf("expected hung probe to report not ready")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("probe did not respect its timeout, took %v", elapsed)
	}
}
