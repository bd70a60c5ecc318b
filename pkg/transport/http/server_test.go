package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	gohttp "net/http"
	"testing"
	"time"

	"github.com/precishq/precis/pkg/api"
	"github.com/precishq/precis/pkg/storage/memory"
	"github.com/precishq/precis/pkg/transport"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	return bytes.NewReader(data)
}

func TestServerStartsAndAcceptsRequests(t *testing.T) {
	srv := NewServer(&mockCreator{}, memory.New(0), WithAddr("127.0.0.1:0"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	addr := ln.Addr().String()

	go srv.ServeOn(ln)
	time.Sleep(50 * time.Millisecond)

	resp, err := gohttp.Post("http://"+addr+"/v1/articles", "application/json",
		jsonBody(t, api.CreateArticleRequest{Title: "Server Test", Body: "body text"}))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != gohttp.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, gohttp.StatusOK)
	}

	var got api.Article
	json.NewDecoder(resp.Body).Decode(&got)
	if got.Title != "Server Test" {
		t.Errorf("title = %q, want %q", got.Title, "Server Test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

func TestServerGracefulShutdown(t *testing.T) {
	slowCreator := transport.SummaryCreatorFunc(func(ctx context.Context, articleID string, req *api.SummarizeRequest) (*api.Summary, error) {
		select {
		case <-time.After(200 * time.Millisecond):
			return &api.Summary{
				ID:        "sum_graceful1234567890123456",
				Object:    api.ObjectSummary,
				ArticleID: articleID,
			}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	srv := NewServer(slowCreator, memory.New(0),
		WithAddr("127.0.0.1:0"),
		WithShutdownTimeout(5*time.Second),
	)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	addr := ln.Addr().String()

	go srv.ServeOn(ln)
	time.Sleep(50 * time.Millisecond)

	responseCh := make(chan int, 1)
	go func() {
		resp, err := gohttp.Post("http://"+addr+"/v1/articles/art_abc123456789012345678901/summarize",
			"application/json", nil)
		if err != nil {
			responseCh <- 0
			return
		}
		defer resp.Body.Close()
		responseCh <- resp.StatusCode
	}()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)

	status := <-responseCh
	if status != gohttp.StatusOK {
		t.Errorf("slow request status = %d, want %d", status, gohttp.StatusOK)
	}
}

func TestServerFunctionalOptions(t *testing.T) {
	srv := NewServer(&mockCreator{}, memory.New(0),
		WithAddr(":9999"),
		WithMaxBodySize(1024),
		WithMetricsPath("/internal/metrics"),
		WithTimeouts(10*time.Second, 60*time.Second),
		WithShutdownTimeout(10*time.Second),
	)

	if srv.config.Addr != ":9999" {
		t.Errorf("addr = %q, want %q", srv.config.Addr, ":9999")
	}
	if srv.config.MaxBodySize != 1024 {
		t.Errorf("max body size = %d, want %d", srv.config.MaxBodySize, 1024)
	}
	if srv.config.MetricsPath != "/internal/metrics" {
		t.Errorf("metrics path = %q, want %q", srv.config.MetricsPath, "/internal/metrics")
	}
	if srv.config.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v, want %v", srv.config.ReadTimeout, 10*time.Second)
	}
	if srv.config.WriteTimeout != 60*time.Second {
		t.Errorf("write timeout = %v, want %v", srv.config.WriteTimeout, 60*time.Second)
	}
	if srv.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want %v", srv.config.ShutdownTimeout, 10*time.Second)
	}
	if srv.httpServer.ReadTimeout != 10*time.Second {
		t.Errorf("http server read timeout = %v, want %v", srv.httpServer.ReadTimeout, 10*time.Second)
	}
}

func TestServerAppliesHTTPMiddleware(t *testing.T) {
	marker := func(next gohttp.Handler) gohttp.Handler {
		return gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
			w.Header().Set("X-Test-Middleware", "applied")
			next.ServeHTTP(w, r)
		})
	}

	srv := NewServer(&mockCreator{}, memory.New(0), WithHTTPMiddleware(marker))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	addr := ln.Addr().String()

	go srv.ServeOn(ln)
	time.Sleep(50 * time.Millisecond)

	resp, err := gohttp.Get("http://" + addr + "/healthz")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Test-Middleware"); got != "applied" {
		t.Errorf("X-Test-Middleware = %q, want %q", got, "applied")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}
