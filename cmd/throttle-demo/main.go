package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

import (
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

import (
	throttle "github.com/nanjiek/pixiu-throttle"
	"github.com/nanjiek/pixiu-throttle/limiter/xrate"
)

// Runs a small upstream server and hammers it through a throttled client, so
// the admission behavior is observable end to end without external services.
func main() {
	addr := flag.String("addr", "127.0.0.1:8091", "upstream listen address")
	rps := flag.Float64("rps", 2, "allowed requests per second per host")
	burst := flag.Int("burst", 2, "burst capacity per host")
	requests := flag.Int("n", 10, "number of client requests to issue")
	mode := flag.String("mode", string(throttle.ModeBlock), "deny policy: block or error")
	retries := flag.Int("retries", throttle.DefaultMaxRetries, "retry budget in block mode")
	flag.Parse()

	r := mux.NewRouter()
	r.HandleFunc("/api/data", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("upstream server: %v", err)
		}
	}()

	throttle.Register("demo", xrate.New(rate.Limit(*rps), *burst))

	transport, err := throttle.NewTransport(throttle.Config{
		Limiter:    throttle.Named("demo"),
		KeyBy:      throttle.KeyHost,
		Mode:       throttle.Mode(*mode),
		MaxRetries: *retries,
	}, nil)
	if err != nil {
		log.Fatalf("attach throttle: %v", err)
	}
	client := &http.Client{Transport: transport}

	rootCtx, cancelRoot := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelRoot()

	for i := 0; i < *requests; i++ {
		start := time.Now()
		req, err := http.NewRequestWithContext(rootCtx, http.MethodGet, "http://"+*addr+"/api/data", nil)
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			log.Printf("request %d: denied after %s: %v", i, time.Since(start).Round(time.Millisecond), err)
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		log.Printf("request %d: %s after %s", i, resp.Status, time.Since(start).Round(time.Millisecond))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
