package sentinel

import (
	"context"
	"sync"
	"testing"
)

import (
	sentinelapi "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/flow"
)

var (
	initOnce sync.Once
	initErr  error
)

func initSentinel(t *testing.T) {
	t.Helper()
	initOnce.Do(func() { initErr = sentinelapi.InitDefault() })
	if initErr != nil {
		t.Fatalf("init sentinel: %v", initErr)
	}
}

func TestHitPassesWithoutRules(t *testing.T) {
	initSentinel(t)
	l := New(500)
	dec, err := l.Hit(context.Background(), "sentinel-test-no-rule")
	if err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if !dec.Allowed {
		t.Fatal("key without a rule should pass")
	}
}

func TestHitDeniesWhenBlocked(t *testing.T) {
	initSentinel(t)
	const resource = "sentinel-test-reject"
	_, err := flow.LoadRules([]*flow.Rule{{
		Resource:               resource,
		TokenCalculateStrategy: flow.Direct,
		ControlBehavior:        flow.Reject,
		Threshold:              1,
		StatIntervalInMs:       10000,
	}})
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	t.Cleanup(func() { flow.LoadRules(nil) })

	l := New(750)
	if dec, _ := l.Hit(context.Background(), resource); !dec.Allowed {
		t.Fatal("first hit should pass")
	}
	dec, err := l.Hit(context.Background(), resource)
	if err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if dec.Allowed {
		t.Fatal("second hit within the interval should be denied")
	}
	if dec.RetryAfterMs != 750 {
		t.Fatalf("retry_after_ms = %d, want the configured 750", dec.RetryAfterMs)
	}
}

func TestNewRejectsNegativeDelay(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(-1)
}
