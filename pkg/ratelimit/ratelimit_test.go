package ratelimit_test

import (
	"testing"
	"time"

	"github.com/ethersphere/mintgate/pkg/ratelimit"
)

func TestRateLimit(t *testing.T) {

	var (
		key1  = "test1"
		key2  = "test2"
		rate  = time.Second
		burst = 10
	)

	limiter := ratelimit.New(rate, burst)

	if !limiter.Allow(key1, burst) {
		t.Fatal("want allowed")
	}

	if limiter.Allow(key1, burst) {
		t.Fatal("want rate limit exceeded")
	}

	limiter.Clear(key1)

	if !limiter.Allow(key1, burst) {
		t.Fatal("want allowed after clear")
	}

	if !limiter.Allow(key2, burst) {
		t.Fatal("want independent key allowed")
	}
}

func TestRetryAfter(t *testing.T) {

	var (
		key   = "test"
		rate  = time.Minute
		burst = 1
	)

	limiter := ratelimit.New(rate, burst)

	if wait := limiter.RetryAfter("unseen", 1); wait != 0 {
		t.Fatalf("got wait %v for unseen key, want 0", wait)
	}

	if !limiter.Allow(key, burst) {
		t.Fatal("want allowed")
	}
	if limiter.Allow(key, 1) {
		t.Fatal("want rate limit exceeded")
	}

	wait := limiter.RetryAfter(key, 1)
	if wait <= 0 || wait > rate {
		t.Fatalf("got wait %v, want in (0, %v]", wait, rate)
	}

	// The reservation must not consume tokens: asking again reports the
	// same horizon instead of pushing it out.
	again := limiter.RetryAfter(key, 1)
	if again > wait {
		t.Fatalf("second ask pushed the wait out: %v then %v", wait, again)
	}
}
