package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	now          = "2021-09-13T15:00:00Z"
	validTime, _ = time.Parse(time.RFC3339, now)
)

func mockNow() time.Time {
	return validTime
}

var sharedTestCases = map[string]struct {
	sourceIPLimit     float64
	sourceIPBurstSize int
	reqNum            int
	proxied           bool
}{
	"one_request_per_second": {
		sourceIPLimit:     1,
		sourceIPBurstSize: 1,
		reqNum:            2,
	},
	"one_request_per_second_but_big_bucket": {
		sourceIPLimit:     1,
		sourceIPBurstSize: 10,
		reqNum:            11,
	},
	"three_req_per_second_bucket_size_one": {
		sourceIPLimit:     3,
		sourceIPBurstSize: 1, // max burst 1 means 1 at a time
		reqNum:            3,
	},
	"10_requests_per_second": {
		sourceIPLimit:     10,
		sourceIPBurstSize: 10,
		reqNum:            11,
	},
	"10_requests_per_second_proxied": {
		sourceIPLimit:     10,
		sourceIPBurstSize: 10,
		reqNum:            11,
		proxied:           true,
	},
}

func TestSourceIPAllowed(t *testing.T) {
	t.Parallel()

	for tn, tc := range sharedTestCases {
		tc := tc
		t.Run(tn, func(t *testing.T) {
			rl := New(
				WithNow(mockNow),
				WithSourceIPLimitPerSecond(tc.sourceIPLimit),
				WithSourceIPBurstSize(tc.sourceIPBurstSize),
			)
			t.Cleanup(rl.Stop)

			for i := 0; i < tc.reqNum; i++ {
				got := rl.SourceIPAllowed("172.16.123.1")
				if i < tc.sourceIPBurstSize {
					require.Truef(t, got, "expected true for request no. %d", i+1)
				} else {
					require.Falsef(t, got, "expected false for request no. %d", i+1)
				}
			}
		})
	}
}

func TestSourceIPAllowedIsPerSourceIP(t *testing.T) {
	rl := New(
		WithNow(mockNow),
		WithSourceIPLimitPerSecond(1),
		WithSourceIPBurstSize(1),
	)
	t.Cleanup(rl.Stop)

	require.True(t, rl.SourceIPAllowed("10.0.0.1"))
	require.False(t, rl.SourceIPAllowed("10.0.0.1"))

	require.True(t, rl.SourceIPAllowed("10.0.0.2"), "a different source IP has its own bucket")
}

func TestSourceIPAllowedRefillsOverTime(t *testing.T) {
	current := validTime
	rl := New(
		WithNow(func() time.Time { return current }),
		WithSourceIPLimitPerSecond(1),
		WithSourceIPBurstSize(1),
	)
	t.Cleanup(rl.Stop)

	require.True(t, rl.SourceIPAllowed("10.0.0.1"))
	require.False(t, rl.SourceIPAllowed("10.0.0.1"))

	current = current.Add(time.Second)
	require.True(t, rl.SourceIPAllowed("10.0.0.1"))
}
