// ABOUTME: Load tests for the share-code endpoints
// ABOUTME: Issues and redeems codes under concurrent load against the real services

package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shoplist-api/api"
	"shoplist-api/api/dto/responses"
	"shoplist-api/core/interfaces"
	"shoplist-api/core/share"
	"shoplist-api/infrastructure/store/memory"
)

// LoadTestMetrics tracks performance metrics
type LoadTestMetrics struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	TotalDuration  time.Duration
	MinLatency     time.Duration
	MaxLatency     time.Duration
	AvgLatency     time.Duration
	P95Latency     time.Duration
	P99Latency     time.Duration
	RequestsPerSec float64
}

func newShareServer(t *testing.T, codeLength int) *httptest.Server {
	t.Helper()

	deps := interfaces.Dependencies{Store: memory.NewMemoryStore()}
	shares := share.NewShareService(deps, share.WithCodeLength(codeLength))

	humaAPI, router := api.NewAPI()
	api.RegisterRoutes(humaAPI, api.Services{Shares: shares})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestShareEndpoint_100ConcurrentWriters(t *testing.T) {
	if testing.Short() {
		t.Skip("load test")
	}

	// Four characters keep collisions likely enough to exercise the retry path
	server := newShareServer(t, 4)

	concurrency := 100
	requestsPerWorker := 10
	totalRequests := concurrency * requestsPerWorker

	var (
		successCount int64
		failCount    int64
		latencies    []time.Duration
		codes        = make(map[string]string, totalRequests)
		mu           sync.Mutex
	)

	var wg sync.WaitGroup
	wg.Add(concurrency)

	startTime := time.Now()

	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()

			client := &http.Client{Timeout: 30 * time.Second}

			for j := 0; j < requestsPerWorker; j++ {
				id := fmt.Sprintf("w%d-r%d", workerID, j)
				body := fmt.Sprintf(`{"produtos":[{"id":%q,"nome":"Produto %s"}]}`, id, id)

				reqStart := time.Now()
				resp, err := client.Post(server.URL+"/share-products", "application/json", strings.NewReader(body))
				latency := time.Since(reqStart)

				mu.Lock()
				latencies = append(latencies, latency)
				mu.Unlock()

				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				data, _ := io.ReadAll(resp.Body)
				resp.Body.Close()

				var created responses.ShareCreatedResponse
				if resp.StatusCode != http.StatusOK || json.Unmarshal(data, &created) != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				atomic.AddInt64(&successCount, 1)
				mu.Lock()
				if prev, dup := codes[created.ShareCode]; dup {
					t.Errorf("code %s issued for both %s and %s", created.ShareCode, prev, id)
				}
				codes[created.ShareCode] = id
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()
	totalDuration := time.Since(startTime)

	metrics := calculateMetrics(latencies, totalDuration, totalRequests)
	metrics.SuccessfulReqs = successCount
	metrics.FailedReqs = failCount
	logMetrics(t, "Load Test Results - 100 Concurrent Writers", metrics)

	if metrics.FailedReqs > 0 {
		t.Errorf("Had %d failed requests", metrics.FailedReqs)
	}
	if metrics.P95Latency > 1*time.Second {
		t.Errorf("P95 latency too high: %v", metrics.P95Latency)
	}

	// Every code still resolves to the products it was issued for
	for code, id := range codes {
		resp, err := http.Get(server.URL + "/shared-products/" + code)
		if err != nil {
			t.Fatalf("GET %s: %v", code, err)
		}
		var got responses.SharedProductsResponse
		err = json.NewDecoder(resp.Body).Decode(&got)
		resp.Body.Close()
		if err != nil || len(got.Produtos) != 1 {
			t.Errorf("code %s: unexpected body (err=%v)", code, err)
			continue
		}
		if !strings.Contains(string(got.Produtos[0]), fmt.Sprintf("%q", id)) {
			t.Errorf("code %s resolved to %s, want product %s", code, got.Produtos[0], id)
		}
	}
}

func TestShareEndpoint_MixedReadLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("load test")
	}

	server := newShareServer(t, 6)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Post(server.URL+"/share-products", "application/json",
		strings.NewReader(`{"produtos":[{"id":"p1","nome":"Banana"}]}`))
	if err != nil {
		t.Fatalf("create share: %v", err)
	}
	var created responses.ShareCreatedResponse
	_ = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	targetRPS := 500
	duration := 2 * time.Second

	var (
		successCount int64
		failCount    int64
		requestCount int64
		latencies    []time.Duration
		mu           sync.Mutex
		inflight     sync.WaitGroup
	)

	ticker := time.NewTicker(time.Second / time.Duration(targetRPS))
	defer ticker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			n := atomic.AddInt64(&requestCount, 1)
			inflight.Add(1)
			go func(n int64) {
				defer inflight.Done()

				// One in ten reads asks for an unknown code
				url := server.URL + "/shared-products/" + strings.ToLower(created.ShareCode)
				want := http.StatusOK
				if n%10 == 0 {
					url = server.URL + "/shared-products/ZZZZZZ"
					want = http.StatusNotFound
				}

				reqStart := time.Now()
				resp, err := client.Get(url)
				latency := time.Since(reqStart)

				mu.Lock()
				latencies = append(latencies, latency)
				mu.Unlock()

				if err != nil {
					atomic.AddInt64(&failCount, 1)
					return
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				if resp.StatusCode == want {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
			}(n)
		}
	}

	inflight.Wait()
	totalDuration := time.Since(startTime)

	metrics := calculateMetrics(latencies, totalDuration, int(requestCount))
	metrics.SuccessfulReqs = successCount
	metrics.FailedReqs = failCount
	logMetrics(t, "Load Test Results - Mixed Reads", metrics)

	if metrics.TotalRequests == 0 {
		t.Fatal("no requests were sent")
	}
	successRate := float64(metrics.SuccessfulReqs) / float64(metrics.TotalRequests)
	if successRate < 0.95 {
		t.Errorf("Success rate too low: %.2f%%", successRate*100)
	}
}

func logMetrics(t *testing.T, title string, m LoadTestMetrics) {
	t.Helper()
	t.Logf("%s", title)
	t.Logf("Total Requests: %d", m.TotalRequests)
	t.Logf("Successful: %d", m.SuccessfulReqs)
	t.Logf("Failed: %d", m.FailedReqs)
	t.Logf("Total Duration: %v", m.TotalDuration)
	t.Logf("Requests/sec: %.2f", m.RequestsPerSec)
	t.Logf("Min Latency: %v", m.MinLatency)
	t.Logf("Avg Latency: %v", m.AvgLatency)
	t.Logf("P95 Latency: %v", m.P95Latency)
	t.Logf("P99 Latency: %v", m.P99Latency)
	t.Logf("Max Latency: %v", m.MaxLatency)
}

// calculateMetrics computes performance metrics from latency data
func calculateMetrics(latencies []time.Duration, totalDuration time.Duration, totalRequests int) LoadTestMetrics {
	if len(latencies) == 0 {
		return LoadTestMetrics{}
	}

	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	return LoadTestMetrics{
		TotalRequests:  int64(totalRequests),
		TotalDuration:  totalDuration,
		MinLatency:     sorted[0],
		MaxLatency:     sorted[len(sorted)-1],
		AvgLatency:     sum / time.Duration(len(sorted)),
		P95Latency:     sorted[int(float64(len(sorted))*0.95)],
		P99Latency:     sorted[int(float64(len(sorted))*0.99)],
		RequestsPerSec: float64(totalRequests) / totalDuration.Seconds(),
	}
}
