package redis

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/pomodoro/domain"
)

func TestStatsCacheKeyAndDefaults(t *testing.T) {
	c := NewStatsCache(nil, 0).(*statsCache)
	if c.ttl != 5*time.Minute {
		t.Fatalf("default ttl = %s", c.ttl)
	}
	if got := c.key(42); got != "stats:42" {
		t.Fatalf("key = %s", got)
	}
}

func TestStatsCacheSetRejectsNil(t *testing.T) {
	c := NewStatsCache(nil, time.Minute)
	if err := c.Set(context.Background(), 1, "2025-01-08", 0, nil); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("Set(nil) = %v", err)
	}
}

func TestStatsCacheUnreachableServer(t *testing.T) {
	client := redislib.NewClient(&redislib.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewStatsCache(client, time.Minute)
	stats, err := c.Get(context.Background(), 1, "2025-01-08")
	if err == nil {
		t.Fatal("expected error from unreachable server")
	}
	if stats != nil {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

// Runs only against a disposable server named by POMODORO_TEST_REDIS_URL.
func newTestClient(t *testing.T) *redislib.Client {
	t.Helper()
	url := os.Getenv("POMODORO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("POMODORO_TEST_REDIS_URL not set")
	}
	opts, err := redislib.ParseURL(url)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	client := redislib.NewClient(opts)
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return client
}

func TestStatsCacheRoundTrip(t *testing.T) {
	c := NewStatsCache(newTestClient(t), time.Minute)
	ctx := context.Background()

	if got, err := c.Get(ctx, 7, "2025-01-08"); err != nil || got != nil {
		t.Fatalf("Get on empty cache = %+v, %v", got, err)
	}

	want := &domain.Stats{
		ChartLabels: []string{"01/02", "01/03", "01/04", "01/05", "01/06", "01/07", "01/08"},
		ChartData:   []int{0, 1, 0, 0, 2, 0, 1},
		RecentTasks: []domain.CompletedTask{{ID: 3, TaskName: "Write report", CompletedAt: "2025-01-08"}},
	}
	gen, err := c.Generation(ctx, 7)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if err := c.Set(ctx, 7, "2025-01-08", gen, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, 7, "2025-01-08")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}
	if other, _ := c.Get(ctx, 7, "2025-01-09"); other != nil {
		t.Fatalf("entry for another day returned: %+v", other)
	}

	if err := c.Invalidate(ctx, 7); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if got, err := c.Get(ctx, 7, "2025-01-08"); err != nil || got != nil {
		t.Fatalf("Get after Invalidate = %+v, %v", got, err)
	}
	next, err := c.Generation(ctx, 7)
	if err != nil || next != gen+1 {
		t.Fatalf("Generation after Invalidate = %d, %v; want %d", next, err, gen+1)
	}
}

func TestStatsCacheSetSkipsOutdatedGeneration(t *testing.T) {
	c := NewStatsCache(newTestClient(t), time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx, 9)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if err := c.Invalidate(ctx, 9); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	stale := &domain.Stats{ChartLabels: []string{"01/08"}, ChartData: []int{0}, RecentTasks: []domain.CompletedTask{}}
	if err := c.Set(ctx, 9, "2025-01-08", gen, stale); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, err := c.Get(ctx, 9, "2025-01-08"); err != nil || got != nil {
		t.Fatalf("outdated write stored: %+v, %v", got, err)
	}
}
