package services

import (
	"regexp"
	"sync"
	"testing"
	"time"
)

var numberPattern = regexp.MustCompile(`^QTN-\d{8}-[0-9A-Z]+$`)

func TestSnowflakeNumbererFormat(t *testing.T) {
	n, err := NewSnowflakeNumberer(3)
	if err != nil {
		t.Fatalf("numberer: %v", err)
	}
	got := n.Next(time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC))
	if !numberPattern.MatchString(got) {
		t.Fatalf("unexpected format %q", got)
	}
	if got[:13] != "QTN-20260105-" {
		t.Fatalf("date segment wrong in %q", got)
	}
}

func TestSnowflakeNumbererUniqueSameDay(t *testing.T) {
	n, err := NewSnowflakeNumberer(1)
	if err != nil {
		t.Fatalf("numberer: %v", err)
	}

	const workers, perWorker = 8, 250
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, n.Next(fixedNow))
			}
			mu.Lock()
			defer mu.Unlock()
			for _, s := range local {
				if _, dup := seen[s]; dup {
					t.Errorf("duplicate number %s", s)
				}
				seen[s] = struct{}{}
			}
		}()
	}
	wg.Wait()
	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d distinct numbers got %d", workers*perWorker, len(seen))
	}
}

func TestNewSnowflakeNumbererRejectsBadNode(t *testing.T) {
	if _, err := NewSnowflakeNumberer(-1); err == nil {
		t.Fatalf("expected error for negative node id")
	}
	if _, err := NewSnowflakeNumberer(1 << 20); err == nil {
		t.Fatalf("expected error for node id out of range")
	}
}
