package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID_Unique(t *testing.T) {
	Init(1)

	const count = 10000
	seen := make(map[int64]struct{}, count)
	for i := 0; i < count; i++ {
		id := NextID()
		if _, ok := seen[id]; ok {
			t.Fatalf("生成了重复 ID: %d", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNextID_Concurrent(t *testing.T) {
	Init(1)

	const workers = 8
	const perWorker = 1000

	var mu sync.Mutex
	seen := make(map[int64]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := NextID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestGenerateBookingNo(t *testing.T) {
	no := GenerateBookingNo()
	assert.True(t, strings.HasPrefix(no, "BKG"))
	// BKG + 14位时间 + 8位序列
	assert.Len(t, no, 25)
}

func TestGenerateTransactionNo(t *testing.T) {
	no := GenerateTransactionNo()
	assert.True(t, strings.HasPrefix(no, "TXN"))
	assert.Len(t, no, 25)

	assert.NotEqual(t, no, GenerateTransactionNo())
}
