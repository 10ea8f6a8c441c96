package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/HIMS4RA/CocoPro/internal/dto"
	"github.com/HIMS4RA/CocoPro/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memBatchRepo struct {
	mu         sync.Mutex
	counter    int64
	processes  []*model.BatchProcess
	failCreate bool
}

func (r *memBatchRepo) NextBatchNumberTx(ctx context.Context, tx *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter, nil
}

func (r *memBatchRepo) CreateProcessTx(tx *gorm.DB, bp *model.BatchProcess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("storage unavailable")
	}
	cp := *bp
	r.processes = append(r.processes, &cp)
	return nil
}

func (r *memBatchRepo) FindByBatchID(ctx context.Context, batchID string) (*model.BatchProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bp := range r.processes {
		if bp.BatchID == batchID {
			cp := *bp
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBatchRepo) Update(ctx context.Context, bp *model.BatchProcess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.processes {
		if existing.ID == bp.ID {
			cp := *bp
			r.processes[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memBatchRepo) ListRecent(ctx context.Context, limit int) ([]model.BatchProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.BatchProcess, 0, len(r.processes))
	for _, bp := range r.processes {
		out = append(out, *bp)
	}
	return out, nil
}

func (r *memBatchRepo) ListToday(ctx context.Context, operatorEmail string, limit int) ([]model.BatchProcess, error) {
	return r.ListRecent(ctx, limit)
}

func (r *memBatchRepo) DB() *gorm.DB { return nil }

func TestStartIssuesSequentialIdentifiers(t *testing.T) {
	repo := &memBatchRepo{}
	svc := NewBatchService(repo)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		resp, err := svc.Start(ctx, dto.StartBatchRequest{
			InitialMoisture: decimal.NewFromInt(55),
			OperatorEmail:   "operator@cocopro.lk",
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("B%d", i), resp.BatchID)
	}
}

func TestStartConcurrentIssuesUniqueIdentifiers(t *testing.T) {
	repo := &memBatchRepo{}
	svc := NewBatchService(repo)

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Start(context.Background(), dto.StartBatchRequest{
				InitialMoisture: decimal.NewFromInt(50),
				OperatorEmail:   "operator@cocopro.lk",
			})
			if err == nil {
				ids <- resp.BatchID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate batch identifier %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestStartFailurePersistsNothing(t *testing.T) {
	repo := &memBatchRepo{failCreate: true}
	svc := NewBatchService(repo)

	_, err := svc.Start(context.Background(), dto.StartBatchRequest{
		InitialMoisture: decimal.NewFromInt(50),
		OperatorEmail:   "operator@cocopro.lk",
	})
	require.Error(t, err)
	assert.Empty(t, repo.processes)
}

func TestStopRecordsEndTimeAndFinalMoisture(t *testing.T) {
	repo := &memBatchRepo{}
	svc := NewBatchService(repo)
	ctx := context.Background()

	started, err := svc.Start(ctx, dto.StartBatchRequest{
		InitialMoisture: decimal.RequireFromString("55.5"),
		OperatorEmail:   "operator@cocopro.lk",
	})
	require.NoError(t, err)

	stopped, err := svc.Stop(ctx, started.BatchID, dto.StopBatchRequest{
		FinalMoisture: decimal.RequireFromString("12.3"),
	})
	require.NoError(t, err)

	require.NotNil(t, stopped.EndTime)
	endTime, err := time.Parse(time.RFC3339, *stopped.EndTime)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), endTime, 5*time.Second)

	require.NotNil(t, stopped.FinalMoisture)
	assert.True(t, stopped.FinalMoisture.Equal(decimal.RequireFromString("12.3")))
}

func TestStopUnknownBatchFails(t *testing.T) {
	svc := NewBatchService(&memBatchRepo{})

	_, err := svc.Stop(context.Background(), "B999", dto.StopBatchRequest{
		FinalMoisture: decimal.NewFromInt(10),
	})
	assert.Error(t, err)
}
