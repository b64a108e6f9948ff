package source

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"exchange-catalog/models"
	"exchange-catalog/services"
	"exchange-catalog/utils"
)

func TestLoaderDiscardsSupersededResponse(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	var calls atomic.Int32
	l := NewLoader[string](func(ctx context.Context, c services.Criteria) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []string{c.Search()}, nil
	}, time.Second, utils.NewNopLogger())

	var first Result[string]
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = l.Load(context.Background(), services.NewCriteria().WithSearch("spa"))
	}()
	<-started

	second := l.Load(context.Background(), services.NewCriteria().WithSearch("spain"))
	wg.Wait()

	assert.Equal(t, Discarded, first.State)
	assert.ErrorIs(t, first.Err, ErrStale)
	assert.Empty(t, first.Items)

	assert.Equal(t, Loaded, second.State)
	assert.Equal(t, []string{"spain"}, second.Items)
	assert.Greater(t, second.Request.ID, first.Request.ID)
}

func TestLoaderDiscardsLateResponseIgnoringCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	l := NewLoader[int](func(ctx context.Context, _ services.Criteria) ([]int, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []int{1, 2, 3}, nil
		}
		return []int{4}, nil
	}, time.Second, nil)

	done := make(chan Result[int])
	go func() { done <- l.Load(context.Background(), services.NewCriteria()) }()
	<-started

	latest := l.Load(context.Background(), services.NewCriteria())
	close(release)
	late := <-done

	assert.Equal(t, []int{4}, latest.Items)
	assert.Equal(t, Discarded, late.State)
	assert.ErrorIs(t, late.Err, ErrStale)
}

func TestLoaderTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoader[int](func(ctx context.Context, _ services.Criteria) ([]int, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, 20*time.Millisecond, nil)

	res := l.Load(context.Background(), services.NewCriteria())
	assert.Equal(t, Failed, res.State)
	assert.ErrorIs(t, res.Err, ErrTimeout)
	assert.ErrorIs(t, res.Err, ErrLoadFailed)
}

func TestLoaderEmptyAndRetry(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	var seen []services.Criteria
	l := NewLoader[int](func(_ context.Context, c services.Criteria) ([]int, error) {
		seen = append(seen, c)
		switch calls.Add(1) {
		case 1:
			return nil, NewHTTPError(503, "http://x", "Service Unavailable")
		case 2:
			return []int{}, nil
		default:
			return []int{7}, nil
		}
	}, time.Second, nil)

	_, ok := l.Latest()
	assert.False(t, ok)

	c := services.NewCriteria().WithEquals("hostCountry", "Spain")
	res := l.Load(context.Background(), c)
	assert.Equal(t, Failed, res.State)
	assert.ErrorIs(t, res.Err, ErrLoadFailed)

	res = l.Retry(context.Background())
	assert.Equal(t, Empty, res.State)
	assert.NotNil(t, res.Items)
	assert.NoError(t, res.Err)

	res = l.Retry(context.Background())
	assert.Equal(t, Loaded, res.State)
	assert.Equal(t, uint64(3), res.Request.ID)

	require.Len(t, seen, 3)
	for _, got := range seen {
		assert.True(t, got.Equal(c))
	}
}

func TestLoadStateString(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "discarded", Discarded.String())
	assert.Equal(t, "LoadState(42)", LoadState(42).String())
}

type fakeSource struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func (f *fakeSource) Fetch(_ context.Context, ep models.Endpoint) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[ep.Path]++
	if f.fail[ep.Path] {
		return nil, NewHTTPError(500, ep.Path, "Internal Server Error")
	}
	return []byte(`{"path":"` + ep.Path + `"}`), nil
}

func TestLoadAllDeduplicatesEndpoints(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{}
	eps := []models.Endpoint{
		models.MentorsEndpoint,
		models.UniversitiesEndpoint,
		models.MentorsEndpoint,
	}
	bodies, err := LoadAll(context.Background(), src, utils.NewWorkerPool(2, 0), eps, nil)
	require.NoError(t, err)

	assert.Len(t, bodies, 2)
	assert.Equal(t, 1, src.calls[models.MentorsEndpoint.Path])
	assert.Equal(t, 1, src.calls[models.UniversitiesEndpoint.Path])
}

func TestLoadAllJoinsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{fail: map[string]bool{models.CourseInsightsEndpoint.Path: true}}
	eps := []models.Endpoint{models.CourseInsightsEndpoint, models.PartnershipAnalyticsEndpoint}
	bodies, err := LoadAll(context.Background(), src, utils.NewWorkerPool(3, 0), eps, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailed))
	assert.True(t, strings.Contains(err.Error(), models.CourseInsightsEndpoint.Path))
	assert.Contains(t, bodies, models.PartnershipAnalyticsEndpoint.Path)
	assert.NotContains(t, bodies, models.CourseInsightsEndpoint.Path)
}
