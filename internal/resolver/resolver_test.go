package resolver

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type toggle struct{ on bool }

func (t *toggle) IsEnabled() (bool, error)        { return t.on, nil }
func (t *toggle) SetEnabled(on bool) (bool, error) { t.on = on; return true, nil }

// countingSource hands out handles from a fixed table and counts calls.
type countingSource struct {
	handles map[feature.ID]backend.Handle
	calls   sync.Map
}

func (s *countingSource) Acquire(id feature.ID) (backend.Handle, error) {
	n, _ := s.calls.LoadOrStore(id, new(atomic.Int32))
	n.(*atomic.Int32).Add(1)
	h, ok := s.handles[id]
	if !ok {
		return nil, errors.New().New(backend.ErrNotFound)
	}
	return h, nil
}

func (s *countingSource) count(id feature.ID) int32 {
	n, ok := s.calls.Load(id)
	if !ok {
		return 0
	}
	return n.(*atomic.Int32).Load()
}

type mockBulk struct {
	mock.Mock
}

func (m *mockBulk) SupportedFeatures() (feature.Mask, error) {
	args := m.Called()
	return args.Get(0).(feature.Mask), args.Error(1)
}

func (m *mockBulk) Get(id feature.ID) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBulk) Set(id feature.ID, enabled bool) (bool, error) {
	args := m.Called(id, enabled)
	return args.Bool(0), args.Error(1)
}

func (m *mockBulk) DisplayColorCalibration() ([]int, error) {
	args := m.Called()
	rgb, _ := args.Get(0).([]int)
	return rgb, args.Error(1)
}

func (m *mockBulk) SetDisplayColorCalibration(rgb []int) (bool, error) {
	args := m.Called(rgb)
	return args.Bool(0), args.Error(1)
}

func TestResolveIsMemoized(t *testing.T) {
	src := &countingSource{handles: map[feature.ID]backend.Handle{feature.KeySwap: &toggle{}}}
	r := New(src, nil, logger.Nop())

	for i := 0; i < 5; i++ {
		h, ok := r.Resolve(feature.KeySwap)
		assert.True(t, ok)
		assert.Same(t, src.handles[feature.KeySwap], h)
	}
	assert.Equal(t, int32(1), src.count(feature.KeySwap))
}

func TestAbsenceIsSticky(t *testing.T) {
	src := &countingSource{handles: map[feature.ID]backend.Handle{}}
	r := New(src, nil, logger.Nop())

	_, ok := r.Resolve(feature.AntiFlicker)
	assert.False(t, ok)

	// the backend shows up later; the cached absence still wins
	src.handles[feature.AntiFlicker] = &toggle{}
	for i := 0; i < 3; i++ {
		_, ok = r.Resolve(feature.AntiFlicker)
		assert.False(t, ok)
	}
	assert.Equal(t, int32(1), src.count(feature.AntiFlicker))
}

func TestAcquireErrorsAreAbsence(t *testing.T) {
	src := backend.SourceFunc(func(feature.ID) (backend.Handle, error) {
		return nil, fmt.Errorf("hwservicemanager died")
	})
	r := New(src, nil, logger.Nop())

	_, ok := r.Resolve(feature.KeySwap)
	assert.False(t, ok)
	assert.Zero(t, r.Resolved())
}

func TestWrongHandleTypeIsAbsence(t *testing.T) {
	src := &countingSource{handles: map[feature.ID]backend.Handle{feature.DisplayColorCalibration: &toggle{}}}
	r := New(src, nil, logger.Nop())

	_, ok := r.Resolve(feature.DisplayColorCalibration)
	assert.False(t, ok)
}

func TestConcurrentResolveSettlesOnce(t *testing.T) {
	src := &countingSource{handles: map[feature.ID]backend.Handle{feature.KeyDisable: &toggle{}}}
	r := New(src, nil, logger.Nop())

	var wg sync.WaitGroup
	results := make([]backend.Handle, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.Resolve(feature.KeyDisable)
		}(i)
	}
	wg.Wait()

	for _, h := range results {
		assert.Same(t, src.handles[feature.KeyDisable], h)
	}
	assert.Equal(t, int32(1), src.count(feature.KeyDisable))
}

func TestIsSupportedBulk(t *testing.T) {
	bulk := &mockBulk{}
	bulk.On("SupportedFeatures").Return(feature.Mask(0).With(feature.ReadingEnhancement), nil)
	r := New(nil, bulk, logger.Nop())

	assert.True(t, r.IsSupportedBulk(feature.ReadingEnhancement))
	assert.False(t, r.IsSupportedBulk(feature.KeySwap))
	// not cached
	bulk.AssertNumberOfCalls(t, "SupportedFeatures", 2)
}

func TestIsSupportedBulkDisconnected(t *testing.T) {
	assert.False(t, New(nil, nil, logger.Nop()).IsSupportedBulk(feature.ReadingEnhancement))

	bulk := &mockBulk{}
	bulk.On("SupportedFeatures").Return(feature.Mask(0), errors.New().New(backend.ErrDisconnected))
	assert.False(t, New(nil, bulk, logger.Nop()).IsSupportedBulk(feature.ReadingEnhancement))
}

func TestIsSupportedResolvesEvenWhenBulkAnswers(t *testing.T) {
	src := &countingSource{handles: map[feature.ID]backend.Handle{feature.ReadingEnhancement: &toggle{}}}
	bulk := &mockBulk{}
	bulk.On("SupportedFeatures").Return(feature.Mask(0).With(feature.ReadingEnhancement), nil).Maybe()
	r := New(src, bulk, logger.Nop())

	assert.True(t, r.IsSupported(feature.ReadingEnhancement))
	assert.Equal(t, int32(1), src.count(feature.ReadingEnhancement))
	assert.True(t, r.Resolved().Has(feature.ReadingEnhancement))
}

func TestIsSupportedFallsBackToBulk(t *testing.T) {
	src := &countingSource{handles: map[feature.ID]backend.Handle{}}
	bulk := &mockBulk{}
	bulk.On("SupportedFeatures").Return(feature.Mask(0).With(feature.DisplayColorCalibration), nil)
	r := New(src, bulk, logger.Nop())

	assert.True(t, r.IsSupported(feature.DisplayColorCalibration))
	assert.False(t, r.IsSupported(feature.KeySwap))
	assert.Zero(t, r.Resolved())
}

func TestResolvedOnlyCountsLiveHandles(t *testing.T) {
	src := &countingSource{handles: map[feature.ID]backend.Handle{
		feature.KeySwap:     &toggle{},
		feature.AntiFlicker: &toggle{},
	}}
	r := New(src, nil, logger.Nop())

	require.Zero(t, r.Resolved())
	r.Resolve(feature.KeySwap)
	r.Resolve(feature.SunlightEnhancement)

	assert.Equal(t, feature.Mask(0).With(feature.KeySwap), r.Resolved())
}
