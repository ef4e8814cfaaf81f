package reconciler_test

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/licache/internal/adapters/logger"
	"go.trai.ch/licache/internal/adapters/telemetry"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports/mocks"
	"go.trai.ch/licache/internal/engine/reconciler"
	"go.uber.org/mock/gomock"
)

func TestSweep(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(f.app.CachePath, "npm")
	for _, name := range []string{"a", "@scope/b", "@scope/c", "d"} {
		path, err := reconciler.RecordPath(dir, name)
		require.NoError(t, err)
		require.NoError(t, f.store.Write(path, domain.Record{Name: name, Version: "1.0"}))
	}

	removed, err := f.rec.Sweep(dir, map[string]struct{}{"a": {}, "@scope/c": {}})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	paths, err := f.store.Enumerate(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.dependency"),
		filepath.Join(dir, "@scope", "c.dependency"),
	}, paths)
}

func TestSweep_MissingDir(t *testing.T) {
	f := newFixture(t)

	removed, err := f.rec.Sweep(filepath.Join(f.app.CachePath, "none"), nil)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSweep_CollectsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRecordStore(ctrl)
	rec := reconciler.NewReconciler(store, &captureReporter{}, logger.NewWithWriter(io.Discard), telemetry.NewNoOp())

	dir := "cache"
	paths := []string{
		filepath.Join(dir, "a.dependency"),
		filepath.Join(dir, "b.dependency"),
		filepath.Join(dir, "c.dependency"),
	}
	store.EXPECT().Enumerate(dir).Return(paths, nil)
	store.EXPECT().Delete(paths[0]).Return(errors.New("busy"))
	store.EXPECT().Delete(paths[1]).Return(nil)
	store.EXPECT().Delete(paths[2]).Return(errors.New("read-only"))

	removed, err := rec.Sweep(dir, map[string]struct{}{})
	assert.Equal(t, 1, removed)
	require.ErrorIs(t, err, domain.ErrSweepFailed)
	require.ErrorContains(t, err, "busy")
	require.ErrorContains(t, err, "read-only")
}

func TestSweep_EnumerateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRecordStore(ctrl)
	rec := reconciler.NewReconciler(store, &captureReporter{}, logger.NewWithWriter(io.Discard), telemetry.NewNoOp())

	store.EXPECT().Enumerate("cache").Return(nil, errors.New("denied"))

	removed, err := rec.Sweep("cache", nil)
	assert.Zero(t, removed)
	require.ErrorIs(t, err, domain.ErrSweepFailed)
}
