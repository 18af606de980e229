package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
	"github.com/mitropolia-targovistei/calendar-site/internal/i18n"
)

func TestStoreLoad(t *testing.T) {
	t.Parallel()

	b := i18n.NewBundle(i18n.Default, i18n.English)
	s := NewStore(fetch.DirFetcher{FS: fixture()}, b, 2025, time.Second, nil)

	before := s.Snapshot()
	assert.Empty(t, before.Events)
	assert.NotNil(t, before.Gallery)
	assert.Equal(t, "Paștele", before.Holidays["2025-04-20"])

	require.NoError(t, s.Load(context.Background()))
	snap := s.Snapshot()
	assert.Len(t, snap.Events, 4)
	assert.Len(t, snap.Gallery, 8)
	assert.Equal(t, "Galeria Mitropoliei", snap.Pages["ro"]["/gallery"].Title)
	assert.False(t, snap.LoadedAt.IsZero())
	assert.Equal(t, "Home", b.T(i18n.English, "nav.home"))
}

func TestStoreLoadDegrades(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"i18n-ro.json": {Data: []byte(`{"nav":{"home":"Acasă"}}`)},
		"gallery.json": {Data: []byte(`{broken`)},
	}
	s := NewStore(fetch.DirFetcher{FS: fsys}, i18n.NewBundle(i18n.Default, i18n.English), 2025, time.Second, nil)

	require.NoError(t, s.Load(context.Background()), "only the default translations are required")
	snap := s.Snapshot()
	assert.NotNil(t, snap.Events)
	assert.Empty(t, snap.Events)
	assert.NotNil(t, snap.Gallery)
	assert.Empty(t, snap.Gallery)
	assert.Empty(t, snap.Pages)
}

func TestStoreReloadKeepsPreviousOnFailure(t *testing.T) {
	t.Parallel()

	fsys := fixture()
	s := NewStore(fetch.DirFetcher{FS: fsys}, i18n.NewBundle(i18n.Default, i18n.English), 2025, time.Second, nil)
	require.NoError(t, s.Load(context.Background()))
	first := s.Snapshot()

	fsys["orthodox-2025.json"] = &fstest.MapFile{Data: []byte(`[{"date":"2025-01-06"`)}
	delete(fsys, "gallery.json")
	fsys["pages.yaml"] = &fstest.MapFile{Data: []byte("ro: [unterminated")}

	require.NoError(t, s.Load(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, first.Events, snap.Events)
	assert.Equal(t, first.Gallery, snap.Gallery)
	assert.Equal(t, first.Pages, snap.Pages)

	fsys["orthodox-2025.json"] = &fstest.MapFile{Data: []byte(`[{"date":"2025-05-21","title":"Sf. Constantin și Elena","type":"feast"}]`)}
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Snapshot().Events, 2, "a good reload replaces the kept events")
}

func TestStoreLoadWithoutTranslations(t *testing.T) {
	t.Parallel()

	fsys := fixture()
	delete(fsys, "i18n-ro.json")
	s := NewStore(fetch.DirFetcher{FS: fsys}, i18n.NewBundle(i18n.Default, i18n.English), 2025, time.Second, nil)

	err := s.Load(context.Background())
	require.ErrorIs(t, err, i18n.ErrDefaultUnavailable)
	assert.Len(t, s.Snapshot().Events, 4, "the rest of the snapshot is still published")
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write("i18n-ro.json", `{}`)
	write("orthodox-2025.json", `[{"date":"2025-01-06","title":"Boboteaza","type":"feast"}]`)

	s := NewStore(fetch.DirFetcher{FS: os.DirFS(dir)}, i18n.NewBundle(i18n.Default), 2025, time.Second, nil)
	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.Snapshot().Events, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, dir, s, nil) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	write("orthodox-2025.json", `[{"date":"2025-01-06","title":"Boboteaza","type":"feast"},{"date":"2025-01-07","title":"Sf. Ioan","type":"feast"}]`)

	assert.Eventually(t, func() bool {
		return len(s.Snapshot().Events) == 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatchMissingDir(t *testing.T) {
	t.Parallel()

	s := NewStore(fetch.DirFetcher{}, i18n.NewBundle(i18n.Default), 2025, time.Second, nil)
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), s, nil)
	assert.Error(t, err)
}
