package audio

import (
	"errors"
	"sync"
	"testing"
)

func TestHandle_LastReleaseTearsDown(t *testing.T) {
	t.Parallel()

	src := newMockSource(8000, 1)
	if err := src.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	h := NewHandle(src)
	if err := h.Retain(); err != nil {
		t.Fatalf("Retain() error = %v", err)
	}
	if h.Refs() != 2 {
		t.Errorf("Refs() = %d, want 2", h.Refs())
	}

	if err := h.Release(); err != nil {
		t.Fatalf("first Release() error = %v", err)
	}
	if _, stops, closes := src.counts(); stops != 0 || closes != 0 {
		t.Errorf("source torn down early: stops=%d closes=%d", stops, closes)
	}
	if h.Source() == nil {
		t.Error("Source() = nil while a reference remains")
	}

	if err := h.Release(); err != nil {
		t.Fatalf("final Release() error = %v", err)
	}
	if _, stops, closes := src.counts(); stops != 1 || closes != 1 {
		t.Errorf("stops=%d closes=%d, want 1/1", stops, closes)
	}
	if h.Source() != nil {
		t.Error("Source() != nil after final release")
	}

	if err := h.Release(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("extra Release() error = %v, want ErrInvalidState", err)
	}
	if err := h.Retain(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Retain() after release error = %v, want ErrInvalidState", err)
	}
}

func TestHandle_StopErrorSurfaces(t *testing.T) {
	t.Parallel()

	src := newMockSource(8000, 1)
	src.stopErr = errors.New("device busy")

	h := NewHandle(src)
	if err := h.Release(); err == nil || err.Error() != "device busy" {
		t.Errorf("Release() error = %v, want device busy", err)
	}
	if _, _, closes := src.counts(); closes != 1 {
		t.Errorf("closes = %d, want 1 even when Stop fails", closes)
	}
}

func TestHandle_ConcurrentRelease(t *testing.T) {
	t.Parallel()

	src, err := NewToneSource(44100, 2)
	if err != nil {
		t.Fatalf("NewToneSource() error = %v", err)
	}
	if err := src.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	const holders = 16
	h := NewHandle(src)
	for range holders - 1 {
		if err := h.Retain(); err != nil {
			t.Fatalf("Retain() error = %v", err)
		}
	}

	var wg sync.WaitGroup
	for range holders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.Release(); err != nil {
				t.Errorf("Release() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if h.Refs() != 0 {
		t.Errorf("Refs() = %d, want 0", h.Refs())
	}
	if src.Started() {
		t.Error("source still started after final release")
	}
	if err := src.Start(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Start() on released source error = %v, want ErrInvalidState", err)
	}
}
