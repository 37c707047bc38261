package audio

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	src := newMockSource(8000, 1)

	registry.Register("mock", mockFactory(src))

	f, ok := registry.Get("mock")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered factory")
	}

	got, err := f(8000, 1)
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	if got != src {
		t.Error("factory returned a different source instance")
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	_, ok := registry.Get("nonexistent")
	if ok {
		t.Error("Registry.Get() returned ok=true for non-existent kind")
	}
}

func TestRegistry_New(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	src := newMockSource(8000, 1)
	registry.Register("mock", mockFactory(src))
	registry.Register("broken", failingFactory)

	tests := []struct {
		name    string
		kind    string
		want    MediaSource
		wantErr bool
		is      error
	}{
		{"registered", "mock", src, false, nil},
		{"unknown", "flac", nil, true, ErrUnknownSource},
		{"factory error", "broken", nil, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.New(tt.kind, 8000, 1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Registry.New(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Registry.New(%q) error = %v, want %v", tt.kind, err, tt.is)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Registry.New(%q) returned wrong source", tt.kind)
			}
		})
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := newMockSource(8000, 1)
	second := newMockSource(8000, 1)

	registry.Register("mock", mockFactory(first))
	registry.Register("mock", mockFactory(second))

	got, err := registry.New("mock", 8000, 1)
	if err != nil {
		t.Fatalf("Registry.New() error = %v", err)
	}
	if got != second {
		t.Error("Registry.New() did not use the overwritten factory")
	}
}

func TestRegistry_Kinds(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("tone", ToneFactory())
	registry.Register("mock", mockFactory(newMockSource(8000, 1)))
	registry.Register("another", failingFactory)

	want := []string{"another", "mock", "tone"}
	if got := registry.Kinds(); !slices.Equal(got, want) {
		t.Errorf("Registry.Kinds() = %v, want %v", got, want)
	}
}

func TestDefaultRegistry_Tone(t *testing.T) {
	t.Parallel()

	registry := DefaultRegistry()

	src, err := registry.New("tone", 44100, 2)
	if err != nil {
		t.Fatalf("Registry.New(tone) error = %v", err)
	}
	defer src.Close()

	if _, ok := src.(*ToneSource); !ok {
		t.Errorf("Registry.New(tone) = %T, want *ToneSource", src)
	}

	if _, err := registry.New("tone", 0, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Registry.New(tone, 0, 2) error = %v, want ErrInvalidArgument", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	factory := ToneFactory()

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("tone", factory)
			done <- true
		}()
	}

	for range 10 {
		go func() {
			_, _ = registry.Get("tone")
			_ = registry.Kinds()
			done <- true
		}()
	}

	for range 20 {
		<-done
	}

	if _, ok := registry.Get("tone"); !ok {
		t.Error("Registry.Get() failed after concurrent operations")
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if registry.factories == nil {
		t.Error("NewRegistry() did not initialize factories map")
	}

	if registry.mtx == nil {
		t.Error("NewRegistry() did not initialize mutex")
	}
}

func TestSeekTo(t *testing.T) {
	t.Parallel()

	opts := SeekTo(250 * time.Millisecond)
	if !opts.Seek || opts.Position != 250*time.Millisecond {
		t.Errorf("SeekTo() = %+v", *opts)
	}
}

func TestToneSource_ImplementsMediaSource(t *testing.T) {
	t.Parallel()

	var _ MediaSource = (*ToneSource)(nil)
	var _ MediaSource = (*mockSource)(nil)
}

func BenchmarkRegistry_Get(b *testing.B) {
	registry := DefaultRegistry()

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("tone")
	}
}
