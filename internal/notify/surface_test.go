package notify

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/locale"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

type fakeSounds struct {
	mu     sync.Mutex
	played []SoundKind
}

func (f *fakeSounds) Play(sound SoundKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, sound)
	return nil
}

func (f *fakeSounds) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.played)
}

type fakeDesktop struct {
	mu       sync.Mutex
	answer   Permission
	requests int
	shown    []string
}

func (f *fakeDesktop) RequestPermission(ctx context.Context) (Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	return f.answer, nil
}

func (f *fakeDesktop) Show(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, title)
	return nil
}

func newTestSurface(t *testing.T, viewer Viewer, desktop *fakeDesktop, sounds *fakeSounds) *Surface {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "notifications.json"))
	surface, err := NewSurface(viewer, locale.RU, store, sounds, desktop, &testLogger{})
	require.NoError(t, err)
	return surface
}

func TestSurfacePlaysSoundAndShowsNotification(t *testing.T) {
	ctx := context.Background()
	sounds := &fakeSounds{}
	desktop := &fakeDesktop{answer: PermissionGranted}
	surface := newTestSurface(t, Viewer{ID: "user_1", Role: "USER"}, desktop, sounds)

	perm, err := surface.RequestPermission(ctx)
	require.NoError(t, err)
	require.Equal(t, PermissionGranted, perm)

	surface.HandleTaskCreated(ctx, realtime.TaskPayload{
		ID: "task_1", Title: "Review contract", AssigneeID: "user_1", Status: "ASSIGNED",
	})

	assert.Equal(t, []SoundKind{SoundNewTask}, sounds.played)
	assert.Equal(t, []string{"Новая задача"}, desktop.shown)
}

func TestSurfaceRespectsDisabledSound(t *testing.T) {
	ctx := context.Background()
	sounds := &fakeSounds{}
	desktop := &fakeDesktop{answer: PermissionGranted}
	surface := newTestSurface(t, Viewer{ID: "user_1", Role: "USER"}, desktop, sounds)

	require.NoError(t, surface.SetSoundEnabled(false))
	_, err := surface.RequestPermission(ctx)
	require.NoError(t, err)

	surface.HandleTaskCreated(ctx, realtime.TaskPayload{
		ID: "task_1", Title: "Review contract", AssigneeID: "user_1", Status: "ASSIGNED",
	})

	assert.Zero(t, sounds.count(), "no sound when disabled")
	assert.Len(t, desktop.shown, 1, "desktop notification still shows")
}

func TestSurfaceSuppressesDesktopWithoutPermission(t *testing.T) {
	ctx := context.Background()
	sounds := &fakeSounds{}
	desktop := &fakeDesktop{answer: PermissionDefault}
	surface := newTestSurface(t, Viewer{ID: "user_1", Role: "USER"}, desktop, sounds)

	surface.HandleTaskCreated(ctx, realtime.TaskPayload{
		ID: "task_1", Title: "Review contract", AssigneeID: "user_1", Status: "ASSIGNED",
	})

	assert.Equal(t, 1, sounds.count(), "sound does not depend on desktop permission")
	assert.Empty(t, desktop.shown)
}

func TestSurfaceDoesNotRepromptDenied(t *testing.T) {
	ctx := context.Background()
	desktop := &fakeDesktop{answer: PermissionDenied}
	surface := newTestSurface(t, Viewer{ID: "user_1", Role: "USER"}, desktop, &fakeSounds{})

	perm, err := surface.RequestPermission(ctx)
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, perm)
	assert.Equal(t, 1, desktop.requests)

	// A stored denial is terminal: no further prompt
	perm, err = surface.RequestPermission(ctx)
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, perm)
	assert.Equal(t, 1, desktop.requests)
}

func TestSurfaceDetectsStatusTransition(t *testing.T) {
	ctx := context.Background()
	sounds := &fakeSounds{}
	desktop := &fakeDesktop{answer: PermissionGranted}
	surface := newTestSurface(t, Viewer{ID: "user_1", Role: "USER"}, desktop, sounds)
	_, err := surface.RequestPermission(ctx)
	require.NoError(t, err)

	surface.SeedStatuses([]realtime.TaskPayload{
		{ID: "task_1", Title: "Review contract", AssigneeID: "user_1", Status: "UNDER_REVIEW"},
	})

	surface.HandleTaskUpdated(ctx, realtime.TaskPayload{
		ID: "task_1", Title: "Review contract", AssigneeID: "user_1", Status: "COMPLETED",
	})
	assert.Equal(t, []SoundKind{SoundSuccess}, sounds.played)

	// Repeated update with the same status must not fire again
	surface.HandleTaskUpdated(ctx, realtime.TaskPayload{
		ID: "task_1", Title: "Review contract", AssigneeID: "user_1", Status: "COMPLETED",
	})
	assert.Equal(t, 1, sounds.count())
}

func TestSurfaceIgnoresUnknownTaskUpdate(t *testing.T) {
	ctx := context.Background()
	sounds := &fakeSounds{}
	desktop := &fakeDesktop{answer: PermissionGranted}
	surface := newTestSurface(t, Viewer{ID: "user_1", Role: "USER"}, desktop, sounds)

	// Update for a task never seen: cache it silently
	surface.HandleTaskUpdated(ctx, realtime.TaskPayload{
		ID: "task_9", Title: "Review contract", AssigneeID: "user_1", Status: "COMPLETED",
	})
	assert.Zero(t, sounds.count())
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "notifications.json"))

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)

	p.SoundEnabled = false
	p.BrowserPermission = PermissionGranted
	require.NoError(t, store.Save(p))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}
