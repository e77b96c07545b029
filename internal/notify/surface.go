package notify

import (
	"context"
	"sync"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/log"
)

// SoundPlayer plays a synthesized notification sound.
type SoundPlayer interface {
	Play(sound SoundKind) error
}

// DesktopNotifier raises desktop notifications and owns the permission
// dialog.
type DesktopNotifier interface {
	// RequestPermission asks the user once. Must only be called from a
	// user gesture.
	RequestPermission(ctx context.Context) (Permission, error)
	Show(title, body string) error
}

// Surface turns delivered events into local effects: a sound, a desktop
// notification, or nothing, gated by the persisted policy and the
// permission state. It runs on the UI side of the connection.
type Surface struct {
	viewer  Viewer
	lang    string
	store   *Store
	sounds  SoundPlayer
	desktop DesktopNotifier
	logger  log.Logger

	mu     sync.Mutex
	policy Policy

	// Last seen status per task, for detecting transitions on
	// task_updated events.
	statuses map[string]string

	// prompted guards the one-shot permission request within a session.
	prompted bool
}

func NewSurface(viewer Viewer, lang string, store *Store, sounds SoundPlayer, desktop DesktopNotifier, logger log.Logger) (*Surface, error) {
	policy, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Surface{
		viewer:   viewer,
		lang:     lang,
		store:    store,
		sounds:   sounds,
		desktop:  desktop,
		logger:   logger,
		policy:   policy,
		statuses: make(map[string]string),
	}, nil
}

// Policy returns the current policy snapshot.
func (s *Surface) Policy() Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// SetSoundEnabled flips the sound preference and persists it.
func (s *Surface) SetSoundEnabled(enabled bool) error {
	s.mu.Lock()
	s.policy.SoundEnabled = enabled
	policy := s.policy
	s.mu.Unlock()

	return s.store.Save(policy)
}

// RequestPermission performs the one-shot permission flow. A stored denial
// is never re-prompted; the caller gets the final state either way.
func (s *Surface) RequestPermission(ctx context.Context) (Permission, error) {
	s.mu.Lock()
	current := s.policy.BrowserPermission
	alreadyPrompted := s.prompted
	s.mu.Unlock()

	if current == PermissionGranted || current == PermissionDenied || alreadyPrompted {
		return current, nil
	}

	s.mu.Lock()
	s.prompted = true
	s.mu.Unlock()

	result, err := s.desktop.RequestPermission(ctx)
	if err != nil {
		return current, err
	}

	s.mu.Lock()
	s.policy.BrowserPermission = result
	policy := s.policy
	s.mu.Unlock()

	if err := s.store.Save(policy); err != nil {
		s.logger.Warnf(ctx, "persist notification policy failed: %v", err)
	}
	return result, nil
}

// HandleTaskCreated reacts to a task_created event.
func (s *Surface) HandleTaskCreated(ctx context.Context, task realtime.TaskPayload) {
	s.mu.Lock()
	s.statuses[task.ID] = task.Status
	s.mu.Unlock()

	s.apply(ctx, DecideTaskCreated(s.viewer, s.lang, task))
}

// HandleTaskUpdated reacts to a task_updated event. Only status transitions
// produce effects; other field edits just refresh the cache.
func (s *Surface) HandleTaskUpdated(ctx context.Context, task realtime.TaskPayload) {
	s.mu.Lock()
	oldStatus, known := s.statuses[task.ID]
	s.statuses[task.ID] = task.Status
	s.mu.Unlock()

	if !known {
		return
	}
	s.apply(ctx, DecideStatusChanged(s.viewer, s.lang, oldStatus, task))
}

// HandleTaskDeleted drops the cached status.
func (s *Surface) HandleTaskDeleted(ctx context.Context, taskID string) {
	s.mu.Lock()
	delete(s.statuses, taskID)
	s.mu.Unlock()
}

// SeedStatuses primes the transition cache from a full task fetch, so the
// first update after a resync does not misfire.
func (s *Surface) SeedStatuses(tasks []realtime.TaskPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tasks {
		s.statuses[t.ID] = t.Status
	}
}

func (s *Surface) apply(ctx context.Context, effect Effect) {
	if effect.IsZero() {
		return
	}

	s.mu.Lock()
	policy := s.policy
	s.mu.Unlock()

	if effect.Sound != SoundNone && policy.SoundEnabled && s.sounds != nil {
		if err := s.sounds.Play(effect.Sound); err != nil {
			s.logger.Warnf(ctx, "play sound %s failed: %v", effect.Sound, err)
		}
	}

	if effect.ShowDesktop && policy.BrowserPermission == PermissionGranted && s.desktop != nil {
		if err := s.desktop.Show(effect.Title, effect.Body); err != nil {
			s.logger.Warnf(ctx, "show notification failed: %v", err)
		}
	}
}
