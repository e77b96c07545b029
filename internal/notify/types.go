package notify

// SoundKind names one of the synthesized notification sounds.
type SoundKind string

const (
	SoundNone    SoundKind = ""
	SoundNewTask SoundKind = "new_task"
	SoundSuccess SoundKind = "success"
	SoundError   SoundKind = "error"
)

// Permission is the browser-style desktop notification permission state.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Policy is the persisted per-user notification preference. It is read at
// startup and mutated only by explicit user action, never by the network
// layer.
type Policy struct {
	SoundEnabled      bool       `json:"sound_enabled"`
	BrowserPermission Permission `json:"browser_permission"`
}

// DefaultPolicy returns the initial policy for a fresh profile.
func DefaultPolicy() Policy {
	return Policy{
		SoundEnabled:      true,
		BrowserPermission: PermissionDefault,
	}
}

// Viewer is the local user the surface decides on behalf of.
type Viewer struct {
	ID   string
	Role string
}

// IsManager reports whether the viewer oversees other users' tasks.
func (v Viewer) IsManager() bool {
	return v.Role == "ADMIN" || v.Role == "BOSS"
}

// Effect is the decided local reaction to one delivered event.
type Effect struct {
	Sound       SoundKind
	ShowDesktop bool
	Title       string
	Body        string
}

// IsZero reports whether the effect does nothing.
func (e Effect) IsZero() bool {
	return e.Sound == SoundNone && !e.ShowDesktop
}
