package realtime

import (
	"encoding/json"
	"time"

	"tasktrack-api/internal/model"
)

// --- Event Names ---
//
// Events form a closed set. Anything outside it is rejected at parse time.
const (
	// Client -> Server
	EventAuthenticate = "authenticate"
	EventPing         = "ping"

	// Server -> Client
	EventAuthenticated       = "authenticated"
	EventAuthenticationError = "authentication_error"
	EventPong                = "pong"
	EventTaskCreated         = "task_created"
	EventTaskUpdated         = "task_updated"
	EventTaskDeleted         = "task_deleted"
	EventUsersStatusUpdated  = "users_status_updated"
)

// Message is the wire envelope for every frame in both directions.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ParseMessage decodes a raw frame and rejects events outside the known set.
func ParseMessage(raw []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Message{}, ErrMalformedMessage
	}

	switch msg.Event {
	case EventAuthenticate, EventPing, EventAuthenticated, EventAuthenticationError,
		EventPong, EventTaskCreated, EventTaskUpdated, EventTaskDeleted,
		EventUsersStatusUpdated:
		return msg, nil
	}
	return Message{}, ErrUnknownEvent
}

// NewMessage builds a marshaled envelope for the given event.
func NewMessage(event string, data interface{}) ([]byte, error) {
	msg := Message{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return json.Marshal(msg)
}

// --- Handshake Payloads ---

type AuthenticatePayload struct {
	Token string `json:"token"`
}

type AuthenticatedPayload struct {
	Success bool `json:"success"`
}

type AuthErrorPayload struct {
	Error string `json:"error"`
}

// --- Event Payloads ---

type TaskDeletedPayload struct {
	TaskID string `json:"taskId"`
}

// UserStatusPayload is one entry of a users_status_updated snapshot.
type UserStatusPayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsOnline  bool   `json:"isOnline"`
}

// UserProfilePayload is the embedded profile on a task payload.
type UserProfilePayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type ReportFilePayload struct {
	Name         string    `json:"name"`
	URL          string    `json:"url,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Size         int64     `json:"size"`
	Comment      *string   `json:"comment,omitempty"`
	IsTextReport bool      `json:"isTextReport"`
}

// TaskPayload is the full task object carried by task_created and
// task_updated events.
type TaskPayload struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  *string             `json:"description,omitempty"`
	Priority     string              `json:"priority"`
	Deadline     *time.Time          `json:"deadline,omitempty"`
	Status       string              `json:"status"`
	AssigneeID   string              `json:"assigneeId"`
	AssigneeName string              `json:"assigneeName,omitempty"`
	CreatedBy    string              `json:"createdBy"`
	UpdatedBy    *string             `json:"updatedBy,omitempty"`
	ReportFile   *ReportFilePayload  `json:"reportFile,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Assignee     *UserProfilePayload `json:"assignee,omitempty"`
	Creator      *UserProfilePayload `json:"creator,omitempty"`
}

// NewTaskPayload maps a domain task to its wire representation.
func NewTaskPayload(t model.Task) TaskPayload {
	p := TaskPayload{
		ID:         t.ID,
		Title:      t.Title,
		Priority:   string(t.Priority),
		Status:     string(t.Status),
		AssigneeID: t.AssigneeID,
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.Description.Valid {
		p.Description = &t.Description.String
	}
	if t.Deadline.Valid {
		p.Deadline = &t.Deadline.Time
	}
	if t.UpdatedBy.Valid {
		p.UpdatedBy = &t.UpdatedBy.String
	}
	if t.Report != nil {
		rf := &ReportFilePayload{
			Name:         t.Report.Name,
			URL:          t.Report.URL,
			UploadedAt:   t.Report.UploadedAt,
			Size:         t.Report.Size,
			IsTextReport: t.Report.IsTextReport,
		}
		if t.Report.Comment.Valid {
			rf.Comment = &t.Report.Comment.String
		}
		p.ReportFile = rf
	}
	if t.Assignee != nil {
		p.Assignee = newUserProfilePayload(*t.Assignee)
		p.AssigneeName = t.Assignee.DisplayName()
	}
	if t.Creator != nil {
		p.Creator = newUserProfilePayload(*t.Creator)
	}
	return p
}

func newUserProfilePayload(u model.User) *UserProfilePayload {
	return &UserProfilePayload{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
	}
}

// --- UseCase Inputs ---

// AttachInput represents a new connection attempt.
type AttachInput struct {
	Conn interface{} // *websocket.Conn, kept opaque to avoid leaking gorilla into the public surface
}

// RemoteEnvelope wraps an event published across instances so a node can
// skip its own messages on intake.
type RemoteEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

// --- UseCase Outputs ---

type HubStats struct {
	ActiveConnections int `json:"active_connections"`
	TotalUniqueUsers  int `json:"total_unique_users"`
}
