package usecase

import (
	"context"

	"tasktrack-api/internal/realtime"
)

// BroadcastUserStatuses sends a full presence snapshot to every connected
// client. Called whenever a user comes online or goes offline.
func (uc *implUseCase) BroadcastUserStatuses(ctx context.Context) {
	if uc.directory == nil {
		uc.logger.Debugf(ctx, "presence broadcast skipped: no user directory attached")
		return
	}

	statuses, err := uc.buildUserStatuses(ctx)
	if err != nil {
		uc.logger.Errorf(ctx, "build user statuses failed: %v", err)
		return
	}

	msg, err := realtime.NewMessage(realtime.EventUsersStatusUpdated, statuses)
	if err != nil {
		uc.logger.Errorf(ctx, "marshal user statuses failed: %v", err)
		return
	}

	uc.hub.Broadcast(msg)
}

// buildUserStatuses merges directory profiles with live hub presence.
func (uc *implUseCase) buildUserStatuses(ctx context.Context) ([]realtime.UserStatusPayload, error) {
	users, err := uc.directory.ListBrief(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]realtime.UserStatusPayload, 0, len(users))
	for _, u := range users {
		statuses = append(statuses, realtime.UserStatusPayload{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      string(u.Role),
			IsOnline:  uc.hub.IsUserOnline(u.ID),
		})
	}
	return statuses, nil
}
