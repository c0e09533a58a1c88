package realtime

import (
	"time"

	"medagenda/utils"

	"go.uber.org/zap"
)

// RealtimeService pushes events to a practitioner's active connections.
// Delivery is fire-and-forget: with no connection registered the push is a
// silent no-op, and the boolean only reports whether anything was written.
type RealtimeService interface {
	PushToPractitioner(practitionerID, event string, payload interface{}) bool
}

// DefaultRealtimeService implements RealtimeService over the Hub registry.
type DefaultRealtimeService struct {
	Hub *Hub
}

func (s *DefaultRealtimeService) PushToPractitioner(practitionerID, event string, payload interface{}) bool {
	if s.Hub == nil {
		return false
	}
	delivered := s.Hub.send(practitionerID, Message{
		Event:   event,
		Payload: payload,
		SentAt:  time.Now(),
	})
	if delivered == 0 {
		utils.GetLogger().Debug("practitioner not connected, realtime push skipped",
			zap.String("practitionerID", practitionerID), zap.String("event", event))
		return false
	}
	return true
}
