package worker

import (
	"github.com/maplorix/jobboard-service/internal/events"
	"github.com/maplorix/jobboard-service/internal/service"
)

// RegisterNotificationHandlers wires the notification service onto the
// dispatcher. Called once at startup.
func RegisterNotificationHandlers(dispatcher events.Dispatcher, notifications *service.NotificationService) {
	dispatcher.Subscribe(events.EventJobCreated, notifications.HandleJobCreated)
	dispatcher.Subscribe(events.EventApplicationSubmitted, notifications.HandleApplicationSubmitted)
	dispatcher.Subscribe(events.EventApplicationStatusChanged, notifications.HandleApplicationStatusChanged)
	dispatcher.Subscribe(events.EventContactSubmitted, notifications.HandleContactSubmitted)
}
