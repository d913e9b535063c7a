package pubsub

import (
	"strconv"

	"teeshop/internal/domain/service"
)

// eventAttributes builds the message attributes subscribers filter on.
func eventAttributes(event *service.DomainEvent) map[string]string {
	attributes := map[string]string{
		"type":       event.Type,
		"subject_id": strconv.FormatInt(event.SubjectID, 10),
	}
	if event.UserID != 0 {
		attributes["user_id"] = strconv.FormatInt(event.UserID, 10)
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
