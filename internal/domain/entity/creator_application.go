package entity

import "time"

// ApplicationStatus is the moderation state of a CreatorApplication.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsDecision reports whether the status is one an admin may set.
func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// CreatorApplication is a user's request to be promoted to the creator role.
type CreatorApplication struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"userId"`
	Status    ApplicationStatus `json:"status"`
	Portfolio string            `json:"portfolio"`
	Sample    string            `json:"sample"`
	Reason    string            `json:"reason"`
	CreatedAt time.Time         `json:"createdAt"`
}

// IsPending reports whether the application still awaits a decision.
func (a *CreatorApplication) IsPending() bool {
	return a.Status == ApplicationPending
}
