package models

// Event represents a meetup event owned by a user. Joining happens through
// the invite code, which must be unique across events.
type Event struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Owner      int64  `json:"owner"`
	InviteCode string `json:"invite_code"`
}

// Participant links a user to an event they joined.
type Participant struct {
	ID      int64 `json:"id"`
	EventID int64 `json:"event_id"`
	UserID  int64 `json:"user_id"`
}
