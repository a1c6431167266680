package models

// Event is a reminder entry in the events collection. All timestamps are
// carried as the caller-supplied strings; the store does not interpret them.
type Event struct {
	Title     string `json:"title" firestore:"title" binding:"required"`
	Start     string `json:"start" firestore:"start" binding:"required"`
	RemindAt  string `json:"remindAt" firestore:"remindAt" binding:"required"`
	CreatedBy string `json:"createdBy" firestore:"createdBy" binding:"required"`
	Notes     string `json:"notes" firestore:"notes"`
}

// StoredEvent is an Event together with the id the store assigned on creation.
type StoredEvent struct {
	ID string `json:"id"`
	Event
}
