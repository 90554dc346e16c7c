package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of change an event describes
type EventType string

const (
	EventTypeCreated     EventType = "created"
	EventTypeUpdated     EventType = "updated"
	EventTypeDeleted     EventType = "deleted"
	EventTypeDeactivated EventType = "deactivated"
	EventTypeUpserted    EventType = "upserted"
)

// EntityType represents the record kind the event is about
type EntityType string

const (
	EntityTypeExpense   EntityType = "expense"
	EntityTypeRecurring EntityType = "recurring"
	EntityTypeBudget    EntityType = "budget"
)

// Event is a change-feed message sent to clients. Clients may ignore the
// payload entirely and treat any event as a "re-fetch now" trigger.
type Event struct {
	Type      string      `json:"type"` // Combined type e.g. "expense.created"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseCreated creates an expense.created event
func ExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeExpense, payload)
}

// ExpenseUpdated creates an expense.updated event
func ExpenseUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeExpense, payload)
}

// ExpenseDeleted creates an expense.deleted event
func ExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeExpense, payload)
}

// RecurringCreated creates a recurring.created event
func RecurringCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeRecurring, payload)
}

// RecurringDeactivated creates a recurring.deactivated event
func RecurringDeactivated(payload interface{}) Event {
	return NewEvent(EventTypeDeactivated, EntityTypeRecurring, payload)
}

// BudgetUpserted creates a budget.upserted event
func BudgetUpserted(payload interface{}) Event {
	return NewEvent(EventTypeUpserted, EntityTypeBudget, payload)
}
