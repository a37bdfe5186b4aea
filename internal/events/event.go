// Package events publishes audit records for committed mutations.
package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const AuditQueue = "fyyur.audit"

const (
	EntityVenue  = "venue"
	EntityArtist = "artist"
	EntityShow   = "show"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// AuditEvent describes one committed change. Fields lists the columns an
// update touched and is empty for creates and deletes.
type AuditEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name,omitempty"`
	Fields []string  `json:"fields,omitempty"`
	At     time.Time `json:"at"`
}

func New(entity, action string, id uuid.UUID, name string, fields ...string) AuditEvent {
	return AuditEvent{
		Entity: entity,
		Action: action,
		ID:     id,
		Name:   name,
		Fields: fields,
		At:     time.Now().UTC(),
	}
}

// Line renders the event as a single log line for audit-tail.
func (e AuditEvent) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s | id=%s", e.At.Format(time.RFC3339), e.Entity, e.Action, e.ID)
	if e.Name != "" {
		fmt.Fprintf(&b, " | name=%q", e.Name)
	}
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " | fields=[%s]", strings.Join(e.Fields, ","))
	}
	return b.String()
}
