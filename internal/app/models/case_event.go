package models

import (
	"medtour-service/internal/pkg/dto/responses"
	"time"
)

type CaseEvent struct {
	ID         string    `json:"id" bson:"_id"`
	CaseID     string    `json:"case_id" bson:"case_id"`
	Transition string    `json:"transition" bson:"transition"`
	Actor      string    `json:"actor" bson:"actor"`
	ActorRole  string    `json:"actor_role" bson:"actor_role"`
	FromStatus string    `json:"from_status" bson:"from_status"`
	ToStatus   string    `json:"to_status" bson:"to_status"`
	RequestID  string    `json:"request_id" bson:"request_id"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}

func (e CaseEvent) ConvertIntoResponse() responses.CaseEvent {
	return responses.CaseEvent{
		ID:         e.ID,
		CaseID:     e.CaseID,
		Transition: e.Transition,
		Actor:      e.Actor,
		ActorRole:  e.ActorRole,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		OccurredAt: e.OccurredAt,
	}
}
