package events

import (
	"time"
)

// EventType enumera os identificadores de eventos de domínio
type EventType string

const (
	EventConsultationCreated     EventType = "consultation_created"
	EventConsultationDeactivated EventType = "consultation_deactivated"
	EventCommentCreated          EventType = "comment_created"
	EventCommentBlocked          EventType = "comment_blocked"
	EventCommentUnblocked        EventType = "comment_unblocked"
)

// Event representa um evento de domínio emitido pelos services
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	ConsultationID string      `json:"consultationId,omitempty"`
	CommentID      string      `json:"commentId,omitempty"`
	ActorID        string      `json:"actorId,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload,omitempty"`
}

// CommentCreatedPayload carrega os dados do comentário recém-criado
type CommentCreatedPayload struct {
	Blocked     bool   `json:"blocked"`
	BodyPreview string `json:"bodyPreview"`
}

// ConsultationCreatedPayload carrega os dados da consulta recém-criada
type ConsultationCreatedPayload struct {
	Subject string `json:"subject"`
}
