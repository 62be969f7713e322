package models

import "time"

// Tool names exposed to the chat agent.
const (
	ToolListServices      = "listServices"
	ToolCheckAvailability = "checkAvailability"
	ToolCreateAppointment = "createAppointment"
)

// ToolCall is a decoded, schema-checked function call requested by the model.
type ToolCall interface {
	ToolName() string
}

// ListServicesCall takes no arguments.
type ListServicesCall struct{}

func (ListServicesCall) ToolName() string { return ToolListServices }

// CheckAvailabilityCall asks for the free slots of one professional on one day.
type CheckAvailabilityCall struct {
	ProfessionalID string `json:"professionalId" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (CheckAvailabilityCall) ToolName() string { return ToolCheckAvailability }

// CreateAppointmentCall books a slot for a chat customer.
type CreateAppointmentCall struct {
	ServiceID      string `json:"serviceId" validate:"required"`
	ProfessionalID string `json:"professionalId"`
	StartTime      string `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	CustomerName   string `json:"customerName" validate:"required,max=120"`
	CustomerPhone  string `json:"customerPhone" validate:"required,min=8,max=20"`
}

func (CreateAppointmentCall) ToolName() string { return ToolCreateAppointment }

// InboundMessage is a normalised chat message from any channel.
type InboundMessage struct {
	TenantID string `json:"tenantId"`
	SenderID string `json:"senderId"`
	Text     string `json:"message"`
	// Audio holds a voice note to transcribe when Text is empty.
	Audio []byte `json:"-"`
}

// ChatTurn is one entry of the persisted conversation history.
type ChatTurn struct {
	Role string    `json:"role"` // "user" or "model"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// AgentSession is the conversation state kept per tenant and sender.
type AgentSession struct {
	History []ChatTurn `json:"history"`
}

// AgentReply is returned to the webhook caller.
type AgentReply struct {
	Reply     string   `json:"reply"`
	ToolCalls []string `json:"toolCalls,omitempty"`
}
