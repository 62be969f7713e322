// File: services/intelligence/interface.go
package ai

import (
	"context"
	"time"

	"flowmaster/models"
	"flowmaster/services/booking"
	"flowmaster/services/catalog"
	"flowmaster/services/tenant"
)

// maxToolRounds bounds the function-call exchanges triggered by one inbound message.
const maxToolRounds = 5

// maxHistory is the number of turns replayed to the model.
const maxHistory = 20

// AgentService answers customer chat messages and books on their behalf.
type AgentService interface {
	HandleMessage(ctx context.Context, msg models.InboundMessage) (*models.AgentReply, error)
}

// DefaultAgentService drives a function-calling chat model over the booking services.
type DefaultAgentService struct {
	Sessions    *SessionStore
	Model       ChatModel
	Transcriber Transcriber
	Tenants     tenant.TenantService
	Catalog     catalog.CatalogService
	Booking     booking.BookingService
	Now         func() time.Time
}

func (s *DefaultAgentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// ToolResult is the answer to one FunctionCall.
type ToolResult struct {
	Name     string
	Response map[string]any
}

// ModelTurn is one reply of the model: text, tool calls or both.
type ModelTurn struct {
	Text  string
	Calls []FunctionCall
}

// ChatModel opens conversations with a language model.
type ChatModel interface {
	StartChat(systemPrompt string, history []models.ChatTurn) ChatSession
}

// ChatSession is one conversation in progress.
type ChatSession interface {
	SendText(ctx context.Context, text string) (*ModelTurn, error)
	SendToolResults(ctx context.Context, results []ToolResult) (*ModelTurn, error)
}

// Transcriber turns a voice note into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
