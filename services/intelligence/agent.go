// File: services/intelligence/agent.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flowmaster/models"
	"flowmaster/utils"

	"go.uber.org/zap"
)

const fallbackReply = "Sorry, I could not complete that. Could you rephrase?"

// HandleMessage runs one customer message through the model, executing the tools it asks for.
func (s *DefaultAgentService) HandleMessage(ctx context.Context, msg models.InboundMessage) (*models.AgentReply, error) {
	logger := utils.GetLogger()

	if s.Model == nil {
		return nil, errors.New("chat agent is not configured")
	}
	if msg.TenantID == "" || msg.SenderID == "" {
		return nil, utils.NewValidationError("tenantId and senderId are required")
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" && len(msg.Audio) > 0 {
		if s.Transcriber == nil {
			return nil, utils.NewValidationError("voice notes are not supported")
		}
		transcript, err := s.Transcriber.Transcribe(ctx, msg.Audio)
		if err != nil {
			return nil, fmt.Errorf("transcribe voice note: %w", err)
		}
		text = transcript
	}
	if text == "" {
		return nil, utils.NewValidationError("message is empty")
	}

	persona, err := s.Tenants.AgentConfig(ctx, msg.TenantID)
	if err != nil {
		return nil, err
	}
	sess, err := s.Sessions.Get(ctx, msg.TenantID, msg.SenderID)
	if err != nil {
		logger.Warn("agent session unavailable, starting fresh", zap.Error(err))
		sess = &models.AgentSession{}
	}

	chat := s.Model.StartChat(s.systemPrompt(persona), sess.History)
	turn, err := chat.SendText(ctx, text)
	if err != nil {
		return nil, err
	}

	var used []string
	for round := 0; len(turn.Calls) > 0; round++ {
		if round == maxToolRounds {
			logger.Warn("agent tool rounds exhausted", zap.String("tenantId", msg.TenantID))
			turn = &ModelTurn{}
			break
		}
		results := make([]ToolResult, 0, len(turn.Calls))
		for _, fc := range turn.Calls {
			used = append(used, fc.Name)
			results = append(results, s.runTool(ctx, msg.TenantID, fc))
		}
		if turn, err = chat.SendToolResults(ctx, results); err != nil {
			return nil, err
		}
	}

	reply := turn.Text
	if reply == "" {
		reply = fallbackReply
	}

	now := s.now()
	sess.History = append(sess.History,
		models.ChatTurn{Role: "user", Text: text, At: now},
		models.ChatTurn{Role: "model", Text: reply, At: now},
	)
	if len(sess.History) > maxHistory {
		sess.History = sess.History[len(sess.History)-maxHistory:]
	}
	if err := s.Sessions.Set(ctx, msg.TenantID, msg.SenderID, sess); err != nil {
		logger.Warn("agent session not saved", zap.Error(err))
	}

	return &models.AgentReply{Reply: reply, ToolCalls: used}, nil
}

func (s *DefaultAgentService) systemPrompt(p *models.AgentConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, the booking assistant", p.AgentName)
	if p.PublicName != "" {
		fmt.Fprintf(&sb, " of %s", p.PublicName)
	}
	sb.WriteString(".\n")
	fmt.Fprintf(&sb, "Tone: %s.\n", p.AgentTone)
	if p.AgentPersonality != "" {
		fmt.Fprintf(&sb, "Personality: %s\n", p.AgentPersonality)
	}
	fmt.Fprintf(&sb, "Greet new customers with: %q\n", p.AgentGreeting)
	fmt.Fprintf(&sb, "Current time (UTC): %s.\n", s.now().Format("2006-01-02T15:04:05Z07:00 (Monday)"))
	sb.WriteString("Use listServices to learn service and professional ids. Always call checkAvailability before " +
		"offering times and only offer returned slots. Ask for the customer's name and phone and confirm the " +
		"details before calling createAppointment. Never invent ids or times.")
	return sb.String()
}
