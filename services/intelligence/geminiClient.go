// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	"flowmaster/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements ChatModel with Gemini function calling.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) StartChat(systemPrompt string, history []models.ChatTurn) ChatSession {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.Tools = toolDeclarations
	model.SetTemperature(0.4)

	cs := model.StartChat()
	for _, t := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  t.Role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}
	return &geminiSession{cs: cs}
}

type geminiSession struct {
	cs *genai.ChatSession
}

func (s *geminiSession) SendText(ctx context.Context, text string) (*ModelTurn, error) {
	resp, err := s.cs.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	return toTurn(resp), nil
}

func (s *geminiSession) SendToolResults(ctx context.Context, results []ToolResult) (*ModelTurn, error) {
	parts := make([]genai.Part, 0, len(results))
	for _, r := range results {
		parts = append(parts, genai.FunctionResponse{Name: r.Name, Response: r.Response})
	}
	resp, err := s.cs.SendMessage(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	return toTurn(resp), nil
}

func toTurn(resp *genai.GenerateContentResponse) *ModelTurn {
	turn := &ModelTurn{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return turn
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			turn.Calls = append(turn.Calls, FunctionCall{Name: p.Name, Args: p.Args})
		}
	}
	turn.Text = strings.TrimSpace(sb.String())
	return turn
}

var toolDeclarations = []*genai.Tool{{
	FunctionDeclarations: []*genai.FunctionDeclaration{
		{
			Name:        models.ToolListServices,
			Description: "Lists the services offered and the professionals who can be booked, with their ids.",
		},
		{
			Name:        models.ToolCheckAvailability,
			Description: "Returns the free start times of a professional on one day.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"professionalId": {Type: genai.TypeString, Description: "Id returned by listServices."},
					"date":           {Type: genai.TypeString, Description: "Day in YYYY-MM-DD format."},
				},
				Required: []string{"professionalId", "date"},
			},
		},
		{
			Name:        models.ToolCreateAppointment,
			Description: "Books an appointment once the customer confirmed service, time, name and phone.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"serviceId":      {Type: genai.TypeString},
					"professionalId": {Type: genai.TypeString},
					"startTime":      {Type: genai.TypeString, Description: "RFC 3339 instant, e.g. 2024-06-10T14:00:00Z."},
					"customerName":   {Type: genai.TypeString},
					"customerPhone":  {Type: genai.TypeString},
				},
				Required: []string{"serviceId", "startTime", "customerName", "customerPhone"},
			},
		},
	},
}}
