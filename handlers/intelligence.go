package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"flowmaster/models"
	ai "flowmaster/services/intelligence"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WhatsAppHandler receives chat messages and answers them through the booking agent.
type WhatsAppHandler struct {
	AgentSvc      ai.AgentService
	VerifyToken   string
	DefaultTenant string
}

func NewWhatsAppHandler(svc ai.AgentService, verifyToken, defaultTenant string) *WhatsAppHandler {
	return &WhatsAppHandler{AgentSvc: svc, VerifyToken: verifyToken, DefaultTenant: defaultTenant}
}

type simpleInbound struct {
	Message  string `json:"message"`
	TenantID string `json:"tenantId"`
	SenderID string `json:"senderId"`
}

// cloudEnvelope is the subset of the WhatsApp Cloud webhook payload the agent reads.
type cloudEnvelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []cloudMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type cloudMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
	Audio struct {
		Data     string `json:"data"`
		MimeType string `json:"mime_type"`
	} `json:"audio"`
}

type inboundBody struct {
	simpleInbound
	cloudEnvelope
}

// Verify handles the GET subscription handshake of the WhatsApp Cloud webhook.
func (h *WhatsAppHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	if mode == "" || token == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if mode != "subscribe" || h.VerifyToken == "" || token != h.VerifyToken {
		getLogger(c).Warn("Webhook verification failed")
		c.Status(http.StatusForbidden)
		return
	}
	c.String(http.StatusOK, c.Query("hub.challenge"))
}

// Inbound handles POST /webhooks/whatsapp/inbound.
func (h *WhatsAppHandler) Inbound(c *gin.Context) {
	logger := getLogger(c)

	var body inboundBody
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	simple := body.Message != ""
	msg, ok := h.normalize(c, body)
	if !ok {
		// The Cloud API expects an acknowledgement even for payloads we ignore.
		logger.Warn("No usable message found in payload")
		c.Status(http.StatusOK)
		return
	}

	reply, err := h.AgentSvc.HandleMessage(c.Request.Context(), msg)
	if err != nil {
		logger.Error("Agent failed to handle message", zap.String("senderId", msg.SenderID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}

	if simple {
		c.JSON(http.StatusOK, gin.H{"status": "success", "response": reply.Reply, "toolCalls": reply.ToolCalls})
		return
	}
	c.Status(http.StatusOK)
}

func (h *WhatsAppHandler) normalize(c *gin.Context, body inboundBody) (models.InboundMessage, bool) {
	if body.Message != "" {
		msg := models.InboundMessage{
			TenantID: body.TenantID,
			SenderID: body.SenderID,
			Text:     body.Message,
		}
		if msg.TenantID == "" {
			msg.TenantID = h.DefaultTenant
		}
		if msg.SenderID == "" {
			msg.SenderID = "simulator"
		}
		return msg, true
	}

	if len(body.Entry) == 0 || len(body.Entry[0].Changes) == 0 || len(body.Entry[0].Changes[0].Value.Messages) == 0 {
		return models.InboundMessage{}, false
	}
	m := body.Entry[0].Changes[0].Value.Messages[0]

	msg := models.InboundMessage{TenantID: c.Query("tenantId"), SenderID: m.From}
	if msg.TenantID == "" {
		msg.TenantID = h.DefaultTenant
	}
	switch m.Type {
	case "text":
		msg.Text = strings.TrimSpace(m.Text.Body)
	case "audio":
		audio, err := base64.StdEncoding.DecodeString(m.Audio.Data)
		if err != nil || len(audio) == 0 {
			return models.InboundMessage{}, false
		}
		if len(audio) > ai.MaxAudioSize {
			getLogger(c).Warn("Voice note too large", zap.Int("bytes", len(audio)))
			return models.InboundMessage{}, false
		}
		msg.Audio = audio
	}
	if msg.SenderID == "" || (msg.Text == "" && len(msg.Audio) == 0) {
		return models.InboundMessage{}, false
	}
	return msg, true
}
