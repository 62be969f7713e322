// File: flowmaster/handlers/bundle.go
package handlers

import (
	"flowmaster/services/booking"
	"flowmaster/services/catalog"
	"flowmaster/services/finance"
	ai "flowmaster/services/intelligence"
	"flowmaster/services/notification"
	"flowmaster/services/payment"
	"flowmaster/services/review"
	"flowmaster/services/tenant"
	"flowmaster/services/user"

	"github.com/gin-gonic/gin"
)

// Services are the dependencies the HTTP layer is built from.
type Services struct {
	Booking       booking.BookingService
	Catalog       catalog.CatalogService
	Tenant        tenant.TenantService
	User          user.UserService
	Review        review.ReviewService
	Finance       finance.FinanceService
	Notification  notification.NotificationService
	Payment       payment.PaymentService
	Agent         ai.AgentService
	VerifyToken   string
	DefaultTenant string
}

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	RegisterHandler     gin.HandlerFunc
	LoginHandler        gin.HandlerFunc
	ServiceTokenHandler gin.HandlerFunc
	ProfileHandler      gin.HandlerFunc
	SetFCMTokenHandler  gin.HandlerFunc

	// Availability and appointment endpoints
	AvailabilityHandler         gin.HandlerFunc
	PublicAvailabilityHandler   gin.HandlerFunc
	CreateAppointmentHandler    gin.HandlerFunc
	ListAppointmentsHandler     gin.HandlerFunc
	GetAppointmentHandler       gin.HandlerFunc
	UpdateAppointmentHandler    gin.HandlerFunc
	CancelAppointmentHandler    gin.HandlerFunc
	CreateRecurringHandler      gin.HandlerFunc
	ListRecurrenceRulesHandler  gin.HandlerFunc
	DeleteRecurrenceRuleHandler gin.HandlerFunc

	// Payment endpoints
	ApprovePaymentHandler gin.HandlerFunc
	RejectPaymentHandler  gin.HandlerFunc
	UploadProofHandler    gin.HandlerFunc
	PaymentIntentHandler  gin.HandlerFunc

	// Catalog endpoints
	CreateServiceHandler      gin.HandlerFunc
	ListServicesHandler       gin.HandlerFunc
	ListPublicServicesHandler gin.HandlerFunc
	GetServiceHandler         gin.HandlerFunc
	UpdateServiceHandler      gin.HandlerFunc
	DeleteServiceHandler      gin.HandlerFunc
	CreateProfessionalHandler gin.HandlerFunc
	ListProfessionalsHandler  gin.HandlerFunc
	GetProfessionalHandler    gin.HandlerFunc
	UpdateProfessionalHandler gin.HandlerFunc
	DeleteProfessionalHandler gin.HandlerFunc
	GetScheduleHandler        gin.HandlerFunc
	SetScheduleHandler        gin.HandlerFunc

	// Tenant config endpoints
	GetConfigHandler           gin.HandlerFunc
	UpdateConfigHandler        gin.HandlerFunc
	UpdateAgentConfigHandler   gin.HandlerFunc
	PublicPaymentConfigHandler gin.HandlerFunc
	PublicAgentConfigHandler   gin.HandlerFunc

	// Reviews, finance and notifications
	CreateReviewHandler      gin.HandlerFunc
	FinanceSummaryHandler    gin.HandlerFunc
	FinanceReportHandler     gin.HandlerFunc
	ListNotificationsHandler gin.HandlerFunc
	RunReminderJobHandler    gin.HandlerFunc

	// Chat agent webhook
	WhatsAppVerifyHandler  gin.HandlerFunc
	WhatsAppInboundHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(s Services) *HandlerBundle {
	authH := NewAuthHandler(s.User)
	bookingH := NewBookingHandler(s.Booking)
	paymentH := NewPaymentHandler(s.Payment)
	catalogH := NewCatalogHandler(s.Catalog)
	tenantH := NewTenantHandler(s.Tenant)
	reviewH := NewReviewHandler(s.Review)
	financeH := NewFinanceHandler(s.Finance)
	notifH := NewNotificationHandler(s.Notification)
	waH := NewWhatsAppHandler(s.Agent, s.VerifyToken, s.DefaultTenant)

	return &HandlerBundle{
		RegisterHandler:     authH.Register,
		LoginHandler:        authH.Login,
		ServiceTokenHandler: authH.ServiceToken,
		ProfileHandler:      authH.Profile,
		SetFCMTokenHandler:  authH.SetFCMToken,

		AvailabilityHandler:         bookingH.GetAvailability,
		PublicAvailabilityHandler:   bookingH.GetPublicAvailability,
		CreateAppointmentHandler:    bookingH.CreateAppointment,
		ListAppointmentsHandler:     bookingH.ListAppointments,
		GetAppointmentHandler:       bookingH.GetAppointment,
		UpdateAppointmentHandler:    bookingH.UpdateAppointment,
		CancelAppointmentHandler:    bookingH.CancelAppointment,
		CreateRecurringHandler:      bookingH.CreateRecurring,
		ListRecurrenceRulesHandler:  bookingH.ListRecurrenceRules,
		DeleteRecurrenceRuleHandler: bookingH.DeleteRecurrenceRule,

		ApprovePaymentHandler: bookingH.ApprovePayment,
		RejectPaymentHandler:  bookingH.RejectPayment,
		UploadProofHandler:    paymentH.UploadProof,
		PaymentIntentHandler:  paymentH.CreatePaymentIntent,

		CreateServiceHandler:      catalogH.CreateService,
		ListServicesHandler:       catalogH.ListServices,
		ListPublicServicesHandler: catalogH.ListPublicServices,
		GetServiceHandler:         catalogH.GetService,
		UpdateServiceHandler:      catalogH.UpdateService,
		DeleteServiceHandler:      catalogH.DeleteService,
		CreateProfessionalHandler: catalogH.CreateProfessional,
		ListProfessionalsHandler:  catalogH.ListProfessionals,
		GetProfessionalHandler:    catalogH.GetProfessional,
		UpdateProfessionalHandler: catalogH.UpdateProfessional,
		DeleteProfessionalHandler: catalogH.DeleteProfessional,
		GetScheduleHandler:        catalogH.GetSchedule,
		SetScheduleHandler:        catalogH.SetSchedule,

		GetConfigHandler:           tenantH.GetConfig,
		UpdateConfigHandler:        tenantH.UpdateConfig,
		UpdateAgentConfigHandler:   tenantH.UpdateAgentConfig,
		PublicPaymentConfigHandler: tenantH.GetPublicPaymentConfig,
		PublicAgentConfigHandler:   tenantH.GetPublicAgentConfig,

		CreateReviewHandler:      reviewH.Create,
		FinanceSummaryHandler:    financeH.Summary,
		FinanceReportHandler:     financeH.Report,
		ListNotificationsHandler: notifH.List,
		RunReminderJobHandler:    notifH.RunJob,

		WhatsAppVerifyHandler:  waH.Verify,
		WhatsAppInboundHandler: waH.Inbound,
	}
}
