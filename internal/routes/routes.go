package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/auth"
	"github.com/amgrenovation/ops-dashboard/internal/config"
	"github.com/amgrenovation/ops-dashboard/internal/domain/access"
	"github.com/amgrenovation/ops-dashboard/internal/handlers"
	infraRepo "github.com/amgrenovation/ops-dashboard/internal/infra/repository"
	"github.com/amgrenovation/ops-dashboard/internal/middleware"
	"github.com/amgrenovation/ops-dashboard/internal/profile"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/storage"
	ucAccount "github.com/amgrenovation/ops-dashboard/internal/usecase/account"
	ucBilling "github.com/amgrenovation/ops-dashboard/internal/usecase/billing"
	ucLead "github.com/amgrenovation/ops-dashboard/internal/usecase/lead"
	ucRendering "github.com/amgrenovation/ops-dashboard/internal/usecase/rendering"
	ucReview "github.com/amgrenovation/ops-dashboard/internal/usecase/review"
	ucSocial "github.com/amgrenovation/ops-dashboard/internal/usecase/social"
	"github.com/amgrenovation/ops-dashboard/internal/validators"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Tokens   *auth.TokenManager
	Profiles *profile.CachedResolver
	Sender   webhook.Sender
	Store    storage.ObjectStore
	Audit    *audit.Dispatcher
	Settings *settings.Service
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	crmRepo := infraRepo.NewCRMGormRepository(d.DB)
	billingRepo := infraRepo.NewBillingGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	leadRepo := infraRepo.NewLeadGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	createQuoteUC := ucBilling.NewCreateQuote(billingRepo, d.Sender, d.Audit, d.Logger)
	createInvoiceUC := ucBilling.NewCreateInvoice(billingRepo, d.Sender, d.Audit, d.Logger)
	sendDocumentUC := ucBilling.NewSendDocument(billingRepo, d.Sender, d.Audit)
	quoteStatusUC := ucBilling.NewUpdateQuoteStatus(billingRepo, d.Audit)
	markPaidUC := ucBilling.NewMarkInvoicePaid(billingRepo, d.Audit)

	requestReviewUC := ucReview.NewRequestReview(reviewRepo, d.Sender, d.Audit)
	resendReviewUC := ucReview.NewResendReview(reviewRepo, d.Sender, d.Audit)
	followUpUC := ucReview.NewBulkFollowUp(reviewRepo, requestReviewUC, d.Logger)

	leadStatusUC := ucLead.NewUpdateStatus(leadRepo, d.Audit)
	convertLeadUC := ucLead.NewConvertLead(leadRepo, createQuoteUC, d.Logger)

	facebookUC := ucSocial.NewPublishFacebookPost(d.DB, d.Sender, d.Audit)
	linkedinUC := ucSocial.NewPublishLinkedInPost(d.Sender, d.Audit)

	generateUC := ucRendering.NewGenerate(d.DB, d.Store, d.Sender, d.Audit, d.Logger)

	createUserUC := ucAccount.NewCreateUser(d.DB, d.Tokens, d.Profiles, d.Audit)
	if d.Config.IsProduction() {
		createUserUC.CheckDomain = validators.IsEmailDomainValid
	}
	updateProfileUC := ucAccount.NewUpdateProfile(d.DB, d.Profiles, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Tokens)
	meHandler := handlers.NewMeHandler()
	clientHandler := handlers.NewClientHandler(crmRepo, d.Audit)
	quoteHandler := handlers.NewQuoteHandler(d.DB, d.Settings, d.Audit, createQuoteUC, sendDocumentUC, quoteStatusUC)
	invoiceHandler := handlers.NewInvoiceHandler(d.DB, d.Settings, d.Audit, createInvoiceUC, sendDocumentUC, markPaidUC)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo, d.Audit)
	reviewHandler := handlers.NewReviewHandler(d.DB, d.Settings, requestReviewUC, resendReviewUC, followUpUC)
	socialHandler := handlers.NewSocialHandler(d.DB, d.Settings, facebookUC, linkedinUC)
	leadHandler := handlers.NewLeadHandler(d.DB, d.Settings, leadStatusUC, convertLeadUC)
	fileHandler := handlers.NewFileHandler(d.DB, d.Store, d.Audit)
	renderingHandler := handlers.NewRenderingHandler(d.DB, d.Settings, generateUC)
	whatsappHandler := handlers.NewWhatsappHandler(d.DB, d.Audit)
	settingsHandler := handlers.NewSettingsHandler(d.Settings, d.Audit)
	adminHandler := handlers.NewAdminHandler(d.DB, createUserUC, updateProfileUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/functions/create-user", adminHandler.CreateUser)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	authGroup := api.Group("")
	authGroup.Use(
		middleware.AuthMiddleware(d.Tokens),
		middleware.LoadProfile(d.Profiles),
	)

	authGroup.GET("/me", meHandler.GetMe)
	authGroup.GET("/me/menu", meHandler.Menu)

	section := func(path, id string) *gin.RouterGroup {
		return authGroup.Group(path, middleware.RequireSection(id))
	}

	clients := section("/clients", access.SectionClients)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.PATCH("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	quotes := section("/quotes", access.SectionQuotes)
	quotes.GET("", quoteHandler.List)
	quotes.POST("", quoteHandler.Create)
	quotes.PATCH("/:id/status", quoteHandler.UpdateStatus)
	quotes.POST("/:id/send", quoteHandler.Send)
	quotes.DELETE("/:id", quoteHandler.Delete)

	invoices := section("/invoices", access.SectionInvoices)
	invoices.GET("", invoiceHandler.List)
	invoices.POST("", invoiceHandler.Create)
	invoices.POST("/:id/send", invoiceHandler.Send)
	invoices.POST("/:id/paid", invoiceHandler.MarkPaid)
	invoices.DELETE("/:id", invoiceHandler.Delete)

	appointments := section("/appointments", access.SectionAppointments)
	appointments.GET("", appointmentHandler.List)
	appointments.POST("", appointmentHandler.Create)
	appointments.PUT("/:id", appointmentHandler.Update)
	appointments.PATCH("/:id/confirm", appointmentHandler.Confirm)
	appointments.PATCH("/:id/cancel", appointmentHandler.Cancel)
	appointments.DELETE("/:id", appointmentHandler.Delete)

	reviews := section("/reviews", access.SectionReviews)
	reviews.GET("", reviewHandler.List)
	reviews.POST("", reviewHandler.Request)
	reviews.POST("/follow-up", reviewHandler.FollowUp)
	reviews.POST("/:id/resend", reviewHandler.Resend)

	facebook := section("/facebook/posts", access.SectionFacebook)
	facebook.GET("", socialHandler.ListFacebookPosts)
	facebook.POST("", socialHandler.CreateFacebookPost)

	linkedin := section("/linkedin", access.SectionLinkedIn)
	linkedin.POST("/posts", socialHandler.PublishLinkedIn)

	allovoisin := section("/leads/allovoisin", access.SectionAllovoisin)
	allovoisin.GET("", leadHandler.ListLeads)
	allovoisin.PATCH("/:id/status", leadHandler.UpdateLeadStatus)
	allovoisin.POST("/:id/convert", leadHandler.Convert)

	prospects := section("/leads/prospects", access.SectionProspection)
	prospects.GET("", leadHandler.ListProspects)
	prospects.PATCH("/:id/status", leadHandler.UpdateProspectStatus)

	files := section("/files", access.SectionFiles)
	files.GET("", fileHandler.List)
	files.POST("", fileHandler.Upload)
	files.DELETE("/:id", fileHandler.Delete)

	renderings := section("/renderings", access.SectionAI)
	renderings.GET("", renderingHandler.List)
	renderings.POST("", renderingHandler.Generate)

	whatsapp := section("/whatsapp/messages", access.SectionWhatsapp)
	whatsapp.GET("", whatsappHandler.List)
	whatsapp.POST("", whatsappHandler.Send)

	settingsGroup := section("/settings", access.SectionSettings)
	settingsGroup.GET("", settingsHandler.Get)
	settingsGroup.PUT("", settingsHandler.Put)

	admin := authGroup.Group("/admin", middleware.RequireAdmin())
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)

	authGroup.GET("/audit-logs", middleware.RequireAdmin(), auditLogsHandler.List)
}
