package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shulsoft/gabbai/internal/backup"
	"github.com/shulsoft/gabbai/internal/handler"
	"github.com/shulsoft/gabbai/internal/middleware"
	"github.com/shulsoft/gabbai/internal/store"
	"github.com/shulsoft/gabbai/internal/upcoming"
	"github.com/shulsoft/gabbai/internal/ws"
)

type Server struct {
	db             *sql.DB
	hub            *ws.Hub
	authH          *handler.AuthHandler
	userH          *handler.UserHandler
	prayerCardH    *handler.PrayerCardHandler
	aliyaGroupH    *handler.AliyaGroupHandler
	catalogH       *handler.CatalogHandler
	productH       *handler.ProductHandler
	orderH         *handler.OrderHandler
	frontendErrorH *handler.FrontendErrorHandler
	reportH        *handler.ReportHandler
	backupH        *handler.BackupHandler
	sessionStore   *store.SessionStore
	userStore      *store.UserStore
	frontendErrors *store.FrontendErrorStore
	rateLimiter    *middleware.RateLimiter
	backupManager  *backup.Manager
	logger         *slog.Logger
}

func New(db *sql.DB, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	cardStore := store.NewPrayerCardStore(db)
	groupStore := store.NewAliyaGroupStore(db)
	typeStore := store.NewAliyaTypeStore(db)
	categoryStore := store.NewAliyaTypeCategoryStore(db)
	eventTypeStore := store.NewEventTypeStore(db)
	productStore := store.NewProductStore(db)
	locationStore := store.NewPickupLocationStore(db)
	orderStore := store.NewOrderStore(db)
	frontendErrorStore := store.NewFrontendErrorStore(db)

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)

	backupStore := store.NewBackupStore(db)
	backupMgr := backup.NewManager(backupCfg, db, backupStore, logger.With("component", "backup"))

	return &Server{
		db:             db,
		hub:            hub,
		authH:          handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		userH:          handler.NewUserHandler(userStore, logger.With("component", "user")),
		prayerCardH:    handler.NewPrayerCardHandler(cardStore, hub, logger.With("component", "prayer_card")),
		aliyaGroupH:    handler.NewAliyaGroupHandler(groupStore, cardStore, hub, logger.With("component", "aliya_group")),
		catalogH:       handler.NewCatalogHandler(typeStore, categoryStore, eventTypeStore, hub, logger.With("component", "catalog")),
		productH:       handler.NewProductHandler(productStore, locationStore, hub, logger.With("component", "product")),
		orderH:         handler.NewOrderHandler(orderStore, productStore, hub, logger.With("component", "order")),
		frontendErrorH: handler.NewFrontendErrorHandler(frontendErrorStore, logger.With("component", "frontend_error")),
		reportH:        handler.NewReportHandler(cardStore, groupStore, typeStore, categoryStore, eventTypeStore, upcoming.RealClock{}, logger.With("component", "report")),
		backupH:        handler.NewBackupHandler(backupMgr, backupStore, logger.With("component", "backup_handler")),
		sessionStore:   sessionStore,
		userStore:      userStore,
		frontendErrors: frontendErrorStore,
		rateLimiter:    middleware.NewRateLimiter(),
		backupManager:  backupMgr,
		logger:         logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// FrontendErrorStore returns the frontend error store for cleanup tasks.
func (s *Server) FrontendErrorStore() *store.FrontendErrorStore {
	return s.frontendErrors
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/frontend-errors", s.frontendErrorH.Create)
	outerMux.HandleFunc("GET /api/products", s.productH.List)
	outerMux.HandleFunc("GET /api/products/{id}", s.productH.Get)
	outerMux.HandleFunc("GET /api/pickup-locations", s.productH.ListLocations)
	outerMux.HandleFunc("POST /api/orders", s.orderH.Create)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes, wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	// Apply request logging middleware
	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	gabbai := func(h http.HandlerFunc) http.Handler { return middleware.RequireGabbai(h) }
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }

	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)

	// Prayer card API routes
	mux.HandleFunc("GET /api/prayer-cards", s.prayerCardH.List)
	mux.HandleFunc("GET /api/prayer-cards/{id}", s.prayerCardH.Get)
	mux.Handle("POST /api/prayer-cards", gabbai(s.prayerCardH.Create))
	mux.Handle("PUT /api/prayer-cards/{id}", gabbai(s.prayerCardH.Update))
	mux.Handle("DELETE /api/prayer-cards/{id}", gabbai(s.prayerCardH.Delete))

	// Donation API routes
	mux.Handle("POST /api/prayers/{id}/donations", gabbai(s.prayerCardH.AddDonation))
	mux.Handle("PUT /api/donations/{donationID}/paid", gabbai(s.prayerCardH.SetDonationPaid))
	mux.Handle("DELETE /api/donations/{donationID}", gabbai(s.prayerCardH.DeleteDonation))

	// Aliya group API routes
	mux.HandleFunc("GET /api/aliya-groups", s.aliyaGroupH.List)
	mux.HandleFunc("GET /api/aliya-groups/{id}", s.aliyaGroupH.Get)
	mux.Handle("POST /api/aliya-groups", gabbai(s.aliyaGroupH.Create))
	mux.Handle("PUT /api/aliya-groups/{id}", gabbai(s.aliyaGroupH.Update))
	mux.Handle("DELETE /api/aliya-groups/{id}", gabbai(s.aliyaGroupH.Delete))
	mux.Handle("PUT /api/aliya-groups/{id}/assignments/{typeID}", gabbai(s.aliyaGroupH.SetAssignment))
	mux.Handle("DELETE /api/aliya-groups/{id}/assignments/{typeID}", gabbai(s.aliyaGroupH.RemoveAssignment))
	mux.Handle("PATCH /api/aliya-groups/{id}/assignments", gabbai(s.aliyaGroupH.UpdateAssignments))
	mux.HandleFunc("GET /api/aliyot", s.aliyaGroupH.ListFlat)
	mux.HandleFunc("GET /api/prayers/{id}/aliyot", s.aliyaGroupH.ListForPrayer)

	// Catalog API routes
	mux.HandleFunc("GET /api/aliya-types", s.catalogH.ListAliyaTypes)
	mux.Handle("POST /api/aliya-types", gabbai(s.catalogH.CreateAliyaType))
	mux.Handle("PUT /api/aliya-types/{id}", gabbai(s.catalogH.UpdateAliyaType))
	mux.Handle("DELETE /api/aliya-types/{id}", gabbai(s.catalogH.DeleteAliyaType))
	mux.HandleFunc("GET /api/aliya-type-categories", s.catalogH.ListCategories)
	mux.Handle("POST /api/aliya-type-categories", gabbai(s.catalogH.CreateCategory))
	mux.Handle("PUT /api/aliya-type-categories/{id}", gabbai(s.catalogH.UpdateCategory))
	mux.Handle("DELETE /api/aliya-type-categories/{id}", gabbai(s.catalogH.DeleteCategory))
	mux.HandleFunc("GET /api/event-types", s.catalogH.ListEventTypes)
	mux.Handle("POST /api/event-types", gabbai(s.catalogH.CreateEventType))
	mux.Handle("PUT /api/event-types/{id}", gabbai(s.catalogH.UpdateEventType))
	mux.Handle("DELETE /api/event-types/{id}", gabbai(s.catalogH.DeleteEventType))

	// Report API routes
	mux.HandleFunc("GET /api/reports/aliya-history", s.reportH.AliyaHistory)
	mux.HandleFunc("GET /api/reports/upcoming", s.reportH.Upcoming)
	mux.HandleFunc("GET /api/reports/donations", s.reportH.Donations)
	mux.HandleFunc("GET /api/reports/donation-list", s.reportH.DonationList)
	mux.HandleFunc("GET /api/reports/aliyot-export", s.reportH.AliyotExport)

	// Store management API routes
	mux.Handle("POST /api/products", gabbai(s.productH.Create))
	mux.Handle("PUT /api/products/{id}", gabbai(s.productH.Update))
	mux.Handle("DELETE /api/products/{id}", gabbai(s.productH.Delete))
	mux.Handle("POST /api/pickup-locations", gabbai(s.productH.CreateLocation))
	mux.Handle("PUT /api/pickup-locations/{id}", gabbai(s.productH.UpdateLocation))
	mux.Handle("DELETE /api/pickup-locations/{id}", gabbai(s.productH.DeleteLocation))
	mux.Handle("GET /api/orders", gabbai(s.orderH.List))
	mux.Handle("GET /api/orders/{id}", gabbai(s.orderH.Get))
	mux.Handle("PUT /api/orders/{id}/status", gabbai(s.orderH.UpdateStatus))
	mux.Handle("PUT /api/orders/{id}/discount", gabbai(s.orderH.UpdateDiscount))
	mux.Handle("DELETE /api/orders/{id}", gabbai(s.orderH.Delete))

	// Admin API routes
	mux.Handle("GET /api/users", admin(s.userH.List))
	mux.Handle("POST /api/users", admin(s.userH.Create))
	mux.Handle("PUT /api/users/{id}", admin(s.userH.Update))
	mux.Handle("PUT /api/users/{id}/password", admin(s.userH.SetPassword))
	mux.Handle("DELETE /api/users/{id}", admin(s.userH.Delete))
	mux.Handle("GET /api/frontend-errors", admin(s.frontendErrorH.List))
	mux.Handle("GET /api/backups", admin(s.backupH.List))
	mux.Handle("GET /api/backups/status", admin(s.backupH.Status))
	mux.Handle("POST /api/backups/run", admin(s.backupH.Run))
	mux.Handle("GET /api/backups/download", admin(s.backupH.Download))

	// WebSocket endpoint
	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))
}
