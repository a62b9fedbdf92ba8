package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/redis/go-redis/v9"

	"github.com/hostelhub/server/internal/admin"
	"github.com/hostelhub/server/internal/auth"
	"github.com/hostelhub/server/internal/category"
	"github.com/hostelhub/server/internal/chat"
	"github.com/hostelhub/server/internal/drive"
	"github.com/hostelhub/server/internal/event"
	"github.com/hostelhub/server/internal/laundry"
	"github.com/hostelhub/server/internal/ledger"
	"github.com/hostelhub/server/internal/mess"
	"github.com/hostelhub/server/internal/presence"
	"github.com/hostelhub/server/internal/transport/middleware"
	"github.com/hostelhub/server/internal/transport/swagger"
	"github.com/hostelhub/server/internal/user"
	"github.com/hostelhub/server/internal/wall"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Category *category.Handler
	Ledger   *ledger.Handler
	Mess     *mess.Handler
	Event    *event.Handler
	Laundry  *laundry.Handler
	Wall     *wall.Handler
	Chat     *chat.Handler
	Presence *presence.Handler
	Admin    *admin.Handler
	Drive    *drive.Handler
}

// RegisterAllRoutes wires the full API surface under /api/v1.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, redisClient *redis.Client, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, redisClient)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below needs a signed-in resident.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/categories", h.Category.GetCategories)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", h.User.GetCurrentUser)
				ur.Patch("/me", h.User.UpdateProfile)
				ur.Put("/me/night-owl", h.User.SetNightOwl)
				ur.Get("/", h.User.ListUsers)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Ledger.CreateEntry)
				er.Get("/", h.Ledger.ListEntries)
				er.Get("/balance", h.Ledger.GetBalance)
				er.Post("/{id}/settle", h.Ledger.SettleEntry)
			})

			pr.Route("/mess", func(mr chi.Router) {
				mr.Get("/menu", h.Mess.GetMenu)
				mr.Get("/menus", h.Mess.ListMenus)
				mr.Post("/menus/{id}/rate", h.Mess.RateMenu)

				mr.Group(func(ar chi.Router) {
					ar.Use(h.Auth.RequireAdmin)
					ar.Post("/menu", h.Mess.PublishMenu)
				})
			})

			pr.Route("/events", func(er chi.Router) {
				er.Post("/", h.Event.CreateEvent)
				er.Get("/", h.Event.ListUpcoming)
				er.Post("/{id}/join", h.Event.JoinEvent)
				er.Post("/{id}/leave", h.Event.LeaveEvent)
			})

			pr.Route("/laundry", func(lr chi.Router) {
				lr.Get("/schedule", h.Laundry.GetSchedule)
				lr.Get("/bookings", h.Laundry.MyBookings)
				lr.Post("/bookings", h.Laundry.CreateBooking)
				lr.Patch("/bookings/{id}", h.Laundry.UpdateBookingStatus)
				lr.Delete("/bookings/{id}", h.Laundry.CancelBooking)
			})

			pr.Route("/wall", func(wr chi.Router) {
				wr.Get("/posts", h.Wall.GetFeed)
				wr.Post("/posts", h.Wall.CreatePost)
				wr.Post("/posts/{id}/like", h.Wall.ToggleLike)
				wr.Post("/posts/{id}/comments", h.Wall.AddComment)
				wr.Delete("/posts/{id}", h.Wall.DeletePost)

				wr.Group(func(ar chi.Router) {
					ar.Use(h.Auth.RequireAdmin)
					ar.Patch("/posts/{id}/approve", h.Wall.ApprovePost)
				})
			})

			pr.Route("/chats", func(cr chi.Router) {
				cr.Post("/", h.Chat.CreateChat)
				cr.Get("/", h.Chat.ListChats)
				cr.Get("/{id}/messages", h.Chat.ListMessages)
				cr.Post("/{id}/messages", h.Chat.SendMessage)
				cr.Post("/{id}/read", h.Chat.MarkRead)
				cr.Post("/messages/{messageID}/reactions", h.Chat.ToggleReaction)
			})

			pr.Route("/presence", func(prr chi.Router) {
				prr.Post("/heartbeat", h.Presence.Heartbeat)
				prr.Get("/me", h.Presence.MyStatus)
				prr.Get("/night-owls", h.Presence.NightOwls)
			})

			pr.Route("/drive", func(dr chi.Router) {
				dr.Post("/bootstrap", h.Drive.Bootstrap)
				dr.Post("/files", h.Drive.UploadFile)
				dr.Get("/files", h.Drive.ListFiles)
				dr.Delete("/files/{fileID}", h.Drive.DeleteFile)
			})

			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin)
				ar.Get("/logs", h.Admin.GetAuditTrail)
				ar.Get("/users", h.Admin.ListUsers)
				ar.Patch("/users/{id}/role", h.Admin.UpdateUserRole)
				ar.Get("/posts/pending", h.Admin.ListPendingPosts)
			})
		})
	})
}
