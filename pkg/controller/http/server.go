package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/usecase"
	"github.com/secmon-lab/docflow/pkg/utils/logging"
)

// actorHeader carries the identity of the requester. Authentication
// itself is delegated to the reverse proxy in front of this service.
const actorHeader = "X-Docflow-User"

type Server struct {
	router      *chi.Mux
	uc          *usecase.UseCases
	attachments interfaces.AttachmentStore
	routing     interfaces.RoutingConfig
}

type Options func(*Server)

// WithAttachmentStore enables the attachment upload and download
// endpoints.
func WithAttachmentStore(store interfaces.AttachmentStore) Options {
	return func(s *Server) {
		s.attachments = store
	}
}

// WithRoutingConfig exposes read-only routing graph inspection.
func WithRoutingConfig(routing interfaces.RoutingConfig) Options {
	return func(s *Server) {
		s.routing = routing
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cases", func(r chi.Router) {
			r.Post("/", s.createCase)
			r.Get("/", s.listCases)
			r.Post("/complete", s.completeCases)

			r.Route("/{caseID}", func(r chi.Router) {
				r.Get("/", s.getCase)
				r.Delete("/", s.deleteDraft)
				r.Get("/history", s.caseHistory)
				r.Post("/transfer", s.transferCase)
				r.Post("/accept", s.acceptCase)
				r.Post("/reject", s.rejectCase)
				r.Post("/return", s.returnCase)
				r.Post("/retake", s.retakeCase)
			})
		})

		r.Route("/delegations", func(r chi.Router) {
			r.Post("/", s.createDelegation)
			r.Get("/", s.listDelegations)

			r.Route("/{delegationID}", func(r chi.Router) {
				r.Get("/", s.getDelegation)
				r.Patch("/", s.updateDelegation)
				r.Post("/active", s.setDelegationActive)
			})
		})

		if s.attachments != nil {
			r.Route("/attachments", func(r chi.Router) {
				r.Post("/", s.uploadAttachment)
				r.Get("/{ref}", s.downloadAttachment)
			})
		}

		if s.routing != nil {
			r.Get("/routing/{docType}", s.inspectRouting)
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"actor", r.Header.Get(actorHeader),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
