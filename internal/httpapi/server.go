// Package httpapi exposes the assistant over HTTP: the chat endpoint,
// cart and wishlist reads, and the operational endpoints.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shoestore-assistant/internal/assistant/chat"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/common/observability"
	"shoestore-assistant/internal/models"
)

// ChatProcessor handles one chat message end to end.
type ChatProcessor interface {
	Process(ctx context.Context, req chat.Request) (*chat.Response, error)
}

// CommerceReader serves the cart and wishlist documents behind the REST
// endpoints.
type CommerceReader interface {
	Cart(ctx context.Context, userID string) (*models.Cart, error)
	Wishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	RemoveCartLine(ctx context.Context, userID, lineID string) (*models.Cart, error)
}

type Server struct {
	chat     ChatProcessor
	commerce CommerceReader
	obs      *observability.Observability
	validate *validator.Validate
	log      logger.Logger
	router   *mux.Router
}

func NewServer(chatSvc ChatProcessor, commerce CommerceReader, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		chat:     chatSvc,
		commerce: commerce,
		obs:      obs,
		validate: validator.New(),
		log:      log,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.recoverMiddleware, s.loggingMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	api.HandleFunc("/cart", s.handleGetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart/{lineId}", s.handleRemoveCartLine).Methods(http.MethodDelete)
	api.HandleFunc("/wishlist", s.handleGetWishlist).Methods(http.MethodGet)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// Handler returns the configured root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
