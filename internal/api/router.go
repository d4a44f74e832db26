package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ktanaka/coderelay-go/internal/api/handler"
	"github.com/ktanaka/coderelay-go/internal/api/response"
	"github.com/ktanaka/coderelay-go/internal/catalog"
	"github.com/ktanaka/coderelay-go/internal/gateway"
	"github.com/ktanaka/coderelay-go/internal/middleware"
	"github.com/ktanaka/coderelay-go/internal/services/room"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger    *slog.Logger
	RoomStore room.StoreInterface
	Catalog   *catalog.Catalog
	Gateway   *gateway.Gateway
}

// NewRouter creates the full route tree: REST endpoints under /api/v1
// and the websocket entry point at /ws
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomStore)
	problemHandler := handler.NewProblemHandler(cfg.Catalog)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", healthHandler(cfg.RoomStore)).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/problems", problemHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/problems/{id}", problemHandler.Get).Methods(http.MethodGet)

	r.HandleFunc("/ws", cfg.Gateway.ServeWS)

	return r
}

func healthHandler(store room.StoreInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := store.RoomCount(r.Context())
		if err != nil {
			response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "degraded"})
			return
		}
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Rooms: count})
	}
}
