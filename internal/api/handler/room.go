package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ktanaka/coderelay-go/internal/api/apierr"
	"github.com/ktanaka/coderelay-go/internal/api/response"
	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/services/room"
)

// RoomHandler handles read-only room endpoints. All mutations go through
// the websocket gateway.
type RoomHandler struct {
	store room.StoreInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(store room.StoreInterface) *RoomHandler {
	return &RoomHandler{store: store}
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])
	if err := model.ValidateRoomID(id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	rm, err := h.store.GetRoom(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(rm))
}
