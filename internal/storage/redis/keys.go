package redis

import (
	"fmt"

	"github.com/ktanaka/coderelay-go/internal/model"
)

// Key prefix for all relay game data
const keyPrefix = "coderelay"

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomKeyPattern matches all room keys (used for counting)
func roomKeyPattern() string {
	return fmt.Sprintf("%s:room:*", keyPrefix)
}

// playerRoomKey returns the Redis key for the playerID -> roomID index entry
func playerRoomKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player_room:%s", keyPrefix, playerID)
}
