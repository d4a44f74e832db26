package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/ktanaka/coderelay-go/internal/model"
)

func newWatchCmd() *cobra.Command {
	var playerName string

	watchCmd := &cobra.Command{
		Use:   "watch <room-id>",
		Short: "Join a room and stream its events",
		Long: `watch joins the given room as a live player over the websocket
protocol and prints every event the server sends until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := strings.ToUpper(args[0])

			conn, _, err := websocket.DefaultDialer.Dial(cfg.WebsocketURL(), nil)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer func() { _ = conn.Close() }()

			if err := sendClientEvent(conn, model.EventJoinRoom, model.JoinRoomPayload{
				RoomID:     model.RoomID(roomID),
				PlayerName: playerName,
			}); err != nil {
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			frames := make(chan []byte)
			errCh := make(chan error, 1)
			go func() {
				for {
					_, raw, err := conn.ReadMessage()
					if err != nil {
						errCh <- err
						return
					}
					frames <- raw
				}
			}()

			out := NewOutput(cfg.Output)
			for {
				select {
				case raw := <-frames:
					printEvent(out, raw)

				case err := <-errCh:
					if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						return nil
					}
					return fmt.Errorf("connection lost: %w", err)

				case <-sigCh:
					_ = sendClientEvent(conn, model.EventLeaveRoom, model.LeaveRoomPayload{
						RoomID: model.RoomID(roomID),
					})
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(time.Second))
					return nil
				}
			}
		},
	}

	watchCmd.Flags().StringVarP(&playerName, "name", "n", "observer", "Player name to join with")

	return watchCmd
}

func sendClientEvent(conn *websocket.Conn, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(model.ClientEvent{Event: event, Data: data})
}

func printEvent(out *Output, raw []byte) {
	var frame struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		fmt.Println(string(raw))
		return
	}

	if cfg.Output == "json" {
		fmt.Println(string(raw))
		return
	}

	switch frame.Event {
	case model.EventTimerTick:
		var tick model.TimerTickPayload
		if err := json.Unmarshal(frame.Data, &tick); err == nil {
			fmt.Printf("[%s] %ds remaining\n", frame.Event, tick.TimeRemaining)
			return
		}
	case model.EventTurnChanged:
		var turn model.TurnChangedPayload
		if err := json.Unmarshal(frame.Data, &turn); err == nil && turn.CurrentPlayer != nil {
			fmt.Printf("[%s] now %s (%ds)\n", frame.Event, turn.CurrentPlayer.Name, turn.TimeRemaining)
			return
		}
	case model.EventError:
		var errPayload model.ErrorPayload
		if err := json.Unmarshal(frame.Data, &errPayload); err == nil {
			out.PrintError(fmt.Errorf("%s", errPayload.Message))
			return
		}
	}

	fmt.Printf("[%s] %s\n", frame.Event, string(frame.Data))
}
