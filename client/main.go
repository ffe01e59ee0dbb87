package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Minimal probe client: joins a room and lets you play from the terminal.
//
//	move <fromRow> <fromCol> <toRow> <toCol>
//	restart

type action struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId,omitempty"`
	FromRow int    `json:"fromRow"`
	FromCol int    `json:"fromCol"`
	ToRow   int    `json:"toRow"`
	ToCol   int    `json:"toCol"`
}

type piece struct {
	Color string `json:"color"`
	King  bool   `json:"isKing"`
}

type gameState struct {
	Type          string       `json:"type"`
	Board         [8][8]*piece `json:"board"`
	CurrentPlayer string       `json:"currentPlayer"`
	GameOver      bool         `json:"gameOver"`
	Winner        *string      `json:"winner"`
	Players       struct {
		White string `json:"white"`
		Black string `json:"black"`
	} `json:"players"`
}

func render(state *gameState) {
	fmt.Println("  0 1 2 3 4 5 6 7")
	for row := 0; row < 8; row++ {
		fmt.Printf("%d ", row)
		for col := 0; col < 8; col++ {
			p := state.Board[row][col]
			switch {
			case p == nil:
				fmt.Print(". ")
			case p.Color == "white" && p.King:
				fmt.Print("W ")
			case p.Color == "white":
				fmt.Print("w ")
			case p.King:
				fmt.Print("B ")
			default:
				fmt.Print("b ")
			}
		}
		fmt.Println()
	}
	fmt.Printf("turn: %s  white: %s  black: %s\n", state.CurrentPlayer, state.Players.White, state.Players.Black)
	if state.GameOver && state.Winner != nil {
		fmt.Printf("game over, winner: %s\n", *state.Winner)
	}
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	roomID := flag.String("room", "lobby", "room to join")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			var state gameState
			if err := json.Unmarshal(message, &state); err == nil && state.Type == "game_state" {
				render(&state)
				continue
			}
			log.Printf("<- RECV: %s", string(message))
		}
	}()

	joinData, _ := json.Marshal(action{Type: "join_game", RoomID: *roomID})
	if err := c.WriteMessage(websocket.TextMessage, joinData); err != nil {
		log.Println("Write error:", err)
		return
	}
	log.Printf("Joined room %q. Commands: 'move r c r c', 'restart'.", *roomID)

	// Write loop
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			fields := strings.Fields(text)
			if len(fields) == 0 {
				continue
			}

			var act action
			switch fields[0] {
			case "move":
				if len(fields) != 5 {
					log.Println("Usage: move <fromRow> <fromCol> <toRow> <toCol>")
					continue
				}
				act.Type = "make_move"
				fmt.Sscan(fields[1], &act.FromRow)
				fmt.Sscan(fields[2], &act.FromCol)
				fmt.Sscan(fields[3], &act.ToRow)
				fmt.Sscan(fields[4], &act.ToCol)
			case "restart":
				act.Type = "restart_game"
			default:
				log.Printf("Unknown command %q", fields[0])
				continue
			}

			data, _ := json.Marshal(act)
			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}
}
