// A small interactive client for poking at the fruitclash server.
//
// Commands: create [name], join CODE [name], ready, unready, start, win,
// next, leave, stats, quit.
package main

import (
	"bufio"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
)

func send(c *websocket.Conn, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Marshal failed: %v", err)
		return
	}
	if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("Send failed: %v", err)
	}
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := "localhost:8080"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
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
				log.Printf("Read failed: %v", err)
				return
			}
			log.Printf("<- %s", message)
		}
	}()

	// Input loop
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}

			switch fields[0] {
			case "create":
				msg := map[string]interface{}{"type": "CREATE_ROOM"}
				if len(fields) > 1 {
					msg["playerName"] = fields[1]
				}
				send(c, msg)
			case "join":
				if len(fields) < 2 {
					log.Println("usage: join CODE [name]")
					continue
				}
				msg := map[string]interface{}{"type": "JOIN_ROOM", "roomCode": fields[1]}
				if len(fields) > 2 {
					msg["playerName"] = fields[2]
				}
				send(c, msg)
			case "ready":
				send(c, map[string]interface{}{"type": "PLAYER_READY", "ready": true})
			case "unready":
				send(c, map[string]interface{}{"type": "PLAYER_READY", "ready": false})
			case "start":
				send(c, map[string]interface{}{"type": "START_GAME"})
			case "win":
				send(c, map[string]interface{}{"type": "WIN_ROUND"})
			case "next":
				send(c, map[string]interface{}{"type": "NEXT_ROUND"})
			case "leave":
				send(c, map[string]interface{}{"type": "LEAVE_ROOM"})
			case "stats":
				send(c, map[string]interface{}{"type": "GET_STATS"})
			case "quit":
				c.Close()
				return
			default:
				log.Printf("Unknown command: %s", fields[0])
			}
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Interrupted")
		c.Close()
	}
}
