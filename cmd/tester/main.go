package main

import (
	"bufio"
	"chat-live/domain"
	"chat-live/protocol"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
)

// tester is an interactive client. Each input line is one action:
//
//	send <chat> <text>   typing <chat>   stop <chat>
//	read <message>       join <chat>     leave <chat>   ping
func main() {
	address := flag.String("address", "ws://localhost:8080/api/v1/ws/chat/", "websocket endpoint")
	token := flag.String("token", os.Getenv("CHAT_TOKEN"), "JWT sent in the jwt cookie")
	origin := flag.String("origin", "", "Origin header, empty to omit")
	flag.Parse()

	header := http.Header{}
	header.Set("Cookie", "jwt="+*token)
	if *origin != "" {
		header.Set("Origin", *origin)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(*address, header)
	if err != nil {
		if resp != nil {
			fmt.Fprintf(os.Stderr, "Dial refused with %s\n", resp.Status)
		}
		fmt.Fprintf(os.Stderr, "Dial failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()
	color.Green.Printf("Connected to %s\n", *address)

	go readLoop(conn)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		action, err := parseLine(line)
		if err != nil {
			color.Red.Println(err)
			continue
		}
		raw, err := protocol.EncodeAction(action)
		if err != nil {
			color.Red.Println(err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			color.Red.Printf("Write failed: %v\n", err)
			return
		}
	}
}

func readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ce, ok := err.(*websocket.CloseError); ok {
				color.Yellow.Printf("Closed by server: %d %s\n", ce.Code, ce.Text)
			} else {
				color.Red.Printf("Read failed: %v\n", err)
			}
			os.Exit(0)
		}
		evt, err := protocol.DecodeEvent(raw)
		if err != nil {
			color.Red.Printf("Unreadable frame %s: %v\n", raw, err)
			continue
		}
		style := color.New(color.FgCyan)
		if evt.EventType() == protocol.TypeError {
			style = color.New(color.FgRed, color.OpBold)
		}
		style.Printf("<- %-18s %s\n", evt.EventType(), raw)
	}
}

func parseLine(line string) (protocol.Action, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	if cmd == "ping" {
		return protocol.Ping{}, nil
	}
	arg, text, _ := strings.Cut(strings.TrimSpace(rest), " ")
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s expects a numeric id, got %q", cmd, arg)
	}
	switch cmd {
	case "send":
		return protocol.SendMessage{ChatID: domain.ChatID(id), Body: text}, nil
	case "typing":
		return protocol.TypingStart{ChatID: domain.ChatID(id)}, nil
	case "stop":
		return protocol.TypingStop{ChatID: domain.ChatID(id)}, nil
	case "read":
		return protocol.MarkAsRead{MessageID: domain.MessageID(id)}, nil
	case "join":
		return protocol.JoinChat{ChatID: domain.ChatID(id)}, nil
	case "leave":
		return protocol.LeaveChat{ChatID: domain.ChatID(id)}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
}
