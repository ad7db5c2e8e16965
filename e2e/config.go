package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// CHAT_ADDR is the websocket endpoint, e.g. ws://localhost:8080/api/v1/ws/chat/
	ChatAddr  string `envconfig:"CHAT_ADDR"`
	JWTSecret string `envconfig:"JWT_SECRET"`
	JWTIssuer string `envconfig:"JWT_ISSUER" default:"chat-live"`
	// CHAT_ID must be a chat between users 1 and 2, the server -seed creates chat 7
	ChatID int64 `envconfig:"CHAT_ID" default:"7"`
	// E2E_DEBUG_JSON allows dumping every frame as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
