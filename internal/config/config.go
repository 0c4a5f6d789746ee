package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramBot TelegramBot
	WhoScored   WhoScored
	Server      Server
	Watch       Watch
	Log         Log
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type WhoScored struct {
	BaseURL        string        `envconfig:"WHOSCORED_BASE_URL" default:"https://www.whoscored.com"`
	MirrorHosts    []string      `envconfig:"WHOSCORED_MIRROR_HOSTS" default:"1xbet.whoscored.com"`
	UserAgent      string        `envconfig:"WHOSCORED_USER_AGENT"`
	AcceptLanguage string        `envconfig:"WHOSCORED_ACCEPT_LANGUAGE"`
	Referer        string        `envconfig:"WHOSCORED_REFERER"`
	HeadersFile    string        `envconfig:"WHOSCORED_HEADERS_FILE"`
	Timeout        time.Duration `envconfig:"WHOSCORED_TIMEOUT" default:"30s"`
	WarmUp         bool          `envconfig:"WHOSCORED_WARM_UP" default:"true"`
	Browser        bool          `envconfig:"WHOSCORED_BROWSER" default:"false"`
}

type Server struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

type Watch struct {
	Interval time.Duration `envconfig:"WATCH_INTERVAL" default:"5m"`
	URLs     []string      `envconfig:"WATCH_URLS"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
