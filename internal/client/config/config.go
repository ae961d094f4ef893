// Package config assembles the chat client's runtime settings. Values are
// layered: built-in defaults, then a JSON file (if given), then command-line
// flags, with later sources winning.
package config

import "time"

// Config holds runtime settings for the chat client.
//
// Fields:
//   - APIBaseURL: base URL of the chat backend REST API (presign negotiation).
//   - StorageBaseURL: base URL of the object storage bucket; the canonical
//     retrieval URL for a stored object is StorageBaseURL + "/" + key.
//   - ChannelURL: websocket endpoint of the realtime channel.
//   - DownloadDir: directory downloaded files are saved into.
//   - RequestTimeout: budget for a single storage PUT or GET.
type Config struct {
	APIBaseURL     string
	StorageBaseURL string
	ChannelURL     string
	DownloadDir    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.StorageBaseURL = "https://ktb-team20.s3.ap-northeast-2.amazonaws.com"
	c.ChannelURL = "ws://127.0.0.1:8080/ws"
	c.DownloadDir = "downloads"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
