package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ktb-chat/chatclient/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout is
// given in seconds; it is converted to a time.Duration when copied into the
// runtime Config.
type JsonConfig struct {
	APIBaseURL         string `json:"api_base_url"`
	StorageBaseURL     string `json:"storage_base_url"`
	ChannelURL         string `json:"channel_url"`
	DownloadDir        string `json:"download_dir"`
	RequestTimeoutSecs int    `json:"request_timeout_secs"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. When no file is given the function is a no-op. Read or
// unmarshal errors panic; only zero fields are skipped, so a partial file
// overrides only what it names.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StorageBaseURL != "" {
		cfg.StorageBaseURL = jc.StorageBaseURL
	}
	if jc.ChannelURL != "" {
		cfg.ChannelURL = jc.ChannelURL
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.RequestTimeoutSecs > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSecs) * time.Second
	}
}
