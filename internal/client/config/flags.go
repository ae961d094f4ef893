package config

import (
	"flag"
	"os"
	"time"

	"github.com/ktb-chat/chatclient/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend REST API
//	-s string   base URL of the object storage bucket
//	-w string   websocket endpoint of the realtime channel
//	-d string   download directory
//	-t int      storage request timeout in seconds
//
// Arguments are filtered with flagx.FilterArgs so flags owned by other
// components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-w", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend REST API")
	fs.StringVar(&cfg.StorageBaseURL, "s", cfg.StorageBaseURL, "base URL of the object storage bucket")
	fs.StringVar(&cfg.ChannelURL, "w", cfg.ChannelURL, "websocket endpoint of the realtime channel")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "directory downloaded files are saved into")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "storage request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
