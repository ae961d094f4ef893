package main

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/ktb-chat/chatclient/internal/client/cli"
	"github.com/ktb-chat/chatclient/internal/client/config"
	"github.com/ktb-chat/chatclient/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	reader := bufio.NewReader(os.Stdin)
	userName, err := cli.GetSimpleText(reader, "이름을 입력하세요", os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	token, err := cli.GetToken(os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, userName, token, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
