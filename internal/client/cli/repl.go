package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. Tests replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

func newStdinScanner() *bufio.Scanner {
	return bufio.NewScanner(os.Stdin)
}

// execIface defines the minimal command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Join(ctx context.Context, roomID string) error
	Type(ctx context.Context, text string) error
	Mention(ctx context.Context, arg string) error
	Send(ctx context.Context, text string) error
	Attach(ctx context.Context, path string) error
	Detach(ctx context.Context) error
	Download(ctx context.Context, arg string) error
	Older(ctx context.Context) error
	Emoji(ctx context.Context) error
	Participants(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and dispatches
// to a. The loop exits on scanner EOF or "exit"/"quit". Handler errors are
// ignored here; handlers surface their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("chat %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		switch cmd {
		case "help":
			printlnFn("Commands: join <room>, type <text>, mention <n>, send [text], attach <path>, detach, download <n>, older, emoji, participants, status, exit")

		case "join":
			if rest == "" {
				printlnFn("Usage: join <room>")
				continue
			}
			_ = a.Join(ctx, rest)

		case "type":
			_ = a.Type(ctx, rest)

		case "mention":
			_ = a.Mention(ctx, rest)

		case "send":
			_ = a.Send(ctx, rest)

		case "attach":
			if rest == "" {
				printlnFn("Usage: attach <path>")
				continue
			}
			_ = a.Attach(ctx, rest)

		case "detach":
			_ = a.Detach(ctx)

		case "download":
			_ = a.Download(ctx, rest)

		case "older":
			_ = a.Older(ctx)

		case "emoji":
			_ = a.Emoji(ctx)

		case "participants":
			_ = a.Participants(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
