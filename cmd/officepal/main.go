package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/jmadden/officepal/internal/config"
	"github.com/jmadden/officepal/internal/history"
	"github.com/jmadden/officepal/internal/ledger"
	"github.com/jmadden/officepal/internal/provider"
	"github.com/jmadden/officepal/internal/router"
	"github.com/jmadden/officepal/internal/store"
	"github.com/jmadden/officepal/internal/ui"
)

func main() {
	cmd := &cli.Command{
		Name:   "officepal",
		Usage:  "Terminal office assistant: chats through the Anthropic API and keeps a local meeting list",
		Action: runChat,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "model",
				Usage:       "Anthropic model ID",
				DefaultText: provider.DefaultModel,
				Sources:     cli.EnvVars("OFFICEPAL_MODEL"),
			},
			&cli.StringFlag{
				Name:        "history-file",
				Usage:       "Path to the persisted chat transcript",
				DefaultText: config.DefaultHistoryPath,
				Sources:     cli.EnvVars("OFFICEPAL_HISTORY_FILE"),
			},
			&cli.StringFlag{
				Name:        "meetings-file",
				Usage:       "Path to the persisted meeting list",
				DefaultText: config.DefaultMeetingsPath,
				Sources:     cli.EnvVars("OFFICEPAL_MEETINGS_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "meetings",
				Usage: "Operate on the meeting list without starting a chat session",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Print every stored meeting",
						Action: runMeetingsList,
					},
					{
						Name:   "prune",
						Usage:  "Drop meetings whose time has passed",
						Action: runMeetingsPrune,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig merges defaults, OFFICEPAL_* env, and CLI flags.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.New()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if v := cmd.String("model"); v != "" {
		cfg.Model = v
	}
	if v := cmd.String("history-file"); v != "" {
		cfg.HistoryPath = v
	}
	if v := cmd.String("meetings-file"); v != "" {
		cfg.MeetingsPath = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openLedger(cfg *config.Config) *ledger.Ledger {
	return ledger.New(store.NewResource[[]ledger.Meeting](cfg.MeetingsPath))
}

func runChat(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	meetings := openLedger(cfg)
	if err := meetings.PruneExpired(time.Now()); err != nil {
		return fmt.Errorf("prune expired meetings: %w", err)
	}

	transcript := history.NewLog(store.NewResource[[]history.Message](cfg.HistoryPath))
	if err := transcript.Load(); err != nil {
		return fmt.Errorf("load chat history: %w", err)
	}

	rt := &router.Router{
		Ledger:  meetings,
		History: transcript,
		Chat:    provider.New(cfg.Model, cfg.MaxTokens, cfg.Temperature),
		Now:     time.Now,
	}

	console := ui.NewConsole(os.Stdout, cfg.TypingDelay)
	console.Banner("Office AI Assistant")
	console.Info("Type 'exit' to quit.")
	console.Info("")

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		cancel()
	}()

	// stdin reader goroutine -> lines into channel.
	scanner := bufio.NewScanner(os.Stdin)
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	for {
		console.Prompt()
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			console.Info("")
			console.Goodbye("Goodbye! Have a nice day.")
			return nil
		case line, ok = <-inputCh:
			if !ok {
				if err := scanner.Err(); err != nil {
					fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
				}
				console.Info("")
				console.Goodbye("Goodbye! Have a nice day.")
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			console.Goodbye("Goodbye! Have a nice day.")
			return nil
		}

		reply, err := rt.Handle(ctx, line)
		if err != nil {
			// The turn failed; the session continues.
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		console.Reply(reply)
	}
}

func runMeetingsList(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	text, err := openLedger(cfg).Upcoming()
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func runMeetingsPrune(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := openLedger(cfg).PruneExpired(time.Now()); err != nil {
		return err
	}
	fmt.Println("Pruned expired meetings.")
	return nil
}
