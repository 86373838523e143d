package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbodonnell/wordduel/pkg/api"
	"github.com/cbodonnell/wordduel/pkg/eventlog"
	"github.com/cbodonnell/wordduel/pkg/game"
	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/cbodonnell/wordduel/pkg/gates"
	"github.com/cbodonnell/wordduel/pkg/log"
	"github.com/cbodonnell/wordduel/pkg/queue"
	"github.com/cbodonnell/wordduel/pkg/scheduler"
	"github.com/cbodonnell/wordduel/pkg/scores"
	"github.com/cbodonnell/wordduel/pkg/servers"
	"github.com/cbodonnell/wordduel/pkg/session"
)

const (
	eventLogCapacity = 1024
	outboxCapacity   = 256
)

func main() {
	tcpPort := flag.String("tcp-port", "5000", "TCP port to listen on")
	wsPort := flag.Int("ws-port", 0, "WebSocket port to listen on (0 to disable)")
	apiPort := flag.Int("api-port", 0, "HTTP status API port (0 to disable)")
	logLevel := flag.String("log-level", "info", "Log level")
	logFile := flag.String("log-file", "game.log", "Game event log file")
	scorePath := flag.String("scores", "scores.txt", "Score storage path (file path, sqlite path, or postgres connection string)")
	repoKind := flag.String("repository", "file", "Score repository backend: file, sqlite or postgres")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := eventlog.Open(*logFile, eventLogCapacity)
	if err != nil {
		panic(fmt.Sprintf("Failed to open event log: %v", err))
	}

	repository, err := newRepository(ctx, *repoKind, *scorePath)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize score repository: %v", err))
	}
	defer repository.Close(ctx)

	scoreKeeper := scores.NewKeeper(repository)
	if err := scoreKeeper.Load(ctx); err != nil {
		panic(fmt.Sprintf("Failed to load scores: %v", err))
	}

	stateManager := game.NewStateManager()
	turnGates := gates.New()
	var outboxes [types.NumPlayers]*queue.Outbox
	for i := range outboxes {
		outboxes[i] = queue.NewOutbox(outboxCapacity)
	}

	sessions := session.NewFactory(session.NewFactoryOptions{
		State:    stateManager,
		Gates:    turnGates,
		Outboxes: outboxes,
		Scores:   scoreKeeper,
		Events:   events,
	})
	slots := servers.NewSlotManager()

	tcpServer := servers.NewTCPServer(servers.NewTCPServerOptions{
		Port:     *tcpPort,
		Slots:    slots,
		Sessions: sessions,
	})
	if err := tcpServer.Listen(); err != nil {
		panic(fmt.Sprintf("Failed to bind TCP listener: %v", err))
	}
	go tcpServer.Serve(ctx)

	if *wsPort > 0 {
		wsServer := servers.NewWSServer(servers.NewWSServerOptions{
			Port:     *wsPort,
			Slots:    slots,
			Sessions: sessions,
		})
		go wsServer.Start(ctx)
	}

	if *apiPort > 0 {
		apiServer := api.NewAPIServer(api.NewAPIServerOptions{
			Port:   *apiPort,
			State:  stateManager,
			Scores: scoreKeeper,
		})
		go apiServer.Start()
		defer apiServer.Stop(context.Background())
	}

	turnScheduler := scheduler.NewScheduler(scheduler.NewSchedulerOptions{
		State:  stateManager,
		Gates:  turnGates,
		Events: events,
	})
	go turnScheduler.Start(ctx)

	events.Printf("Server starting on port %s.", *tcpPort)
	log.Info("Server started")

	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, os.Interrupt, syscall.SIGTERM)
	<-stopSignal

	log.Info("Shutting down")
	events.Printf("Server shutting down.")
	stateManager.Update(func(s *types.GameState) {
		s.ShuttingDown = true
	})
	cancel()

	// the event logger drains everything queued before closing the file
	events.Stop()
}

func newRepository(ctx context.Context, kind, path string) (scores.Repository, error) {
	switch kind {
	case "file":
		return scores.NewFileRepository(path), nil
	case "sqlite":
		return scores.NewSQLiteRepository(ctx, path)
	case "postgres":
		return scores.NewPostgresRepository(ctx, path)
	default:
		return nil, fmt.Errorf("unknown repository backend: %s", kind)
	}
}
