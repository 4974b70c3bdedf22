package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "invaders.toml", "Path to TOML config file")
	difficulty := flag.String("difficulty", "", "Difficulty: easy, medium or hard")
	dbPath := flag.String("db", "", "Path to SQLite score database")
	logPath := flag.String("log", "", "Path to log file")
	spectate := flag.String("spectate", "", "Spectator feed listen address (e.g. :8080)")
	publicURL := flag.String("public-url", "", "ws:// base URL advertised to spectators")
	sound := flag.Bool("sound", true, "Enable sound")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	resetScores := flag.Bool("reset-scores", false, "Clear the high score table and exit")
	showScores := flag.Bool("scores", false, "Print the high score table and exit")
	showHistory := flag.Int("history", 0, "Print the last N recorded runs and exit")
	writeConfig := flag.Bool("write-config", false, "Write the effective config to -config and exit")
	flag.Parse()

	cfg, unknown, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "difficulty":
			cfg.Difficulty = *difficulty
		case "db":
			cfg.Database = *dbPath
		case "log":
			cfg.LogFile = *logPath
		case "spectate":
			cfg.Spectate = *spectate
		case "public-url":
			cfg.PublicURL = *publicURL
		case "sound":
			cfg.Sound = *sound
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}
	if *writeConfig {
		if err := cfg.Save(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)
	for _, k := range unknown {
		logger.Printf("warning: unknown config key %s", k)
	}

	var (
		scores  ScoreStore = NewMemoryScoreStore()
		runs    RunStore
		journal *Journal
		db      *DB
	)
	db, err = OpenDB(cfg.Database)
	if err != nil {
		logger.Printf("warning: score database unavailable, scores will not persist: %v", err)
		db = nil
	} else {
		defer db.Close()
		scores = db
		runs = db
		journal = NewJournal(db, logger)
		defer journal.Stop()
	}

	if *resetScores {
		if err := scores.SaveHighScores(nil); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logger.Printf("High scores reset")
		fmt.Println("High scores reset.")
		return
	}
	if *showScores {
		printScores(loadHighScores(scores, logger))
		return
	}
	if *showHistory > 0 {
		if db == nil {
			fmt.Fprintln(os.Stderr, "no run history without a database")
			os.Exit(1)
		}
		if err := printHistory(db, *showHistory); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	diff, _ := cfg.DifficultyLevel()
	bindings, _ := cfg.Bindings()
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	keys := NewKeyState(cfg.HoldWindow())
	term := NewTerminal(screen, keys, bindings)
	term.Start()
	defer term.Close()

	env := Env{
		Input:  term,
		Render: term,
		Logger: logger,
		Rand:   rng,
	}

	if cfg.Sound {
		sp := NewSpeaker(cfg.Volume)
		if err := sp.Init(); err != nil {
			// Non-fatal, the game runs silent
			logger.Printf("Audio initialization failed: %v", err)
		} else {
			defer sp.Close()
			env.Sound = sp
		}
	}

	var hub *Hub
	if cfg.Spectate != "" {
		var settings SettingStore
		if db != nil {
			settings = db
		}
		auth := NewAuth(settings, GenerateRunID())
		hub = NewHub(auth, scores, logger)
		go hub.Run()
		defer hub.Stop()

		base := cfg.PublicURL
		if base == "" {
			base = "ws://localhost" + cfg.Spectate
		}
		server := &http.Server{Addr: cfg.Spectate, Handler: SetupRoutes(hub, base)}
		go func() {
			logger.Printf("Spectator feed on %s", cfg.Spectate)
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				logger.Printf("ListenAndServe: %v", err)
			}
		}()
		defer server.Close()
		if token, err := auth.IssueToken(); err == nil {
			logger.Printf("Spectate at %s", SpectatorURL(base, token))
		}
		env.Render = MultiRender{term, hub}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		select {
		case <-term.Quit():
			stop()
		case <-ctx.Done():
		}
	}()

	logger.Printf("Starting %dx%d at %d fps, difficulty %s, seed %d", FieldWidth, FieldHeight, FPS, diff, *seed)
	for {
		campaign := NewCampaign(env, diff, runs, journal)
		if hub != nil {
			campaign.OnStart(func(r RunRecord) { hub.SetRun(r.ID, r.Difficulty) })
		}
		state, _, _ := campaign.Play(ctx)
		if ctx.Err() != nil {
			break
		}
		keys.Reset()
		results := NewResultsScreen(env, state, scores)
		if results.Run(ctx) != ExitPlayAgain {
			break
		}
		keys.Reset()
	}
	if journal != nil {
		if n := journal.Dropped(); n > 0 {
			logger.Printf("warning: %d journal events dropped", n)
		}
	}
	if hub != nil {
		logger.Printf("Spectator feed skipped %d messages", hub.Dropped())
	}
	logger.Printf("Shutting down")
}

func printScores(scores []Score) {
	if len(scores) == 0 {
		fmt.Println("No high scores yet.")
		return
	}
	for i, s := range scores {
		fmt.Printf("%d. %s %10s\n", i+1, s.Name, humanize.Comma(int64(s.Value)))
	}
}

func printHistory(db *DB, limit int) error {
	runs, err := db.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	for _, r := range runs {
		counts, err := db.EventCounts(r.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %-6s level %d  P1 %s  P2 %s  shots %d  kills %d  bonus %d  (%s)\n",
			r.ID, r.Difficulty, r.Level,
			humanize.Comma(int64(r.Players[0].Score)), humanize.Comma(int64(r.Players[1].Score)),
			counts[EvtShot], counts[EvtKill], counts[EvtBonusKill],
			humanize.Time(r.EndedAt))
	}
	return nil
}
