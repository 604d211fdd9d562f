package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "server-herald/internal/handlers"

	"server-herald/internal/config"
	"server-herald/internal/database"
	"server-herald/internal/discord"
)

func main() {
	log.Println("[INFO] Starting herald bot...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	db := database.Open(cfg.DatabasesPath, cfg.DatabaseSections)
	database.Connect(ctx, db)
	defer db.Close()

	bot := discord.NewBot(cfg, db)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	log.Println("[INFO] Herald exited cleanly")
}
