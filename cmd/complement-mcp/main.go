package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/irvingoujAtDevolution/complement-mcp/internal/config"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fsroot"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/fstool"
	"github.com/irvingoujAtDevolution/complement-mcp/internal/rpcserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	root, err := fsroot.Load(cfg.Root)
	if err != nil {
		log.Fatalf("Failed to resolve server root %q: %v", cfg.Root, err)
	}

	registry := fstool.NewDefaultRegistry(root, cfg.AllowWrite)
	srv := rpcserver.New(registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down complement-mcp...")
		cancel()
	}()

	log.Printf("complement-mcp serving root=%s write=%t", root.Root(), cfg.AllowWrite)
	if err := srv.Serve(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("complement-mcp exiting")
}
