package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/inkwell-web/inkwell/internal/cmd/server"
)

func main() {
	log.SetPrefix("[WEB] ")
	log.SetFlags(log.LstdFlags | log.LUTC)

	cfg, err := server.ParseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("configuration failed error=%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		log.Fatalf("server stopped error=%v", err)
	}
}
