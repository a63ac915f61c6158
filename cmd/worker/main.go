package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/app/gateway"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/app/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := gateway.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := worker.Run(ctx, cfg); err != nil {
		log.Fatalf("worker exited: %v", err)
	}
}
