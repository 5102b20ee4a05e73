package main

import (
	"context"
	"log"

	"github.com/chemhub/chemforum/internal/server"
	"github.com/chemhub/chemforum/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	app.Run(ctx)
}
