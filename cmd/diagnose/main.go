package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
	"github.com/imrishuroy/go-orders-appointments-api/internal/config"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ddb"
)

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatalf("[diagnose] failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clients, err := aws.NewAWSClients(ctx, env.AWS())
	if err != nil {
		log.Fatalf("[diagnose] failed to init aws clients: %v", err)
	}
	log.Printf("[diagnose] region %s", clients.Region)

	names := []string{env.OrdersTable, env.AppointmentsTable}
	if env.IdempotencyTable != "" {
		names = append(names, env.IdempotencyTable)
	}

	failed := false
	for _, name := range names {
		info, err := ddb.NewTable(clients.DynamoDB, name).Describe(ctx)
		if err != nil {
			log.Printf("[diagnose] %v", err)
			failed = true
			continue
		}
		info.Print(os.Stdout)
	}
	if failed {
		os.Exit(1)
	}
}
