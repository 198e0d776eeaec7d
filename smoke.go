//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/funland/funland/internal/api"
	"github.com/funland/funland/internal/config"
	apierrors "github.com/funland/funland/internal/errors"
)

// Manual end-to-end check against a running `funland serve`:
//
//	go run smoke.go
func main() {
	fmt.Println("=== funland smoke test ===")

	cfg, _ := config.LoadConfig()
	client, err := api.NewClient(
		api.WithBaseURL(config.ResolveBaseURL("", cfg)),
		api.WithTimeout(cfg.Timeout()),
	)
	if err != nil {
		fmt.Printf("client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()

	fmt.Printf("[%s] Health %s...\n", time.Now().Format("15:04:05"), client.HealthURL())
	if err := client.Health(ctx); err != nil {
		fmt.Printf("Health failed: %s\n", apierrors.Describe(err))
		os.Exit(1)
	}

	messages := []string{
		"Why is the sky blue?",
		strings.Repeat("Tell me about dinosaurs. ", 200),
	}
	for _, msg := range messages {
		start := time.Now()
		fmt.Printf("[%s] Sending %d bytes...\n", start.Format("15:04:05"), len(msg))
		reply, err := client.Chat(ctx, msg)
		if err != nil {
			fmt.Printf("Chat failed after %v: %s\n", time.Since(start), apierrors.Describe(err))
			continue
		}
		fmt.Printf("Reply after %v (%d bytes):\n%s\n\n", time.Since(start), len(reply), reply)
	}
}
