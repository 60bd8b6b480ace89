package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/miyannishar/eco-logic-backend/internal/app"
)

func main() {
	ctx := context.Background()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close(ctx)

	errc := make(chan error, 1)
	go func() {
		errc <- a.Run()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			a.Log.Error("Server stopped", "error", err)
		}
	case sig := <-sigc:
		a.Log.Info("Shutting down", "signal", sig.String())
	}
}
