// Command tailorctl computes a fair-share distribution sheet offline, without a
// server or database.
package main

import (
	"log/slog"
	"os"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := newRootCmd(os.Getenv).Execute(); err != nil {
		os.Exit(1)
	}
}
