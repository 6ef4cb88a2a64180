package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/hateshield/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{
		Verbose:   envEnabled("HATESHIELD_DEBUG"),
		Ephemeral: envEnabled("HATESHIELD_EPHEMERAL"),
	}

	root, cleanup, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	err = root.ExecuteContext(ctx)
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envEnabled(key string) bool {
	v := os.Getenv(key)
	return v == "1" || strings.EqualFold(v, "true")
}
