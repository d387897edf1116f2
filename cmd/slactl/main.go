package main

import (
	"context"
	"fmt"
	"os"

	"sla.service/internal/cli"
	"sla.service/internal/config"
	"sla.service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	logger.Setup(true)

	if err := cli.NewRootCmd(cfg).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
