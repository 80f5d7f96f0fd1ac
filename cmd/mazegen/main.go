package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/beka-birhanu/vinom-maze/cli"
	"github.com/beka-birhanu/vinom-maze/config"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	appLogger, err := logger.New("MAZEGEN", config.ColorGreen, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg, exit, err := cli.Parse(os.Args[1:], os.Stderr)
	if exit {
		return 0
	}
	if err == nil {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = cli.Run(ctx, cfg, os.Stdin, os.Stdout, appLogger)
	}
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, exitErr.Message)
		return exitErr.Code
	}
	appLogger.Error(err.Error())
	return 1
}
