package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/contactbook/internal/buildinfo"
	"github.com/dmitrijs2005/contactbook/internal/client/cli"
	"github.com/dmitrijs2005/contactbook/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if len(cfg.Args) > 0 && cfg.Args[0] == "version" {
		buildinfo.PrintBuildData(os.Stdout)
		return
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

}
