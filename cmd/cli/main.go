package main

import (
	"context"

	"github.com/easylend/userservice/internal/client/cli"
	"github.com/easylend/userservice/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
