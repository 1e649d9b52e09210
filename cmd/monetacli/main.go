package main

import (
	"log"

	"github.com/moneta-app/moneta/internal/cli"
	"github.com/moneta-app/moneta/internal/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run()

}
