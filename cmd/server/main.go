package main

import (
	"context"
	"flag"
	"log"

	"github.com/taskdeck/taskdeck/internal/app/bootstrap"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "path to the YAML config file")
	flag.Parse()

	runtime, err := bootstrap.NewRuntime(*configPath)
	if err != nil {
		log.Fatalf("bootstrap runtime: %v", err)
	}
	if err := runtime.Run(context.Background()); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
