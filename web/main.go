package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	cfg, err := config.Load(os.Getenv("RAYTRACER_ROOT_DIR"))
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", cfg.Port, "Port to serve on")
	flag.Parse()
	cfg.Port = *port

	// Create and start web server
	webServer := server.NewServer(cfg)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
