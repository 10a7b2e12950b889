package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of JSON scene files")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Sphere Path Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default&width=400&samples=20", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
