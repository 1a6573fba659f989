package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-raytracer-kernel/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	meshDir := flag.String("mesh-dir", "meshes", "Directory searched for 'ply:<name>' scenes")
	flag.Parse()

	webServer := server.NewServer(*port, *meshDir)

	log.Printf("Wireframe Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/image?scene=wireframe", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
