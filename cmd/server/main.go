package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/safetyfirst/incident-engine/internal/api"
	"github.com/safetyfirst/incident-engine/internal/renderer"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	var (
		port        = flag.String("port", envOr("SERVER_PORT", "12310"), "listen port")
		templateDir = flag.String("templates", envOr("TEMPLATE_DIR", "assets/templates"), "template background directory")
		fontDir     = flag.String("fonts", envOr("FONT_DIR", "assets/fonts"), "font directory (Regular + Bold)")
		uploadsDir  = flag.String("uploads", envOr("UPLOADS_DIR", "uploads"), "uploaded images directory")
	)
	flag.Parse()

	fm, err := textmetrics.NewFontManager(*fontDir)
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	cfg := renderer.Config{
		TemplateDir: *templateDir,
		UploadsDir:  *uploadsDir,
	}
	preview := renderer.NewCompositor(cfg, renderer.NewPreviewBackend(fm), fm)
	final := renderer.NewCompositor(cfg, renderer.NewFinalBackend(fm), fm)

	server := api.NewServer(preview, final)

	addr := fmt.Sprintf("0.0.0.0:%s", *port)
	log.Printf("incident-engine %s listening on %s (templates=%s)", Version, addr, *templateDir)
	if err := server.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
