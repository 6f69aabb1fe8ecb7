package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/safetyfirst/incident-engine/internal/renderer"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

func main() {
	var (
		recordPath  = flag.String("record", "", "incident record JSON file")
		outDir      = flag.String("out", ".", "output directory")
		templateDir = flag.String("templates", "assets/templates", "template background directory")
		fontDir     = flag.String("fonts", "assets/fonts", "font directory")
		uploadsDir  = flag.String("uploads", "uploads", "uploaded images directory")
		backendName = flag.String("backend", "final", "renderer backend: preview or final")
		report      = flag.Bool("report", false, "produce the A4 PDF report instead of cards")
	)
	flag.Parse()

	if *recordPath == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -record incident.json [-out dir] [-report]")
		os.Exit(1)
	}

	inc, err := incidentformat.ParseFile(*recordPath)
	if err != nil {
		log.Fatalf("Failed to load record: %v", err)
	}

	fm, err := textmetrics.NewFontManager(*fontDir)
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	var backend renderer.Backend
	switch *backendName {
	case "preview":
		backend = renderer.NewPreviewBackend(fm)
	case "final":
		backend = renderer.NewFinalBackend(fm)
	default:
		log.Fatalf("Unknown backend %q (must be preview or final)", *backendName)
	}

	comp := renderer.NewCompositor(renderer.Config{
		TemplateDir: *templateDir,
		UploadsDir:  *uploadsDir,
	}, backend, fm)

	var artifacts []renderer.Artifact
	if *report {
		art, err := comp.ComposeReport(inc)
		if err != nil {
			log.Fatalf("Report failed: %v", err)
		}
		artifacts = []renderer.Artifact{art}
	} else {
		artifacts, err = comp.ComposeCards(inc)
		if err != nil {
			log.Fatalf("Render failed: %v", err)
		}
	}

	for _, art := range artifacts {
		if err := renderer.WriteArtifact(*outDir, art); err != nil {
			log.Fatalf("Write failed: %v", err)
		}
		fmt.Println(art.Filename)
	}
}
