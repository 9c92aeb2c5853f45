package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/hailam/gridchess/internal/config"
	"github.com/hailam/gridchess/internal/render"
	"github.com/hailam/gridchess/internal/session"
	"github.com/hailam/gridchess/internal/storage"
)

var (
	format     = flag.String("format", "svg", "output format: svg, png or text")
	size       = flag.Int("size", 512, "png edge length in pixels")
	cell       = flag.Int("cell", 48, "svg square size in pixels")
	outPath    = flag.String("out", "", "output file (default stdout)")
	stored     = flag.Bool("stored", false, "render the stored session instead of the layout")
	list       = flag.Bool("list", false, "list stored sessions and their move logs")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	cfg, err := config.LoadShared(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	if err := run(cfg); err != nil {
		log.Print(err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	var store *storage.Storage
	if *stored || *list {
		var err error
		store, err = storage.Open(cfg.DataDir)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	w := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := write(bw, cfg, store); err != nil {
		return err
	}
	return bw.Flush()
}

func write(w io.Writer, cfg config.Config, store *storage.Storage) error {
	if *list {
		return listSessions(w, store)
	}

	var loader session.Loader
	if store != nil {
		loader = store
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	b, _, err := session.LoadBoard(loader, cat, cfg.Session, cfg.Layout, *stored)
	if err != nil {
		return err
	}

	switch strings.ToLower(*format) {
	case "svg":
		return render.SVG(w, b, render.SVGOptions{Cell: *cell, Glyphs: true, Labels: true})
	case "png":
		return render.PNG(w, b, *size)
	case "text":
		return render.Text(w, b, cfg.Empty)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func listSessions(w io.Writer, store *storage.Storage) error {
	ids, err := store.Sessions()
	if err != nil {
		return err
	}
	for _, id := range ids {
		moves, err := store.Moves(id)
		if err != nil {
			return err
		}
		line := make([]string, 0, len(moves))
		for _, m := range moves {
			s := m.Piece + " " + m.From + "->" + m.To
			if m.Captured != "" {
				s += " x " + m.Captured
			}
			line = append(line, s)
		}
		fmt.Fprintf(w, "%s (%d moves) %s\n", id, len(moves), strings.Join(line, ", "))
	}

	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "sessions: %d  moves: %d  captures: %d (%.1f%%)  undos: %d  rejected: %d\n",
		stats.Sessions, stats.Moves, stats.Captures, stats.CaptureRate(), stats.Undos, stats.Rejected)
	return nil
}
