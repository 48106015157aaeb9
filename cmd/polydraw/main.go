package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"polydraw/internal/config"
	"polydraw/internal/engine"
	"polydraw/internal/geom"
	"polydraw/internal/render"
	"polydraw/internal/scene"
	"polydraw/internal/tui"
)

func main() {
	cfgPath := flag.String("config", config.Filename, "settings file")
	logPath := flag.String("log", "", "append logs to this file")
	dump := flag.Bool("dump", false, "print the draw commands of the scene argument and exit")
	pngOut := flag.String("png", "", "render the scene argument to this PNG file and exit")
	fill := flag.Bool("fill", false, "fill the polygon when rendering headless")
	flag.Parse()

	headless := *dump || *pngOut != ""
	var level slog.LevelVar
	var out io.Writer = io.Discard
	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	case headless:
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: &level}))
	slog.SetDefault(logger)
	engine.SetLogger(logger)

	cfg := config.Load(*cfgPath)
	level.Set(cfg.Level())

	if headless {
		if err := runHeadless(cfg, flag.Arg(0), *dump, *pngOut, *fill); err != nil {
			log.Fatal(err)
		}
		return
	}

	var m tea.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(cfg, flag.Arg(0))
	} else {
		m = tui.New(cfg)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

type fixedUI struct{ iterations int }

func (fixedUI) Color() geom.Color { return geom.Black }
func (u fixedUI) Iterations() int { return u.iterations }

// runHeadless loads path into an engine drawing onto a recorder or an
// image and writes the result.
func runHeadless(cfg config.Config, path string, dump bool, pngOut string, fill bool) error {
	if path == "" {
		return errors.New("a scene file argument is required")
	}
	rec, err := scene.LoadFile(path)
	if err != nil {
		return err
	}
	opts := engine.Options{Background: cfg.BackgroundColor(), KochColor: cfg.KochLineColor()}

	if dump {
		var r render.Recorder
		e := engine.New(fixedUI{cfg.DefaultIterations}, &r, opts)
		if fill {
			e.OnToggleFill()
		}
		if err := e.OnLoad(rec); err != nil {
			return err
		}
		if err := r.Dump(os.Stdout); err != nil {
			return err
		}
	}
	if pngOut != "" {
		ir := render.NewImageRasterizer(cfg.Export.Width, cfg.Export.Height)
		e := engine.New(fixedUI{cfg.DefaultIterations}, ir, opts)
		if fill {
			e.OnToggleFill()
		}
		if err := e.OnLoad(rec); err != nil {
			return err
		}
		f, err := os.Create(pngOut)
		if err != nil {
			return err
		}
		if err := ir.WritePNG(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		slog.Info("wrote image", "path", pngOut, "failed", fmt.Sprint(e.LastStats().Failed))
	}
	return nil
}
