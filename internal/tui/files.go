package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"polydraw/internal/engine"
	"polydraw/internal/render"
	"polydraw/internal/scene"
)

const defaultSceneName = "scene.json"

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.ToLower(filepath.Ext(name)) != ".json" {
			continue
		}
		items = append(items, fileItem{title: name, desc: "scene", path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no scene files in " + m.cwd
	}
}

// loadPath loads a scene file into the engine.
func (m *Model) loadPath(p string) {
	rec, err := scene.LoadFile(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	if err := m.eng.OnLoad(rec); err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  vertices=%d koch=%d", rec.VertexAmt, rec.KochIterationAmt)
	m.afterChange()
}

// savePath is the file the next save writes: the last opened scene or
// scene.json in the working directory.
func (m Model) savePath() string {
	if m.selPath != "" {
		return m.selPath
	}
	return filepath.Join(m.cwd, defaultSceneName)
}

func (m *Model) save() {
	p := m.savePath()
	rec := m.eng.OnSave()
	if err := scene.SaveFile(p, rec); err != nil {
		m.status = "save error: " + err.Error()
		return
	}
	m.selPath = p
	m.status = "saved: " + filepath.Base(p) + fmt.Sprintf("  vertices=%d", rec.VertexAmt)
	if m.showSidebar {
		m.refreshDir()
	}
}

// exportPNG renders the current frame off screen at the configured size.
func (m *Model) exportPNG() {
	base := strings.TrimSuffix(filepath.Base(m.savePath()), filepath.Ext(m.savePath()))
	p := filepath.Join(m.cwd, base+".png")
	ir := render.NewImageRasterizer(m.cfg.Export.Width, m.cfg.Export.Height)
	o := render.Orchestrator{Logger: engine.Logger()}
	st := o.Render(ir, m.eng.Frame())
	f, err := os.Create(p)
	if err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	defer f.Close()
	if err := ir.WritePNG(f); err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("exported: %s  layers=%d", filepath.Base(p), len(st.Drawn))
}
