package sheetio

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sheet-arcade/internal/core"
)

// Feature exposes load-file and save-file commands acting on a fixed path.
// I/O failures are reported to the user and never abort the host.
type Feature struct {
	Sheet core.GridView
	Path  string
	Log   *slog.Logger
}

// Name returns the feature identifier.
func (f *Feature) Name() string { return "files" }

// Register binds the load-file and save-file commands.
func (f *Feature) Register(ui core.UI) {
	ui.AddFeature("load-file", "Load File", f.load)
	ui.AddFeature("save-file", "Save File", f.save)
}

func (f *Feature) logger() *slog.Logger {
	if f.Log != nil {
		return f.Log
	}
	return slog.Default()
}

// SavePath returns the target path with a .csv extension.
func (f *Feature) SavePath() string {
	if strings.EqualFold(filepath.Ext(f.Path), ".csv") {
		return f.Path
	}
	return f.Path + ".csv"
}

func (f *Feature) save(p core.Prompt) error {
	path := f.SavePath()
	if err := SaveFile(path, f.Sheet); err != nil {
		f.logger().Warn("save failed", "path", path, "err", err)
		p.Message("Error saving file: " + err.Error())
		return nil
	}
	p.Message("File saved successfully.")
	return nil
}

func (f *Feature) load(p core.Prompt) error {
	loaded, err := LoadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		p.Message("Error: File not found.")
		return nil
	}
	if err == nil {
		err = CopyInto(f.Sheet, loaded)
	}
	if err != nil {
		f.logger().Warn("load failed", "path", f.Path, "err", err)
		p.Message("Error loading file.")
		return nil
	}
	p.Message("File loaded successfully.")
	return nil
}

// SaveFile writes g to path.
func SaveFile(path string, g core.GridView) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(out, g); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// LoadFile reads a sheet from path.
func LoadFile(path string) (*core.Sheet, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return Load(in)
}
