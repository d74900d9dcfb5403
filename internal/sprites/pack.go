package sprites

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrInvalidPack is returned for archives that do not hold exactly the
	// twelve frame files at the top level.
	ErrInvalidPack = errors.New("invalid sprite pack")
	// ErrAlreadyImported is returned when a pet with the same name exists.
	ErrAlreadyImported = errors.New("sprite set already imported")
)

const packSuffix = "_penc"

// PackName derives the pet name from an archive path: "Gabumon_penc.zip"
// becomes "Gabumon".
func PackName(zipPath string) string {
	name := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	return strings.TrimSuffix(name, packSuffix)
}

// Import validates the archive at zipPath and extracts its frames into
// root/<name>. It returns the pet name.
func Import(zipPath, root string) (string, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("open sprite pack %s: %w", zipPath, err)
	}
	defer reader.Close()

	frames, err := collectFrames(reader.File)
	if err != nil {
		return "", err
	}

	name := PackName(zipPath)
	if name == "" {
		return "", fmt.Errorf("sprite pack %s has no name: %w", zipPath, ErrInvalidPack)
	}
	destination := filepath.Join(root, name)
	if _, err := os.Stat(destination); err == nil {
		return "", fmt.Errorf("import %s: %w", name, ErrAlreadyImported)
	}
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return "", fmt.Errorf("create sprite directory: %w", err)
	}

	for fileName, file := range frames {
		if err := extractFile(file, filepath.Join(destination, fileName)); err != nil {
			_ = os.RemoveAll(destination)
			return "", err
		}
	}
	return name, nil
}

// Available lists installed sprite sets under root, sorted by name.
// A missing root yields an empty list.
func Available(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list sprite sets: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, entry.Name(), frameFileName(0))); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes an installed sprite set.
func Remove(root, name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("remove sprite set %q: %w", name, ErrInvalidPack)
	}
	if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
		return fmt.Errorf("remove sprite set %s: %w", name, err)
	}
	return nil
}

func collectFrames(files []*zip.File) (map[string]*zip.File, error) {
	expected := make(map[string]bool, FrameCount)
	for id := 0; id < FrameCount; id++ {
		expected[frameFileName(id)] = true
	}

	frames := make(map[string]*zip.File, FrameCount)
	pngCount := 0
	for _, file := range files {
		name := file.Name
		if file.FileInfo().IsDir() || strings.Contains(name, "/") || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ".png") {
			continue
		}
		pngCount++
		if expected[name] {
			frames[name] = file
		}
	}

	if pngCount != FrameCount {
		return nil, fmt.Errorf("expected %d png files, found %d: %w", FrameCount, pngCount, ErrInvalidPack)
	}
	if len(frames) != FrameCount {
		var missing []string
		for name := range expected {
			if frames[name] == nil {
				missing = append(missing, name)
			}
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("missing frames %s: %w", strings.Join(missing, ", "), ErrInvalidPack)
	}
	return frames, nil
}

func extractFile(file *zip.File, target string) error {
	source, err := file.Open()
	if err != nil {
		return fmt.Errorf("open %s in pack: %w", file.Name, err)
	}
	defer source.Close()

	output, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(output, source); err != nil {
		_ = output.Close()
		return fmt.Errorf("extract %s: %w", file.Name, err)
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	return nil
}
