package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	// SpriteRoot is the directory inside Sprites holding the bundled pets.
	SpriteRoot = "sprites"
	// DefaultPet is the bundled sprite set.
	DefaultPet = "Agumon"

	logoDir  = "logo/"
	soundDir = "sounds/"
)

//go:embed sprites/Agumon/*.png
var spriteFS embed.FS

//go:embed logo/*.png
var logoFS embed.FS

//go:embed sounds/*.wav
var soundFS embed.FS

var logoCache sync.Map

// Sprites exposes the bundled sprite sets rooted at SpriteRoot.
func Sprites() fs.FS {
	return spriteFS
}

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	if cached, ok := logoCache.Load(fileName); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := logoFS.ReadFile(logoDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load logo %s: %w", fileName, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	logoCache.Store(fileName, resource)
	return resource, nil
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Sound returns the raw bytes of a bundled sound file.
func Sound(fileName string) ([]byte, error) {
	data, err := soundFS.ReadFile(soundDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", fileName, err)
	}
	return data, nil
}
