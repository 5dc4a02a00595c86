package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed shaders/*.vert shaders/*.frag
var builtinShaders embed.FS

// Root is the directory assets are loaded from.
var Root = "assets"

// LoadShader reads a GLSL file into a null-terminated string for OpenGL.
// A file under Root/shaders overrides the built-in shader of the same name.
func LoadShader(name string) (string, error) {
	path := filepath.Join(Root, "shaders", name)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		b, err = builtinShaders.ReadFile("shaders/" + name)
	}
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Str
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}
