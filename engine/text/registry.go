package text

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hubastard/railhud/engine/core"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/singleflight"
)

// Built-in families that need no font file on disk.
const (
	FamilyGoRegular  = "Go Regular"
	FamilyGoBold     = "Go Bold"
	FamilyGoMono     = "Go Mono"
	FamilyGoMonoBold = "Go Mono Bold"
)

var builtin = map[string][]byte{
	FamilyGoRegular:  goregular.TTF,
	FamilyGoBold:     gobold.TTF,
	FamilyGoMono:     gomono.TTF,
	FamilyGoMonoBold: gomonobold.TTF,
}

// Registry caches fonts by family, size and outline. Get is get-or-create:
// concurrent callers asking for the same description share one load, and a
// cached font is never replaced.
type Registry struct {
	r   core.Renderer
	dir string

	fonts sync.Map // key -> *Font
	group singleflight.Group
}

// NewRegistry loads non built-in families from dir/<family>.ttf.
func NewRegistry(r core.Renderer, dir string) *Registry {
	if dir == "" {
		dir = filepath.Join("assets", "fonts")
	}
	return &Registry{r: r, dir: dir}
}

func registryKey(family string, sizePx float32, outline int) string {
	return fmt.Sprintf("%s:%.2f:%d", family, sizePx, outline)
}

func (reg *Registry) Get(family string, sizePx float32, outline int) (*Font, error) {
	key := registryKey(family, sizePx, outline)
	if f, ok := reg.fonts.Load(key); ok {
		return f.(*Font), nil
	}
	v, err, _ := reg.group.Do(key, func() (any, error) {
		if f, ok := reg.fonts.Load(key); ok {
			return f, nil
		}
		data, err := reg.load(family)
		if err != nil {
			return nil, err
		}
		f, err := NewFont(reg.r, data, sizePx)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", key, err)
		}
		f.Outline = outline
		actual, _ := reg.fonts.LoadOrStore(key, f)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Font), nil
}

// Len reports how many fonts are cached.
func (reg *Registry) Len() int {
	n := 0
	reg.fonts.Range(func(_, _ any) bool { n++; return true })
	return n
}

// Close releases every cached face.
func (reg *Registry) Close() {
	reg.fonts.Range(func(k, v any) bool {
		v.(*Font).Close()
		reg.fonts.Delete(k)
		return true
	})
}

func (reg *Registry) load(family string) ([]byte, error) {
	if data, ok := builtin[family]; ok {
		return data, nil
	}
	path := filepath.Join(reg.dir, family+".ttf")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return data, nil
}
