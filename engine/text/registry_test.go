package text

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hubastard/railhud/engine/core"
)

type fakeTexture struct{ w, h int }

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

// fakeRenderer only uploads textures; fonts need nothing else.
type fakeRenderer struct {
	core.Renderer
	textures atomic.Int32
}

func (r *fakeRenderer) CreateTexture(d core.TextureDesc) (core.Texture, error) {
	r.textures.Add(1)
	return &fakeTexture{d.Width, d.Height}, nil
}

func TestRegistryCachesByDescription(t *testing.T) {
	fr := &fakeRenderer{}
	reg := NewRegistry(fr, t.TempDir())
	defer reg.Close()

	a, err := reg.Get(FamilyGoRegular, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := reg.Get(FamilyGoRegular, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("same description returned different fonts")
	}
	c, err := reg.Get(FamilyGoRegular, 16, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c == a || c.Outline != 1 {
		t.Errorf("outline font not distinct: outline=%d", c.Outline)
	}
	if c.Height() != a.Height()+2 {
		t.Errorf("outline height %d vs %d", c.Height(), a.Height())
	}
	if reg.Len() != 2 || fr.textures.Load() != 2 {
		t.Errorf("cached %d fonts, uploaded %d atlases", reg.Len(), fr.textures.Load())
	}
}

func TestRegistryConcurrentGetSharesLoad(t *testing.T) {
	fr := &fakeRenderer{}
	reg := NewRegistry(fr, t.TempDir())
	defer reg.Close()

	const n = 8
	fonts := make([]*Font, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := reg.Get(FamilyGoMono, 14, 0)
			if err != nil {
				t.Error(err)
				return
			}
			fonts[i] = f
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if fonts[i] != fonts[0] {
			t.Fatalf("caller %d got a different font", i)
		}
	}
	if got := fr.textures.Load(); got != 1 {
		t.Errorf("uploaded %d atlases", got)
	}
}

func TestRegistryUnknownFamily(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, t.TempDir())
	_, err := reg.Get("No Such Font", 12, 0)
	if err == nil || !strings.Contains(err.Error(), "read font") {
		t.Errorf("err = %v", err)
	}
	if reg.Len() != 0 {
		t.Error("failed load was cached")
	}
}

func TestMeasureString(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, t.TempDir())
	defer reg.Close()
	f, err := reg.Get(FamilyGoMono, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	one, four := f.MeasureString("M"), f.MeasureString("MMMM")
	if one <= 0 || four < 4*one-4 || four > 4*one {
		t.Errorf("mono widths %d and %d", one, four)
	}
	if f.MeasureString("") != 0 {
		t.Error("empty string has width")
	}
}
