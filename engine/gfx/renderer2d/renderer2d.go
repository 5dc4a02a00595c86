package renderer2d

import (
	"fmt"
	"math"

	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const (
	vStride      = 9
	vertsPerQuad = 4
	indsPerQuad  = 6
)

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// ScissorRect is a top-left origin clip rectangle in framebuffer pixels.
type ScissorRect struct{ X, Y, W, H int }

// Intersect returns the overlap of s and o (zero-sized if disjoint).
func (s ScissorRect) Intersect(o ScissorRect) ScissorRect {
	x0, y0 := max(s.X, o.X), max(s.Y, o.Y)
	x1, y1 := max(x0, min(s.X+s.W, o.X+o.W)), max(y0, min(s.Y+s.H, o.Y+o.H))
	return ScissorRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Renderer2D batches textured quads into as few draw calls as the texture
// slots and scissor changes allow. Positive Y goes down.
type Renderer2D struct {
	r     core.Renderer
	pipe  core.Pipeline
	mesh  core.Mesh
	white core.Texture // 1x1 white, always slot 0

	maxQuads int
	verts    []float32
	inds     []uint32
	textures []core.Texture

	vp       [16]float32
	stats    Statistics
	scissors []ScissorRect

	// reused between flushes
	slotNames [maxTexSlots]string
	uniforms  map[string]any
	samplers  map[string]core.Texture
}

// New compiles the quad pipeline and allocates a mesh for maxQuads quads.
func New(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		Blend:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("quad pipeline: %w", err)
	}
	white, err := r.CreateTexture(core.TextureDesc{
		Width:     1,
		Height:    1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("white texture: %w", err)
	}
	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
	})
	if err != nil {
		return nil, fmt.Errorf("quad mesh: %w", err)
	}

	rd := &Renderer2D{
		r:        r,
		pipe:     pipe,
		mesh:     mesh,
		white:    white,
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:     make([]uint32, 0, maxQuads*indsPerQuad),
		textures: make([]core.Texture, 0, maxTexSlots),
		uniforms: make(map[string]any, 1),
		samplers: make(map[string]core.Texture, maxTexSlots),
	}
	for i := range rd.slotNames {
		rd.slotNames[i] = fmt.Sprintf("uTex[%d]", i)
	}
	rd.resetBatch()
	return rd, nil
}

// BeginScene starts a frame drawn with the view-projection vp.
func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.vp = vp
	rd.stats = Statistics{}
	rd.resetBatch()
}

// EndScene flushes and drops any scissor left open.
func (rd *Renderer2D) EndScene() {
	rd.flush()
	if len(rd.scissors) > 0 {
		rd.scissors = rd.scissors[:0]
		rd.r.SetScissor(0, 0, 0, 0, false)
	}
}

// PushScissor flushes pending quads and clips subsequent drawing to r,
// intersected with any enclosing scissor.
func (rd *Renderer2D) PushScissor(r ScissorRect) {
	rd.flush()
	if n := len(rd.scissors); n > 0 {
		r = r.Intersect(rd.scissors[n-1])
	}
	rd.scissors = append(rd.scissors, r)
	rd.r.SetScissor(r.X, r.Y, r.W, r.H, true)
}

// PopScissor flushes and restores the previous clip state.
func (rd *Renderer2D) PopScissor() {
	if len(rd.scissors) == 0 {
		return
	}
	rd.flush()
	rd.scissors = rd.scissors[:len(rd.scissors)-1]
	if n := len(rd.scissors); n > 0 {
		r := rd.scissors[n-1]
		rd.r.SetScissor(r.X, r.Y, r.W, r.H, true)
		return
	}
	rd.r.SetScissor(0, 0, 0, 0, false)
}

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawQuad draws a solid quad centred on (x,y).
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.quad(x, y, w, h, color, rotationRad, rd.white, 0, 0, 1, 1)
}

// DrawRect draws a solid rectangle given by its top-left corner.
func (rd *Renderer2D) DrawRect(x, y, w, h float32, color colors.Color) {
	rd.quad(x+w*0.5, y+h*0.5, w, h, color, 0, rd.white, 0, 0, 1, 1)
}

// DrawTexturedRect draws a texture sub-rect (UVs) at a top-left positioned rectangle.
func (rd *Renderer2D) DrawTexturedRect(x, y, w, h float32, tex core.Texture, tint colors.Color, u0, v0, u1, v1 float32) {
	rd.quad(x+w*0.5, y+h*0.5, w, h, tint, 0, tex, u0, v0, u1, v1)
}

// DrawTexturedQuad draws the whole of tex centred on (x,y).
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32) {
	rd.quad(x, y, w, h, tint, rotationRad, tex, 0, 0, 1, 1)
}

// DrawTexturedQuadUV draws the (u0,v0)-(u1,v1) part of tex centred on (x,y).
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32) {
	rd.quad(x, y, w, h, tint, rotationRad, tex, u0, v0, u1, v1)
}

// DrawSubTexQuad draws a sprite centred on (x,y).
func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotationRad float32) {
	rd.quad(x, y, w, h, tint, rotationRad, sub.Texture, sub.U0, sub.V0, sub.U1, sub.V1)
}

func (rd *Renderer2D) quad(x, y, w, h float32, color colors.Color, rotationRad float32, tex core.Texture, u0, v0, u1, v1 float32) {
	if len(rd.inds)/indsPerQuad >= rd.maxQuads {
		rd.flush()
	}
	slot := rd.slot(tex)

	hw, hh := w*0.5, h*0.5
	// TL, TR, BL, BR
	corners := [4][4]float32{
		{-hw, -hh, u0, v0},
		{hw, -hh, u1, v0},
		{-hw, hh, u0, v1},
		{hw, hh, u1, v1},
	}
	c, s := float32(1), float32(0)
	if rotationRad != 0 {
		c, s = float32(math.Cos(float64(rotationRad))), float32(math.Sin(float64(rotationRad)))
	}

	base := uint32(len(rd.verts) / vStride)
	for _, p := range corners {
		rd.verts = append(rd.verts,
			p[0]*c-p[1]*s+x, p[0]*s+p[1]*c+y,
			color[0], color[1], color[2], color[3],
			p[2], p[3],
			slot,
		)
	}
	rd.inds = append(rd.inds, base, base+2, base+1, base+1, base+2, base+3)
	rd.stats.QuadCount++
}

// slot returns the batch texture slot for t, flushing when all are taken.
func (rd *Renderer2D) slot(t core.Texture) float32 {
	for i, bound := range rd.textures {
		if bound == t {
			return float32(i)
		}
	}
	if len(rd.textures) == maxTexSlots {
		rd.flush()
	}
	rd.textures = append(rd.textures, t)
	rd.stats.TextureCount = max(rd.stats.TextureCount, len(rd.textures))
	return float32(len(rd.textures) - 1)
}

func (rd *Renderer2D) flush() {
	if len(rd.inds) == 0 {
		return
	}
	if err := rd.r.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		panic(err)
	}

	clear(rd.samplers)
	for i, t := range rd.textures {
		rd.samplers[rd.slotNames[i]] = t
	}
	rd.uniforms["uVP"] = rd.vp

	rd.r.Draw(core.DrawCmd{
		Pipe:     rd.pipe,
		Mesh:     rd.mesh,
		Uniforms: rd.uniforms,
		Samplers: rd.samplers,
	})
	rd.stats.DrawCalls++
	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	clear(rd.textures)
	rd.textures = append(rd.textures[:0], rd.white)
}
