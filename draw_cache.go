package glyphbrush

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformSize is the byte size of the Globals uniform: one mat4x4<f32>.
const uniformSize = 64

// uniformStride is the distance between per-draw uniforms, the minimum
// dynamic offset alignment.
const uniformStride = 256

const (
	minInstanceCapacity = 256
	minUniformSlots     = 16
)

// identityTransform is the column-major 4x4 identity.
var identityTransform = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// pipelineKey selects a render pipeline variant.
type pipelineKey struct {
	color gputypes.TextureFormat
	depth gputypes.TextureFormat
}

// Stats counts the GPU object churn of a Brush.
type Stats struct {
	// PipelineBuilds is the number of render pipelines created.
	PipelineBuilds int
	// BindGroupBuilds is the number of atlas bind groups created.
	BindGroupBuilds int
	// AtlasGrowths is the number of times the glyph texture was enlarged.
	AtlasGrowths int
	// InstanceBufferBuilds is the number of instance buffers created.
	InstanceBufferBuilds int
	// UniformBufferBuilds is the number of transform uniform buffers created.
	UniformBufferBuilds int
	// LastInstances is the number of glyph instances in the last draw.
	LastInstances int
	// AtlasWidth and AtlasHeight are the current glyph texture size.
	AtlasWidth, AtlasHeight uint32
}

// drawCache keeps the GPU objects used to draw glyphs across frames.
//
// The shader, layouts and sampler live as long as the cache. The pipeline
// is rebuilt only when the target formats change and the bind group only
// when the atlas texture or uniform buffer is replaced. Each draw gets its
// own region of the instance and uniform rings, so several draws recorded
// into one encoder keep their own glyphs and transform. Replaced objects
// are retired with the open frame instead of destroyed.
//
//	bind group 0:
//	  binding 0: Globals (uniform buffer, dynamic offset, vertex)
//	  binding 1: atlas texture (texture_2d, fragment)
//	  binding 2: sampler (fragment)
type drawCache struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler

	pipeline    hal.RenderPipeline
	pipelineKey pipelineKey

	bindGroup      hal.BindGroup
	bindGen        int
	textureUpdated bool

	instances ring
	uniforms  ring
	frames    frames
	scratch   []byte

	depthCompare gputypes.CompareFunction
	depthWrite   bool

	stats Stats
}

// drawSlot is where one draw's data lives in the rings.
type drawSlot struct {
	first   int
	count   int
	uniform int
}

func newDrawCache(device hal.Device, queue hal.Queue, opts *options) (*drawCache, error) {
	c := &drawCache{
		device:         device,
		queue:          queue,
		textureUpdated: true,
		depthCompare:   opts.depthCompare,
		depthWrite:     opts.depthWrite,
		instances: ring{
			label:  "glyphbrush_instances",
			usage:  gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
			stride: instanceSize,
			min:    minInstanceCapacity,
		},
		uniforms: ring{
			label:  "glyphbrush_globals",
			usage:  gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
			stride: uniformStride,
			min:    minUniformSlots,
		},
		frames: frames{queue: queue},
	}
	if err := c.init(opts.filter); err != nil {
		c.destroy()
		return nil, err
	}
	return c, nil
}

// init creates the objects that never change.
func (c *drawCache) init(filter gputypes.FilterMode) error {
	shader, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyphbrush_shader",
		Source: hal.ShaderSource{WGSL: glyphShaderSource},
	})
	if err != nil {
		return fmt.Errorf("glyphbrush: create glyph shader module: %w", err)
	}
	c.shader = shader

	bindLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyphbrush_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer: &gputypes.BufferBindingLayout{
					Type:             gputypes.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   uniformSize,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("glyphbrush: create bind group layout: %w", err)
	}
	c.bindLayout = bindLayout

	pipeLayout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyphbrush_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("glyphbrush: create pipeline layout: %w", err)
	}
	c.pipeLayout = pipeLayout

	sampler, err := c.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "glyphbrush_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("glyphbrush: create sampler: %w", err)
	}
	c.sampler = sampler
	return nil
}

// ensurePipeline makes sure the pipeline matches key.
func (c *drawCache) ensurePipeline(key pipelineKey) error {
	if c.pipeline != nil && c.pipelineKey == key {
		return nil
	}

	var depthStencil *hal.DepthStencilState
	if key.depth != gputypes.TextureFormatUndefined {
		keep := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		}
		depthStencil = &hal.DepthStencilState{
			Format:            key.depth,
			DepthWriteEnabled: c.depthWrite,
			DepthCompare:      c.depthCompare,
			StencilFront:      keep,
			StencilBack:       keep,
		}
	}

	blend := gputypes.BlendStateAlpha()
	pipeline, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "glyphbrush_pipeline",
		Layout: c.pipeLayout,
		Vertex: hal.VertexState{
			Module:     c.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    instanceLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     c.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    key.color,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: depthStencil,
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("glyphbrush: create render pipeline: %w", err)
	}

	if old := c.pipeline; old != nil {
		c.frames.retire(func() { c.device.DestroyRenderPipeline(old) })
	}
	c.pipeline = pipeline
	c.pipelineKey = key
	c.stats.PipelineBuilds++
	Logger().Debug("glyphbrush: pipeline built",
		"color", key.color.String(), "depth", key.depth.String())
	return nil
}

// ensureBindGroup rebuilds the bind group after the atlas texture or the
// uniform buffer changed.
func (c *drawCache) ensureBindGroup(view hal.TextureView) error {
	if c.bindGroup != nil && !c.textureUpdated && c.bindGen == c.uniforms.gen {
		return nil
	}

	group, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyphbrush_bind_group",
		Layout: c.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: c.uniforms.buf.NativeHandle(), Size: uniformSize}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: c.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("glyphbrush: create bind group: %w", err)
	}

	if old := c.bindGroup; old != nil {
		c.frames.retire(func() { c.device.DestroyBindGroup(old) })
	}
	c.bindGroup = group
	c.bindGen = c.uniforms.gen
	c.textureUpdated = false
	c.stats.BindGroupBuilds++
	Logger().Debug("glyphbrush: bind group rebuilt")
	return nil
}

// beginDraw opens enc's frame and releases frames the GPU has finished.
func (c *drawCache) beginDraw(enc hal.CommandEncoder) {
	c.frames.begin(enc, c.releaseFrame)
}

// reserveDraw claims ring space for n instances and one transform.
func (c *drawCache) reserveDraw(n int) (drawSlot, error) {
	f := c.frames.open
	instGen, uniGen := c.instances.gen, c.uniforms.gen

	first, err := c.reserve(&c.instances, &f.instances, n)
	if err != nil {
		return drawSlot{}, err
	}
	if c.instances.gen != instGen {
		c.stats.InstanceBufferBuilds++
	}
	slot, err := c.reserve(&c.uniforms, &f.uniforms, 1)
	if err != nil {
		return drawSlot{}, err
	}
	if c.uniforms.gen != uniGen {
		c.stats.UniformBufferBuilds++
	}
	return drawSlot{first: first, count: n, uniform: slot}, nil
}

// write uploads the instances and the column-major transform m into the
// regions reserved for d.
func (c *drawCache) write(d drawSlot, instances []Instance, m [16]float32) error {
	c.scratch = encodeInstances(c.scratch, instances)
	if err := c.queue.WriteBuffer(c.instances.buf, uint64(d.first)*instanceSize, c.scratch); err != nil { //nolint:gosec // non-negative
		return fmt.Errorf("glyphbrush: write instances: %w", err)
	}

	var data [uniformSize]byte
	for i, v := range m {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	if err := c.queue.WriteBuffer(c.uniforms.buf, uint64(d.uniform)*uniformStride, data[:]); err != nil { //nolint:gosec // non-negative
		return fmt.Errorf("glyphbrush: write transform: %w", err)
	}
	c.stats.LastInstances = d.count
	return nil
}

// submitted tags every frame recorded so far with the queue submission
// index that carries it.
func (c *drawCache) submitted(index uint64) {
	c.frames.submitted(index)
}

// record encodes one render pass that draws d's instances on top of the
// target's existing contents.
func (c *drawCache) record(enc hal.CommandEncoder, target RenderTarget, depth DepthTarget, d drawSlot) {
	desc := &hal.RenderPassDescriptor{
		Label: "glyphbrush_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    target.View,
				LoadOp:  gputypes.LoadOpLoad,
				StoreOp: gputypes.StoreOpStore,
			},
		},
	}
	if depth.View != nil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:         depth.View,
			DepthLoadOp:  gputypes.LoadOpLoad,
			DepthStoreOp: gputypes.StoreOpStore,
		}
	}

	pass := enc.BeginRenderPass(desc)
	pass.SetPipeline(c.pipeline)
	pass.SetBindGroup(0, c.bindGroup, []uint32{uint32(d.uniform * uniformStride)}) //nolint:gosec // bounded by ring size
	pass.SetVertexBuffer(0, c.instances.buf, uint64(d.first)*instanceSize)          //nolint:gosec // non-negative
	pass.Draw(4, uint32(d.count), 0, 0)                                               //nolint:gosec // bounded by ring size
	pass.End()
}

// destroy releases every frame's retired objects and then all objects in
// reverse creation order. Safe to call on a partially initialized cache.
func (c *drawCache) destroy() {
	for _, f := range c.frames.all() {
		c.releaseFrame(f)
	}
	c.frames.open, c.frames.flight = nil, nil

	for _, r := range []*ring{&c.instances, &c.uniforms} {
		if r.buf != nil {
			c.device.DestroyBuffer(r.buf)
			r.buf = nil
		}
		r.spans = nil
	}
	if c.bindGroup != nil {
		c.device.DestroyBindGroup(c.bindGroup)
		c.bindGroup = nil
	}
	if c.pipeline != nil {
		c.device.DestroyRenderPipeline(c.pipeline)
		c.pipeline = nil
	}
	if c.sampler != nil {
		c.device.DestroySampler(c.sampler)
		c.sampler = nil
	}
	if c.pipeLayout != nil {
		c.device.DestroyPipelineLayout(c.pipeLayout)
		c.pipeLayout = nil
	}
	if c.bindLayout != nil {
		c.device.DestroyBindGroupLayout(c.bindLayout)
		c.bindLayout = nil
	}
	if c.shader != nil {
		c.device.DestroyShaderModule(c.shader)
		c.shader = nil
	}
}
