package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// ErrInvalidDescription is wrapped by every validation failure when building a description
var ErrInvalidDescription = errors.New("invalid scene description")

// Vec is a 3-component vector written as a flow sequence, e.g. [0, 1, 0]
type Vec [3]float64

// V builds a Vec from components
func V(x, y, z float64) Vec { return Vec{x, y, z} }

// VecOf converts a core vector
func VecOf(v core.Vec3) Vec { return Vec{v.X, v.Y, v.Z} }

// Vec3 converts to a core vector
func (v Vec) Vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

// MarshalYAML keeps vectors on one line
func (v Vec) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range v {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(c, 'g', -1, 64),
		})
	}
	return node, nil
}

// Description is the serializable form of a scene: what gets written to and
// read from scene files, and what built-in generators produce.
type Description struct {
	Name    string       `yaml:"name,omitempty"`
	Skybox  SkyboxSpec   `yaml:"skybox"`
	Camera  *CameraSpec  `yaml:"camera,omitempty"`
	Objects []ObjectSpec `yaml:"objects"`
}

// SkyboxSpec names a skybox; Color is only read for "flat"
type SkyboxSpec struct {
	Kind  string `yaml:"kind"`
	Color *Vec   `yaml:"color,omitempty"`
}

// CameraSpec is a suggested viewpoint. Zero values are filled from command line defaults.
type CameraSpec struct {
	LookFrom      Vec     `yaml:"look_from"`
	LookAt        Vec     `yaml:"look_at"`
	Up            *Vec    `yaml:"up,omitempty"`
	VFov          float64 `yaml:"vfov,omitempty"`
	Aperture      float64 `yaml:"aperture,omitempty"`
	FocalLength   float64 `yaml:"focal_length,omitempty"`
	FocusDistance float64 `yaml:"focus_distance,omitempty"`
	AspectRatio   string  `yaml:"aspect_ratio,omitempty"`
}

// ObjectSpec is one shape and its material
type ObjectSpec struct {
	Shape    ShapeSpec    `yaml:"shape"`
	Material MaterialSpec `yaml:"material"`
}

// ShapeSpec holds exactly one shape variant
type ShapeSpec struct {
	Sphere *SphereSpec `yaml:"sphere,omitempty"`
	Rect   *RectSpec   `yaml:"rect,omitempty"`
	Box    *BoxSpec    `yaml:"box,omitempty"`
	Plane  *PlaneSpec  `yaml:"plane,omitempty"`
}

type SphereSpec struct {
	Center Vec     `yaml:"center"`
	Radius float64 `yaml:"radius"`
}

// RectSpec describes an axis-aligned rect; Plane is one of xy, yz, xz
type RectSpec struct {
	Plane string     `yaml:"plane"`
	A     [2]float64 `yaml:"a,flow"`
	B     [2]float64 `yaml:"b,flow"`
	K     float64    `yaml:"k"`
}

type BoxSpec struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

type PlaneSpec struct {
	Point  Vec `yaml:"point"`
	Normal Vec `yaml:"normal"`
}

// MaterialSpec holds exactly one material variant
type MaterialSpec struct {
	Lambertian   *TextureSpec    `yaml:"lambertian,omitempty"`
	Metal        *MetalSpec      `yaml:"metal,omitempty"`
	Dielectric   *DielectricSpec `yaml:"dielectric,omitempty"`
	DiffuseLight *TextureSpec    `yaml:"diffuse_light,omitempty"`
	FairyLight   *TextureSpec    `yaml:"fairy_light,omitempty"`
}

type MetalSpec struct {
	Albedo Vec     `yaml:"albedo"`
	Fuzz   float64 `yaml:"fuzz,omitempty"`
}

type DielectricSpec struct {
	IR float64 `yaml:"ir"`
}

// TextureSpec holds exactly one texture variant
type TextureSpec struct {
	Solid   *Vec         `yaml:"solid,omitempty"`
	Checker *CheckerSpec `yaml:"checker,omitempty"`
	Noise   *NoiseSpec   `yaml:"noise,omitempty"`
	Image   string       `yaml:"image,omitempty"`
}

type CheckerSpec struct {
	Size float64     `yaml:"size"`
	Odd  TextureSpec `yaml:"odd"`
	Even TextureSpec `yaml:"even"`
}

type NoiseSpec struct {
	Scale float64 `yaml:"scale"`
	Seed  int64   `yaml:"seed,omitempty"`
}

// Add appends an object
func (d *Description) Add(shape ShapeSpec, mat MaterialSpec) {
	d.Objects = append(d.Objects, ObjectSpec{Shape: shape, Material: mat})
}

// Builder converts the description into a scene builder, loading any image
// textures. Relative image paths are resolved against baseDir.
func (d *Description) Builder(baseDir string) (*Builder, error) {
	b := NewBuilder()

	skybox, err := d.Skybox.build()
	if err != nil {
		return nil, err
	}
	b.SetSkybox(skybox)

	images := map[string]texture.Texture{}
	for i, obj := range d.Objects {
		shape, err := obj.Shape.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		mat, err := obj.Material.build(baseDir, images)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		b.Add(shape, mat)
	}
	return b, nil
}

// Build converts the description straight into a finalized scene
func (d *Description) Build(baseDir string) (*Scene, error) {
	b, err := d.Builder(baseDir)
	if err != nil {
		return nil, err
	}
	return b.Finalize(), nil
}

func (s SkyboxSpec) build() (Skybox, error) {
	if s.Kind == "" {
		return Above(), nil
	}
	kind, err := ParseSkyboxKind(s.Kind)
	if err != nil {
		return Skybox{}, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	sky := Skybox{Kind: kind}
	if kind == SkyFlat {
		if s.Color == nil {
			return Skybox{}, fmt.Errorf("%w: flat skybox needs a color", ErrInvalidDescription)
		}
		sky.Color = s.Color.Vec3()
	}
	return sky, nil
}

func (s ShapeSpec) build() (geometry.Shape, error) {
	if n := countSet(s.Sphere != nil, s.Rect != nil, s.Box != nil, s.Plane != nil); n != 1 {
		return geometry.Shape{}, fmt.Errorf("%w: shape must set exactly one variant, got %d", ErrInvalidDescription, n)
	}

	switch {
	case s.Sphere != nil:
		return geometry.NewSphere(s.Sphere.Center.Vec3(), s.Sphere.Radius), nil
	case s.Box != nil:
		return geometry.NewBoxShape(s.Box.Min.Vec3(), s.Box.Max.Vec3()), nil
	case s.Plane != nil:
		if s.Plane.Normal.Vec3().NearZero() {
			return geometry.Shape{}, fmt.Errorf("%w: plane normal is zero", ErrInvalidDescription)
		}
		return geometry.NewPlaneShape(s.Plane.Point.Vec3(), s.Plane.Normal.Vec3()), nil
	}

	r := s.Rect
	switch r.Plane {
	case "xy":
		return geometry.NewXYRect(r.A[0], r.A[1], r.B[0], r.B[1], r.K), nil
	case "yz":
		return geometry.NewYZRect(r.A[0], r.A[1], r.B[0], r.B[1], r.K), nil
	case "xz":
		return geometry.NewXZRect(r.A[0], r.A[1], r.B[0], r.B[1], r.K), nil
	}
	return geometry.Shape{}, fmt.Errorf("%w: unknown rect plane %q", ErrInvalidDescription, r.Plane)
}

func (m MaterialSpec) build(baseDir string, images map[string]texture.Texture) (material.Material, error) {
	n := countSet(m.Lambertian != nil, m.Metal != nil, m.Dielectric != nil, m.DiffuseLight != nil, m.FairyLight != nil)
	if n != 1 {
		return material.Material{}, fmt.Errorf("%w: material must set exactly one variant, got %d", ErrInvalidDescription, n)
	}

	switch {
	case m.Metal != nil:
		return material.NewMetal(m.Metal.Albedo.Vec3(), m.Metal.Fuzz), nil
	case m.Dielectric != nil:
		return material.NewDielectric(m.Dielectric.IR), nil
	}

	var spec *TextureSpec
	var build func(texture.Texture) material.Material
	switch {
	case m.Lambertian != nil:
		spec, build = m.Lambertian, material.NewLambertian
	case m.DiffuseLight != nil:
		spec, build = m.DiffuseLight, material.NewDiffuseLight
	default:
		spec, build = m.FairyLight, material.NewFairyLight
	}

	tex, err := spec.build(baseDir, images)
	if err != nil {
		return material.Material{}, err
	}
	return build(tex), nil
}

func (t TextureSpec) build(baseDir string, images map[string]texture.Texture) (texture.Texture, error) {
	if n := countSet(t.Solid != nil, t.Checker != nil, t.Noise != nil, t.Image != ""); n != 1 {
		return texture.Texture{}, fmt.Errorf("%w: texture must set exactly one variant, got %d", ErrInvalidDescription, n)
	}

	switch {
	case t.Solid != nil:
		return texture.Solid(t.Solid.Vec3()), nil
	case t.Noise != nil:
		return texture.Noise(t.Noise.Scale, t.Noise.Seed), nil
	case t.Checker != nil:
		odd, err := t.Checker.Odd.build(baseDir, images)
		if err != nil {
			return texture.Texture{}, err
		}
		even, err := t.Checker.Even.build(baseDir, images)
		if err != nil {
			return texture.Texture{}, err
		}
		return texture.Checker(t.Checker.Size, odd, even), nil
	}

	path := t.Image
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	if tex, ok := images[path]; ok {
		return tex, nil
	}
	tex, err := texture.LoadImage(path)
	if err != nil {
		return texture.Texture{}, err
	}
	images[path] = tex
	return tex, nil
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// Marshal encodes the description as YAML
func (d *Description) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode scene: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a YAML description, rejecting unknown fields
func Unmarshal(data []byte) (*Description, error) {
	var d Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}
	return &d, nil
}

// LoadFile reads a scene description from a YAML file
func LoadFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	d, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// SaveFile writes a scene description as YAML
func SaveFile(path string, d *Description) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}
