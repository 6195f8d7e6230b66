package scene

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

const sampleYAML = `name: sample
skybox:
  kind: flat
  color: [0.1, 0.2, 0.3]
camera:
  look_from: [0, 1, 5]
  look_at: [0, 0, 0]
  vfov: 45
objects:
  - shape:
      sphere: {center: [0, 0, 0], radius: 1}
    material:
      metal: {albedo: [0.9, 0.9, 0.9], fuzz: 0.1}
  - shape:
      rect: {plane: xz, a: [-5, 5], b: [-5, 5], k: -1}
    material:
      lambertian:
        checker:
          size: 2
          odd: {solid: [0, 0, 0]}
          even: {noise: {scale: 4, seed: 7}}
  - shape:
      plane: {point: [0, -2, 0], normal: [0, 1, 0]}
    material:
      fairy_light: {solid: [4, 4, 4]}
`

func TestUnmarshal_Sample(t *testing.T) {
	d, err := Unmarshal([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if d.Name != "sample" || len(d.Objects) != 3 {
		t.Fatalf("Unexpected description %+v", d)
	}
	if d.Camera == nil || d.Camera.VFov != 45 || d.Camera.LookFrom != V(0, 1, 5) {
		t.Errorf("Unexpected camera %+v", d.Camera)
	}

	s, err := d.Build("")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if s.Skybox.Kind != SkyFlat {
		t.Errorf("Expected flat skybox, got %s", s.Skybox.Kind)
	}
	if s.Len() != 3 || s.Unbounded() != 1 {
		t.Errorf("Expected 3 objects with 1 unbounded, got %d and %d", s.Len(), s.Unbounded())
	}
}

func TestDescription_RoundTrip(t *testing.T) {
	original, err := Unmarshal([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	data, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "center: [0, 0, 0]") {
		t.Errorf("Expected vectors in flow style, got:\n%s", data)
	}

	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() of marshaled data error: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("Round trip changed description:\n%+v\n%+v", original, decoded)
	}
}

func TestDescription_SaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cornell.yaml")
	d := Cornell(nil)
	if err := SaveFile(path, d); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if !reflect.DeepEqual(d, loaded) {
		t.Error("Loaded description differs from saved one")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDescription_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"Unknown field", "objects: []\nlights: []\n"},
		{"Two shapes", `objects:
  - shape: {sphere: {center: [0, 0, 0], radius: 1}, box: {min: [0, 0, 0], max: [1, 1, 1]}}
    material: {dielectric: {ir: 1.5}}`},
		{"No material", `objects:
  - shape: {sphere: {center: [0, 0, 0], radius: 1}}
    material: {}`},
		{"Unknown rect plane", `objects:
  - shape: {rect: {plane: xw, a: [0, 1], b: [0, 1], k: 0}}
    material: {dielectric: {ir: 1.5}}`},
		{"Zero plane normal", `objects:
  - shape: {plane: {point: [0, 0, 0], normal: [0, 0, 0]}}
    material: {dielectric: {ir: 1.5}}`},
		{"Empty texture", `objects:
  - shape: {sphere: {center: [0, 0, 0], radius: 1}}
    material: {lambertian: {}}`},
		{"Unknown skybox", "skybox: {kind: sunset}\nobjects: []\n"},
		{"Flat skybox without color", "skybox: {kind: flat}\nobjects: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Unmarshal([]byte(tt.yaml))
			if err == nil {
				_, err = d.Build("")
			}
			if !errors.Is(err, ErrInvalidDescription) {
				t.Errorf("Expected ErrInvalidDescription, got %v", err)
			}
		})
	}
}

func TestDescription_ImageTexture(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "red.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	d := &Description{}
	tex := TextureSpec{Image: "red.png"}
	d.Add(sphere(V(0, 0, 0), 1), lambertian(tex))
	d.Add(sphere(V(3, 0, 0), 1), diffuseLight(tex))

	b, err := d.Builder(dir)
	if err != nil {
		t.Fatalf("Builder() error: %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("Expected 2 objects, got %d", b.Len())
	}
	obj := b.objects[0]
	if obj.Material.Kind != material.KindLambertian || obj.Material.Texture.Kind != texture.KindImage {
		t.Fatalf("Expected lambertian image texture, got %s/%s", obj.Material.Kind, obj.Material.Texture.Kind)
	}
	if c := obj.Material.Texture.Value(0.5, 0.5, obj.Shape.Sphere.Center); c.X < 0.99 || c.Y > 0.01 {
		t.Errorf("Expected red pixel, got %v", c)
	}

	if _, err := d.Builder(t.TempDir()); err == nil {
		t.Error("Expected error for missing image file")
	}
}

func TestExampleSceneFilesBuild(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatal(err)
	}
	if len(scenes) == 0 {
		t.Fatal("Expected example scene files")
	}
	for _, info := range scenes {
		t.Run(info.Name, func(t *testing.T) {
			d, err := LoadFile(info.FilePath)
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			s, err := d.Build(filepath.Dir(info.FilePath))
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if s.Len() != len(d.Objects) {
				t.Errorf("Expected %d objects, got %d", len(d.Objects), s.Len())
			}
		})
	}
}
