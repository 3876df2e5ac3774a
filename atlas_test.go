package poncho

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
)

const singlePageJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
      "sourceSize": {"w": 64, "h": 64}
    },
    "enemy.png": {
      "frame": {"x": 64, "y": 0, "w": 32, "h": 48},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 32, "h": 48},
      "sourceSize": {"w": 32, "h": 48}
    },
    "trimmed.png": {
      "frame": {"x": 100, "y": 50, "w": 60, "h": 58},
      "rotated": false,
      "trimmed": true,
      "spriteSourceSize": {"x": 2, "y": 3, "w": 60, "h": 58},
      "sourceSize": {"w": 64, "h": 64}
    }
  },
  "meta": {
    "image": "atlas.png",
    "size": {"w": 256, "h": 256}
  }
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "page0_sprite.png": {
          "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
          "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
          "sourceSize": {"w": 64, "h": 64}
        }
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "page1_sprite.png": {
          "frame": {"x": 10, "y": 20, "w": 50, "h": 50},
          "spriteSourceSize": {"x": 0, "y": 0, "w": 50, "h": 50},
          "sourceSize": {"w": 50, "h": 50}
        }
      }
    }
  ]
}`

func TestLoadAtlasSinglePage(t *testing.T) {
	page := ebiten.NewImage(256, 256)
	atlas, err := LoadAtlas([]byte(singlePageJSON), []*ebiten.Image{page})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"enemy.png", "hero.png", "trimmed.png"}
	if got := atlas.Names(); !slices.Equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	enemy, err := atlas.Image("enemy.png")
	if err != nil {
		t.Fatal(err)
	}
	if enemy.Source != page {
		t.Error("frame should reference the page texture")
	}
	if enemy.Rect != (ImageRect{X: 64, Y: 0, Width: 32, Height: 48}) {
		t.Errorf("Rect = %+v", enemy.Rect)
	}
	if w, h := enemy.Size(); w != 32 || h != 48 {
		t.Errorf("Size = (%d, %d), want (32, 48)", w, h)
	}
	if enemy.Pivot != (Vec2{}) {
		t.Errorf("untrimmed pivot = %+v, want zero", enemy.Pivot)
	}
}

func TestLoadAtlasTrimmedPivot(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []*ebiten.Image{ebiten.NewImage(256, 256)})
	if err != nil {
		t.Fatal(err)
	}
	img, err := atlas.Image("trimmed.png")
	if err != nil {
		t.Fatal(err)
	}
	if img.Pivot != (Vec2{-2, -3}) {
		t.Errorf("Pivot = %+v, want (-2, -3)", img.Pivot)
	}

	// The trimmed pixels land where they sat in the untrimmed sprite.
	scene := NewScene()
	s := NewSprite("t", img)
	s.SetPosition(10, 10)
	scene.Root().AddChild(s)
	if got := scene.HitTest(12, 13); got != s {
		t.Error("top-left trimmed pixel should hit")
	}
	if got := scene.HitTest(11, 11); got != nil {
		t.Error("trimmed-away area should miss")
	}
}

func TestLoadAtlasMultiPage(t *testing.T) {
	p0, p1 := ebiten.NewImage(64, 64), ebiten.NewImage(64, 128)
	atlas, err := LoadAtlas([]byte(multiPageJSON), []*ebiten.Image{p0, p1})
	if err != nil {
		t.Fatal(err)
	}
	img, err := atlas.Image("page1_sprite.png")
	if err != nil {
		t.Fatal(err)
	}
	if img.Source != p1 {
		t.Error("page1 frame should use the second page")
	}
	if img.Rect.X != 10 || img.Rect.Y != 20 {
		t.Errorf("Rect = %+v", img.Rect)
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	one := []*ebiten.Image{ebiten.NewImage(8, 8)}
	tests := []struct {
		name  string
		json  string
		pages []*ebiten.Image
		want  string
	}{
		{"invalid json", `{`, one, "parse atlas JSON"},
		{"no frames", `{"meta": {}}`, one, "neither"},
		{"missing page", multiPageJSON, one, "page 1 has no texture"},
		{"rotated", `{"frames": {"r": {"frame": {"w": 4, "h": 4}, "rotated": true}}}`, one, "rotated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAtlas([]byte(tt.json), tt.pages)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestAtlasImageNotFound(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []*ebiten.Image{ebiten.NewImage(8, 8)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := atlas.Image("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLibraryLoadAtlas(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/atlas.json": {Data: []byte(singlePageJSON)},
		"sprites/atlas.png":  {Data: encodePNG(t, 256, 256)},
	}
	lib := NewLibrary(fsys)
	atlas, err := lib.LoadAtlas("sprites/atlas.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(atlas.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(atlas.Pages))
	}
	tex, err := lib.Texture("sprites/atlas")
	if err != nil {
		t.Fatal(err)
	}
	if atlas.Pages[0] != tex {
		t.Error("page should be cached in the library under its content name")
	}
	if _, err := atlas.Image("hero.png"); err != nil {
		t.Error(err)
	}

	fsys["bad.json"] = &fstest.MapFile{Data: []byte(`{"frames": {}}`)}
	if _, err := lib.LoadAtlas("bad.json"); err == nil {
		t.Error("expected error for an atlas with no page image")
	}
}
