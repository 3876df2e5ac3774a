package poncho

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Atlas is a set of named Images cut from one or more texture pages.
type Atlas struct {
	// Pages contains the page textures indexed by page number.
	Pages  []*ebiten.Image
	images map[string]*Image
}

// Image returns the named frame.
func (a *Atlas) Image(name string) (*Image, error) {
	if img, ok := a.images[name]; ok {
		return img, nil
	}
	return nil, fmt.Errorf("atlas frame %q: %w", name, ErrNotFound)
}

// Names returns every frame name in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.images))
	for name := range a.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadAtlas parses TexturePacker JSON data and cuts frames out of pages.
// Both the hash format (a single "frames" object) and the multi-page array
// format ("textures" with per-page frame lists) are accepted.
//
// Trimmed frames get a pivot that places them where they sat in the
// untrimmed sprite. Rotated frames are rejected.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	doc, err := parseAtlasJSON(jsonData)
	if err != nil {
		return nil, err
	}
	atlas := &Atlas{Pages: pages, images: make(map[string]*Image)}
	for i, page := range doc.pages {
		if i >= len(pages) {
			return nil, fmt.Errorf("poncho: atlas page %d has no texture", i)
		}
		for name, f := range page.Frames {
			if f.Rotated {
				return nil, fmt.Errorf("poncho: atlas frame %q: rotated frames are not supported", name)
			}
			atlas.images[name] = frameToImage(name, f, pages[i])
		}
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

type atlasDoc struct {
	pages []jsonTexturePage
}

// parseAtlasJSON normalizes both layouts into a page list. For the hash
// format the page image comes from meta.image.
func parseAtlasJSON(data []byte) (atlasDoc, error) {
	var doc struct {
		Frames   json.RawMessage   `json:"frames"`
		Textures []jsonTexturePage `json:"textures"`
		Meta     struct {
			Image string `json:"image"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return atlasDoc{}, fmt.Errorf("poncho: parse atlas JSON: %w", err)
	}

	switch {
	case doc.Textures != nil:
		return atlasDoc{pages: doc.Textures}, nil
	case doc.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(doc.Frames, &frames); err != nil {
			return atlasDoc{}, fmt.Errorf("poncho: parse atlas frames: %w", err)
		}
		return atlasDoc{pages: []jsonTexturePage{{Image: doc.Meta.Image, Frames: frames}}}, nil
	}
	return atlasDoc{}, fmt.Errorf("poncho: atlas JSON has neither \"frames\" nor \"textures\" key")
}

func frameToImage(name string, f jsonFrame, page *ebiten.Image) *Image {
	img := &Image{
		Name:   name,
		Source: page,
		Rect:   ImageRect{X: f.Frame.X, Y: f.Frame.Y, Width: f.Frame.W, Height: f.Frame.H},
	}
	if f.Trimmed {
		img.Pivot = Vec2{-float64(f.SpriteSourceSize.X), -float64(f.SpriteSourceSize.Y)}
	}
	return img
}

// LoadAtlas reads a TexturePacker JSON file at p, loads the page textures it
// names (relative to p's directory), and returns the atlas.
func (l *Library) LoadAtlas(p string) (*Atlas, error) {
	data, err := l.read(p)
	if err != nil {
		return nil, err
	}
	doc, err := parseAtlasJSON(data)
	if err != nil {
		return nil, err
	}
	dir := path.Dir(path.Clean(p))
	pages := make([]*ebiten.Image, len(doc.pages))
	for i, page := range doc.pages {
		if page.Image == "" {
			return nil, fmt.Errorf("poncho: atlas %s: page %d names no image", p, i)
		}
		pages[i], err = l.LoadTexture(path.Join(dir, page.Image), "")
		if err != nil {
			return nil, err
		}
	}
	return LoadAtlas(data, pages)
}
