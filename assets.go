package poncho

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/webp" // register WebP decoding
)

// ErrNotFound is returned when a named resource has not been loaded.
var ErrNotFound = errors.New("poncho: not found")

// contentExts are the file extensions ContentName strips.
var contentExts = []string{
	".png", ".jpg", ".jpeg", ".bmp", ".webp",
	".ttf", ".otf",
	".wav",
}

// ContentName normalizes a content path into a logical resource name:
// backslashes become slashes, the path is cleaned, and a known file
// extension is removed.
func ContentName(p string) string {
	p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
	lower := strings.ToLower(p)
	for _, ext := range contentExts {
		if strings.HasSuffix(lower, ext) {
			return p[:len(p)-len(ext)]
		}
	}
	return p
}

// SoundLoader accepts encoded sound data. *EbitenSoundBank satisfies it.
type SoundLoader interface {
	Load(name string, r io.Reader) error
}

// ImageSpec describes how Library.Image cuts an Image out of a texture.
// Zero values mean: name from the path, the whole texture, pivot (0, 0).
type ImageSpec struct {
	Name  string
	Rect  ImageRect
	Pivot Vec2
}

// Library loads textures, fonts and sounds from a filesystem and caches
// them by logical name. Repeated loads of the same name return the cached
// resource without touching the filesystem.
type Library struct {
	fsys     fs.FS
	textures map[string]*ebiten.Image
	fonts    map[string]*text.GoTextFaceSource

	// Sounds receives sound data from LoadSound. Nil disables sound loading.
	Sounds SoundLoader
}

// NewLibrary creates a library reading from fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{
		fsys:     fsys,
		textures: make(map[string]*ebiten.Image),
		fonts:    make(map[string]*text.GoTextFaceSource),
	}
}

// resolveName returns name, or the content name of p when name is empty.
func resolveName(p, name string) string {
	if name != "" {
		return name
	}
	return ContentName(p)
}

func (l *Library) read(p string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, strings.TrimPrefix(path.Clean(p), "/"))
	if err != nil {
		return nil, fmt.Errorf("poncho: read %s: %w", p, err)
	}
	return data, nil
}

// LoadTexture loads the image file at p and caches it under name (or the
// content name of p when name is empty).
func (l *Library) LoadTexture(p, name string) (*ebiten.Image, error) {
	name = resolveName(p, name)
	if t, ok := l.textures[name]; ok {
		return t, nil
	}
	data, err := l.read(p)
	if err != nil {
		return nil, err
	}
	src, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("poncho: decode %s: %w", p, err)
	}
	t := ebiten.NewImageFromImage(src)
	l.textures[name] = t
	return t, nil
}

// decodeImage decodes PNG, JPEG, BMP or WebP data.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// Texture returns a texture loaded earlier under name.
func (l *Library) Texture(name string) (*ebiten.Image, error) {
	t, ok := l.textures[name]
	if !ok {
		return nil, fmt.Errorf("texture %q: %w", name, ErrNotFound)
	}
	return t, nil
}

// Image loads (or reuses) the texture at p and returns an Image over the
// region and pivot in spec.
func (l *Library) Image(p string, spec ImageSpec) (*Image, error) {
	name := resolveName(p, spec.Name)
	t, err := l.LoadTexture(p, name)
	if err != nil {
		return nil, err
	}
	img := NewImage(name, t)
	if spec.Rect.Width > 0 && spec.Rect.Height > 0 {
		img.Rect = spec.Rect
	}
	img.Pivot = spec.Pivot
	return img, nil
}

// LoadFont parses the TTF or OTF file at p and caches it under name.
func (l *Library) LoadFont(p, name string) error {
	name = resolveName(p, name)
	if _, ok := l.fonts[name]; ok {
		return nil
	}
	data, err := l.read(p)
	if err != nil {
		return err
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("poncho: parse font %s: %w", p, err)
	}
	l.fonts[name] = src
	return nil
}

// Font returns the named font at size.
func (l *Library) Font(name string, size float64) (*TTFFont, error) {
	src, ok := l.fonts[name]
	if !ok {
		return nil, fmt.Errorf("font %q: %w", name, ErrNotFound)
	}
	return newTTFFont(src, size), nil
}

// TextFormat returns a format for the named font at size in color c.
func (l *Library) TextFormat(name string, size float64, c Color) (TextFormat, error) {
	f, err := l.Font(name, size)
	if err != nil {
		return TextFormat{}, err
	}
	return TextFormat{Font: f, Color: c}, nil
}

// LoadSound reads the sound file at p and hands it to Sounds under name.
func (l *Library) LoadSound(p, name string) error {
	if l.Sounds == nil {
		return fmt.Errorf("poncho: load sound %s: no sound loader", p)
	}
	data, err := l.read(p)
	if err != nil {
		return err
	}
	return l.Sounds.Load(resolveName(p, name), bytes.NewReader(data))
}
