// Package photo ingests the optional photo drawn underneath the cat.
//
// Only image files are accepted. The media type is sniffed from the file
// content rather than trusted from the name, with the extension used as a
// fallback for formats the sniffer does not know (TIFF).
package photo

import (
	"bytes"
	"encoding/base64"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/pisica/pkg/errors"
)

// MaxSize caps the bytes accepted for a photo.
const MaxSize = 32 << 20

// Image is a decoded photo together with its original encoding.
type Image struct {
	Name string
	MIME string
	Data []byte
	img  image.Image
}

// Bounds returns the pixel bounds of the decoded photo.
func (i *Image) Bounds() image.Rectangle { return i.img.Bounds() }

// Image returns the decoded pixels.
func (i *Image) Image() image.Image { return i.img }

// Decode validates and decodes photo bytes. name is used for messages and as
// a media-type hint when sniffing is inconclusive.
func Decode(data []byte, name string) (*Image, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeUnsupportedMedia, "%s: empty file", name)
	}
	if len(data) > MaxSize {
		return nil, errors.New(errors.ErrCodeUnsupportedMedia, "%s: %d bytes exceeds limit of %d", name, len(data), MaxSize)
	}

	mime := sniff(data, name)
	if !strings.HasPrefix(mime, "image/") {
		return nil, errors.New(errors.ErrCodeUnsupportedMedia, "%s: not an image (%s)", name, mime)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedMedia, err, "%s: decode %s", name, mime)
	}
	return &Image{Name: name, MIME: mime, Data: data, img: img}, nil
}

// Load reads and decodes the photo at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "photo %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read photo %s", path)
	}
	return Decode(data, filepath.Base(path))
}

// Contain scales the photo up or down to the largest size that fits inside
// w×h while preserving its aspect ratio.
func (i *Image) Contain(w, h int) *image.NRGBA {
	b := i.img.Bounds()
	if b.Dx() >= w || b.Dy() >= h {
		return imaging.Fit(i.img, w, h, imaging.Lanczos)
	}
	sx, sy := float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy())
	if sx < sy {
		return imaging.Resize(i.img, w, 0, imaging.Lanczos)
	}
	return imaging.Resize(i.img, 0, h, imaging.Lanczos)
}

// DataURI returns the photo as a data: URI for embedding in SVG. Formats
// that SVG renderers do not reliably read are re-encoded as PNG.
func (i *Image) DataURI() string {
	mime, data := i.MIME, i.Data
	switch mime {
	case "image/png", "image/jpeg", "image/gif":
	default:
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, i.img, imaging.PNG); err == nil {
			mime, data = "image/png", buf.Bytes()
		}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func sniff(data []byte, name string) string {
	mime := http.DetectContentType(data)
	if strings.HasPrefix(mime, "image/") {
		return mime
	}
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return "image/tiff"
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tif", ".tiff":
		return "image/tiff"
	}
	return mime
}
