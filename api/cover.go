package api

import (
	"bytes"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"sync"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// CoverArt holds embedded album art. The picture is decoded on first use.
type CoverArt struct {
	MIMEType string
	Data     []byte

	once sync.Once
	img  image.Image
}

// NewCoverArt wraps raw picture bytes.
func NewCoverArt(mimeType string, data []byte) *CoverArt {
	return &CoverArt{MIMEType: mimeType, Data: data}
}

// Image returns the decoded picture, or nil if it cannot be decoded.
func (c *CoverArt) Image() image.Image {
	if c == nil {
		return nil
	}
	c.once.Do(func() {
		if len(c.Data) == 0 {
			return
		}
		img, _, err := image.Decode(bytes.NewReader(c.Data))
		if err != nil {
			return
		}
		c.img = img
	})
	return c.img
}

// CoverImage returns the track's decoded cover art, or nil.
func (t *Track) CoverImage() image.Image {
	return t.Cover.Image()
}

// Thumbnail scales the cover to fit a size x size box, keeping the aspect
// ratio. It returns nil when the track has no usable cover.
func (t *Track) Thumbnail(size int) image.Image {
	img := t.CoverImage()
	if img == nil || size <= 0 {
		return nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}
	if width >= height {
		height = max(1, height*size/width)
		width = size
	} else {
		width = max(1, width*size/height)
		height = size
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
