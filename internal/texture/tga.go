// Package texture encodes finished texture maps and writes them to disk.
package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// tgaTopToBottom is descriptor bit 5: rows stored top row first.
const tgaTopToBottom = 0x20

// EncodeTGA writes img as an uncompressed 24-bit top-to-bottom TGA.
func EncodeTGA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("image %dx%d too large for TGA", width, height)
	}

	header := make([]byte, 18)
	header[2] = TGATypeUncompressed
	binary.LittleEndian.PutUint16(header[12:], uint16(width))
	binary.LittleEndian.PutUint16(header[14:], uint16(height))
	header[16] = 24
	header[17] = tgaTopToBottom

	if _, err := w.Write(header); err != nil {
		return err
	}

	row := make([]byte, width*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			i := (x - bounds.Min.X) * 3
			// TGA stores BGR
			row[i] = c.B
			row[i+1] = c.G
			row[i+2] = c.R
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTGA decodes a TGA image file.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10) TGA files.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := tgaDecoder{
		img:         img,
		src:         bytes.NewReader(data[offset:]),
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&tgaTopToBottom != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw(width * height)
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         *bytes.Reader
	width       int
	height      int
	bpp         int
	topToBottom bool
	next        int // index of the next pixel in file order
}

func (d *tgaDecoder) pixel() (color.RGBA, error) {
	var buf [4]byte
	if _, err := io.ReadFull(d.src, buf[:d.bpp]); err != nil {
		return color.RGBA{}, fmt.Errorf("TGA pixel data truncated")
	}
	a := uint8(255)
	if d.bpp == 4 {
		a = buf[3]
	}
	return color.RGBA{R: buf[2], G: buf[1], B: buf[0], A: a}, nil
}

func (d *tgaDecoder) put(c color.RGBA) {
	x := d.next % d.width
	y := d.next / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.next++
}

func (d *tgaDecoder) raw(count int) error {
	for i := 0; i < count && d.next < d.width*d.height; i++ {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	for d.next < total {
		packet, err := d.src.ReadByte()
		if err != nil {
			return fmt.Errorf("TGA RLE data truncated")
		}
		count := int(packet&0x7F) + 1

		if packet&0x80 == 0 {
			if err := d.raw(count); err != nil {
				return err
			}
			continue
		}

		c, err := d.pixel()
		if err != nil {
			return err
		}
		for i := 0; i < count && d.next < total; i++ {
			d.put(c)
		}
	}
	return nil
}
