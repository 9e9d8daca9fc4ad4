package client

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareImage(t *testing.T) {
	src := imaging.New(400, 100, color.White)
	src = imaging.Paste(src, imaging.New(200, 20, color.Black), image.Pt(50, 40))

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, src, imaging.JPEG))

	out, err := PrepareImage(buf.Bytes())
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, minOCRWidth, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestPrepareImageRejectsGarbage(t *testing.T) {
	_, err := PrepareImage([]byte("not an image"))
	assert.Error(t, err)
}

func TestEnhanceKeepsWideScans(t *testing.T) {
	img := Enhance(imaging.New(1600, 50, color.White))
	assert.Equal(t, 1600, img.Bounds().Dx())
}
