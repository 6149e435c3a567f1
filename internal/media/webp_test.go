package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

func TestFit(t *testing.T) {
	cases := []struct {
		w, h, wantW, wantH int
	}{
		{400, 300, 400, 300},
		{800, 800, 800, 800},
		{1600, 1200, 800, 600},
		{1200, 1600, 600, 800},
		{4000, 2, 800, 1},
	}
	for _, c := range cases {
		w, h := Fit(c.w, c.h, 800)
		assert.Equal(t, c.wantW, w, "%dx%d", c.w, c.h)
		assert.Equal(t, c.wantH, h, "%dx%d", c.w, c.h)
	}
}

func TestResize_KeepsSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 20))
	assert.Same(t, src, Resize(src))
}

func TestToWebP_DownscalesPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	for x := 0; x < 1000; x++ {
		src.Set(x, 10, color.RGBA{R: 200, A: 255})
	}

	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := ToWebP(&in)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}
