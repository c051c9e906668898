package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.png *.wav
var assetsFS embed.FS

const sampleRate = 44100

var (
	audioContext     *audio.Context
	audioContextOnce sync.Once
)

// AudioContext returns the process-wide audio context, creating it on first use.
func AudioContext() *audio.Context {
	audioContextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(sampleRate)
		}
	})
	return audioContext
}

// LoadFile reads an asset. A path that exists on disk wins over the
// embedded copy of the same name.
func LoadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if b, err := os.ReadFile(path); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadImage decodes an image asset. The result is a plain image.Image; the
// render surface uploads it to the GPU on first draw.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// LoadImageOrPlaceholder falls back to a magenta w x h block when path
// cannot be loaded.
func LoadImageOrPlaceholder(path string, w, h int) (image.Image, error) {
	img, err := LoadImage(path)
	if err != nil {
		return Placeholder(w, h), err
	}
	return img, nil
}

// Placeholder returns a solid magenta image of at least 1x1.
func Placeholder(w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	magenta := color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, magenta)
		}
	}
	return img
}

// LoadAudioPlayer loads an audio asset and creates a player at volume.
func LoadAudioPlayer(path string, volume float64) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	var player *audio.Player
	if strings.HasSuffix(strings.ToLower(path), ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		player, err = ctx.NewPlayer(stream)
		if err != nil {
			return nil, fmt.Errorf("audio player %q: %w", path, err)
		}
	} else {
		// already-decoded PCM in ebiten's native format
		player = ctx.NewPlayerFromBytes(b)
	}

	if volume > 0 {
		player.SetVolume(volume)
	}
	return player, nil
}

func cleanAssetPath(path string) string {
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		return s[idx+len("/assets/"):]
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
