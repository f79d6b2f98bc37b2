// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nasirxo/soundify/audio"
	"github.com/nasirxo/soundify/formats/aiff"
	"github.com/nasirxo/soundify/formats/mp3"
	"github.com/nasirxo/soundify/formats/vorbis"
	"github.com/nasirxo/soundify/formats/wav"
)

// ErrUnknownFormat is returned when a file extension has no registered
// decoder.
var ErrUnknownFormat = fmt.Errorf("codec: no decoder registered for that extension")

// NewRegistry returns a registry with every container format this
// codec can decode registered under its conventional extensions: WAV,
// MP3, Ogg Vorbis, and AIFF. The encode side always writes canonical
// WAV (see EncodeToWAV), so only the decode side needs this breadth.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(".wav", wav.Decoder{})
	reg.Register(".mp3", mp3.Decoder{})
	reg.Register(".ogg", vorbis.Decoder{})
	reg.Register(".aiff", aiff.Decoder{})
	reg.Register(".aif", aiff.Decoder{})
	return reg
}

// DecoderFor looks up the registered decoder for path's extension.
func DecoderFor(reg *audio.Registry, path string) (audio.Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return dec, nil
}
