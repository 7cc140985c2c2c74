// ABOUTME: Media capture adapters for images and audio clips
// ABOUTME: Converts files and data URLs into transport-ready encoded media
package capture

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Media is one captured input: raw bytes plus their MIME type.
type Media struct {
	MIME string
	Data []byte
}

// Extensions that http.DetectContentType cannot classify usefully,
// mostly audio containers it reports as application/octet-stream or video.
var extensionMIMEs = map[string]string{
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
}

// FromFile reads a media file and determines its MIME type from the
// extension, falling back to content sniffing.
func FromFile(path string) (Media, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Media{}, fmt.Errorf("failed to read media file: %w", err)
	}
	if len(data) == 0 {
		return Media{}, fmt.Errorf("media file %s is empty", path)
	}

	mimeType, ok := extensionMIMEs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mimeType = http.DetectContentType(data)
	}

	return Media{MIME: mimeType, Data: data}, nil
}

// FromBytes wraps raw bytes, sniffing the MIME type when none is given.
func FromBytes(data []byte, mimeType string) Media {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return Media{MIME: mimeType, Data: data}
}

// DataURL encodes the media as a base64 data URL, the form the browser
// UI and the extraction request both carry media in.
func (m Media) DataURL() string {
	return "data:" + m.MIME + ";base64," + base64.StdEncoding.EncodeToString(m.Data)
}

// IsImage reports whether the media is an image.
func (m Media) IsImage() bool {
	return strings.HasPrefix(m.MIME, "image/")
}

// IsAudio reports whether the media is an audio clip.
func (m Media) IsAudio() bool {
	return strings.HasPrefix(m.MIME, "audio/") || m.MIME == "video/webm"
}

// ParseDataURL decodes a "data:<mime>;base64,<payload>" string. A bare
// base64 payload without the data: prefix is accepted with a default MIME,
// matching what browser recorders sometimes hand over.
func ParseDataURL(s, defaultMIME string) (Media, error) {
	payload := s
	mimeType := defaultMIME

	if strings.HasPrefix(s, "data:") {
		header, rest, found := strings.Cut(s, ",")
		if !found {
			return Media{}, fmt.Errorf("malformed data URL: missing payload separator")
		}
		payload = rest

		header = strings.TrimPrefix(header, "data:")
		header = strings.TrimSuffix(header, ";base64")
		if header != "" {
			mimeType = header
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Media{}, fmt.Errorf("failed to decode media payload: %w", err)
	}
	if len(data) == 0 {
		return Media{}, fmt.Errorf("empty media payload")
	}

	return Media{MIME: mimeType, Data: data}, nil
}
