package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

// embeddedSlots is how many numbered upload slots are probed.
const embeddedSlots = 3

var slotExtensions = []string{".jpg", ".jpeg", ".png"}

// ResolveEmbeddedImage finds the single image composited onto a card, in
// lookup order: inline base64 data, the pre-composited grid bitmap, then
// the first available numbered upload slot. A malformed reference is
// logged and skipped; the card renders without an image rather than
// failing.
func ResolveEmbeddedImage(inc *incidentformat.Incident, uploadsDir string) image.Image {
	if inc.ImageBase64 != "" {
		img, err := decodeBase64Image(inc.ImageBase64)
		if err == nil {
			return img
		}
		log.Printf("Warning: could not decode inline image for %s: %v", inc.Reference, err)
	}

	if uploadsDir == "" {
		return nil
	}

	if inc.GridImage != "" {
		p := filepath.Join(uploadsDir, filepath.Base(inc.GridImage))
		img, err := decodeImageFile(p)
		if err == nil {
			return img
		}
		log.Printf("Warning: could not load grid bitmap %s: %v", inc.GridImage, err)
	}

	if inc.Reference != "" {
		for slot := 1; slot <= embeddedSlots; slot++ {
			for _, ext := range slotExtensions {
				p := filepath.Join(uploadsDir, fmt.Sprintf("%s_%d%s", inc.Reference, slot, ext))
				if _, err := os.Stat(p); err != nil {
					continue
				}
				if img, err := decodeImageFile(p); err == nil {
					return img
				}
			}
		}
	}

	return nil
}

func decodeBase64Image(data string) (image.Image, error) {
	// Accept both a bare base64 payload and a data URL.
	if i := strings.Index(data, "base64,"); i >= 0 {
		data = data[i+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode inline image: %w", err)
	}
	return img, nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
