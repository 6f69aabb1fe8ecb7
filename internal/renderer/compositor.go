package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"

	"github.com/safetyfirst/incident-engine/internal/fontfit"
	"github.com/safetyfirst/incident-engine/internal/layout"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

// JPEGQuality for card artifacts.
const JPEGQuality = 90

// Config carries the resolved asset locations. All paths are local;
// the compositor does no network I/O. Fonts are owned by the
// FontManager, not configured here.
type Config struct {
	TemplateDir string
	UploadsDir  string
}

// Artifact is one finished output: the generated filename plus raw bytes.
type Artifact struct {
	Filename string
	Bytes    []byte
}

// Compositor renders incident records into card and report artifacts.
// It holds no mutable state beyond the shared font caches and is safe
// for concurrent use from multiple workers.
type Compositor struct {
	cfg     Config
	backend Backend
	fm      *textmetrics.FontManager
	engine  *layout.Engine
}

// NewCompositor wires a compositor for the given backend.
func NewCompositor(cfg Config, backend Backend, fm *textmetrics.FontManager) *Compositor {
	return &Compositor{
		cfg:     cfg,
		backend: backend,
		fm:      fm,
		engine:  layout.NewEngine(textmetrics.New(fm)),
	}
}

// ComposeCards renders one or two cards for a record. Investigation
// records paginate when their content does not fit at the auto ceiling;
// all other types always produce a single card. A missing two-card
// template overrides the pagination decision back to single.
func (c *Compositor) ComposeCards(inc *incidentformat.Incident) ([]Artifact, error) {
	if err := incidentformat.Validate(inc); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}

	twoCards := fontfit.NeedsSecondCard(inc)
	if twoCards && !c.twoCardTemplatesAvailable(inc) {
		twoCards = false
	}

	sizes := fontfit.Solve(fontfit.FieldsFromIncident(inc), fontfit.MaxBaseFor(inc.FontSize))
	embedded := ResolveEmbeddedImage(inc, c.cfg.UploadsDir)

	var artifacts []Artifact
	for card := 1; card <= pageCount(twoCards); card++ {
		art, _, err := c.renderCard(inc, sizes, card, twoCards, embedded)
		if err != nil {
			log.Printf("render failed for %s (type=%s lang=%s card=%d backend=%s): %v",
				inc.Reference, inc.Type, inc.Language, card, c.backend.Name(), err)
			return nil, err
		}
		artifacts = append(artifacts, art)
	}
	return artifacts, nil
}

// thumbnailer is implemented by backends that can downscale a rendered
// card for list views.
type thumbnailer interface {
	Thumbnail(image.Image) image.Image
}

// ComposeCardPreviews renders the cards plus downscaled thumbnails.
// Requires a backend with thumbnail support (the preview backend).
func (c *Compositor) ComposeCardPreviews(inc *incidentformat.Incident) (cards, thumbs []Artifact, err error) {
	tb, ok := c.backend.(thumbnailer)
	if !ok {
		return nil, nil, fmt.Errorf("backend %s does not produce thumbnails", c.backend.Name())
	}

	if err := incidentformat.Validate(inc); err != nil {
		return nil, nil, fmt.Errorf("invalid record: %w", err)
	}

	twoCards := fontfit.NeedsSecondCard(inc)
	if twoCards && !c.twoCardTemplatesAvailable(inc) {
		twoCards = false
	}

	sizes := fontfit.Solve(fontfit.FieldsFromIncident(inc), fontfit.MaxBaseFor(inc.FontSize))
	embedded := ResolveEmbeddedImage(inc, c.cfg.UploadsDir)

	for card := 1; card <= pageCount(twoCards); card++ {
		art, img, err := c.renderCard(inc, sizes, card, twoCards, embedded)
		if err != nil {
			log.Printf("preview render failed for %s (type=%s lang=%s card=%d): %v",
				inc.Reference, inc.Type, inc.Language, card, err)
			return nil, nil, err
		}
		cards = append(cards, art)

		thumbData, err := encodeJPEG(tb.Thumbnail(img))
		if err != nil {
			return nil, nil, err
		}
		thumbs = append(thumbs, Artifact{Filename: "thumb_" + art.Filename, Bytes: thumbData})
	}
	return cards, thumbs, nil
}

func pageCount(twoCards bool) int {
	if twoCards {
		return 2
	}
	return 1
}

// twoCardTemplatesAvailable checks that both numbered templates exist.
// Asset availability wins over the pagination decision, logged by the
// resolver when it degrades.
func (c *Compositor) twoCardTemplatesAvailable(inc *incidentformat.Incident) bool {
	for card := 1; card <= 2; card++ {
		tpl, err := ResolveTemplate(c.cfg.TemplateDir, inc.Type, inc.Language, card)
		if err != nil || tpl.ForcedSingle {
			return false
		}
	}
	return true
}

func (c *Compositor) renderCard(inc *incidentformat.Incident, sizes fontfit.SizeSet, card int, twoCards bool, embedded image.Image) (Artifact, image.Image, error) {
	templateCard := 0
	if twoCards {
		templateCard = card
	}
	tpl, err := ResolveTemplate(c.cfg.TemplateDir, inc.Type, inc.Language, templateCard)
	if err != nil {
		return Artifact{}, nil, err
	}
	background, err := LoadTemplate(tpl.Path)
	if err != nil {
		return Artifact{}, nil, err
	}

	plan := c.engine.PlanCard(inc, sizes, cardVariant(inc, card, twoCards), embedded)
	img, err := c.backend.Render(plan, background)
	if err != nil {
		return Artifact{}, nil, fmt.Errorf("backend %s: %w", c.backend.Name(), err)
	}

	data, err := encodeJPEG(img)
	if err != nil {
		return Artifact{}, nil, err
	}

	filenameCard := 0
	if twoCards && card == 2 {
		filenameCard = 2
	}
	return Artifact{Filename: OutputFilename(inc, filenameCard), Bytes: data}, img, nil
}

// cardVariant picks the layout for one page of a record.
func cardVariant(inc *incidentformat.Incident, card int, twoCards bool) layout.Variant {
	if !inc.IsInvestigation() {
		return layout.VariantStandard
	}
	if !twoCards {
		return layout.VariantSplit
	}
	if card == 2 {
		return layout.VariantCardTwo
	}
	return layout.VariantCardOne
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteArtifact persists an artifact under dir. The write goes through a
// temp file and rename so a failed render never leaves a partial output.
// Write errors propagate: an artifact that cannot be persisted stops the
// calling job.
func WriteArtifact(dir string, art Artifact) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+art.Filename+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp output: %w", err)
	}
	if _, err := tmp.Write(art.Bytes); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close artifact: %w", err)
	}

	final := filepath.Join(dir, art.Filename)
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return nil
}
