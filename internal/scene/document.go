package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/motioncam/internal/spring"
)

// Document is the on-disk scene description
type Document struct {
	Version  string             `yaml:"version" toml:"version"`
	FPS      *float64           `yaml:"fps,omitempty" toml:"fps,omitempty"`
	Duration float64            `yaml:"duration,omitempty" toml:"duration,omitempty"` // Optional; derived when zero
	Viewport *ViewportDoc       `yaml:"viewport,omitempty" toml:"viewport,omitempty"`
	Camera   CameraDoc          `yaml:"camera" toml:"camera"`
	Markers  map[string]float64 `yaml:"markers,omitempty" toml:"markers,omitempty"`
	Elements []ElementDoc       `yaml:"elements,omitempty" toml:"elements,omitempty"`
	Groups   []GroupDoc         `yaml:"groups,omitempty" toml:"groups,omitempty"`
}

// ViewportDoc is the output frame size
type ViewportDoc struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// CameraDoc holds the camera path and stabilization settings.
// The path is either explicit keyframes or a generated tour.
type CameraDoc struct {
	Easing    string        `yaml:"easing,omitempty" toml:"easing,omitempty"`
	Shake     *ShakeDoc     `yaml:"shake,omitempty" toml:"shake,omitempty"`
	Keyframes []KeyframeDoc `yaml:"keyframes,omitempty" toml:"keyframes,omitempty"`
	Tour      *TourDoc      `yaml:"tour,omitempty" toml:"tour,omitempty"`
}

// TourDoc asks for keyframes visiting each region in reading order
type TourDoc struct {
	Duration float64     `yaml:"duration" toml:"duration"`
	MinDwell *float64    `yaml:"min_dwell,omitempty" toml:"min_dwell,omitempty"`
	MaxDwell *float64    `yaml:"max_dwell,omitempty" toml:"max_dwell,omitempty"`
	MaxZoom  *float64    `yaml:"max_zoom,omitempty" toml:"max_zoom,omitempty"`
	Regions  []RegionDoc `yaml:"regions" toml:"regions"`
}

// RegionDoc is a world-space focus rectangle
type RegionDoc struct {
	Name string  `yaml:"name,omitempty" toml:"name,omitempty"`
	X    float64 `yaml:"x" toml:"x"`
	Y    float64 `yaml:"y" toml:"y"`
	W    float64 `yaml:"w" toml:"w"`
	H    float64 `yaml:"h" toml:"h"`
}

// KeyframeDoc represents a camera position at a specific time
type KeyframeDoc struct {
	Time float64 `yaml:"time" toml:"time"`
	Name string  `yaml:"name,omitempty" toml:"name,omitempty"` // Published as event "camera.<name>"
	X    float64 `yaml:"x" toml:"x"`
	Y    float64 `yaml:"y" toml:"y"`
	Zoom float64 `yaml:"zoom" toml:"zoom"`
}

type ShakeDoc struct {
	Amplitude float64 `yaml:"amplitude" toml:"amplitude"`
	Frequency float64 `yaml:"frequency" toml:"frequency"`
}

// TriggerDoc places an entry relative to another event
type TriggerDoc struct {
	Event  string  `yaml:"event" toml:"event"`
	Offset float64 `yaml:"offset,omitempty" toml:"offset,omitempty"`
}

type PointDoc struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// FromDoc overrides the kind's default start values
type FromDoc struct {
	TranslateX *float64 `yaml:"translate_x,omitempty" toml:"translate_x,omitempty"`
	TranslateY *float64 `yaml:"translate_y,omitempty" toml:"translate_y,omitempty"`
	Scale      *float64 `yaml:"scale,omitempty" toml:"scale,omitempty"`
	Rotation   *float64 `yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Blur       *float64 `yaml:"blur,omitempty" toml:"blur,omitempty"`
}

// ElementDoc is one animated element
type ElementDoc struct {
	ID            string         `yaml:"id" toml:"id"`
	Kind          string         `yaml:"kind" toml:"kind"`
	Entry         *float64       `yaml:"entry,omitempty" toml:"entry,omitempty"`
	Trigger       *TriggerDoc    `yaml:"trigger,omitempty" toml:"trigger,omitempty"`
	Anchor        PointDoc       `yaml:"anchor" toml:"anchor"`
	Spring        *spring.Config `yaml:"spring,omitempty" toml:"spring,omitempty"`
	Easing        string         `yaml:"easing,omitempty" toml:"easing,omitempty"`
	Tension       *float64       `yaml:"tension,omitempty" toml:"tension,omitempty"`
	Duration      float64        `yaml:"duration,omitempty" toml:"duration,omitempty"`
	From          FromDoc        `yaml:"from,omitempty" toml:"from,omitempty"`
	FinalRotation float64        `yaml:"final_rotation,omitempty" toml:"final_rotation,omitempty"`
	Opacity       string         `yaml:"opacity,omitempty" toml:"opacity,omitempty"`
	OpacityWindow float64        `yaml:"opacity_window,omitempty" toml:"opacity_window,omitempty"`
}

// ExitDoc is a hold-then-fade group exit
type ExitDoc struct {
	PopDuration float64  `yaml:"pop_duration" toml:"pop_duration"`
	Hold        float64  `yaml:"hold" toml:"hold"`
	Fade        float64  `yaml:"fade" toml:"fade"`
	MaxBlur     float64  `yaml:"max_blur,omitempty" toml:"max_blur,omitempty"`
	Grace       *float64 `yaml:"grace,omitempty" toml:"grace,omitempty"`
}

// GroupDoc is a staggered phase group
type GroupDoc struct {
	ID      string       `yaml:"id" toml:"id"`
	Start   *float64     `yaml:"start,omitempty" toml:"start,omitempty"`
	Trigger *TriggerDoc  `yaml:"trigger,omitempty" toml:"trigger,omitempty"`
	Stagger float64      `yaml:"stagger,omitempty" toml:"stagger,omitempty"`
	Exit    *ExitDoc     `yaml:"exit,omitempty" toml:"exit,omitempty"`
	Members []ElementDoc `yaml:"members" toml:"members"`
}

// Format is a scene file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scene file extension: %q", filepath.Ext(path))
	}
}

// Decode parses a scene document
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported scene format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s scene: %w", format, err)
	}
	return &doc, nil
}

// Encode serializes a scene document
func Encode(doc *Document, format Format) ([]byte, error) {
	return Marshal(doc, format)
}

// Marshal serializes any tagged value in the given format
func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		return toml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

// ReadDocument reads a scene document from a YAML or TOML file
func ReadDocument(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return Decode(data, format)
}

// WriteDocument writes a scene document, encoding chosen by extension
func WriteDocument(doc *Document, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads and builds a scene file
func Load(path string) (*Scene, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}
