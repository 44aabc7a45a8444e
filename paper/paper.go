// Package paper lists the physical page sizes petitions are printed on.
// All sizes are landscape, in millimetres.
package paper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownSize is returned by Lookup for an unlisted key.
var ErrUnknownSize = errors.New("unknown paper size")

// CustomKey selects a user-supplied width and height.
const CustomKey = "custom"

// DefaultKey is the size used when nothing is configured.
const DefaultKey = "a4"

// Size is a landscape page.
type Size struct {
	Key      string
	Name     string
	WidthMM  float64
	HeightMM float64
}

func (s Size) String() string {
	return fmt.Sprintf("%s (%gx%gmm)", strings.ToUpper(s.Key), s.WidthMM, s.HeightMM)
}

// CSS is the value for an @page size declaration.
func (s Size) CSS() string {
	return fmt.Sprintf("%gmm %gmm", s.WidthMM, s.HeightMM)
}

// AspectRatio is the CSS aspect-ratio value.
func (s Size) AspectRatio() string {
	return fmt.Sprintf("%g / %g", s.WidthMM, s.HeightMM)
}

// Inches converts both dimensions, as needed by print-to-PDF.
func (s Size) Inches() (w, h float64) {
	const mmPerInch = 25.4
	return s.WidthMM / mmPerInch, s.HeightMM / mmPerInch
}

var presets = map[string]Size{
	"a3": {Key: "a3", Name: "A3 (420x297mm)", WidthMM: 420, HeightMM: 297},
	"a4": {Key: "a4", Name: "A4 (297x210mm)", WidthMM: 297, HeightMM: 210},
	"a5": {Key: "a5", Name: "A5 (210x148mm)", WidthMM: 210, HeightMM: 148},
	"b3": {Key: "b3", Name: "B3 (500x353mm)", WidthMM: 500, HeightMM: 353},
	"b4": {Key: "b4", Name: "B4 (353x250mm)", WidthMM: 353, HeightMM: 250},
	"b5": {Key: "b5", Name: "B5 (250x176mm)", WidthMM: 250, HeightMM: 176},
}

// Lookup returns a preset by key (case-insensitive).
func Lookup(key string) (Size, error) {
	s, ok := presets[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Size{}, fmt.Errorf("%w: %q", ErrUnknownSize, key)
	}
	return s, nil
}

// Custom returns a user-sized page. Non-positive dimensions are rejected.
func Custom(widthMM, heightMM float64) (Size, error) {
	if widthMM <= 0 || heightMM <= 0 {
		return Size{}, fmt.Errorf("%w: custom %gx%gmm", ErrUnknownSize, widthMM, heightMM)
	}
	return Size{
		Key:      CustomKey,
		Name:     fmt.Sprintf("Custom (%gx%gmm)", widthMM, heightMM),
		WidthMM:  widthMM,
		HeightMM: heightMM,
	}, nil
}

// Resolve picks a preset, or the custom dimensions when key is CustomKey.
func Resolve(key string, customW, customH float64) (Size, error) {
	if strings.EqualFold(strings.TrimSpace(key), CustomKey) {
		return Custom(customW, customH)
	}
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return Lookup(key)
}

// Presets returns all preset sizes ordered by key.
func Presets() []Size {
	out := make([]Size, 0, len(presets))
	for _, s := range presets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
