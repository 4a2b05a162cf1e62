// Package render draws a read-only board snapshot as text.
//
// Glyph set, layout and color theme are independent, swappable strategies
// picked by name. The board's top row (row 0, rank 8) is drawn first unless
// Flip is set.
package render

import (
	"fmt"
	"sort"
	"strings"

	"termchess/internal/core"

	"github.com/pkg/errors"
)

const (
	LayoutCompact = "compact"
	LayoutBoxed   = "boxed"
)

type Squares = [core.BoardSize][core.BoardSize]core.Piece

type Options struct {
	Glyphs string `yaml:"glyphs" validate:"omitempty,oneof=ascii unicode"`
	Layout string `yaml:"layout" validate:"omitempty,oneof=compact boxed"`
	Theme  string `yaml:"theme" validate:"omitempty,oneof=off brown green gray"`
	Flip   bool   `yaml:"flip"`
}

func DefaultOptions() Options {
	return Options{
		Glyphs: GlyphsASCII,
		Layout: LayoutCompact,
		Theme:  ThemeOff,
	}
}

type Renderer struct {
	opts   Options
	glyphs GlyphSet
	theme  Theme
}

func New(opts Options) (*Renderer, error) {
	r := &Renderer{}
	def := DefaultOptions()
	if opts.Glyphs == "" {
		opts.Glyphs = def.Glyphs
	}
	if opts.Layout == "" {
		opts.Layout = def.Layout
	}
	if opts.Theme == "" {
		opts.Theme = def.Theme
	}

	if err := r.SetGlyphs(opts.Glyphs); err != nil {
		return nil, err
	}
	if err := r.SetLayout(opts.Layout); err != nil {
		return nil, err
	}
	if err := r.SetTheme(opts.Theme); err != nil {
		return nil, err
	}
	r.opts.Flip = opts.Flip
	return r, nil
}

func (r *Renderer) Options() Options {
	return r.opts
}

func (r *Renderer) SetGlyphs(name string) error {
	g, ok := glyphSets[name]
	if !ok {
		return errors.Errorf("invalid glyphs: %s (use: %s)", name, names(glyphSets))
	}
	r.glyphs = g
	r.opts.Glyphs = name
	return nil
}

func (r *Renderer) SetLayout(name string) error {
	if name != LayoutCompact && name != LayoutBoxed {
		return errors.Errorf("invalid layout: %s (use: %s, %s)", name, LayoutCompact, LayoutBoxed)
	}
	r.opts.Layout = name
	return nil
}

func (r *Renderer) SetTheme(name string) error {
	t, ok := themes[name]
	if !ok {
		return errors.Errorf("invalid theme: %s (use: %s)", name, names(themes))
	}
	r.theme = t
	r.opts.Theme = name
	return nil
}

func (r *Renderer) SetFlip(flip bool) {
	r.opts.Flip = flip
}

// Render draws the board with file and rank labels on every side
func (r *Renderer) Render(sq Squares) string {
	if r.opts.Layout == LayoutBoxed {
		return r.boxed(sq)
	}
	return r.compact(sq)
}

// Glyph draws a single piece with the current glyph set
func (r *Renderer) Glyph(p core.Piece) string {
	return r.glyphs.Glyph(p)
}

// Status describes whose turn it is
func (r *Renderer) Status(turn core.Player) string {
	return fmt.Sprintf("Current player: %s", turn)
}

func (r *Renderer) compact(sq Squares) string {
	var sb strings.Builder
	files := r.files(" ")

	sb.WriteString("  " + files + "\n")
	for _, y := range r.rows() {
		sb.WriteString(fmt.Sprintf("%d ", core.BoardSize-y))
		for _, x := range r.cols() {
			p := sq[y][x]
			sb.WriteString(r.theme.Paint(r.glyphs.Glyph(p)+" ", (x+y)%2 == 0, p.Player))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", core.BoardSize-y))
	}
	sb.WriteString("  " + files)

	return sb.String()
}

func (r *Renderer) boxed(sq Squares) string {
	var sb strings.Builder
	files := "    " + r.files("   ")
	border := "  +" + strings.Repeat("---+", core.BoardSize)

	sb.WriteString(files + "\n")
	sb.WriteString(border + "\n")
	for _, y := range r.rows() {
		sb.WriteString(fmt.Sprintf("%d |", core.BoardSize-y))
		for _, x := range r.cols() {
			p := sq[y][x]
			sb.WriteString(r.theme.Paint(" "+r.glyphs.Glyph(p)+" ", (x+y)%2 == 0, p.Player))
			sb.WriteString("|")
		}
		sb.WriteString(fmt.Sprintf(" %d\n", core.BoardSize-y))
		sb.WriteString(border + "\n")
	}
	sb.WriteString(files)

	return sb.String()
}

func (r *Renderer) files(sep string) string {
	labels := make([]string, 0, core.BoardSize)
	for _, x := range r.cols() {
		labels = append(labels, string(rune('a'+x)))
	}
	return strings.Join(labels, sep)
}

func (r *Renderer) rows() []int {
	return indices(r.opts.Flip)
}

func (r *Renderer) cols() []int {
	return indices(r.opts.Flip)
}

func indices(reverse bool) []int {
	idx := make([]int, core.BoardSize)
	for i := range idx {
		if reverse {
			idx[i] = core.BoardSize - 1 - i
		} else {
			idx[i] = i
		}
	}
	return idx
}

func names[T any](m map[string]T) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
