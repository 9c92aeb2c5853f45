package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Movement kinds understood by the rules engine.
const (
	MoveStep   = "step"
	MoveSlide  = "slide"
	MoveFree   = "free"
	MoveScript = "script"
)

var (
	orthogonal = []string{"N", "E", "S", "W"}
	diagonal   = []string{"NE", "SE", "SW", "NW"}
	allDirs    = append(append([]string{}, orthogonal...), diagonal...)
)

// Kind describes a piece type: how it is drawn and how it moves.
type Kind struct {
	Name       string
	Stamp      byte
	Glyph      string
	Movement   string
	Directions []string
	Offsets    []string
	Range      int // 0 means unlimited for sliders
	Script     string
}

var builtinKinds = []Kind{
	{Name: "rook", Stamp: 'r', Glyph: "♜", Movement: MoveSlide, Directions: orthogonal},
	{Name: "bishop", Stamp: 'b', Glyph: "♝", Movement: MoveSlide, Directions: diagonal},
	{Name: "queen", Stamp: 'q', Glyph: "♛", Movement: MoveSlide, Directions: allDirs},
	{Name: "king", Stamp: 'k', Glyph: "♚", Movement: MoveStep, Directions: allDirs},
	{Name: "knight", Stamp: 'n', Glyph: "♞", Movement: MoveStep,
		Offsets: []string{"1,2", "2,1", "2,-1", "1,-2", "-1,-2", "-2,-1", "-2,1", "-1,2"}},
	{Name: "free", Stamp: '*', Glyph: "*", Movement: MoveFree},
}

// Catalog maps kind names to kinds.
type Catalog struct {
	kinds map[string]Kind
}

// DefaultCatalog returns a catalog holding the built-in kinds.
func DefaultCatalog() *Catalog {
	c := &Catalog{kinds: make(map[string]Kind, len(builtinKinds))}
	for _, k := range builtinKinds {
		c.kinds[k.Name] = k
	}
	return c
}

// Lookup returns the kind with the given name.
func (c *Catalog) Lookup(name string) (Kind, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

// Names returns the kind names in sorted order.
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.kinds))
}

// Add registers k, replacing any kind of the same name.
func (c *Catalog) Add(k Kind) error {
	if k.Name == "" {
		return errors.New("kind has no name")
	}
	if k.Stamp == 0 {
		return fmt.Errorf("kind %s: missing stamp", k.Name)
	}
	switch k.Movement {
	case MoveStep, MoveSlide, MoveFree:
	case MoveScript:
		if k.Script == "" {
			return fmt.Errorf("kind %s: script movement without a script", k.Name)
		}
	default:
		return fmt.Errorf("kind %s: unknown movement %q", k.Name, k.Movement)
	}
	if k.Range < 0 || k.Range > max(Width, Height)-1 {
		return fmt.Errorf("kind %s: range %d off board", k.Name, k.Range)
	}
	c.kinds[k.Name] = k
	return nil
}

// kindFile is the JSON form of a kind. Unset fields are taken from Base.
type kindFile struct {
	Name       string   `json:"name"`
	Base       string   `json:"base,omitempty"`
	Stamp      string   `json:"stamp,omitempty"`
	Glyph      string   `json:"glyph,omitempty"`
	Movement   string   `json:"movement,omitempty"`
	Directions []string `json:"directions,omitempty"`
	Offsets    []string `json:"offsets,omitempty"`
	Range      *int     `json:"range,omitempty"`
	Script     string   `json:"script,omitempty"`
}

// Load reads a JSON array of kinds and adds them in order, so later
// entries may use earlier ones as their base.
//
//	[{"name": "camel", "stamp": "c", "glyph": "C", "movement": "script",
//	  "script": "function allow(fx, fy, tx, ty) ... end"},
//	 {"name": "wazir", "base": "king", "directions": ["N", "E", "S", "W"]}]
func (c *Catalog) Load(r io.Reader) error {
	var entries []kindFile
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return fmt.Errorf("decode kinds: %w", err)
	}

	for _, e := range entries {
		var k Kind
		if e.Base != "" {
			base, ok := c.Lookup(e.Base)
			if !ok {
				return fmt.Errorf("kind %s: unknown base %q", e.Name, e.Base)
			}
			k = base
		}
		k.Name = e.Name
		if e.Stamp != "" {
			if len(e.Stamp) != 1 {
				return fmt.Errorf("kind %s: stamp %q must be one byte", e.Name, e.Stamp)
			}
			k.Stamp = e.Stamp[0]
		}
		if e.Glyph != "" {
			k.Glyph = e.Glyph
		}
		if e.Movement != "" {
			k.Movement = e.Movement
		}
		if e.Directions != nil {
			k.Directions = e.Directions
		}
		if e.Offsets != nil {
			k.Offsets = e.Offsets
		}
		if e.Range != nil {
			k.Range = *e.Range
		}
		if e.Script != "" {
			k.Script = e.Script
		}
		if err := c.Add(k); err != nil {
			return err
		}
	}
	return nil
}

// NewPiece creates a piece named name carrying the attributes of kind.
func (c *Catalog) NewPiece(name, kind string) (*Piece, error) {
	k, ok := c.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("unknown piece kind %q (known: %s)", kind, strings.Join(c.Names(), ", "))
	}
	p := NewPiece(k.Stamp, k.Glyph, name)
	p.SetAttr(AttrKind, k.Name)
	p.SetAttr(AttrMovement, k.Movement)
	if len(k.Directions) > 0 {
		p.SetAttr(AttrDirections, k.Directions...)
	}
	if len(k.Offsets) > 0 {
		p.SetAttr(AttrOffsets, k.Offsets...)
	}
	if k.Range > 0 {
		p.SetAttr(AttrRange, strconv.Itoa(k.Range))
	}
	if k.Script != "" {
		p.SetAttr(AttrScript, k.Script)
	}
	return p, nil
}

// NewPieceOfKind creates a piece of a built-in kind.
func NewPieceOfKind(name, kind string) (*Piece, error) {
	return DefaultCatalog().NewPiece(name, kind)
}
