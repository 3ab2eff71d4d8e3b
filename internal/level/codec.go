package level

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knightmare/internal/core"
)

// Blob is the on-disk shape of a level file.
type Blob struct {
	Version string   `json:"_vers,omitempty"`
	Name    string   `json:"name"`
	Data    []string `json:"data"`
}

// Token layout: every cell is a two character token (kind prefix, color
// digit) and tokens are separated by one space, so cell x starts at 3*x.
const (
	tokenWidth  = 3
	blankToken  = "  "
	tokenSep    = " "
	prefixWall  = 'W'
	prefixBox   = 'B'
	prefixSnake = 'S'
	prefixPot   = 'p'
	prefixPlay  = 'P'
)

// enemyPrefixes maps enemy tokens to their walking direction.
var enemyPrefixes = map[byte]core.Point{
	'U': core.Up,
	'D': core.Down,
	'L': core.Left,
	'R': core.Right,
	'N': core.Zero,
}

// Codec converts boards to and from level blobs. Recoverable problems such as
// unknown tokens or stacked cells are logged and skipped.
type Codec struct {
	Factory *Factory
	Logger  *log.Logger
	Version string // written to "_vers" on encode
}

// NewCodec returns a codec drawing ids from f. A nil logger discards output.
func NewCodec(f *Factory, logger *log.Logger) *Codec {
	if f == nil {
		f = NewFactory()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Codec{Factory: f, Logger: logger}
}

func (c *Codec) logger() *log.Logger {
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c.Logger
}

// Encode writes the board area as rows of tokens.
func (c *Codec) Encode(b *Board) Blob {
	return Blob{
		Version: c.Version,
		Name:    b.Name,
		Data:    encodeRows(b, c.logger()),
	}
}

// Marshal encodes b as indented JSON.
func (c *Codec) Marshal(b *Board) ([]byte, error) {
	data, err := json.MarshalIndent(c.Encode(b), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", b.Name, err)
	}
	return data, nil
}

// Unmarshal parses a JSON level file and decodes it.
func (c *Codec) Unmarshal(data []byte) (*Board, error) {
	var blob Blob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLevel, err)
	}
	return c.Decode(blob)
}

// Decode builds a board from a blob. The top-left token sits at the origin
// and the bounds are fixed to the occupied extent afterwards.
func (c *Codec) Decode(blob Blob) (*Board, error) {
	if blob.Data == nil {
		return nil, fmt.Errorf("%w: %q has no data rows", ErrMalformedLevel, blob.Name)
	}

	logger := c.logger()
	b := NewBoard(blob.Name)
	for y, row := range blob.Data {
		for i := 0; i < len(row); i += tokenWidth {
			if row[i] == ' ' {
				continue
			}
			pos := core.Pt(i/tokenWidth, y)
			e, err := c.decodeToken(row, i)
			if err != nil {
				logger.Warn("skipping token", "level", blob.Name, "row", y, "col", pos.X, "error", err)
				continue
			}
			if err := b.Add(pos, e); err != nil {
				return nil, err
			}
		}
	}
	b.CacheBounds()
	return b, nil
}

func (c *Codec) decodeToken(row string, i int) (*Entity, error) {
	if i+1 >= len(row) {
		return nil, fmt.Errorf("token %q has no color digit", row[i:])
	}
	prefix, digit := row[i], row[i+1]
	if digit < '0' || digit > '9' {
		return nil, fmt.Errorf("token %q has a bad color digit", row[i:i+2])
	}
	col := Color(digit - '0').Clamp()

	f := c.Factory
	if f == nil {
		f = NewFactory()
		c.Factory = f
	}
	switch prefix {
	case prefixPlay:
		return f.Player(col), nil
	case prefixWall:
		return f.Wall(col), nil
	case prefixBox:
		return f.Box(col), nil
	case prefixPot:
		return f.Potion(col), nil
	case prefixSnake:
		return f.Snake(col), nil
	}
	if dir, ok := enemyPrefixes[prefix]; ok {
		return f.Enemy(col, dir)
	}
	return nil, fmt.Errorf("token %q: %w", row[i:i+2], ErrUnknownEntityKind)
}

// encodeRows renders the board area as token rows. logger may be nil.
func encodeRows(b *Board, logger *log.Logger) []string {
	if b.Count() == 0 {
		return []string{}
	}
	area := b.Area()
	rows := make([]string, 0, area.H)
	for y := area.Y; y < area.Bottom(); y++ {
		tokens := make([]string, 0, area.W)
		for x := area.X; x < area.Right(); x++ {
			tokens = append(tokens, encodeCell(b.EntitiesAt(core.Pt(x, y)), logger))
		}
		rows = append(rows, strings.Join(tokens, tokenSep))
	}
	return rows
}

func encodeCell(stack []*Entity, logger *log.Logger) string {
	if len(stack) == 0 {
		return blankToken
	}
	e := stack[0]
	if len(stack) > 1 && logger != nil {
		logger.Warn("cannot encode stacked cell, keeping first entity", "entities", stack)
	}

	tok := Token(e)
	if tok == blankToken && logger != nil {
		logger.Warn("entity cannot be encoded, dropping it", "entity", e)
	}
	return tok
}

func joinRows(rows []string) string {
	return strings.Join(rows, "\n")
}
