package game

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseSnapshot hydrates a board from the flat text format: one line per (layer, row), rows
// cycling through x before the layer z advances, Length*Height lines in total. 'X' and 'O' are
// tokens and every other character is Empty. Short lines are padded with Empty and characters
// beyond Width are ignored. Lines past the last layer are ignored.
//
// The loader does not enforce gravity; see Board.Contiguous.
func ParseSnapshot(r io.Reader, dims Dimensions) (*Board, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	b := NewBoard(dims)
	br := bufio.NewReader(r)
	x, z, extra := 0, 0, 0
	for {
		line, err := readRow(br, dims.Width)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		if z >= dims.Height {
			extra++
			continue
		}
		for y := 0; y < len(line); y++ {
			b.set(x, y, z, cellFromByte(line[y]))
		}
		x = (x + 1) % dims.Length
		if x == 0 {
			z++
		}
	}

	if extra > 0 {
		log.Warn().Int("lines", extra).Msg("ignoring snapshot lines beyond the top layer")
	}
	return b, nil
}

// readRow reads one line of any length and returns at most its first width bytes, without the
// line terminator. It returns io.EOF only when no bytes are left.
func readRow(br *bufio.Reader, width int) ([]byte, error) {
	var row []byte
	read := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && read {
				return row, nil
			}
			return nil, err
		}
		read = true
		if room := width - len(row); room > 0 {
			row = append(row, chunk[:min(room, len(chunk))]...)
		}
		if !isPrefix {
			return row, nil
		}
	}
}

// LoadSnapshot reads a snapshot file. See ParseSnapshot for the format.
func LoadSnapshot(path string, dims Dimensions) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	b, err := ParseSnapshot(f, dims)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	return b, nil
}

// WriteSnapshot writes the board in the format read by ParseSnapshot. Empty cells are spaces.
func (b *Board) WriteSnapshot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for z := 0; z < b.dims.Height; z++ {
		for x := 0; x < b.dims.Length; x++ {
			if err := b.writeRow(bw, x, z); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// SaveSnapshot writes the board to a file, replacing it if it exists.
func (b *Board) SaveSnapshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer f.Close()

	return b.WriteSnapshot(f)
}

// Format prints the board layer by layer, bottom layer first, for the console.
func (b *Board) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for z := 0; z < b.dims.Height; z++ {
		fmt.Fprintf(bw, "Layer %d\n", z+1)
		for x := 0; x < b.dims.Length; x++ {
			if err := b.writeRow(bw, x, z); err != nil {
				return fmt.Errorf("failed to format board: %w", err)
			}
		}
	}
	return bw.Flush()
}

func (b *Board) String() string {
	var sb strings.Builder
	_ = b.Format(&sb)
	return sb.String()
}

func (b *Board) writeRow(w *bufio.Writer, x, z int) error {
	for y := 0; y < b.dims.Width; y++ {
		if _, err := w.WriteString(b.cells[b.index(x, y, z)].String()); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// Contiguous reports whether every column is a gapless stack from z=0. Boards built only
// through PlaceToken and RemoveToken always are; hydrated snapshots may not be.
func (b *Board) Contiguous() bool {
	for x := 0; x < b.dims.Length; x++ {
		for y := 0; y < b.dims.Width; y++ {
			col := b.column(x, y)
			seenEmpty := false
			for _, c := range col {
				if c == Empty {
					seenEmpty = true
				} else if seenEmpty {
					return false
				}
			}
		}
	}
	return true
}
