package workload

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// OpKind is the type of a trace operation.
type OpKind uint8

const (
	OpAlloc OpKind = iota
	OpFree
)

func (k OpKind) String() string {
	switch k {
	case OpAlloc:
		return "a"
	case OpFree:
		return "f"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// Op is one trace operation. Size is zero for frees.
type Op struct {
	Kind OpKind
	ID   uint32
	Size int
}

// Trace is an ordered list of operations.
type Trace struct {
	Ops []Op
}

// Summary describes a trace without running it.
type Summary struct {
	Ops       int
	Allocs    int
	Frees     int
	Bytes     int64 // Sum of allocation sizes
	MaxSize   int
	PeakLive  int   // Most ids live at once
	PeakBytes int64 // Most bytes live at once
	Leaked    int   // Ids still live at the end
}

// maxLine bounds a single trace line.
const maxLine = 64 << 10

// Parse reads a trace from r. Errors report the 1-based line number.
func Parse(r io.Reader) (*Trace, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)

	t := &Trace{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		op, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrParse, lineNo, err)
		}
		t.Ops = append(t.Ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrParse, lineNo+1, err)
	}
	return t, nil
}

// ParseBytes parses a trace held in memory. The trace does not alias data.
func ParseBytes(data []byte) (*Trace, error) {
	return Parse(bytes.NewReader(data))
}

func parseLine(line string) (Op, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "a":
		if len(fields) != 3 {
			return Op{}, fmt.Errorf("alloc wants 2 operands, got %d", len(fields)-1)
		}
		id, err := parseID(fields[1])
		if err != nil {
			return Op{}, err
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil || size <= 0 {
			return Op{}, fmt.Errorf("bad size %q", fields[2])
		}
		return Op{Kind: OpAlloc, ID: id, Size: size}, nil
	case "f":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("free wants 1 operand, got %d", len(fields)-1)
		}
		id, err := parseID(fields[1])
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: OpFree, ID: id}, nil
	default:
		return Op{}, fmt.Errorf("unknown op %q", fields[0])
	}
}

func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad id %q", s)
	}
	return uint32(id), nil
}

// Write serializes t in the text trace format.
func (t *Trace) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, op := range t.Ops {
		var err error
		if op.Kind == OpAlloc {
			_, err = fmt.Fprintf(bw, "a %d %d\n", op.ID, op.Size)
		} else {
			_, err = fmt.Fprintf(bw, "f %d\n", op.ID)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Validate checks that every free names a live id and no live id is
// allocated again. It returns the first offending operation's index.
func (t *Trace) Validate() error {
	live := roaring.New()
	for i, op := range t.Ops {
		switch op.Kind {
		case OpAlloc:
			if !live.CheckedAdd(op.ID) {
				return fmt.Errorf("%w: op %d: id %d", ErrDuplicateID, i, op.ID)
			}
		case OpFree:
			if !live.CheckedRemove(op.ID) {
				return fmt.Errorf("%w: op %d: id %d", ErrUnknownID, i, op.ID)
			}
		}
	}
	return nil
}

// Summarize walks t and reports its shape. Invalid frees are ignored.
func (t *Trace) Summarize() Summary {
	var s Summary
	live := roaring.New()
	sizes := make(map[uint32]int)
	var liveBytes int64

	s.Ops = len(t.Ops)
	for _, op := range t.Ops {
		switch op.Kind {
		case OpAlloc:
			s.Allocs++
			s.Bytes += int64(op.Size)
			s.MaxSize = max(s.MaxSize, op.Size)
			if live.CheckedAdd(op.ID) {
				sizes[op.ID] = op.Size
				liveBytes += int64(op.Size)
			}
		case OpFree:
			s.Frees++
			if live.CheckedRemove(op.ID) {
				liveBytes -= int64(sizes[op.ID])
				delete(sizes, op.ID)
			}
		}
		s.PeakLive = max(s.PeakLive, int(live.GetCardinality()))
		s.PeakBytes = max(s.PeakBytes, liveBytes)
	}
	s.Leaked = int(live.GetCardinality())
	return s
}
