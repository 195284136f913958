package section

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a slot by descending through nested sections. The last
// component is the position within the innermost section.
type Path []int

// String returns the bracket form of the path.
//
//	Path{0, 2} → "[0][2]"
//	Path{}     → ""
func (p Path) String() string {
	buf := bytes.NewBuffer(nil)
	for _, i := range p {
		fmt.Fprintf(buf, "[%d]", i)
	}
	return buf.String()
}

// Pointer returns the RFC 6901 JSON pointer for the path.
//
//	Path{0, 2} → "/0/2"
//	Path{}     → ""
func (p Path) Pointer() string {
	var sb strings.Builder
	for _, i := range p {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

// Clone returns a copy of p that shares no storage with it.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	res := make(Path, len(p))
	copy(res, p)
	return res
}

// Compare orders paths lexicographically, a proper prefix sorting first.
func (p Path) Compare(q Path) int {
	n := min(len(p), len(q))
	for i := 0; i < n; i++ {
		switch {
		case p[i] < q[i]:
			return -1
		case p[i] > q[i]:
			return 1
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	}
	return 0
}

// Depth is the number of components.
func (p Path) Depth() int {
	return len(p)
}

// Last returns the terminal index. It panics on an empty path.
func (p Path) Last() int {
	return p[len(p)-1]
}

// ParsePath parses the bracket form ("[0][2]") or a JSON pointer ("/0/2").
// The empty string parses to an empty path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, nil
	}
	if s[0] == '/' {
		return parsePointer(s)
	}
	var res Path
	rest := s
	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("%w: expected '[' at %q in %q", ErrBadPath, rest, s)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated index in %q", ErrBadPath, s)
		}
		i, err := parseIndex(rest[1:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPath, s, err)
		}
		res = append(res, i)
		rest = rest[end+1:]
	}
	return res, nil
}

func parsePointer(s string) (Path, error) {
	parts := strings.Split(s[1:], "/")
	res := make(Path, 0, len(parts))
	for _, part := range parts {
		i, err := parseIndex(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPath, s, err)
		}
		res = append(res, i)
	}
	return res, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("negative index %d", i)
	}
	return i, nil
}
