// Package extract copies API comment blocks (/** ... */) out of source text
// and annotates level-3 and level-4 Markdown headers with header
// attributes understood by the Markdown renderer:
//
//	### &slice_set ###      ->  ### &slice_set {#slice_set}
//	#### parameters ####    ->  #### parameters {.parameters}
//
// Level-3 headers name a documented element and get an HTML id, level-4
// headers name a standard section (parameters, returns, ...) and get an
// HTML class.
package extract

// Header is an attribute annotation inserted into the output.
type Header struct {
	Level int    // 3 or 4
	Attr  string // id for level 3, class for level 4
}

// Result is the outcome of one extraction pass.
type Result struct {
	Markdown []byte
	Blocks   int
	Headers  []Header

	// Unterminated reports that the input ended inside an open block.
	// Whatever the block contained is kept in Markdown and a closing
	// newline is appended.
	Unterminated bool
}

// scanner is the state of one pass. It is never reused.
type scanner struct {
	src     []byte
	out     []byte
	res     *Result
	inBlock bool
	pounds  int
	header  int
}

// Extract runs a single pass over src.
func Extract(src []byte) *Result {
	s := &scanner{
		src: src,
		out: make([]byte, 0, len(src)/2),
		res: &Result{},
	}
	s.run()
	if s.inBlock {
		s.out = append(s.out, '\n')
		s.res.Unterminated = true
	}
	s.res.Markdown = s.out
	return s.res
}

// Markdown is shorthand for Extract(src).Markdown.
func Markdown(src []byte) []byte {
	return Extract(src).Markdown
}

func (s *scanner) run() {
	src := s.src
	n := len(src)
	for i := 0; i < n; i++ {
		ch := src[i]

		if ch == '/' && i+2 < n && src[i+1] == '*' && src[i+2] == '*' {
			// Pound count and header mode carry over from the previous
			// block; they are reset only by a newline or a header close.
			s.inBlock = true
			i += 2
			if i+1 < n && isBlank(src[i+1]) {
				i++
			}
			continue
		}

		if ch == '*' && i+1 < n && (src[i+1] == '/' || (src[i+1] == '*' && i+2 < n && src[i+2] == '/')) {
			if s.inBlock {
				s.out = append(s.out, '\n')
				s.res.Blocks++
			}
			s.inBlock = false
			continue
		}

		if !s.inBlock {
			continue
		}

		if ch == '#' {
			s.pounds++
		}

		if s.pounds == 3 && ch != '#' {
			s.header = 3
		}
		if s.header == 3 && (ch == '#' || ch == '\n') {
			id := headerText(src, i).Trim()
			if k := id.IndexAny("&%"); k != -1 {
				id = id.Sub(k+1, 0)
			}
			s.attr(3, '#', id.Ident())
			if ch == '#' {
				i += 2
			} else {
				s.out = append(s.out, '\n')
			}
			s.pounds, s.header = 0, 0
			continue
		}

		if s.pounds == 4 && ch != '#' {
			s.header = 4
		}
		if s.header == 4 && ch == '#' {
			s.attr(4, '.', headerText(src, i).Trim())
			i += 3
			s.pounds, s.header = 0, 0
			continue
		}

		if s.pounds > 0 && ch != '#' {
			s.pounds = 0
		}
		if ch == '\n' {
			s.header = 0
		}

		s.out = AppendByte(s.out, ch)
	}
}

// attr writes "{<kind><text>}".
func (s *scanner) attr(level int, kind byte, text Slice) {
	s.out = append(s.out, '{', kind)
	s.out = append(s.out, text.Bytes()...)
	s.out = append(s.out, '}')
	s.res.Headers = append(s.res.Headers, Header{Level: level, Attr: text.String()})
}

// headerText returns the bytes between the last '#' before pos and pos.
func headerText(src []byte, pos int) Slice {
	k := pos - 1
	for k >= 0 && src[k] != '#' {
		k--
	}
	return NewSlice(src, k+1, pos-k-1)
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
