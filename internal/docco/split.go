// Package docco splits source text into alternating documentation and code
// sections for literate-style rendering.
//
// Documentation lines are lines whose first non-blank characters are "*"
// or "%*" (the body lines of C block comments and SAS comments). Every
// other line is code.
package docco

import "bytes"

// Section is one documentation span together with the code that follows
// it.
type Section struct {
	Doc  bytes.Buffer
	Code bytes.Buffer
}

// HasCode reports whether the section contains anything but blank lines.
func (s *Section) HasCode() bool {
	return len(bytes.TrimSpace(s.Code.Bytes())) > 0
}

// Split groups the lines of src into sections. The result always holds at
// least one section.
//
// A new section starts when a documentation line follows code, or when it
// follows a blank line that itself follows documentation with no code in
// between. Blank lines are attributed to code only once more code follows,
// so blank lines that merely separate one section from the next are not
// part of either.
func Split(src []byte) []*Section {
	sections := []*Section{{}}
	var haveDoc, haveCode, prevEmpty bool
	var blank [][]byte

	for i := 0; i < len(src); {
		line := nextLine(src, i)
		i += len(line)
		empty := isEmptyLine(line)
		cur := sections[len(sections)-1]

		if text, ok := commentText(line); ok {
			if (prevEmpty && haveDoc && !haveCode) || haveCode {
				cur = &Section{}
				sections = append(sections, cur)
				haveCode = false
			}
			blank = blank[:0]
			haveDoc = true
			cur.Doc.Write(text)
		} else if empty {
			blank = append(blank, line)
		} else {
			for _, b := range blank {
				cur.Code.Write(b)
			}
			blank = blank[:0]
			haveCode = true
			cur.Code.Write(line)
		}
		prevEmpty = empty
	}

	last := sections[len(sections)-1]
	for _, b := range blank {
		last.Code.Write(b)
	}
	return sections
}

// nextLine returns the line starting at i including its newline.
func nextLine(src []byte, i int) []byte {
	if j := bytes.IndexByte(src[i:], '\n'); j >= 0 {
		return src[i : i+j+1]
	}
	return src[i:]
}

func isEmptyLine(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}

// commentText reports whether line is a documentation line and returns its
// text with the leading blanks, the comment marker and one following blank
// removed.
func commentText(line []byte) ([]byte, bool) {
	j := 0
	for j < len(line) && (line[j] == ' ' || line[j] == '\t' || line[j] == '\r' || line[j] == '\v' || line[j] == '\f') {
		j++
	}
	switch {
	case j < len(line) && line[j] == '*':
		j++
	case j+1 < len(line) && line[j] == '%' && line[j+1] == '*':
		j += 2
	default:
		return nil, false
	}
	if j < len(line) && (line[j] == ' ' || line[j] == '\t') {
		j++
	}
	return line[j:], true
}
