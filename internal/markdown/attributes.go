package markdown

import "bytes"

// headerAttributes rewrites the trailing "{#text}" and "{.text}" annotations
// of ATX headers into quoted {id="text"} and {class="text"} attributes.
// goldmark's short forms stop at the first space or punctuation byte, while
// annotated section names such as "{.Section Name}" may contain both. An
// empty "{#}" or "{.}" is dropped so the header gets a generated id.
//
// Lines inside fenced code blocks are left alone.
func headerAttributes(src []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(src) + len(src)/8)
	var fence []byte
	for len(src) > 0 {
		line := src
		if i := bytes.IndexByte(src, '\n'); i >= 0 {
			line = src[:i+1]
		}
		src = src[len(line):]

		body := bytes.TrimRight(line, "\r\n")
		eol := line[len(body):]
		indented := bytes.TrimLeft(body, " ")
		if len(body)-len(indented) > 3 {
			out.Write(line)
			continue
		}
		if marker := fenceMarker(indented); marker != nil {
			switch {
			case fence == nil:
				fence = marker
			case bytes.HasPrefix(indented, fence):
				fence = nil
			}
			out.Write(line)
			continue
		}
		if fence != nil || !isATXHeading(indented) {
			out.Write(line)
			continue
		}

		head, kind, value, ok := trailingAnnotation(body)
		if !ok {
			out.Write(line)
			continue
		}
		out.Write(head)
		if len(value) > 0 {
			name := "id"
			if kind == '.' {
				name = "class"
			}
			out.WriteString("{" + name + `="`)
			writeAttributeValue(&out, value)
			out.WriteString(`"}`)
		}
		out.Write(eol)
	}
	return out.Bytes()
}

func fenceMarker(line []byte) []byte {
	for _, m := range [][]byte{[]byte("```"), []byte("~~~")} {
		if bytes.HasPrefix(line, m) {
			return m
		}
	}
	return nil
}

func isATXHeading(line []byte) bool {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return n == len(line) || line[n] == ' ' || line[n] == '\t'
}

// trailingAnnotation splits "head {#value}" into its parts. kind is '#' or
// '.'; value is trimmed.
func trailingAnnotation(body []byte) (head []byte, kind byte, value []byte, ok bool) {
	t := bytes.TrimRight(body, " \t")
	if len(t) < 3 || t[len(t)-1] != '}' {
		return nil, 0, nil, false
	}
	open := bytes.LastIndexByte(t, '{')
	if open < 0 || open+2 > len(t)-1 {
		return nil, 0, nil, false
	}
	kind = t[open+1]
	if kind != '#' && kind != '.' {
		return nil, 0, nil, false
	}
	value = bytes.TrimSpace(t[open+2 : len(t)-1])
	if bytes.IndexByte(value, '}') >= 0 {
		return nil, 0, nil, false
	}
	return t[:open], kind, value, true
}

// writeAttributeValue escapes value for a double quoted attribute.
func writeAttributeValue(out *bytes.Buffer, value []byte) {
	for _, c := range value {
		if c == '"' || c == '\\' {
			out.WriteByte('\\')
		}
		out.WriteByte(c)
	}
}
