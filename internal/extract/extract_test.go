package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Golden(t *testing.T) {
	res := Extract([]byte("/** \n### Widget ###\ntext\n**/"))

	assert.Equal(t, "\n### Widget {#Widget}\ntext\n\n", string(res.Markdown))
	assert.Equal(t, 1, res.Blocks)
	assert.False(t, res.Unterminated)
	assert.Equal(t, []Header{{Level: 3, Attr: "Widget"}}, res.Headers)
}

func TestExtract_NoBlocks(t *testing.T) {
	inputs := []string{
		"",
		"int main(void) { return 0; }\n",
		"/* plain comment */\n// line comment\n",
		"### Header ###\n#### class ####\n",
		"a * b / c ** d",
	}
	for _, in := range inputs {
		assert.Empty(t, Markdown([]byte(in)), "input %q", in)
	}
}

func TestExtract_BlockMarkers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double star close", "/** text **/", "text \n"},
		{"single star close", "/** text */", "text \n"},
		{"close at end of input", "/**x*/", "x\n"},
		{"separator newline consumed", "/**\nline\n*/", "line\n\n"},
		{"code between blocks dropped", "/** a */ int x; /** b */", "a \nb \n"},
		{"stray close outside block", "x */ y /** z */", "z \n"},
		{"star inside block kept", "/** a * b */", "a * b \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Markdown([]byte(tt.in))))
		})
	}
}

func TestExtract_Level3Header(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "identifier prefix only",
			in:   "/**\n### Foo Bar ###\n*/",
			want: "### Foo Bar {#Foo}\n\n",
		},
		{
			name: "ampersand selects identifier",
			in:   "/**\n### some &init_func more text ###\n*/",
			want: "### some &init_func more text {#init_func}\n\n",
		},
		{
			name: "percent selects identifier",
			in:   "/**\n### macro %do_it(x) ###\n*/",
			want: "### macro %do_it(x) {#do_it}\n\n",
		},
		{
			name: "no identifier gives empty id",
			in:   "/**\n### (none) ###\n*/",
			want: "### (none) {#}\n\n",
		},
		{
			name: "closed by newline",
			in:   "/**\n### slice_trim\nbody\n*/",
			want: "### slice_trim{#slice_trim}\nbody\n\n",
		},
		{
			name: "mark as last byte",
			in:   "/**\n### name & ###\n*/",
			want: "### name & {#}\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Markdown([]byte(tt.in))))
		})
	}
}

func TestExtract_Level4Header(t *testing.T) {
	res := Extract([]byte("/**\n#### Section Name ####\n+ s\n*/"))

	assert.Equal(t, "#### Section Name {.Section Name}\n+ s\n\n", string(res.Markdown))
	require.Len(t, res.Headers, 1)
	assert.Equal(t, Header{Level: 4, Attr: "Section Name"}, res.Headers[0])
}

func TestExtract_Level4UnclosedDoesNotLeak(t *testing.T) {
	in := "/**\n#### returns\nsee # note\n*/"
	assert.Equal(t, "#### returns\nsee # note\n\n", string(Markdown([]byte(in))))
}

func TestExtract_OtherRunLengthsUntouched(t *testing.T) {
	tests := []string{
		"/**\n# Title #\n*/",
		"/**\n## Sub ##\n*/",
		"/**\n##### Deep #####\n*/",
		"/**\n###### Deeper\n*/",
	}
	for _, in := range tests {
		res := Extract([]byte(in))
		assert.Empty(t, res.Headers, "input %q", in)
		assert.NotContains(t, string(res.Markdown), "{", "input %q", in)
	}
}

func TestExtract_HeaderModeResetsAtNewline(t *testing.T) {
	res := Extract([]byte("/**\n#### open\ntext # here\n### Next ###\n*/"))

	require.Len(t, res.Headers, 1)
	assert.Equal(t, Header{Level: 3, Attr: "Next"}, res.Headers[0])
}

func TestExtract_SdocStyleComment(t *testing.T) {
	in := `/* bytes to read */
#define READ_UNIT 1024

/**
### slice_set ###

Initialize a slice as substring of a buffer

#### parameters ####

+ s
  * slice struct
*/
static void slice_set(struct slice *s) {
}
`
	want := `### slice_set {#slice_set}

Initialize a slice as substring of a buffer

#### parameters {.parameters}

+ s
  * slice struct

`
	res := Extract([]byte(in))
	assert.Equal(t, want, string(res.Markdown))
	assert.Equal(t, 1, res.Blocks)
	assert.Equal(t, []Header{
		{Level: 3, Attr: "slice_set"},
		{Level: 4, Attr: "parameters"},
	}, res.Headers)
}

func TestExtract_ReencodesLatin1(t *testing.T) {
	in := []byte("/** Gr\xfc\xdfe \xc3\xa4 */")
	assert.Equal(t, "Grüße ä \n", string(Markdown(in)))
}

func TestExtract_Unterminated(t *testing.T) {
	res := Extract([]byte("/** kept\n### Tail ###"))

	assert.True(t, res.Unterminated)
	assert.Equal(t, 0, res.Blocks)
	assert.Equal(t, "kept\n### Tail {#Tail}\n", string(res.Markdown))
}

func TestExtract_Idempotent(t *testing.T) {
	first := Markdown([]byte("/**\n### &slice_find ###\nFind chars.\n\n#### returns ####\nposition\n*/"))
	require.NotEmpty(t, first)

	assert.Empty(t, Markdown(first))
}

func TestExtract_FreshStatePerPass(t *testing.T) {
	src := []byte("/**\n### A ###\n*/")
	a := Extract(src)
	b := Extract(src)

	assert.Equal(t, a.Markdown, b.Markdown)
	assert.Len(t, b.Headers, 1)
}

func TestExtract_StateCarriesAcrossBlocks(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		headers []Header
	}{
		{
			name:    "pound run continues in next block",
			in:      "/** ##*/ x /** #abc\n*/",
			want:    "##\n#abc{#abc}\n\n",
			headers: []Header{{Level: 3, Attr: "abc"}},
		},
		{
			name:    "open header closes in next block",
			in:      "/** ### foo */ /** bar # zz\n*/",
			want:    "### foo \nbar {#foo}z\n\n",
			headers: []Header{{Level: 3, Attr: "foo"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Extract([]byte(tt.in))
			assert.Equal(t, tt.want, string(res.Markdown))
			assert.Equal(t, tt.headers, res.Headers)
			assert.Equal(t, 2, res.Blocks)
		})
	}
}
