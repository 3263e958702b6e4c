package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"go.trai.ch/mirror/internal/ui/output"
)

func TestProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.Profile(false), "NO_COLOR should force Ascii profile")
	assert.Equal(t, termenv.Ascii, output.Profile(true))

	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.Profile(true))

	p := output.Profile(false)
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf, termenv.Ascii)
	assert.NotNil(t, out)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
}

func TestNew_Nil(t *testing.T) {
	out := output.New(nil, termenv.Ascii)
	assert.NotNil(t, out)
}

func TestColumns(t *testing.T) {
	got := output.Columns([][]string{
		{"NAME", "SOURCE", "TARGET"},
		{"news", "Actualités", "Accueil/Actualités"},
		{"potd", "Image du jour/{day}", "Accueil/Image"},
	})

	want := "NAME  SOURCE               TARGET\n" +
		"news  Actualités           Accueil/Actualités\n" +
		"potd  Image du jour/{day}  Accueil/Image\n"
	assert.Equal(t, want, got)
	assert.Empty(t, output.Columns(nil))
}
