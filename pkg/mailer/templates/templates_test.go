package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	t.Parallel()

	subject, text, html, err := Render(Welcome, map[string]any{"Name": "A"})
	require.NoError(t, err)
	assert.Equal(t, "Registration Successful. Welcome!", subject)
	assert.Contains(t, text, "A")
	assert.Contains(t, html, "Welcome to LearnSphere, A!")
}

func TestRenderWelcome_EscapesHTML(t *testing.T) {
	t.Parallel()

	_, _, html, err := Render(Welcome, map[string]any{"Name": "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	t.Parallel()

	_, _, _, err := Render("promo", nil)
	assert.Error(t, err)
}
