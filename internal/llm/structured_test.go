package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suggestion struct {
	Message string `json:"message"`
	Items   []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"items"`
}

func TestExtractJSON_Plain(t *testing.T) {
	got, err := ExtractJSON[suggestion](`{"message":"ok","items":[{"id":"seo","type":"standard"}]}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Message)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "seo", got.Items[0].ID)
}

func TestExtractJSON_FencedWithProse(t *testing.T) {
	raw := "Claro, aquí va:\n```json\n{\"message\":\"listo\",\"items\":[]}\n```\n¡Suerte!"
	got, err := ExtractJSON[suggestion](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "listo", got.Message)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"message":"usa {llaves} y \"comillas\"","items":[]} sobra }`
	got, err := ExtractJSON[suggestion](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `usa {llaves} y "comillas"`, got.Message)
}

func TestExtractJSON_LineComments(t *testing.T) {
	raw := "{\n  \"message\": \"http://example.com\", // url\n  \"items\": []\n}"
	got, err := ExtractJSON[suggestion](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", got.Message)
}

func TestExtractJSON_Failures(t *testing.T) {
	for name, raw := range map[string]string{
		"no object":  "No entiendo la pregunta.",
		"broken":     `{"message": "x", roto}`,
		"unbalanced": `{"message": "x"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractJSON[suggestion](raw, nil)
			assert.ErrorIs(t, err, ErrInvalidOutput)
		})
	}
}

func TestExtractJSON_Validator(t *testing.T) {
	requireItems := func(s suggestion) error {
		if len(s.Items) == 0 {
			return errors.New("no items")
		}
		return nil
	}

	_, err := ExtractJSON(`{"message":"nada","items":[]}`, requireItems)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")

	got, err := ExtractJSON(`{"items":[{"id":"blog"}]}`, requireItems)
	require.NoError(t, err)
	assert.Equal(t, "blog", got.Items[0].ID)
}
