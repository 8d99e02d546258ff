package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusText_StringStatus(t *testing.T) {
	c := Contact{Valid: json.RawMessage(`"valid"`)}
	assert.Equal(t, "valid", c.StatusText())

	c.Valid = json.RawMessage(`"Not Validated"`)
	assert.Equal(t, "Not Validated", c.StatusText())
}

func TestStatusText_NonStringStatus(t *testing.T) {
	c := Contact{Valid: json.RawMessage(`false`)}
	assert.Equal(t, "", c.StatusText())

	c.Valid = json.RawMessage(`[{"delivery_line_1":"119 Burnet Way"}]`)
	assert.Equal(t, "", c.StatusText())

	c.Valid = nil
	assert.Equal(t, "", c.StatusText())
}

func TestContactJSON_PreservesRawStatus(t *testing.T) {
	c := Contact{
		ID:        1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Valid:     json.RawMessage(`false`),
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["valid"])
}

func TestContactJSON_AbsentStatusIsNull(t *testing.T) {
	data, err := json.Marshal(Contact{ID: 2})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["valid"])
}
