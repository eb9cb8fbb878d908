package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	out, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	for _, p := range []string{"/api/sales", "/api/stock-movements", "/api/stock-opname", "/api/auth/login"} {
		assert.Contains(t, spec.Paths, p)
	}
}
