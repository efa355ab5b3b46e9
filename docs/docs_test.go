package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

func TestDoc_CoversAnnotatedRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	files, err := filepath.Glob(filepath.Join("..", "internal", "domain", "*", "handler.go"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	seen := 0
	for _, f := range files {
		src, err := os.ReadFile(f)
		require.NoError(t, err)

		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			path, method := m[1], strings.ToLower(m[2])
			seen++
			ops, ok := doc.Paths[path]
			if !assert.True(t, ok, "%s: path %s missing from doc", f, path) {
				continue
			}
			assert.Contains(t, ops, method, "%s: %s %s missing from doc", f, method, path)
		}
	}
	assert.NotZero(t, seen)
}
