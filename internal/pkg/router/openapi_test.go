package router

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pathParam = regexp.MustCompile(`:([A-Za-z_]+)`)

func loadOpenAPI(t *testing.T) *openapi3.T {
	t.Helper()
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../public/docs/v1/openapi.yml")
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	return doc
}

func TestOpenAPIDocumentsEveryRoute(t *testing.T) {
	doc := loadOpenAPI(t)
	app := newTestApp(t)

	for _, r := range app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api/") || r.Method == "HEAD" {
			continue
		}
		path := pathParam.ReplaceAllString(strings.TrimPrefix(r.Path, "/api"), "{$1}")
		item := doc.Paths.Find(path)
		if !assert.NotNil(t, item, "%s %s is not documented", r.Method, r.Path) {
			continue
		}
		assert.NotNil(t, item.GetOperation(r.Method), "%s %s is not documented", r.Method, r.Path)
	}
}
