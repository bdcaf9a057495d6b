package swagger

import (
	"encoding/json"
	"strings"

	"github.com/okian/sideline/internal/adapters/http/transport"
	"github.com/okian/sideline/internal/domain/binding"
	"github.com/tidwall/sjson"
)

const openAPIVersion = "3.0.3"

// Document renders an OpenAPI description of every binding as served by a
// backend of the given profile.
func Document(profile transport.Profile) ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}
	setRaw := func(path string, v any) {
		if err != nil {
			return
		}
		raw, mErr := json.Marshal(v)
		if mErr != nil {
			err = mErr
			return
		}
		doc, err = sjson.SetRawBytes(doc, path, raw)
	}

	set("openapi", openAPIVersion)
	set("info.title", "Sideline zodiac admin API")
	set("info.version", profile.Name)
	setRaw("components.schemas.Envelope", envelopeSchema(profile.Envelope))

	for _, b := range binding.Table() {
		key := "paths." + escape(profile.PathPrefix+b.Path) + "." + strings.ToLower(b.Method)
		setRaw(key, operation(b))
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func operation(b binding.Binding) map[string]any {
	op := map[string]any{
		"operationId": b.Name,
		"tags":        []string{strings.SplitN(b.Name, ".", 2)[0]},
		"responses": map[string]any{
			"200": map[string]any{
				"description": "envelope; the result is under the data field",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"$ref": "#/components/schemas/Envelope"},
					},
				},
			},
		},
	}
	switch b.Mode {
	case binding.ModeQuery:
		op["parameters"] = []any{map[string]any{
			"name":     "id",
			"in":       "query",
			"required": true,
			"schema":   map[string]any{"type": "integer", "format": "int64"},
		}}
	case binding.ModeBody:
		op["requestBody"] = map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{"schema": map[string]any{"type": "object"}},
			},
		}
	}
	return op
}

func envelopeSchema(env transport.Envelope) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{env.CodeField},
		"properties": map[string]any{
			env.CodeField:    map[string]any{"type": "string", "example": env.SuccessCode},
			env.MessageField: map[string]any{"type": "string"},
			env.DataField:    map[string]any{},
		},
	}
}

// escape quotes sjson path syntax inside a single key.
var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func escape(key string) string {
	return pathEscaper.Replace(key)
}
