package codec

import (
	"encoding/json"
	"io"

	gojson "github.com/goccy/go-json"
)

type stdJSON struct{}

func (stdJSON) Name() string { return "json" }

func (stdJSON) NewEncoder(w io.Writer) Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

func (stdJSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type goJSON struct{}

func (goJSON) Name() string { return "go-json" }

func (goJSON) NewEncoder(w io.Writer) Encoder {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

func (goJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
