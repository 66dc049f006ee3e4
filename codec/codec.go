// Package codec provides the JSON encoders behind the JSON report format.
package codec

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// ErrUnknown is returned by Lookup for names that are not registered.
var ErrUnknown = errors.New("codec: unknown codec")

// Encoder writes one JSON document per Encode call, each terminated by a
// newline. HTML characters are not escaped.
type Encoder interface {
	Encode(v any) error
}

// Codec creates line encoders and decodes single documents.
// Implementations must be safe for concurrent use; encoders are not.
type Codec interface {
	Name() string
	NewEncoder(w io.Writer) Encoder
	Unmarshal(data []byte, v any) error
}

var (
	// JSON is backed by encoding/json. Its output is the reference other
	// tools diff against.
	JSON Codec = stdJSON{}

	// GoJSON is backed by github.com/goccy/go-json.
	GoJSON Codec = goJSON{}

	// Default is used when no codec is configured.
	Default = GoJSON
)

var registry = map[string]Codec{
	JSON.Name():   JSON,
	GoJSON.Name(): GoJSON,
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	if c, ok := registry[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}

// Names returns the registered codec names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
