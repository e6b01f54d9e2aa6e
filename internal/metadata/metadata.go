// Package metadata decodes the function metadata JSON emitted by a Rhai
// engine into typed records. Decoding is strict: either a whole metadata
// level decodes or the operation fails, there is no partial success.
package metadata

import (
	"encoding/json"
	"fmt"
)

// Module is one level of engine metadata: the module doc comment, the
// functions and custom types registered at that level, and the raw
// submodule metadata keyed by submodule name. Submodules stay raw so the
// tree builder can decode them level by level while preserving the
// declaration order of sibling keys.
type Module struct {
	Doc         *string         `json:"doc"`
	Functions   []Function      `json:"functions"`
	CustomTypes []CustomType    `json:"customTypes"`
	Modules     json.RawMessage `json:"modules"`
}

// Function describes one registered function overload.
type Function struct {
	Access      string   `json:"access"`
	Name        string   `json:"name"`
	Namespace   string   `json:"namespace"`
	NumParams   int      `json:"numParams"`
	Params      []Param  `json:"params"`
	Signature   string   `json:"signature"`
	ReturnType  *string  `json:"returnType"`
	DocComments []string `json:"docComments"`
}

// Documented reports whether the overload carries doc comments. An empty
// comment list still counts: the engine omits the field entirely for
// undocumented functions.
func (f *Function) Documented() bool {
	return f.DocComments != nil
}

// Param is a single parameter descriptor. Either field may be absent.
type Param struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// CustomType describes a registered custom type.
type CustomType struct {
	TypeName    string   `json:"typeName"`
	DisplayName string   `json:"displayName"`
	DocComments []string `json:"docComments"`
}

// Documented reports whether the type carries doc comments.
func (t *CustomType) Documented() bool {
	return t.DocComments != nil
}

// Error reports malformed metadata.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parsing module metadata: %v", e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Decode parses one metadata level.
func Decode(data []byte) (*Module, error) {
	var m Module
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &Error{cause: err}
	}
	return &m, nil
}
