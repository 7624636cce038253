package preview

import (
	"encoding/json"

	"github.com/vango-dev/reactree/pkg/dom"
)

// MessageType names a preview websocket message.
type MessageType string

const (
	// Server to client.
	TypeHello MessageType = "hello"
	TypeHTML  MessageType = "html"
	TypePatch MessageType = "patch"
	TypeError MessageType = "error"

	// Client to server.
	TypeSet MessageType = "set"
)

// Message is one websocket frame in either direction.
type Message struct {
	Type MessageType `json:"type"`

	// ID is the client id, sent with hello.
	ID string `json:"id,omitempty"`

	// Key and Value carry a set request. Key may be a dotted path.
	Key   string          `json:"key,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`

	// HTML is the serialized mount element after the change.
	HTML string `json:"html,omitempty"`

	// Mutations are the host operations performed by the change.
	Mutations []dom.Mutation `json:"mutations,omitempty"`

	// Updates is the App's update count after the change.
	Updates int `json:"updates,omitempty"`

	// Code and Error describe a failure.
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}
