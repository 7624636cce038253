package vdom

// Host is the live element tree the Renderer mutates. The Renderer never
// owns host elements; it only issues these requests against them.
//
// ParentNode returns nil (an untyped nil) for a detached element.
type Host interface {
	CreateElement(tag string) (Handle, error)
	CreateTextNode(text string) (Handle, error)
	SetAttribute(el Handle, key, value string) error
	SetTextContent(el Handle, text string) error
	AppendChild(parent, child Handle) error
	InsertBefore(parent, child, ref Handle) error
	RemoveChild(parent, child Handle) error
	ParentNode(el Handle) Handle
	TagName(el Handle) string
	GetElementByID(id string) (Handle, error)
}
