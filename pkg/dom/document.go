package dom

import (
	"strings"
	"sync"

	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/pkg/vdom"
)

// Document is a live element tree rooted at a <body> element.
type Document struct {
	body   *Node
	nextID uint64

	mu   sync.Mutex
	log  []Mutation
	subs map[int]func(Mutation)
	sub  int
}

var _ vdom.Host = (*Document)(nil)

// NewDocument creates a Document with an empty body. Creating the body is
// not recorded in the mutation log.
func NewDocument() *Document {
	d := &Document{subs: make(map[int]func(Mutation))}
	d.body = d.newNode(ElementNode, "body", "")
	return d
}

// Body returns the root element.
func (d *Document) Body() *Node {
	return d.body
}

// NewMountPoint creates <tag id="id"> and appends it to the body.
func (d *Document) NewMountPoint(tag, id string) (*Node, error) {
	h, err := d.CreateElement(tag)
	if err != nil {
		return nil, err
	}
	if id != "" {
		if err := d.SetAttribute(h, "id", id); err != nil {
			return nil, err
		}
	}
	if err := d.AppendChild(d.body, h); err != nil {
		return nil, err
	}
	return h.(*Node), nil
}

// ElementByID returns the first attached element whose id attribute is id.
func (d *Document) ElementByID(id string) *Node {
	var found *Node
	d.body.walk(func(n *Node) bool {
		if n.Type == ElementNode && n.Attrs["id"] == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) (vdom.Handle, error) {
	if !validTag(tag) {
		return nil, errors.New("H001").WithDetailf("tag %q", tag)
	}
	n := d.newNode(ElementNode, strings.ToLower(tag), "")
	d.record(Mutation{Op: OpCreateElement, Target: n.ID, Value: n.Tag})
	return n, nil
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) (vdom.Handle, error) {
	n := d.newNode(TextNode, "", text)
	d.record(Mutation{Op: OpCreateText, Target: n.ID, Value: text})
	return n, nil
}

// SetAttribute sets an attribute on an element.
func (d *Document) SetAttribute(el vdom.Handle, key, value string) error {
	n, err := d.element(el)
	if err != nil {
		return err
	}
	n.Attrs[key] = value
	d.record(Mutation{Op: OpSetAttribute, Target: n.ID, Key: key, Value: value})
	return nil
}

// SetTextContent replaces the content of el. On an element all children are
// removed and, when text is non-empty, a single text node is appended. On a
// text node the data is replaced.
func (d *Document) SetTextContent(el vdom.Handle, text string) error {
	n, err := d.node(el)
	if err != nil {
		return err
	}
	if n.Type == TextNode {
		n.Data = text
		d.record(Mutation{Op: OpSetText, Target: n.ID, Value: text})
		return nil
	}

	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	if text != "" {
		t := d.newNode(TextNode, "", text)
		t.Parent = n
		n.Children = []*Node{t}
	}
	d.record(Mutation{Op: OpSetText, Target: n.ID, Value: text})
	return nil
}

// AppendChild moves child to the end of parent's children.
func (d *Document) AppendChild(parent, child vdom.Handle) error {
	p, c, err := d.pair(parent, child)
	if err != nil {
		return err
	}
	c.detach()
	c.Parent = p
	p.Children = append(p.Children, c)
	d.record(Mutation{Op: OpAppendChild, Target: c.ID, Parent: p.ID})
	return nil
}

// InsertBefore moves child directly before ref among parent's children.
// A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref vdom.Handle) error {
	if ref == nil {
		return d.AppendChild(parent, child)
	}
	p, c, err := d.pair(parent, child)
	if err != nil {
		return err
	}
	r, err := d.node(ref)
	if err != nil {
		return err
	}
	if r.Parent != p {
		return errors.New("H003").WithDetailf("%s is not a child of %s", r, p)
	}
	if c == r {
		return nil
	}

	c.detach()
	i := p.indexOf(r)
	p.Children = append(p.Children, nil)
	copy(p.Children[i+1:], p.Children[i:])
	p.Children[i] = c
	c.Parent = p
	d.record(Mutation{Op: OpInsertBefore, Target: c.ID, Parent: p.ID, Ref: r.ID})
	return nil
}

// RemoveChild detaches child from parent.
func (d *Document) RemoveChild(parent, child vdom.Handle) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if c.Parent != p {
		return errors.New("H003").WithDetailf("%s is not a child of %s", c, p)
	}
	c.detach()
	d.record(Mutation{Op: OpRemoveChild, Target: c.ID, Parent: p.ID})
	return nil
}

// ParentNode returns el's parent, or nil when el is detached or foreign.
func (d *Document) ParentNode(el vdom.Handle) vdom.Handle {
	n, err := d.node(el)
	if err != nil || n.Parent == nil {
		return nil
	}
	return n.Parent
}

// TagName returns the element's tag in upper case, or "" for text nodes
// and foreign handles.
func (d *Document) TagName(el vdom.Handle) string {
	n, err := d.node(el)
	if err != nil || n.Type != ElementNode {
		return ""
	}
	return strings.ToUpper(n.Tag)
}

// GetElementByID resolves an attached element by id.
func (d *Document) GetElementByID(id string) (vdom.Handle, error) {
	n := d.ElementByID(id)
	if n == nil {
		return nil, errors.New("V002").WithDetailf("no element with id %q", id)
	}
	return n, nil
}

func (d *Document) newNode(typ NodeType, tag, data string) *Node {
	d.nextID++
	n := &Node{ID: d.nextID, Type: typ, Tag: tag, Data: data, doc: d}
	if typ == ElementNode {
		n.Attrs = make(map[string]string)
	}
	return n
}

func (d *Document) node(h vdom.Handle) (*Node, error) {
	n, ok := h.(*Node)
	if !ok || n == nil || n.doc != d {
		return nil, errors.New("H002").WithDetailf("%T", h)
	}
	return n, nil
}

func (d *Document) element(h vdom.Handle) (*Node, error) {
	n, err := d.node(h)
	if err != nil {
		return nil, err
	}
	if n.Type != ElementNode {
		return nil, errors.New("H004").WithDetail(n.String())
	}
	return n, nil
}

// pair resolves a parent element and a child that may be moved under it.
func (d *Document) pair(parent, child vdom.Handle) (*Node, *Node, error) {
	p, err := d.element(parent)
	if err != nil {
		return nil, nil, err
	}
	c, err := d.node(child)
	if err != nil {
		return nil, nil, err
	}
	if c.Contains(p) {
		return nil, nil, errors.New("H005").WithDetailf("%s contains %s", c, p)
	}
	return p, c, nil
}

func validTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}
