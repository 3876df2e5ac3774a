package poncho

// --- ID counter ---

// nodeIDCounter is a plain counter; poncho is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental display list element. A single flat struct is used
// for all node types; Type selects which payload field is read during render.
//
// A node is owned by its parent. The only other references the framework
// keeps are the non-owning pointer hit targets held by the input dispatcher
// for one frame of lookback.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is in degrees, clockwise-positive.
	X, Y      float64
	ScaleX    float64
	ScaleY    float64
	Rotation  float64
	PivotX    float64
	PivotY    float64
	PivotMode PivotMode

	// Tint. Multiplied into every descendant.
	Color Color
	Alpha float64

	// Visibility & interaction
	Visible       bool // false skips rendering and hit testing for the whole subtree
	MouseEnabled  bool // false excludes only this node from being a hit target
	MouseChildren bool // false excludes every descendant from hit testing

	// Payload
	Image *Image     // NodeTypeSprite
	Text  *TextField // NodeTypeText

	// Metadata
	UserData any
	EntityID uint32

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.MouseEnabled = true
	n.MouseChildren = true
}

// NewContainer creates a container node with no visual representation.
// Containers are never hit directly; only their rendered descendants are.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders img. The image's pivot is
// copied into the node as an absolute pivot. img may be nil; the sprite then
// renders nothing until Image is assigned.
func NewSprite(name string, img *Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	if img != nil {
		n.PivotX = img.Pivot.X
		n.PivotY = img.Pivot.Y
	}
	return n
}

// NewText creates a text node with the given content and format. Text pivots
// are normalized: (0.5, 0.5) centers the text on the node's position.
func NewText(name, content string, format TextFormat) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		Text: &TextField{
			Content:   content,
			Format:    format,
			Multiline: true,
		},
		PivotMode: PivotNormalized,
	}
	nodeDefaults(n)
	return n
}

// isContainer reports whether the node may hold children.
func (n *Node) isContainer() bool {
	return n.Type != NodeTypeText
}

// --- Tree manipulation ---

// AddChild appends child to this node's children. The new child is painted
// in front of every existing sibling.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, this node is a text node, or child is an ancestor
// of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.checkAdd(child, "AddChild")
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index (0 is back-most).
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	n.checkAdd(child, "AddChildAt")
	limit := len(n.children)
	if child.Parent == n {
		// Reinserting among the same siblings shifts the valid range by one.
		limit--
	}
	if index < 0 || index > limit {
		panic("poncho: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

func (n *Node) checkAdd(child *Node, op string) {
	if child == nil {
		panic("poncho: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, op+" (parent)")
		debugCheckDisposed(child, op+" (child)")
	}
	if !n.isContainer() {
		panic("poncho: text nodes cannot have children")
	}
	if isAncestor(child, n) {
		panic("poncho: adding child would create a cycle")
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		panic("poncho: child's parent is not this node")
	}
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	n.checkIndex(index)
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list in paint order. The returned slice MUST NOT
// be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
// Panics if index is out of range.
func (n *Node) ChildAt(index int) *Node {
	n.checkIndex(index)
	return n.children[index]
}

// ChildIndex returns the paint-order index of child, or -1 if child is not a
// direct child of this node.
func (n *Node) ChildIndex(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// ChildByName returns the first direct child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Contains reports whether other is this node or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	return other != nil && isAncestor(n, other)
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child == nil || child.Parent != n {
		panic("poncho: child's parent is not this node")
	}
	n.checkIndex(index)
	oldIndex := n.ChildIndex(child)
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// checkIndex panics when index is not a valid child index. Traversal relies on
// index bounds matching the child count, so a bad index is a programmer error.
func (n *Node) checkIndex(index int) {
	if index < 0 || index >= len(n.children) {
		panic("poncho: child index out of range")
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Image = nil
	if n.Text != nil {
		n.Text.release()
		n.Text = nil
	}
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
