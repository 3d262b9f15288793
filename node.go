package textbase

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
)

// Node is a persistent binary tree over spans.
//
// A node is one of
//
//	Empty        width 0, height 0
//	Leaf(span)   width of span, height 1
//	Branch(l,r)  width(l)+width(r), max(height(l),height(r))+1
//
// Nodes are never modified after construction. Every operation returns a new
// tree, re-using unchanged subtrees of the old one. Thus any number of clients
// may hold on to older versions of a text.
//
// Structural operations keep the tree height logarithmic in the number of
// spans: every branch rebuilt on the path of an edit is rebalanced by
// rotations, and subtrees of different height are joined along the spine of
// the taller one.
//
// A nil *Node is a valid empty tree.
type Node struct {
	left, right *Node
	span        Span
	width       int
	height      int
	full        bool // perfect subtree: all leaves at the same depth
}

var emptyNode = &Node{}

// Empty returns the empty tree.
func Empty() *Node {
	return emptyNode
}

// Leaf creates a tree for a single span. A nil span yields the empty tree.
func Leaf(s Span) *Node {
	if s == nil {
		return emptyNode
	}
	return &Node{span: s, width: s.Width(), height: 1, full: true}
}

// Branch creates an inner node with children l and r. Either child may be
// empty. Branch does not balance its children.
func Branch(l, r *Node) *Node {
	if l == nil {
		l = emptyNode
	}
	if r == nil {
		r = emptyNode
	}
	return newBranch(l, r)
}

func newBranch(l, r *Node) *Node {
	return &Node{
		left:   l,
		right:  r,
		width:  l.width + r.width,
		height: max(l.height, r.height) + 1,
		full:   l.full && r.full && l.height == r.height,
	}
}

// Width is the number of code points of the text in the tree.
func (n *Node) Width() int {
	if n == nil {
		return 0
	}
	return n.width
}

// Height is the height of the tree, 0 for the empty tree and 1 for a leaf.
func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	return n.height
}

// IsEmpty is true for the empty tree.
func (n *Node) IsEmpty() bool {
	return n == nil || n.height == 0
}

// IsLeaf is true for a leaf node.
func (n *Node) IsLeaf() bool {
	return n != nil && n.span != nil
}

// IsBranch is true for an inner node.
func (n *Node) IsBranch() bool {
	return n != nil && n.span == nil && n.height > 0
}

// Span returns the span of a leaf, nil otherwise.
func (n *Node) Span() Span {
	if n == nil {
		return nil
	}
	return n.span
}

// Left returns the left child of a branch, the empty tree otherwise.
func (n *Node) Left() *Node {
	if !n.IsBranch() {
		return emptyNode
	}
	return n.left
}

// Right returns the right child of a branch, the empty tree otherwise.
func (n *Node) Right() *Node {
	if !n.IsBranch() {
		return emptyNode
	}
	return n.right
}

// Text returns the text of all spans, without markup. Creating the text
// allocates a string of the size of the whole tree; clients working with large
// texts should prefer iterating over Spans.
func (n *Node) Text() string {
	var sb strings.Builder
	for s := range n.Spans() {
		sb.WriteString(s.Text())
	}
	return sb.String()
}

func (n *Node) String() string {
	switch {
	case n.IsEmpty():
		return "Empty"
	case n.IsLeaf():
		return fmt.Sprintf("Leaf(%s)", n.span)
	}
	return fmt.Sprintf("Branch(w=%d,h=%d)", n.width, n.height)
}

// --- Appending -------------------------------------------------------------

// Append returns a new tree with span s added at the end.
//
// Appending packs spans to the right: a perfect subtree (all leaves at the
// same depth) becomes the left child of a new branch with the new leaf on the
// right; otherwise the new leaf is appended to the right child. For a tree
// built by appending n spans only, this fills the tree like a binary counter
// and keeps its height at ⌈log₂ n⌉+1.
func (n *Node) Append(s Span) *Node {
	if s == nil {
		return n.orEmpty()
	}
	return appendLeaf(n, Leaf(s))
}

func appendLeaf(n, leaf *Node) *Node {
	switch {
	case n.IsEmpty():
		return leaf
	case n.IsLeaf():
		return branch(n, leaf)
	}
	l, r := n.left, n.right
	switch {
	case l.IsEmpty() && r.IsEmpty():
		return leaf
	case r.IsEmpty():
		return branch(l, leaf)
	case l.IsEmpty():
		return appendLeaf(r, leaf)
	case n.full:
		return branch(n, leaf)
	}
	return rebalance(l, appendLeaf(r, leaf))
}

// --- Balancing -------------------------------------------------------------

// branch creates an inner node, collapsing empty children.
func branch(l, r *Node) *Node {
	if l.IsEmpty() {
		return r.orEmpty()
	}
	if r.IsEmpty() {
		return l
	}
	return newBranch(l, r)
}

// rebalance creates a branch over l and r, rotating once or twice if their
// heights differ by more than 1.
func rebalance(l, r *Node) *Node {
	hl, hr := l.Height(), r.Height()
	switch {
	case hl > hr+1 && l.IsBranch():
		if l.left.Height() >= l.right.Height() {
			return branch(l.left, branch(l.right, r))
		}
		if lr := l.right; lr.IsBranch() {
			return branch(branch(l.left, lr.left), branch(lr.right, r))
		}
	case hr > hl+1 && r.IsBranch():
		if r.right.Height() >= r.left.Height() {
			return branch(branch(l, r.left), r.right)
		}
		if rl := r.left; rl.IsBranch() {
			return branch(branch(l, rl.left), branch(rl.right, r.right))
		}
	}
	return branch(l, r)
}

// join concatenates two trees. If their heights differ by more than 1, the
// smaller one is joined along the inner spine of the taller one, with each
// rebuilt branch rebalanced.
func join(l, r *Node) *Node {
	if l.IsEmpty() {
		return r.orEmpty()
	}
	if r.IsEmpty() {
		return l
	}
	hl, hr := l.Height(), r.Height()
	switch {
	case hl > hr+1 && l.IsBranch():
		return rebalance(l.left, join(l.right, r))
	case hr > hl+1 && r.IsBranch():
		return rebalance(join(l, r.left), r.right)
	}
	return branch(l, r)
}

// split divides a tree at offset into two trees. Subtrees completely on one
// side are re-used, only a leaf straddling offset has its span split.
func split(n *Node, offset int) (*Node, *Node) {
	switch {
	case n.IsEmpty():
		return emptyNode, emptyNode
	case offset <= 0:
		return emptyNode, n
	case offset >= n.Width():
		return n, emptyNode
	case n.IsLeaf():
		a, err := n.span.Split(0, offset)
		assert(err == nil, "split: leaf span cannot be split at offset")
		b, err := n.span.SplitFrom(offset)
		assert(err == nil, "split: leaf span cannot be split at offset")
		return Leaf(a), Leaf(b)
	}
	lw := n.left.Width()
	if offset < lw {
		ll, lr := split(n.left, offset)
		return ll, join(lr, n.right)
	}
	if offset > lw {
		rl, rr := split(n.right, offset-lw)
		return join(n.left, rl), rr
	}
	return n.left, n.right
}

// Concat returns a new tree holding the text of a followed by the text of b.
func Concat(a, b *Node) *Node {
	return join(a, b)
}

// Rebalance returns a tree of minimal height over the same spans.
func (n *Node) Rebalance() *Node {
	spans := make([]Span, 0, 16)
	for s := range n.Spans() {
		spans = append(spans, s)
	}
	return buildBalanced(spans)
}

func buildBalanced(spans []Span) *Node {
	switch len(spans) {
	case 0:
		return emptyNode
	case 1:
		return Leaf(spans[0])
	}
	m := (len(spans) + 1) / 2
	return branch(buildBalanced(spans[:m]), buildBalanced(spans[m:]))
}

// RotateLeft makes the right child of a branch the new root. If the right
// child is not a branch, n is returned unchanged.
func (n *Node) RotateLeft() *Node {
	if !n.IsBranch() || !n.right.IsBranch() {
		return n.orEmpty()
	}
	r := n.right
	return Branch(Branch(n.left, r.left), r.right)
}

// RotateRight makes the left child of a branch the new root. If the left
// child is not a branch, n is returned unchanged.
func (n *Node) RotateRight() *Node {
	if !n.IsBranch() || !n.left.IsBranch() {
		return n.orEmpty()
	}
	l := n.left
	return Branch(l.left, Branch(l.right, n.right))
}

func (n *Node) orEmpty() *Node {
	if n == nil {
		return emptyNode
	}
	return n
}

// --- Editing ---------------------------------------------------------------

// InsertTreeAt returns a new tree with subtree inserted at offset.
// Inserting at offset 0 or at the end attaches subtree directly; inserting in
// the middle of a span splits that span.
func (n *Node) InsertTreeAt(offset int, subtree *Node) (*Node, error) {
	if offset < 0 || offset > n.Width() {
		return n.orEmpty(), fmt.Errorf("%w: insert at %d in tree of width %d",
			ErrIndexOutOfBounds, offset, n.Width())
	}
	if subtree.IsEmpty() {
		return n.orEmpty(), nil
	}
	return insertAt(n.orEmpty(), offset, subtree), nil
}

func insertAt(n *Node, offset int, sub *Node) *Node {
	switch {
	case offset == 0:
		return join(sub, n)
	case offset == n.Width():
		return join(n, sub)
	case n.IsLeaf():
		before, after := split(n, offset)
		return join(join(before, sub), after)
	}
	lw := n.left.Width()
	if offset <= lw {
		return join(insertAt(n.left, offset, sub), n.right)
	}
	return join(n.left, insertAt(n.right, offset-lw, sub))
}

// Subset returns a tree for the text in [offset, offset+width). Subtrees
// completely contained in the range are shared with n.
func (n *Node) Subset(offset, width int) (*Node, error) {
	if offset < 0 || width < 0 || offset+width > n.Width() {
		return emptyNode, fmt.Errorf("%w: subset [%d,%d) of tree of width %d",
			ErrIndexOutOfBounds, offset, offset+width, n.Width())
	}
	_, r := split(n.orEmpty(), offset)
	l, _ := split(r, width)
	return l, nil
}

// Delete returns a new tree with the text in [offset, offset+width) removed.
func (n *Node) Delete(offset, width int) (*Node, error) {
	if offset < 0 || width < 0 || offset+width > n.Width() {
		return n.orEmpty(), fmt.Errorf("%w: delete [%d,%d) from tree of width %d",
			ErrIndexOutOfBounds, offset, offset+width, n.Width())
	}
	l, r := split(n.orEmpty(), offset)
	_, r = split(r, width)
	return join(l, r), nil
}

// --- Lookup ----------------------------------------------------------------

// SpanAt returns the span containing position offset, together with the
// position within that span.
func (n *Node) SpanAt(offset int) (Span, int, error) {
	if offset < 0 || offset >= n.Width() {
		return nil, 0, fmt.Errorf("%w: position %d in tree of width %d",
			ErrIndexOutOfBounds, offset, n.Width())
	}
	for !n.IsLeaf() {
		if lw := n.left.Width(); offset < lw {
			n = n.left
		} else {
			n, offset = n.right, offset-lw
		}
	}
	return n.span, offset, nil
}

// CharAt returns the code point at position offset.
func (n *Node) CharAt(offset int) (rune, error) {
	s, i, err := n.SpanAt(offset)
	if err != nil {
		return 0, err
	}
	return s.Char(i)
}

// --- Traversal -------------------------------------------------------------

// Spans iterates over the spans of the tree, left to right.
// The iteration is lazy; breaking out of the loop stops it.
func (n *Node) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		n.eachSpan(yield)
	}
}

func (n *Node) eachSpan(yield func(Span) bool) bool {
	switch {
	case n.IsEmpty():
		return true
	case n.IsLeaf():
		return yield(n.span)
	}
	return n.left.eachSpan(yield) && n.right.eachSpan(yield)
}

// Chars iterates over the code points of the tree, together with their
// positions.
func (n *Node) Chars() iter.Seq2[int, rune] {
	return n.CharsInRange(0, n.Width())
}

// SpansInRange iterates over the spans covering [offset, offset+width).
// Spans at the borders of the range are cut to fit. The range is clipped to
// the extent of the tree.
func (n *Node) SpansInRange(offset, width int) iter.Seq[Span] {
	from, to := clip(offset, width, n.Width())
	return func(yield func(Span) bool) {
		n.eachSpanInRange(0, from, to, yield)
	}
}

func (n *Node) eachSpanInRange(pos, from, to int, yield func(Span) bool) bool {
	if n.IsEmpty() || from >= to || pos >= to || pos+n.width <= from {
		return true
	}
	if n.IsLeaf() {
		s := n.span
		b, e := max(from-pos, 0), min(to-pos, n.width)
		if b > 0 || e < n.width {
			var err error
			s, err = s.Split(b, e)
			assert(err == nil, "range iteration: cannot cut span")
		}
		return yield(s)
	}
	return n.left.eachSpanInRange(pos, from, to, yield) &&
		n.right.eachSpanInRange(pos+n.left.width, from, to, yield)
}

// CharsInRange iterates over the code points in [offset, offset+width),
// together with their positions.
func (n *Node) CharsInRange(offset, width int) iter.Seq2[int, rune] {
	from, _ := clip(offset, width, n.Width())
	return func(yield func(int, rune) bool) {
		pos := from
		for s := range n.SpansInRange(offset, width) {
			for i := 0; i < s.Width(); i++ {
				r, _ := s.Char(i)
				if !yield(pos, r) {
					return
				}
				pos++
			}
		}
	}
}

func clip(offset, width, total int) (int, int) {
	from := min(max(offset, 0), total)
	to := min(max(offset+max(width, 0), from), total)
	return from, to
}

// --- Word boundaries -------------------------------------------------------

// WordBoundaryBefore returns the start position of the word containing
// offset: the largest position p ≤ offset which is either 0 or preceded by a
// delimiter. If isDelim is nil, white space delimits words.
func (n *Node) WordBoundaryBefore(offset int, isDelim func(rune) bool) int {
	if isDelim == nil {
		isDelim = unicode.IsSpace
	}
	offset = min(max(offset, 0), n.Width())
	if offset == 0 {
		return 0
	}
	if p := n.delimBefore(offset, isDelim); p >= 0 {
		return p
	}
	return 0
}

// delimBefore returns the position after the last delimiter in [0,end), or -1.
func (n *Node) delimBefore(end int, isDelim func(rune) bool) int {
	if n.IsEmpty() || end <= 0 {
		return -1
	}
	if n.IsLeaf() {
		for i := min(end, n.width) - 1; i >= 0; i-- {
			if r, _ := n.span.Char(i); isDelim(r) {
				return i + 1
			}
		}
		return -1
	}
	lw := n.left.Width()
	if end > lw {
		if p := n.right.delimBefore(end-lw, isDelim); p >= 0 {
			return lw + p
		}
	}
	return n.left.delimBefore(min(end, lw), isDelim)
}

// WordBoundaryAfter returns the end position of the word containing offset:
// the smallest position p ≥ offset which is either the width of the tree or
// the position of a delimiter. If isDelim is nil, white space delimits words.
func (n *Node) WordBoundaryAfter(offset int, isDelim func(rune) bool) int {
	if isDelim == nil {
		isDelim = unicode.IsSpace
	}
	w := n.Width()
	offset = min(max(offset, 0), w)
	if offset == w {
		return w
	}
	if p := n.delimFrom(offset, isDelim); p >= 0 {
		return p
	}
	return w
}

// delimFrom returns the position of the first delimiter in [start,width), or -1.
func (n *Node) delimFrom(start int, isDelim func(rune) bool) int {
	if n.IsEmpty() || start >= n.width {
		return -1
	}
	if n.IsLeaf() {
		for i := max(start, 0); i < n.width; i++ {
			if r, _ := n.span.Char(i); isDelim(r) {
				return i
			}
		}
		return -1
	}
	lw := n.left.Width()
	if start < lw {
		if p := n.left.delimFrom(start, isDelim); p >= 0 {
			return p
		}
	}
	if p := n.right.delimFrom(max(start-lw, 0), isDelim); p >= 0 {
		return lw + p
	}
	return -1
}
