package textbase

import (
	"fmt"
	"io"
	"strings"
)

type nodeids struct {
	idTable map[*Node]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[*Node]int),
		max:     1,
	}
}

func (ids nodeids) find(node *Node) int {
	return ids.idTable[node]
}

func (ids *nodeids) alloc(node *Node) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Node2Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes).
//
// Subtrees shared between parts of the tree are drawn once.
func Node2Dot(root *Node, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable()
	var nodelist, edgelist strings.Builder
	var walk func(n *Node, pos int)
	walk = func(n *Node, pos int) {
		ID := ids.alloc(n)
		styles := nodeDotStyles(n.IsLeaf())
		switch {
		case n.IsEmpty():
			fmt.Fprintf(&nodelist, "\"%d\" %s;\n", ID, emptyNodeStyle())
		case n.IsLeaf():
			label := fmt.Sprintf("%d @%d\\n%s", n.Width(), pos, dotLabel(n.span))
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", ID, label, styles)
		default:
			for _, child := range []*Node{n.left, n.right} {
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", ID, ids.alloc(child))
			}
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%d/%d\" %s];\n", ID, n.Width(), n.Height(), styles)
			walk(n.left, pos)
			walk(n.right, pos+n.left.Width())
		}
	}
	walk(root.orEmpty(), 0)
	io.WriteString(w, nodelist.String())
	io.WriteString(w, edgelist.String())
	io.WriteString(w, "}\n")
}

func dotLabel(s Span) string {
	text := s.String()
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "\"", "\\\"")
	return strings.ReplaceAll(text, "\n", "\\\\n")
}

func emptyNodeStyle() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
