// Package hierarchy builds parent/child forests out of flat node sets.
//
// Nodes reference their parent by id only. An Arena indexes the set once and
// answers tree and descendant queries over positions in that index, so no node
// ever holds a pointer to its parent.
package hierarchy

// Node is anything that carries its own id and an optional parent id.
type Node[K comparable] interface {
	NodeID() K
	ParentNodeID() (K, bool)
}

// TreeNode is one node of a built tree with its children in input order.
type TreeNode[N any] struct {
	Item     N
	Children []*TreeNode[N]
}

// Arena is an id-indexed view over a flat node set.
type Arena[K comparable, N Node[K]] struct {
	nodes    []N
	index    map[K]int
	children map[K][]int
}

// NewArena indexes nodes by id and groups them by parent id in a single pass.
// When two nodes share an id the first one wins.
func NewArena[K comparable, N Node[K]](nodes []N) *Arena[K, N] {
	a := &Arena[K, N]{
		nodes:    nodes,
		index:    make(map[K]int, len(nodes)),
		children: make(map[K][]int),
	}

	for i, n := range nodes {
		if _, exists := a.index[n.NodeID()]; !exists {
			a.index[n.NodeID()] = i
		}
		if parentID, ok := n.ParentNodeID(); ok {
			a.children[parentID] = append(a.children[parentID], i)
		}
	}

	return a
}

// Get returns the node with the given id.
func (a *Arena[K, N]) Get(id K) (N, bool) {
	i, ok := a.index[id]
	if !ok {
		var zero N
		return zero, false
	}
	return a.nodes[i], true
}

// Contains reports whether a node with the given id is in the set.
func (a *Arena[K, N]) Contains(id K) bool {
	_, ok := a.index[id]
	return ok
}

// isRoot reports whether the node has no parent or its parent is absent from the set.
func (a *Arena[K, N]) isRoot(n N) bool {
	parentID, ok := n.ParentNodeID()
	if !ok {
		return true
	}
	return !a.Contains(parentID)
}

// Tree returns the root-level nodes with children populated.
// Nodes whose parent is missing from the set are returned as roots.
func (a *Arena[K, N]) Tree() []*TreeNode[N] {
	roots := make([]*TreeNode[N], 0)
	for i, n := range a.nodes {
		if a.index[n.NodeID()] != i {
			continue
		}
		if a.isRoot(n) {
			roots = append(roots, a.subtree(i, map[int]bool{}))
		}
	}
	return roots
}

func (a *Arena[K, N]) subtree(i int, seen map[int]bool) *TreeNode[N] {
	seen[i] = true
	node := &TreeNode[N]{Item: a.nodes[i], Children: make([]*TreeNode[N], 0)}
	for _, c := range a.children[a.nodes[i].NodeID()] {
		if seen[c] {
			continue
		}
		node.Children = append(node.Children, a.subtree(c, seen))
	}
	return node
}

// DescendantIDs returns rootID followed by every transitive child id in breadth-first
// discovery order. rootID is returned even when it is not part of the set.
func (a *Arena[K, N]) DescendantIDs(rootID K) []K {
	ids := []K{rootID}
	visited := map[K]bool{rootID: true}

	for head := 0; head < len(ids); head++ {
		for _, c := range a.children[ids[head]] {
			childID := a.nodes[c].NodeID()
			if visited[childID] {
				continue
			}
			visited[childID] = true
			ids = append(ids, childID)
		}
	}

	return ids
}

// BuildTree groups a flat node set into a forest.
func BuildTree[K comparable, N Node[K]](nodes []N) []*TreeNode[N] {
	return NewArena[K, N](nodes).Tree()
}

// DescendantIDs returns rootID plus all transitive child ids found in nodes.
func DescendantIDs[K comparable, N Node[K]](nodes []N, rootID K) []K {
	return NewArena[K, N](nodes).DescendantIDs(rootID)
}
