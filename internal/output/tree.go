package output

import (
	"strings"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// repeatMarker follows a node whose subtree was already printed.
	repeatMarker = " (*)"
)

// RenderDependencyTree renders the dependency tree below each root.
// deps maps a resource to its declared dependencies and must be acyclic.
// A node whose dependencies were already printed is shown once more with a
// (*) marker and not expanded again.
func RenderDependencyTree(roots []string, deps map[string][]string) string {
	var sb strings.Builder
	expanded := make(map[string]bool)

	for _, root := range roots {
		sb.WriteString(StyleBold.Render(root))
		if expanded[root] && len(deps[root]) > 0 {
			sb.WriteString(StyleRepeat.Render(repeatMarker))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString("\n")
		expanded[root] = true
		renderChildren(&sb, deps[root], deps, "", expanded)
	}
	return sb.String()
}

func renderChildren(sb *strings.Builder, children []string, deps map[string][]string, prefix string, expanded map[string]bool) {
	for i, child := range children {
		isLast := i == len(children)-1

		connector := treeEdge
		childPrefix := prefix + treeVert
		if isLast {
			connector = treeLast
			childPrefix = prefix + treeSpace
		}

		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(StyleNoun.Render(child))

		if expanded[child] && len(deps[child]) > 0 {
			sb.WriteString(StyleRepeat.Render(repeatMarker))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString("\n")
		expanded[child] = true
		renderChildren(sb, deps[child], deps, childPrefix, expanded)
	}
}
