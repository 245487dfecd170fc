// Package formatter renders document trees for non-interactive output:
// an ASCII tree, or re-encoded JSON/YAML.
package formatter

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/jvx/pkg/tree"
	"github.com/oakwood-commons/jvx/pkg/value"
)

// Output format names accepted by --output.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats contains all valid output format values.
var ValidFormats = []string{FormatTree, FormatJSON, FormatYAML}

// ValidateFormat returns an error if the format is not recognized.
func ValidateFormat(format string) error {
	for _, valid := range ValidFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q: valid values are tree, json, yaml", format)
}

// TreeOptions controls tree output formatting.
type TreeOptions struct {
	// MaxDepth limits tree depth (0 = unlimited). Branches cut off by the
	// limit end in a "..." node.
	MaxDepth int
}

// Format renders root in the given output format.
func Format(root *value.Value, format string, opts TreeOptions) (string, error) {
	switch format {
	case FormatTree:
		return FormatAsTree(tree.Build(root), opts), nil
	case FormatJSON:
		out, err := value.EncodeJSON(root, "  ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	case FormatYAML:
		out, err := value.EncodeYAML(root)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("invalid output format %q: valid values are tree, json, yaml", format)
	}
}

// FormatAsTree renders prebuilt nodes as an ASCII tree. Containers become
// branches labeled with their selector, leaves show selector and value.
func FormatAsTree(nodes []*tree.Node, opts TreeOptions) string {
	root := treeprint.New()
	addNodes(root, nodes, opts, 0)
	return root.String()
}

func addNodes(branch treeprint.Tree, nodes []*tree.Node, opts TreeOptions, depth int) {
	for _, n := range nodes {
		if len(n.Children) == 0 {
			branch.AddNode(n.Label)
			continue
		}
		child := branch.AddBranch(n.Label)
		if opts.MaxDepth > 0 && depth+1 >= opts.MaxDepth {
			child.AddNode("...")
			continue
		}
		addNodes(child, n.Children, opts, depth+1)
	}
}
