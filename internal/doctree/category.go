package doctree

// Category groups element names by the role they play in segmentation.
type Category int

const (
	Other Category = iota
	Heading
	Paragraph
	Container
	List
	ListItem
	Table
	TablePart
	LineBreak
)

var categories = map[string]Category{
	"h1": Heading, "h2": Heading, "h3": Heading, "h4": Heading, "h5": Heading, "h6": Heading,
	"p": Paragraph, "pre": Paragraph, "blockquote": Paragraph, "address": Paragraph,
	"div": Container, "section": Container, "article": Container, "main": Container,
	"header": Container, "footer": Container, "aside": Container, "nav": Container,
	"figure": Container, "center": Container, "body": Container,
	"ul": List, "ol": List, "dl": List,
	"li": ListItem, "dt": ListItem, "dd": ListItem,
	"table": Table,
	"thead": TablePart, "tbody": TablePart, "tfoot": TablePart, "tr": TablePart,
	"td": TablePart, "th": TablePart, "caption": TablePart,
	"br": LineBreak, "hr": LineBreak,
}

// CategoryOf classifies an element name.
func CategoryOf(tag string) Category {
	return categories[tag]
}

// IsBlock reports whether tag starts a new line of text when flattened.
func IsBlock(tag string) bool {
	return CategoryOf(tag) != Other
}

// Category of the block with the given id; text runs are Other.
func (t *Tree) Category(id NodeID) Category {
	return CategoryOf(t.Nodes[id].Tag)
}

// HasBlockChildren reports whether any direct child of id is a block-level element.
func (t *Tree) HasBlockChildren(id NodeID) bool {
	for _, c := range t.Nodes[id].Children {
		if t.Nodes[c].Type == ElementNode && IsBlock(t.Nodes[c].Tag) && t.Category(c) != LineBreak {
			return true
		}
	}
	return false
}

// ElementChildren returns the direct element children of id with the given tag.
func (t *Tree) ElementChildren(id NodeID, tag string) []NodeID {
	var out []NodeID
	for _, c := range t.Nodes[id].Children {
		if t.Nodes[c].Type == ElementNode && t.Nodes[c].Tag == tag {
			out = append(out, c)
		}
	}
	return out
}
