package mailbox

import "strings"

const noSelectAttribute = `\Noselect`

type Info struct {
	// The server's path separator.
	Delimiter string
	// The mailbox name.
	Name string
	// The mailbox attributes, like \Noselect or \HasChildren.
	Attributes []string
}

// Selectable returns false for the folders only used as a level in the hierarchy
func (i Info) Selectable() bool {
	for _, attribute := range i.Attributes {
		if strings.EqualFold(attribute, noSelectAttribute) {
			return false
		}
	}
	return true
}

// Level returns the depth of the folder in the hierarchy, starting at 0
func (i Info) Level() int {
	if i.Delimiter == "" {
		return 0
	}
	return strings.Count(i.Name, i.Delimiter)
}
