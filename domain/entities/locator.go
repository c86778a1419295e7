package entities

import "fmt"

// XPath templates. The first verb is always the tag name, the rest are attribute values.
const (
	ClassXPath        = "//%s[@class='%s']"
	ClassAndNameXPath = "//%s[@class='%s'][@name='%s']"
)

// Locator is an immutable query expression for zero or more DOM nodes
type Locator string

// BuildLocator - substitutes tag and attribute values into template
func BuildLocator(template, tag string, values ...string) Locator {
	args := make([]any, 0, len(values)+1)
	args = append(args, tag)
	for _, v := range values {
		args = append(args, v)
	}
	return Locator(fmt.Sprintf(template, args...))
}

// ByClass - locator for a tag with an exact class attribute
func ByClass(tag, class string) Locator {
	return BuildLocator(ClassXPath, tag, class)
}

// ByClassAndName - locator for a tag with exact class and name attributes
func ByClassAndName(tag, class, name string) Locator {
	return BuildLocator(ClassAndNameXPath, tag, class, name)
}

func (l Locator) String() string {
	return string(l)
}
