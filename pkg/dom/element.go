package dom

// Element is a node a view can bind to.
type Element interface {
	// Find returns the descendants of this element matching selector, in
	// document order. The element itself is never part of the result.
	Find(selector string) Selection

	// Matches reports whether this element matches selector.
	Matches(selector string) bool

	// Parent returns the parent element, or nil at the top of the tree.
	Parent() Element

	// Tag returns the lower-case tag name.
	Tag() string

	// AddClass adds class tokens. Tokens already present are not repeated.
	AddClass(classes ...string)
	HasClass(class string) bool
	Classes() []string

	Attr(key string) (string, bool)
	SetAttr(key, value string)

	// Empty removes every child node.
	Empty()

	// Append moves children to the end of this element's child list.
	Append(children ...Element)

	// Detach removes this element from its parent.
	Detach()

	// Events returns the element's scoped delegation target.
	Events() EventTarget
}

// Selection is an ordered set of elements produced by a lookup.
type Selection []Element

// Select wraps a single element, treating nil as no match.
func Select(el Element) Selection {
	if el == nil {
		return nil
	}
	return Selection{el}
}

// Len returns the number of matched elements.
func (s Selection) Len() int { return len(s) }

// IsEmpty reports whether nothing was matched.
func (s Selection) IsEmpty() bool { return len(s) == 0 }

// First returns a selection holding only the first element.
func (s Selection) First() Selection {
	if len(s) == 0 {
		return nil
	}
	return s[:1]
}

// Get returns the i-th element or nil.
func (s Selection) Get(i int) Element {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// Find runs selector against every element and concatenates the results,
// dropping duplicates.
func (s Selection) Find(selector string) Selection {
	var out Selection
	seen := make(map[Element]struct{})
	for _, el := range s {
		for _, m := range el.Find(selector) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

// Each calls fn for every element.
func (s Selection) Each(fn func(i int, el Element)) {
	for i, el := range s {
		fn(i, el)
	}
}

// Empty clears the content of every element.
func (s Selection) Empty() {
	for _, el := range s {
		el.Empty()
	}
}

// Append moves children into the first element. An element can only live in
// one place, so later elements of the selection are left alone.
func (s Selection) Append(children ...Element) {
	if len(s) == 0 {
		return
	}
	s[0].Append(children...)
}

// AddClass adds class tokens to every element.
func (s Selection) AddClass(classes ...string) {
	for _, el := range s {
		el.AddClass(classes...)
	}
}
