package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// MatchKind selects how a Matcher tests an element.
type MatchKind int

const (
	MatchAttrEquals MatchKind = iota
	MatchAttrPresent
	MatchAttrContains
	MatchTag
)

// Matcher selects candidate elements. Tag, when set, further restricts
// attribute matchers to elements with that tag name. Contains comparisons
// are case-insensitive.
type Matcher struct {
	Kind  MatchKind
	Tag   string
	Attr  string
	Value string
}

// ScopeKind selects the structural context a matched element must sit in.
type ScopeKind int

const (
	ScopeDocument ScopeKind = iota
	ScopeAncestorTag
	ScopeAncestorAttrEquals
	ScopeAncestorAttrContains
)

// Scope is the context predicate of a Locator.
type Scope struct {
	Kind  ScopeKind
	Tag   string
	Attr  string
	Value string
}

// Locator is one entry of the ordered fallback list used to find the
// display name of the open conversation.
type Locator struct {
	Name   string
	Match  Matcher
	Within Scope
}

func AttrEquals(attr, value string) Matcher {
	return Matcher{Kind: MatchAttrEquals, Attr: attr, Value: value}
}

func AttrPresent(attr string) Matcher {
	return Matcher{Kind: MatchAttrPresent, Attr: attr}
}

func AttrContains(attr, value string) Matcher {
	return Matcher{Kind: MatchAttrContains, Attr: attr, Value: value}
}

func Tag(tag string) Matcher {
	return Matcher{Kind: MatchTag, Tag: tag}
}

// OnTag restricts an attribute matcher to elements named tag.
func (m Matcher) OnTag(tag string) Matcher {
	m.Tag = tag
	return m
}

func Document() Scope {
	return Scope{Kind: ScopeDocument}
}

func InsideTag(tag string) Scope {
	return Scope{Kind: ScopeAncestorTag, Tag: tag}
}

func InsideAttrEquals(attr, value string) Scope {
	return Scope{Kind: ScopeAncestorAttrEquals, Attr: attr, Value: value}
}

func InsideAttrContains(attr, value string) Scope {
	return Scope{Kind: ScopeAncestorAttrContains, Attr: attr, Value: value}
}

// DefaultLocators covers the conversation header, the contact drawer and
// the info panel across the web client versions seen so far. Attribute
// exact matches come first; the aria-label substring search is last.
func DefaultLocators() []Locator {
	return []Locator{
		{Name: "header-title-span", Match: AttrEquals("dir", "auto").OnTag("span"), Within: InsideTag("header")},
		{Name: "header-title-testid", Match: AttrEquals("data-testid", "conversation-info-header-chat-title"), Within: Document()},
		{Name: "header-title-attr", Match: AttrPresent("title").OnTag("span"), Within: InsideTag("header")},
		{Name: "drawer-heading", Match: Tag("h2"), Within: InsideAttrContains("data-testid", "drawer")},
		{Name: "contact-info-title", Match: AttrEquals("data-testid", "contact-info-title"), Within: Document()},
		{Name: "panel-heading", Match: AttrEquals("dir", "auto").OnTag("span"), Within: InsideAttrEquals("role", "region")},
		{Name: "header-aria-label", Match: AttrPresent("aria-label"), Within: InsideTag("header")},
		{Name: "aria-label-profile", Match: AttrContains("aria-label", "profile"), Within: Document()},
		{Name: "aria-label-perfil", Match: AttrContains("aria-label", "perfil"), Within: Document()},
	}
}

func (m Matcher) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if m.Tag != "" && n.Data != m.Tag {
		return false
	}
	switch m.Kind {
	case MatchTag:
		return m.Tag != ""
	case MatchAttrPresent:
		_, ok := attr(n, m.Attr)
		return ok
	case MatchAttrEquals:
		v, ok := attr(n, m.Attr)
		return ok && v == m.Value
	case MatchAttrContains:
		v, ok := attr(n, m.Attr)
		return ok && containsFold(v, m.Value)
	default:
		return false
	}
}

func (s Scope) contains(n *html.Node) bool {
	if s.Kind == ScopeDocument {
		return true
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		switch s.Kind {
		case ScopeAncestorTag:
			if p.Data == s.Tag {
				return true
			}
		case ScopeAncestorAttrEquals:
			if v, ok := attr(p, s.Attr); ok && v == s.Value {
				return true
			}
		case ScopeAncestorAttrContains:
			if v, ok := attr(p, s.Attr); ok && containsFold(v, s.Value) {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
