package nessus

import (
	"strings"

	"github.com/beevik/etree"
)

// Document is a parsed report. Lookups never fail; absence is reported
// through the boolean of the (value, ok) pair.
type Document struct {
	root *etree.Element
}

// Host is a ReportHost element.
type Host struct {
	el *etree.Element
}

// Item is a ReportItem element, one finding.
type Item struct {
	el *etree.Element
}

// Hosts returns every ReportHost in document order.
func (d *Document) Hosts() []Host {
	els := descendants(d.root, "ReportHost")
	hosts := make([]Host, 0, len(els))
	for _, el := range els {
		hosts = append(hosts, Host{el: el})
	}
	return hosts
}

// Name returns the host's name attribute verbatim, "" when missing.
func (h Host) Name() string {
	return h.el.SelectAttrValue("name", "")
}

// Tag returns the value of the host property <tag name="name">.
// Empty values count as absent.
func (h Host) Tag(name string) (string, bool) {
	el := h.el.FindElement(".//tag[@name='" + name + "']")
	if el == nil {
		return "", false
	}
	v := strings.TrimSpace(el.Text())
	return v, v != ""
}

// Items returns every ReportItem beneath the host, at any depth, in
// document order.
func (h Host) Items() []Item {
	els := descendants(h.el, "ReportItem")
	items := make([]Item, 0, len(els))
	for _, el := range els {
		items = append(items, Item{el: el})
	}
	return items
}

// Attr returns an attribute of the item.
func (i Item) Attr(name string) (string, bool) {
	a := i.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// AttrOr returns an attribute of the item or def when it is missing.
func (i Item) AttrOr(name, def string) string {
	return i.el.SelectAttrValue(name, def)
}

// ChildText returns the trimmed text of the first direct child named tag.
// Missing or empty children count as absent.
func (i Item) ChildText(tag string) (string, bool) {
	el := i.el.SelectElement(tag)
	if el == nil {
		return "", false
	}
	v := strings.TrimSpace(el.Text())
	return v, v != ""
}

// descendants collects every element named tag below el in document
// (pre-order) order. etree's ".//" path walks level by level instead.
func descendants(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(parent *etree.Element) {
		for _, child := range parent.ChildElements() {
			if child.Tag == tag {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(el)
	return out
}
