package components

import (
	"bytes"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcraft/pkg/render"
)

type attr struct {
	name  string
	value string
	flag  bool
}

// attrs is an ordered attribute list; empty values are skipped.
type attrs []attr

func (a *attrs) set(name, value string) *attrs {
	if value != "" {
		*a = append(*a, attr{name: name, value: value})
	}
	return a
}

func (a *attrs) flag(name string, on bool) *attrs {
	if on {
		*a = append(*a, attr{name: name, flag: true})
	}
	return a
}

func (a *attrs) int(name string, value *int) *attrs {
	if value != nil {
		*a = append(*a, attr{name: name, value: strconv.Itoa(*value)})
	}
	return a
}

func open(buf *bytes.Buffer, tag string, list attrs) {
	buf.WriteByte('<')
	buf.WriteString(tag)
	for _, item := range list {
		buf.WriteByte(' ')
		buf.WriteString(item.name)
		if item.flag {
			continue
		}
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(item.value))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
}

func closeTag(buf *bytes.Buffer, tag string) {
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteByte('>')
}

func text(buf *bytes.Buffer, value string) {
	buf.WriteString(html.EscapeString(value))
}

// element writes <tag attrs>escaped body</tag>.
func element(buf *bytes.Buffer, tag string, list attrs, body string) {
	open(buf, tag, list)
	text(buf, body)
	closeTag(buf, tag)
}

// ControlID returns the DOM id used for the node's control.
func ControlID(node render.Node) string {
	id := strings.TrimSpace(node.Component.ID)
	if id == "" {
		id = strings.TrimSpace(node.Component.Key)
	}
	if id == "" {
		return ""
	}
	return "fc-" + id
}

func classes(base ...string) string {
	var keep []string
	for _, item := range base {
		keep = append(keep, strings.Fields(item)...)
	}
	return strings.Join(keep, " ")
}

func label(node render.Node) string {
	if value := strings.TrimSpace(node.Component.Label); value != "" {
		return value
	}
	if value := strings.TrimSpace(node.Descriptor.Label); value != "" {
		return value
	}
	return node.Component.Type
}
