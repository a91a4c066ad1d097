package printing

import (
	"fmt"
	"strconv"
	"strings"

	"ad_generator_go/services/layout"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DocumentInfo is what a print document declares about its page and content
type DocumentInfo struct {
	Lang          string  `json:"lang"`
	Title         string  `json:"title"`
	PageRule      string  `json:"pageRule"`
	PaperWidthMM  float64 `json:"paperWidthMM"`
	PaperHeightMM float64 `json:"paperHeightMM"`
	Metrics       Metrics `json:"metrics"`
	FontWeight    int     `json:"fontWeight"`
	// EditorText is the text content of the editor block
	EditorText string `json:"editorText"`
	// EditorElements counts element nodes inside the editor block
	EditorElements int `json:"editorElements"`
}

// Format maps the page rule back to a paper format
func (d DocumentInfo) Format() (layout.PaperFormat, bool) {
	switch d.PageRule {
	case layout.FormatPortrait.PageRule():
		return layout.FormatPortrait, true
	case layout.FormatLandscape.PageRule():
		return layout.FormatLandscape, true
	}
	return "", false
}

// InspectDocument parses print document markup
func InspectDocument(markup string) (DocumentInfo, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return DocumentInfo{}, fmt.Errorf("failed to parse print document: %w", err)
	}

	var info DocumentInfo
	var styles strings.Builder
	var editor *html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Html:
				info.Lang = attr(n, "lang")
			case atom.Title:
				info.Title = textContent(n)
			case atom.Style:
				styles.WriteString(textContent(n))
			}
			if editor == nil && attr(n, "id") == "editor" {
				editor = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if editor == nil {
		return info, ErrContextUnavailable
	}
	info.EditorText = textContent(editor)
	info.EditorElements = countElements(editor) - 1

	sheet, err := parser.Parse(styles.String())
	if err != nil {
		return info, fmt.Errorf("failed to parse print styles: %w", err)
	}
	for _, rule := range sheet.Rules {
		switch {
		case rule.Kind == css.AtRule && rule.Name == "@page":
			info.PageRule = declaration(rule, "size")
		case rule.Kind == css.QualifiedRule && hasSelector(rule, ".paper"):
			info.PaperWidthMM = millimeters(declaration(rule, "width"))
			info.PaperHeightMM = millimeters(declaration(rule, "height"))
		case rule.Kind == css.QualifiedRule && hasSelector(rule, ".editor"):
			info.FontWeight, _ = strconv.Atoi(declaration(rule, "font-weight"))
			info.Metrics.FontMM = millimeters(declaration(rule, "font-size"))
			info.Metrics.LineMM = millimeters(declaration(rule, "line-height"))
			info.Metrics.PadTopMM = millimeters(declaration(rule, "padding-top"))
			info.Metrics.PadBottomMM = millimeters(declaration(rule, "padding-bottom"))
		}
	}

	return info, nil
}

// declaration returns the last value declared for property in rule
func declaration(rule *css.Rule, property string) string {
	value := ""
	for _, d := range rule.Declarations {
		if d.Property == property {
			value = strings.TrimSpace(d.Value)
		}
	}
	return value
}

func hasSelector(rule *css.Rule, selector string) bool {
	for _, s := range rule.Selectors {
		if strings.TrimSpace(s) == selector {
			return true
		}
	}
	return false
}

// millimeters reads a "12.5mm" length; other units read as zero
func millimeters(v string) float64 {
	n, ok := strings.CutSuffix(v, "mm")
	if !ok {
		return 0
	}
	f, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
	return f
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func countElements(n *html.Node) int {
	count := 0
	if n.Type == html.ElementNode {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c)
	}
	return count
}
