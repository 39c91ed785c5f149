package collector

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// parseProductionTable extracts the production table from a regulator page.
// The page may carry several tables (navigation, well header, completions);
// the production table is the one whose header row includes the configured
// date column. Returns nil when no such table exists, which is how the
// regulators render a well with no reported production.
func parseProductionTable(r io.Reader, dateCol string) ([]map[string]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	for _, table := range findElements(doc, "table") {
		rows := tableRows(table)
		if len(rows) == 0 {
			continue
		}
		headers := rows[0]
		if !containsHeader(headers, dateCol) {
			continue
		}

		var records []map[string]string
		for _, row := range rows[1:] {
			record := make(map[string]string, len(headers))
			for i, cell := range row {
				if i >= len(headers) {
					break
				}
				record[headers[i]] = cell
			}
			records = append(records, record)
		}
		return records, nil
	}
	return nil, nil
}

// findElements returns every element with the given tag, in document order.
func findElements(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
			// Nested tables belong to their own walk below.
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// tableRows flattens a table into rows of trimmed cell text, reading both
// th and td cells.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	for _, tr := range findElements(table, "tr") {
		var cells []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, strings.TrimSpace(nodeText(c)))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// nodeText concatenates all text beneath a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func containsHeader(headers []string, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}
