package sgf

import (
	"fmt"
	"sort"
	"strings"
)

// GameTree is one SGF tree: the main line plus variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node holds the properties of one SGF node, e.g. B[cd] or C[...].
// A property may carry several values (AB[aa][bb]).
type Node struct {
	Properties map[string][]string
}

type SGF struct {
	Root *GameTree
}

// root properties are written in this order, the rest follow sorted by key
var orderedKeys = []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}

func Serialize(s *SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")
		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}
		rest := make([]string, 0, len(node.Properties))
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString(fmt.Sprintf("[%s]", escape(v)))
	}
}

func escape(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "]", `\]`)
}

// AppendMove adds ;B[cd] (or W) before the closing parenthesis of a main line.
func AppendMove(sgfText string, color string, coordinates string) string {
	sgfText = strings.TrimSuffix(sgfText, ")")
	return sgfText + fmt.Sprintf(";%s[%s])", color, coordinates)
}

// SetResult replaces the value of the first RE property.
func SetResult(sgfText string, result string) string {
	start := strings.Index(sgfText, "RE[")
	if start < 0 {
		return sgfText
	}
	end := strings.Index(sgfText[start:], "]")
	if end < 0 {
		return sgfText
	}
	return sgfText[:start] + "RE[" + escape(result) + "]" + sgfText[start+end+1:]
}

// Coordinates converts a 1-based row (counted from the bottom) and column into
// SGF letters, which count from the top-left corner. An empty string is a pass.
func Coordinates(row, col, size int) string {
	if row < 1 || col < 1 {
		return ""
	}
	return string([]byte{byte('a' + col - 1), byte('a' + size - row)})
}
