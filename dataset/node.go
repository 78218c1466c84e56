// Package dataset 解码树图数据集（名称、分类与数值组成的层级结构），并提供叶子节点与分类列表。
package dataset

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Node 是层级中的一个节点。Value 在原始数据中可能是数字或字符串；
// 缺失、为空或无法解析时按 0 处理。
type Node struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Value    float64 `json:"value"`
	Children []*Node `json:"children,omitempty"`
}

type rawNode struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Value    json.RawMessage `json:"value"`
	Children []*Node         `json:"children"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Node{
		Name:     raw.Name,
		Category: raw.Category,
		Value:    parseValue(raw.Value),
		Children: raw.Children,
	}
	return nil
}

func parseValue(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var v float64
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		v = f
	default:
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Decode 从 r 读取一个树图数据集。
func Decode(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("解析数据集失败: %w", err)
	}
	return &root, nil
}

// Load 读取 path 指向的数据集文件。
func Load(path string) (*Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开数据集 %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file)
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Sum 返回节点自身数值与全部后代数值之和。
func (n *Node) Sum() float64 {
	total := n.Value
	for _, c := range n.Children {
		total += c.Sum()
	}
	return total
}

// Leaves 以先序返回全部叶子节点；每一层的兄弟节点按 Sum 从大到小排列，
// 相等时保持原始顺序。不修改树本身。
func (n *Node) Leaves() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		if node.IsLeaf() {
			out = append(out, node)
			return
		}
		children := slices.Clone(node.Children)
		sums := make(map[*Node]float64, len(children))
		for _, c := range children {
			sums[c] = c.Sum()
		}
		slices.SortStableFunc(children, func(a, b *Node) int {
			return cmp.Compare(sums[b], sums[a])
		})
		for _, c := range children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Categories 返回去除首尾空白后的分类，按首次出现的顺序去重。
func Categories(leaves []*Node) []string {
	seen := map[string]bool{}
	var out []string
	for _, leaf := range leaves {
		c := strings.TrimSpace(leaf.Category)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
