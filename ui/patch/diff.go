package patch

import (
	"sort"
	"strconv"

	"github.com/elizafairlady/libui-clock/ui/proto"
	"github.com/elizafairlady/libui-clock/ui/view"
)

// OpKind names a surface operation.
type OpKind string

const (
	OpReplace OpKind = "replace" // swap the element at Path for Node
	OpSet     OpKind = "set"     // set prop Key=Value on Path
	OpDel     OpKind = "del"     // delete prop Key from Path
	OpInsert  OpKind = "insert"  // insert Node as child Index of Path
	OpRemove  OpKind = "remove"  // remove child Index of Path
)

// Op is one surface operation. Path addresses an element by child
// indexes from the patched root, as the tree looked when the op list
// was computed; ops are applied in order.
type Op struct {
	Kind  OpKind
	Path  []int
	Index int
	Key   string
	Value string
	Node  *view.Node
}

// Proto returns the op in its line form.
func (o *Op) Proto() *proto.Op {
	po := &proto.Op{Kind: string(o.Kind), Path: o.Path, KVs: map[string]string{}}
	switch o.Kind {
	case OpSet:
		po.KVs["key"] = o.Key
		po.KVs["value"] = o.Value
	case OpDel:
		po.KVs["key"] = o.Key
	case OpInsert, OpRemove:
		po.KVs["index"] = strconv.Itoa(o.Index)
	}
	if o.Node != nil {
		po.KVs["id"] = o.Node.ID
		po.KVs["type"] = o.Node.Type
	}
	return po
}

func (o *Op) String() string {
	return proto.SerializeOp(o.Proto())
}

// Diff returns the operations that turn old into new.
//
// Nodes are matched by position; a node whose ID or Type differs from
// its counterpart is replaced wholesale. Surplus old children are
// removed from the end first, then missing children are appended, so
// every index stays valid while the list is applied in order.
func Diff(old, new *view.Node) []Op {
	var ops []Op
	diff(old, new, nil, &ops)
	return ops
}

func diff(old, new *view.Node, path []int, ops *[]Op) {
	if !old.Same(new) {
		*ops = append(*ops, Op{Kind: OpReplace, Path: path, Node: new})
		return
	}

	for _, k := range sortedKeys(new.Props) {
		v := new.Props[k]
		if ov, ok := old.Props[k]; !ok || ov != v {
			*ops = append(*ops, Op{Kind: OpSet, Path: path, Key: k, Value: v})
		}
	}
	for _, k := range sortedKeys(old.Props) {
		if _, ok := new.Props[k]; !ok {
			*ops = append(*ops, Op{Kind: OpDel, Path: path, Key: k})
		}
	}

	common := min(len(old.Children), len(new.Children))
	for i := 0; i < common; i++ {
		diff(old.Children[i], new.Children[i], childPath(path, i), ops)
	}
	for i := len(old.Children) - 1; i >= len(new.Children); i-- {
		*ops = append(*ops, Op{Kind: OpRemove, Path: path, Index: i})
	}
	for i := len(old.Children); i < len(new.Children); i++ {
		*ops = append(*ops, Op{Kind: OpInsert, Path: path, Index: i, Node: new.Children[i]})
	}
}

func childPath(path []int, i int) []int {
	p := make([]int, len(path), len(path)+1)
	copy(p, path)
	return append(p, i)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
