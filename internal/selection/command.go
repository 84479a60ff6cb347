package selection

import (
	"fmt"

	"github.com/psidex/knowmap/internal/graph"
)

// Kind identifies a user input the state machine understands.
type Kind int

const (
	KindNodeClick Kind = iota + 1
	KindCategorySelect
	KindCategorySelectAll
	KindSearchSelect
	KindSetEdgesVisible
	KindSetLabelsVisible
)

func (k Kind) String() string {
	switch k {
	case KindNodeClick:
		return "node_click"
	case KindCategorySelect:
		return "category_select"
	case KindCategorySelectAll:
		return "category_select_all"
	case KindSearchSelect:
		return "search_select"
	case KindSetEdgesVisible:
		return "set_edges_visible"
	case KindSetLabelsVisible:
		return "set_labels_visible"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Command is one input event. Only the field matching Kind is read.
type Command struct {
	Kind  Kind
	Node  string         // KindNodeClick, KindSearchSelect
	Group graph.Category // KindCategorySelect
	On    bool           // KindSetEdgesVisible, KindSetLabelsVisible
}

func NodeClick(name string) Command {
	return Command{Kind: KindNodeClick, Node: name}
}

func CategorySelect(g graph.Category) Command {
	return Command{Kind: KindCategorySelect, Group: g}
}

func CategorySelectAll() Command {
	return Command{Kind: KindCategorySelectAll}
}

func SearchSelect(name string) Command {
	return Command{Kind: KindSearchSelect, Node: name}
}

func SetEdgesVisible(on bool) Command {
	return Command{Kind: KindSetEdgesVisible, On: on}
}

func SetLabelsVisible(on bool) Command {
	return Command{Kind: KindSetLabelsVisible, On: on}
}

// CategoryCommand turns a category radio value ("Tactical", "All", ...) into the
// matching command.
func CategoryCommand(value string) (Command, error) {
	g, all, err := graph.ParseCategoryValue(value)
	if err != nil {
		return Command{}, err
	}
	if all {
		return CategorySelectAll(), nil
	}
	return CategorySelect(g), nil
}
