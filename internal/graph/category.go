package graph

import "fmt"

// Category is the group code of a node. The codes and their colors are shared with
// whoever produces the data file and must not be renumbered.
type Category int

const (
	Uncategorised Category = iota
	Operational
	Tactical
	Strategic
	Objective
	ManagementSystem
)

// CategoryCount is the size of the fixed palette.
const CategoryCount = 6

type categoryInfo struct {
	name  string
	value string // value of the category radio input
	dot   string // legend indicator selector
	color string
}

var categories = [CategoryCount]categoryInfo{
	{"Supporting/Uncategorised", "Uncategorised", ".dot1", "#C40233"},
	{"Operational", "Operational", ".dot4", "#9DC3E6"},
	{"Tactical", "Tactical", ".dot2", "#5B9BD5"},
	{"Strategic", "Strategic", ".dot3", "#1F4E79"},
	{"Objective", "Objective", ".dot5", "#FF8E1D"},
	{"Management System", "MS", ".dot6", "#FFEB3B"},
}

// AllValue is the radio input value that clears the category filter.
const AllValue = "All"

// Categories returns every palette entry in code order.
func Categories() []Category {
	out := make([]Category, CategoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

func (c Category) Valid() bool {
	return c >= 0 && int(c) < CategoryCount
}

// info falls back to the uncategorised entry for codes outside the palette.
func (c Category) info() categoryInfo {
	if !c.Valid() {
		return categories[Uncategorised]
	}
	return categories[c]
}

// Normalized maps codes outside the palette to Uncategorised.
func (c Category) Normalized() Category {
	if !c.Valid() {
		return Uncategorised
	}
	return c
}

func (c Category) Name() string  { return c.info().name }
func (c Category) Value() string { return c.info().value }
func (c Category) Dot() string   { return c.info().dot }
func (c Category) Color() string { return c.info().color }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return c.info().name
}

// ParseCategoryValue maps a radio input value to a category. all is true for the
// "All" input, in which case c is meaningless.
func ParseCategoryValue(value string) (c Category, all bool, err error) {
	if value == AllValue {
		return 0, true, nil
	}
	for i, info := range categories {
		if info.value == value {
			return Category(i), false, nil
		}
	}
	return 0, false, fmt.Errorf("unknown category value %q", value)
}
