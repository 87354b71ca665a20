package logic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"uac/internal/model"
	"uac/internal/types"
)

func dept(id string, parent string) *model.Department {
	d := &model.Department{ID: id, Name: id, Status: model.StatusActive}
	if parent != "" {
		d.ParentID = &parent
	}
	return d
}

// drawDepartments 随机生成部门集合，父ID可能为空、指向集合外、指向自身或形成环
func drawDepartments(t *rapid.T) []*model.Department {
	n := rapid.IntRange(0, 30).Draw(t, "n")
	depts := make([]*model.Department, 0, n)
	for i := 0; i < n; i++ {
		p := rapid.IntRange(-2, n-1).Draw(t, fmt.Sprintf("parent_%d", i))
		switch {
		case p == -2:
			depts = append(depts, dept(fmt.Sprintf("d%d", i), ""))
		case p == -1:
			depts = append(depts, dept(fmt.Sprintf("d%d", i), "missing"))
		default:
			depts = append(depts, dept(fmt.Sprintf("d%d", i), fmt.Sprintf("d%d", p)))
		}
	}
	return depts
}

func flatten(nodes []*types.DepartmentTreeNode, out map[string]int) {
	for _, n := range nodes {
		out[n.DepartmentID]++
		flatten(n.Children, out)
	}
}

func treeShape(nodes []*types.DepartmentTreeNode) []string {
	var shape []string
	var walk func(prefix string, ns []*types.DepartmentTreeNode)
	walk = func(prefix string, ns []*types.DepartmentTreeNode) {
		for _, n := range ns {
			path := prefix + "/" + n.DepartmentID
			shape = append(shape, path)
			walk(path, n.Children)
		}
	}
	walk("", nodes)
	return shape
}

func TestBuildDepartmentTree_Basic(t *testing.T) {
	depts := []*model.Department{
		dept("tech", ""),
		dept("fe", "tech"),
		dept("be", "tech"),
		dept("hr", ""),
		dept("orphan", "gone"),
	}

	tree := BuildDepartmentTree(depts)
	require.Len(t, tree, 3)
	assert.Equal(t, "tech", tree[0].DepartmentID)
	assert.Equal(t, "hr", tree[1].DepartmentID)
	assert.Equal(t, "orphan", tree[2].DepartmentID)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "fe", tree[0].Children[0].DepartmentID)
	assert.Equal(t, "be", tree[0].Children[1].DepartmentID)
	assert.NotNil(t, tree[1].Children)
	assert.Len(t, tree[1].Children, 0)
}

func TestBuildDepartmentTree_Empty(t *testing.T) {
	tree := BuildDepartmentTree(nil)
	assert.NotNil(t, tree)
	assert.Len(t, tree, 0)
}

func TestBuildDepartmentTree_Cycle(t *testing.T) {
	depts := []*model.Department{
		dept("a", "c"),
		dept("b", "a"),
		dept("c", "b"),
		dept("self", "self"),
	}

	tree := BuildDepartmentTree(depts)
	assert.Equal(t, []string{"/self", "/a", "/a/b", "/a/b/c"}, treeShape(tree))
}

func TestProperty_TreeContainsEveryDepartmentOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		depts := drawDepartments(t)
		tree := BuildDepartmentTree(depts)

		counts := make(map[string]int)
		flatten(tree, counts)
		if len(counts) != len(depts) {
			t.Fatalf("tree has %d departments, want %d", len(counts), len(depts))
		}
		for _, d := range depts {
			if counts[d.ID] != 1 {
				t.Fatalf("department %s appears %d times", d.ID, counts[d.ID])
			}
		}
	})
}

func TestProperty_TreeEdgesFollowParentID(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		depts := drawDepartments(t)
		tree := BuildDepartmentTree(depts)

		var check func(parent string, ns []*types.DepartmentTreeNode)
		check = func(parent string, ns []*types.DepartmentTreeNode) {
			for _, n := range ns {
				if parent != "" && model.GetString(n.ParentID) != parent {
					t.Fatalf("%s placed under %s but parent_id is %q", n.DepartmentID, parent, model.GetString(n.ParentID))
				}
				check(n.DepartmentID, n.Children)
			}
		}
		check("", tree)
	})
}

func TestProperty_TreeIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		depts := drawDepartments(t)
		first := treeShape(BuildDepartmentTree(depts))
		second := treeShape(BuildDepartmentTree(depts))
		if len(first) != len(second) {
			t.Fatalf("shape changed between builds")
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("shape differs at %d: %s vs %s", i, first[i], second[i])
			}
		}
	})
}

func TestCollectDescendantIDs(t *testing.T) {
	depts := []*model.Department{
		dept("tech", ""),
		dept("fe", "tech"),
		dept("web", "fe"),
		dept("hr", ""),
	}
	assert.Equal(t, []string{"tech", "fe", "web"}, CollectDescendantIDs("tech", depts))
	assert.Equal(t, []string{"hr"}, CollectDescendantIDs("hr", depts))
	assert.Equal(t, []string{"unknown"}, CollectDescendantIDs("unknown", depts))
}

func TestProperty_CollectDescendantIDsTerminates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		depts := drawDepartments(t)
		if len(depts) == 0 {
			return
		}
		root := depts[rapid.IntRange(0, len(depts)-1).Draw(t, "root")].ID
		ids := CollectDescendantIDs(root, depts)

		if ids[0] != root {
			t.Fatalf("first id %s, want root %s", ids[0], root)
		}
		seen := make(map[string]bool)
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
	})
}
