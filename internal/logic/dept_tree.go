package logic

import (
	"uac/internal/model"
	"uac/internal/types"
)

// BuildDepartmentTree 将平铺的部门列表组装为森林
//
// 父部门不在集合内（或指向自身）的节点作为根；存在环时，从环上输入顺序最靠前的节点处断开，
// 该节点提升为根。每个部门在结果中恰好出现一次，同级顺序与输入顺序一致。
func BuildDepartmentTree(depts []*model.Department) []*types.DepartmentTreeNode {
	nodes := make(map[string]*types.DepartmentTreeNode, len(depts))
	index := make(map[string]int, len(depts))
	order := make([]string, 0, len(depts))
	for _, d := range depts {
		if d == nil {
			continue
		}
		if _, ok := nodes[d.ID]; ok {
			continue
		}
		nodes[d.ID] = &types.DepartmentTreeNode{
			DepartmentInfo: *types.ToDepartmentInfo(d),
			Children:       []*types.DepartmentTreeNode{},
		}
		index[d.ID] = len(order)
		order = append(order, d.ID)
	}

	parentOf := make(map[string]string, len(order))
	roots := make([]*types.DepartmentTreeNode, 0)
	for _, id := range order {
		node := nodes[id]
		pid := model.GetString(node.ParentID)
		parent, ok := nodes[pid]
		if pid == "" || pid == id || !ok {
			roots = append(roots, node)
			continue
		}
		parentOf[id] = pid
		parent.Children = append(parent.Children, node)
	}

	reached := make(map[string]bool, len(order))
	mark := func(n *types.DepartmentTreeNode) {
		queue := []*types.DepartmentTreeNode{n}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if reached[cur.DepartmentID] {
				continue
			}
			reached[cur.DepartmentID] = true
			queue = append(queue, cur.Children...)
		}
	}
	for _, r := range roots {
		mark(r)
	}

	// 未被访问到的节点必然挂在某个环上
	for _, id := range order {
		if reached[id] {
			continue
		}
		cut := findCycleEntry(id, parentOf, index)
		pid := parentOf[cut]
		parent := nodes[pid]
		parent.Children = removeChild(parent.Children, cut)
		delete(parentOf, cut)
		roots = append(roots, nodes[cut])
		mark(nodes[cut])
	}

	return roots
}

// findCycleEntry 沿父链上溯找到环，返回环上输入顺序最靠前的节点
func findCycleEntry(start string, parentOf map[string]string, index map[string]int) string {
	seen := make(map[string]bool)
	cur := start
	for !seen[cur] {
		seen[cur] = true
		cur = parentOf[cur]
	}

	best := cur
	for next := parentOf[cur]; next != cur; next = parentOf[next] {
		if index[next] < index[best] {
			best = next
		}
	}
	return best
}

func removeChild(children []*types.DepartmentTreeNode, id string) []*types.DepartmentTreeNode {
	result := children[:0]
	for _, c := range children {
		if c.DepartmentID != id {
			result = append(result, c)
		}
	}
	return result
}

// CollectDescendantIDs 返回 rootID 及其全部后代部门ID，存在环时也能终止
func CollectDescendantIDs(rootID string, depts []*model.Department) []string {
	children := make(map[string][]string, len(depts))
	for _, d := range depts {
		if d == nil || d.ParentID == nil {
			continue
		}
		children[*d.ParentID] = append(children[*d.ParentID], d.ID)
	}

	visited := map[string]bool{rootID: true}
	result := []string{rootID}
	queue := []string{rootID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			if visited[child] {
				continue
			}
			visited[child] = true
			result = append(result, child)
			queue = append(queue, child)
		}
	}
	return result
}
