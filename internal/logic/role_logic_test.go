package logic

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"pgregory.net/rapid"

	"uac/internal/model"
	"uac/internal/testutil"
	"uac/internal/types"
	"uac/internal/xerr"
)

// grantedIDs 直接读取关联表中的授予集合
func grantedIDs(t require.TestingT, db *gorm.DB, roleID string) []string {
	var ids []string
	require.NoError(t, db.Model(&model.RolePermission{}).Where("role_id = ?", roleID).Pluck("permission_id", &ids).Error)
	sort.Strings(ids)
	return ids
}

func sorted(ids ...string) []string {
	out := append([]string{}, ids...)
	sort.Strings(out)
	return out
}

func createRole(t *testing.T, l *RoleLogic, code string) *types.RoleInfo {
	t.Helper()
	role, err := l.CreateRole(&types.CreateRoleRequest{Name: code, Code: code})
	require.NoError(t, err)
	return role
}

func TestRoleLogic_Create(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)
	p1 := testutil.CreatePermission(t, db, "department:read")

	role, err := l.CreateRole(&types.CreateRoleRequest{Name: "管理员", Code: "ADMIN", PermissionIDs: []string{p1.ID, p1.ID}})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, role.Status)
	require.Len(t, role.Permissions, 1)
	assert.Equal(t, p1.ID, role.Permissions[0].PermissionID)

	_, err = l.CreateRole(&types.CreateRoleRequest{Name: "重复", Code: "ADMIN"})
	assert.Equal(t, xerr.KindConflict, xerr.KindOf(err))

	_, err = l.CreateRole(&types.CreateRoleRequest{Code: "X"})
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))
	_, err = l.CreateRole(&types.CreateRoleRequest{Name: "X"})
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))
	_, err = l.CreateRole(&types.CreateRoleRequest{Name: "X", Code: "X", Status: "GONE"})
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))

	_, err = l.CreateRole(&types.CreateRoleRequest{Name: "X", Code: "X", PermissionIDs: []string{model.NewID()}})
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))
	var count int64
	db.Model(&model.Role{}).Where("code = ?", "X").Count(&count)
	assert.Zero(t, count, "role must not be created when a permission id is unknown")
}

func TestRoleLogic_ReplaceScenario(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)
	p1 := testutil.CreatePermission(t, db, "p1")
	p2 := testutil.CreatePermission(t, db, "p2")
	p3 := testutil.CreatePermission(t, db, "p3")

	role := createRole(t, l, "ADMIN")
	assert.Empty(t, role.Permissions)

	_, err := l.ReplacePermissions(role.RoleID, []string{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Equal(t, sorted(p1.ID, p2.ID), grantedIDs(t, db, role.RoleID))

	got, err := l.ReplacePermissions(role.RoleID, []string{p2.ID, p3.ID})
	require.NoError(t, err)
	assert.Equal(t, sorted(p2.ID, p3.ID), grantedIDs(t, db, role.RoleID))
	assert.Len(t, got.Permissions, 2)

	// 重复执行结果不变
	_, err = l.ReplacePermissions(role.RoleID, []string{p3.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.Equal(t, sorted(p2.ID, p3.ID), grantedIDs(t, db, role.RoleID))

	_, err = l.ReplacePermissions(role.RoleID, nil)
	require.NoError(t, err)
	assert.Empty(t, grantedIDs(t, db, role.RoleID))
}

func TestRoleLogic_ReplaceIsAtomic(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)
	p1 := testutil.CreatePermission(t, db, "p1")
	p2 := testutil.CreatePermission(t, db, "p2")
	role := createRole(t, l, "OPS")

	_, err := l.ReplacePermissions(role.RoleID, []string{p1.ID})
	require.NoError(t, err)

	_, err = l.ReplacePermissions(role.RoleID, []string{p2.ID, model.NewID()})
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))
	assert.Equal(t, []string{p1.ID}, grantedIDs(t, db, role.RoleID))

	_, err = l.UpdatePermissions(role.RoleID, []string{model.NewID()}, []string{p1.ID})
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))
	assert.Equal(t, []string{p1.ID}, grantedIDs(t, db, role.RoleID))

	_, err = l.ReplacePermissions(model.NewID(), []string{p1.ID})
	assert.Equal(t, xerr.KindNotFound, xerr.KindOf(err))
}

func TestRoleLogic_UpdatePermissions(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)
	p1 := testutil.CreatePermission(t, db, "p1")
	p2 := testutil.CreatePermission(t, db, "p2")
	p3 := testutil.CreatePermission(t, db, "p3")
	role := createRole(t, l, "DEV")

	_, err := l.ReplacePermissions(role.RoleID, []string{p1.ID, p2.ID})
	require.NoError(t, err)

	_, err = l.UpdatePermissions(role.RoleID, []string{p3.ID, p2.ID}, []string{p1.ID})
	require.NoError(t, err)
	assert.Equal(t, sorted(p2.ID, p3.ID), grantedIDs(t, db, role.RoleID))

	// 同时出现在两个集合中：先移除再添加，最终保留
	_, err = l.UpdatePermissions(role.RoleID, []string{p2.ID}, []string{p2.ID})
	require.NoError(t, err)
	assert.Equal(t, sorted(p2.ID, p3.ID), grantedIDs(t, db, role.RoleID))

	// 移除不存在的授予不报错
	_, err = l.UpdatePermissions(role.RoleID, nil, []string{p1.ID})
	require.NoError(t, err)
	assert.Equal(t, sorted(p2.ID, p3.ID), grantedIDs(t, db, role.RoleID))
}

func TestProperty_IncrementalUpdateSetAlgebra(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)

	pool := make([]string, 0, 8)
	for _, code := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		pool = append(pool, testutil.CreatePermission(t, db, code).ID)
	}
	role := createRole(t, l, "PROP")

	rapid.Check(t, func(rt *rapid.T) {
		var previous, add, remove []string
		for _, id := range pool {
			if rapid.Bool().Draw(rt, "previous_"+id) {
				previous = append(previous, id)
			}
			// 加入集合与移除集合互不相交
			switch rapid.IntRange(0, 2).Draw(rt, "op_"+id) {
			case 1:
				add = append(add, id)
			case 2:
				remove = append(remove, id)
			}
		}

		if _, err := l.ReplacePermissions(role.RoleID, previous); err != nil {
			rt.Fatalf("replace: %v", err)
		}
		if _, err := l.UpdatePermissions(role.RoleID, add, remove); err != nil {
			rt.Fatalf("update: %v", err)
		}

		want := map[string]bool{}
		for _, id := range previous {
			want[id] = true
		}
		for _, id := range add {
			want[id] = true
		}
		for _, id := range remove {
			delete(want, id)
		}
		expected := make([]string, 0, len(want))
		for id := range want {
			expected = append(expected, id)
		}
		sort.Strings(expected)

		got := grantedIDs(rt, db, role.RoleID)
		if len(got) != len(expected) {
			rt.Fatalf("granted %v, want %v", got, expected)
		}
		for i := range got {
			if got[i] != expected[i] {
				rt.Fatalf("granted %v, want %v", got, expected)
			}
		}
	})
}

func TestProperty_ReplaceIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)

	pool := make([]string, 0, 6)
	for _, code := range []string{"a", "b", "c", "d", "e", "f"} {
		pool = append(pool, testutil.CreatePermission(t, db, code).ID)
	}
	role := createRole(t, l, "IDEMPOTENT")

	rapid.Check(t, func(rt *rapid.T) {
		ids := rapid.SliceOf(rapid.SampledFrom(pool)).Draw(rt, "ids")

		if _, err := l.ReplacePermissions(role.RoleID, ids); err != nil {
			rt.Fatalf("replace: %v", err)
		}
		first := grantedIDs(rt, db, role.RoleID)
		if _, err := l.ReplacePermissions(role.RoleID, ids); err != nil {
			rt.Fatalf("replace again: %v", err)
		}
		second := grantedIDs(rt, db, role.RoleID)

		if len(first) != len(second) {
			rt.Fatalf("first %v, second %v", first, second)
		}
		for i := range first {
			if first[i] != second[i] {
				rt.Fatalf("first %v, second %v", first, second)
			}
		}

		unique := map[string]bool{}
		for _, id := range ids {
			unique[id] = true
		}
		if len(first) != len(unique) {
			rt.Fatalf("granted %d permissions, want %d", len(first), len(unique))
		}
	})
}

func TestRoleLogic_UpdateAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)
	p1 := testutil.CreatePermission(t, db, "p1")
	role, err := l.CreateRole(&types.CreateRoleRequest{Name: "审计", Code: "AUDIT", Description: strPtr("只读"), PermissionIDs: []string{p1.ID}})
	require.NoError(t, err)

	got, err := l.UpdateRole(role.RoleID, &types.UpdateRoleRequest{Status: strPtr(model.StatusArchived)})
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, got.Status)
	assert.Equal(t, "审计", got.Name)
	require.NotNil(t, got.Description)

	_, err = l.UpdateRole(role.RoleID, &types.UpdateRoleRequest{Name: strPtr(" ")})
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))

	require.NoError(t, l.DeleteRole(role.RoleID))
	_, err = l.GetRole(role.RoleID)
	assert.Equal(t, xerr.KindNotFound, xerr.KindOf(err))
	assert.Empty(t, grantedIDs(t, db, role.RoleID))

	var deleted model.Role
	require.NoError(t, db.Unscoped().Where("role_id = ?", role.RoleID).Take(&deleted).Error)
	assert.True(t, deleted.DeletedAt.Valid)

	assert.Equal(t, xerr.KindNotFound, xerr.KindOf(l.DeleteRole(role.RoleID)))
}

func TestRoleLogic_List(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)
	for _, code := range []string{"A", "B", "C"} {
		createRole(t, l, code)
	}

	all, err := l.ListRoles(&types.ListRolesRequest{PageRequest: types.PageRequest{Page: 4, Size: types.PageSizeAll}})
	require.NoError(t, err)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 3, all.Size)
	assert.Len(t, all.Items, 3)

	byCode, err := l.ListRoles(&types.ListRolesRequest{Code: "B"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), byCode.Total)
	assert.Equal(t, "B", byCode.Items[0].Code)
}

func TestRoleLogic_CheckPermission(t *testing.T) {
	db := testutil.NewDB(t)
	l := NewRoleLogic(context.Background(), db)
	read := testutil.CreatePermission(t, db, "department:read")
	del := testutil.CreatePermission(t, db, "department:delete")

	active, err := l.CreateRole(&types.CreateRoleRequest{Name: "查看", Code: "VIEWER", PermissionIDs: []string{read.ID}})
	require.NoError(t, err)
	disabled, err := l.CreateRole(&types.CreateRoleRequest{Name: "停用", Code: "DISABLED", Status: model.StatusDisabled, PermissionIDs: []string{del.ID}})
	require.NoError(t, err)

	user := testutil.CreateUser(t, db, "bob", nil, active.RoleID, disabled.RoleID)
	nobody := testutil.CreateUser(t, db, "nobody", nil)

	ok, err := l.CheckPermission(user.ID, "department:read")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.CheckPermission(user.ID, "department:delete")
	require.NoError(t, err)
	assert.False(t, ok, "grants of a disabled role do not count")

	ok, err = l.CheckPermission(nobody.ID, "department:read")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.DeleteRole(active.RoleID))
	ok, err = l.CheckPermission(user.ID, "department:read")
	require.NoError(t, err)
	assert.False(t, ok, "soft-deleted roles do not grant")

	_, err = l.CheckPermission(user.ID, "")
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))
}

func TestRoleLogic_ReadBackAfterWriteUsesPrimary(t *testing.T) {
	db := testutil.NewDBWithReplica(t)
	l := NewRoleLogic(context.Background(), db)
	p1 := testutil.CreatePermission(t, db, "role:read")
	p2 := testutil.CreatePermission(t, db, "role:create")

	role, err := l.CreateRole(&types.CreateRoleRequest{Name: "审计", Code: "AUDITOR", PermissionIDs: []string{p1.ID}})
	require.NoError(t, err)
	require.Len(t, role.Permissions, 1)

	role, err = l.UpdateRole(role.RoleID, &types.UpdateRoleRequest{Name: strPtr("审计员")})
	require.NoError(t, err)
	assert.Equal(t, "审计员", role.Name)

	role, err = l.ReplacePermissions(role.RoleID, []string{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Len(t, role.Permissions, 2)

	role, err = l.UpdatePermissions(role.RoleID, nil, []string{p1.ID})
	require.NoError(t, err)
	require.Len(t, role.Permissions, 1)
	assert.Equal(t, p2.ID, role.Permissions[0].PermissionID)

	// 普通查询走从库，从库中没有该角色
	_, err = l.GetRole(role.RoleID)
	assert.Equal(t, xerr.KindNotFound, xerr.KindOf(err))

	require.NoError(t, l.DeleteRole(role.RoleID))
}
