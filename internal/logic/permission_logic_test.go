package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uac/internal/model"
	"uac/internal/testutil"
	"uac/internal/types"
	"uac/internal/xerr"
)

func TestPermissionLogic_List(t *testing.T) {
	db := testutil.NewDB(t)
	for _, code := range []string{"user:read", "user:create", "role:read"} {
		testutil.CreatePermission(t, db, code)
	}
	menu := &model.Permission{Name: "用户菜单", Code: "user", ResourceType: model.ResourceMenu}
	require.NoError(t, db.Create(menu).Error)
	l := NewPermissionLogic(context.Background(), db)

	page, err := l.ListPermissions(&types.ListPermissionsRequest{Code: "user", PageRequest: types.PageRequest{Size: -1}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	codes := make([]string, 0, len(page.Items))
	for _, p := range page.Items {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{"user", "user:create", "user:read"}, codes)

	page, err = l.ListPermissions(&types.ListPermissionsRequest{ResourceType: model.ResourceMenu})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "user", page.Items[0].Code)
	assert.Equal(t, []string{}, page.Items[0].Actions)

	_, err = l.ListPermissions(&types.ListPermissionsRequest{ResourceType: "PAGE"})
	assert.Equal(t, xerr.KindValidation, xerr.KindOf(err))
}

func TestPermissionLogic_Get(t *testing.T) {
	db := testutil.NewDB(t)
	p := testutil.CreatePermission(t, db, "role:assign")
	l := NewPermissionLogic(context.Background(), db)

	got, err := l.GetPermission(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "role:assign", got.Code)
	assert.Equal(t, model.ResourceAPI, got.ResourceType)

	_, err = l.GetPermission("missing")
	assert.Equal(t, xerr.KindNotFound, xerr.KindOf(err))
}
