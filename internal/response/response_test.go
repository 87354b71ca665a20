package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"uac/internal/logger"
	"uac/internal/xerr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestFailMapsKinds(t *testing.T) {
	logger.SetLogger(zap.NewNop())

	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", xerr.Validation("部门名称不能为空"), 400, "部门名称不能为空"},
		{"conflict", xerr.Conflict("该部门下有子部门，无法删除"), 400, "该部门下有子部门，无法删除"},
		{"not found", xerr.NotFound("部门不存在"), 404, "部门不存在"},
		{"unauthorized", xerr.Unauthorized("请先登录"), 401, "请先登录"},
		{"forbidden", xerr.Forbidden("没有操作权限"), 403, "没有操作权限"},
		{"internal", xerr.Internal("分配权限失败", errors.New("db down")), 500, "分配权限失败"},
		{"plain", errors.New("boom"), 500, MsgServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return Fail(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.EqualValues(t, tc.status, body["code"])
			assert.Equal(t, tc.msg, body["message"])
			v, ok := body["data"]
			assert.True(t, ok, "data key must be present")
			assert.Nil(t, v)
		})
	}
}

func TestPageAndCreated(t *testing.T) {
	app := fiber.New()
	app.Get("/page", func(c *fiber.Ctx) error {
		return Page(c, []string{"a", "b"}, 2, 1, 2)
	})
	app.Post("/created", func(c *fiber.Ctx) error {
		return Created(c, "部门创建成功", fiber.Map{"name": "技术部"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/page", nil))
	require.NoError(t, err)
	body := decode(t, resp.Body)
	assert.EqualValues(t, 200, body["code"])
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 2, data["total"])
	assert.EqualValues(t, 1, data["page"])
	assert.EqualValues(t, 2, data["size"])
	assert.Len(t, data["items"], 2)

	resp, err = app.Test(httptest.NewRequest("POST", "/created", nil))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	body = decode(t, resp.Body)
	assert.EqualValues(t, 201, body["code"])
	assert.Equal(t, "部门创建成功", body["message"])
}

func TestErrorHandlerWrapsFiberErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.EqualValues(t, 404, body["code"])
	assert.Nil(t, body["data"])
}
