package xerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("x")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrap: %w", NotFound("x"))))
	assert.Equal(t, KindConflict, KindOf(Conflict("x")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("分配权限失败", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "分配权限失败: connection refused", err.Error())
	assert.Equal(t, "分配权限失败", MessageOf(err))
	assert.Equal(t, "服务器内部错误", MessageOf(cause))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap("x", nil))

	nf := NotFound("角色不存在")
	assert.Same(t, nf, Wrap("分配权限失败", nf))

	wrapped := Wrap("分配权限失败", errors.New("deadlock"))
	assert.Equal(t, KindInternal, KindOf(wrapped))
	assert.Equal(t, "分配权限失败", MessageOf(wrapped))
}
