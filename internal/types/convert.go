package types

import (
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"uac/internal/logger"
	"uac/internal/model"
)

// copyOption 模型到响应结构的转换规则
var copyOption = copier.Option{
	IgnoreEmpty: false,
	DeepCopy:    true,
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: &DateTime{},
			Fn: func(src interface{}) (interface{}, error) {
				t := src.(time.Time)
				return ToDateTime(&t), nil
			},
		},
		{
			SrcType: gorm.DeletedAt{},
			DstType: &DateTime{},
			Fn: func(src interface{}) (interface{}, error) {
				return FromDeletedAt(src.(gorm.DeletedAt)), nil
			},
		},
	},
}

func copyTo(dst, src any) {
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		logger.Warn("响应结构转换失败", zap.Error(err))
	}
}

// ToDepartmentInfo 部门模型转响应
func ToDepartmentInfo(d *model.Department) *DepartmentInfo {
	if d == nil {
		return nil
	}
	info := &DepartmentInfo{}
	copyTo(info, d)
	info.DepartmentID = d.ID
	return info
}

// ToDepartmentInfoList 批量转换部门
func ToDepartmentInfoList(list []*model.Department) []*DepartmentInfo {
	result := make([]*DepartmentInfo, 0, len(list))
	for _, d := range list {
		result = append(result, ToDepartmentInfo(d))
	}
	return result
}

// ToPermissionInfo 权限模型转响应
func ToPermissionInfo(p *model.Permission) *PermissionInfo {
	if p == nil {
		return nil
	}
	info := &PermissionInfo{}
	copyTo(info, p)
	info.PermissionID = p.ID
	if info.Actions == nil {
		info.Actions = []string{}
	}
	return info
}

// ToPermissionInfoList 批量转换权限
func ToPermissionInfoList(list []model.Permission) []*PermissionInfo {
	result := make([]*PermissionInfo, 0, len(list))
	for i := range list {
		result = append(result, ToPermissionInfo(&list[i]))
	}
	return result
}

// ToRoleInfo 角色模型转响应，权限列表按已加载的关联输出
func ToRoleInfo(r *model.Role) *RoleInfo {
	if r == nil {
		return nil
	}
	info := &RoleInfo{}
	copyTo(info, r)
	info.RoleID = r.ID
	info.Permissions = ToPermissionInfoList(r.Permissions)
	return info
}

// ToRoleInfoList 批量转换角色
func ToRoleInfoList(list []*model.Role) []*RoleInfo {
	result := make([]*RoleInfo, 0, len(list))
	for _, r := range list {
		result = append(result, ToRoleInfo(r))
	}
	return result
}

// ToRoleRef 角色引用
func ToRoleRef(r *model.Role) RoleRef {
	return RoleRef{RoleID: r.ID, Name: r.Name, Code: r.Code, Status: r.Status}
}

// ToDepartmentMember 用户转部门成员
func ToDepartmentMember(u *model.User) *DepartmentMember {
	return &DepartmentMember{
		UserID:       u.ID,
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Status:       u.Status,
		DepartmentID: u.DepartmentID,
	}
}

// ToUserInfo 用户转响应，不含密码
func ToUserInfo(u *model.User) *UserInfo {
	if u == nil {
		return nil
	}
	info := &UserInfo{}
	copyTo(info, u)
	info.UserID = u.ID
	info.Roles = make([]RoleRef, 0, len(u.Roles))
	for i := range u.Roles {
		info.Roles = append(info.Roles, ToRoleRef(&u.Roles[i]))
	}
	return info
}

// ToCaptchaInfo 验证码转响应，目标坐标不外露
func ToCaptchaInfo(c *model.Captcha) *CaptchaInfo {
	return &CaptchaInfo{
		CaptchaID: c.ID,
		BgURL:     c.BgURL,
		PuzzleURL: c.PuzzleURL,
		Status:    c.Status,
		ExpiresAt: ToDateTime(&c.ExpiresAt),
	}
}
