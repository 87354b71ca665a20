package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uac/internal/model"
	"uac/internal/types"
	"uac/internal/xerr"
)

// 部门树的同级排序规则
const deptOrder = "sort ASC, created_at ASC, department_id ASC"

// DeptLogic 部门逻辑
type DeptLogic struct {
	ctx context.Context
	db  *gorm.DB
}

// NewDeptLogic 创建部门逻辑
func NewDeptLogic(ctx context.Context, db *gorm.DB) *DeptLogic {
	return &DeptLogic{ctx: ctx, db: db.WithContext(ctx)}
}

// CreateDept 创建部门
func (l *DeptLogic) CreateDept(req *types.CreateDepartmentRequest) (*types.DepartmentInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, xerr.Validation("部门名称不能为空")
	}
	status := req.Status
	if status == "" {
		status = model.StatusActive
	}
	if !model.IsValidDepartmentStatus(status) {
		return nil, xerr.Validation("部门状态不合法")
	}

	db := primary(l.db)
	parentID := normalizeID(req.ParentID)
	if parentID != nil {
		if _, err := findDept(db, *parentID); err != nil {
			if xerr.KindOf(err) == xerr.KindNotFound {
				return nil, xerr.Validation("上级部门不存在")
			}
			return nil, err
		}
	}

	dept := &model.Department{
		Name:        name,
		Code:        normalizeID(req.Code),
		Description: req.Description,
		ParentID:    parentID,
		Status:      status,
		Sort:        req.Sort,
	}
	if err := db.Create(dept).Error; err != nil {
		return nil, xerr.Internal("创建部门失败", err)
	}
	return types.ToDepartmentInfo(dept), nil
}

// ListDepts 分页查询部门，size=-1 返回全部
func (l *DeptLogic) ListDepts(req *types.ListDepartmentsRequest) (*types.PageResult[*types.DepartmentInfo], error) {
	req.Normalize()

	query := l.db.Model(&model.Department{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Code != "" {
		query = query.Where("code = ?", req.Code)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, xerr.Internal("查询部门失败", err)
	}

	var depts []*model.Department
	q := query.Order(deptOrder)
	if !req.All() {
		q = q.Offset(req.Offset()).Limit(req.Size)
	}
	if err := q.Find(&depts).Error; err != nil {
		return nil, xerr.Internal("查询部门失败", err)
	}

	return types.NewPageResult(&req.PageRequest, types.ToDepartmentInfoList(depts), total), nil
}

// GetDeptTree 获取部门树
func (l *DeptLogic) GetDeptTree() ([]*types.DepartmentTreeNode, error) {
	depts, err := allDepts(l.db)
	if err != nil {
		return nil, err
	}
	return BuildDepartmentTree(depts), nil
}

// GetDept 获取部门详情，附带上级部门摘要
func (l *DeptLogic) GetDept(id string) (*types.DepartmentInfo, error) {
	return l.getDept(l.db, id)
}

func (l *DeptLogic) getDept(db *gorm.DB, id string) (*types.DepartmentInfo, error) {
	dept, err := findDept(db, id)
	if err != nil {
		return nil, err
	}

	info := types.ToDepartmentInfo(dept)
	if dept.ParentID != nil {
		var parent model.Department
		err := db.Select("department_id", "name").Where("department_id = ?", *dept.ParentID).Take(&parent).Error
		switch {
		case err == nil:
			info.Parent = &types.DepartmentRef{DepartmentID: parent.ID, Name: parent.Name}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, xerr.Internal("查询上级部门失败", err)
		}
	}
	return info, nil
}

// UpdateDept 部分更新部门
func (l *DeptLogic) UpdateDept(id string, req *types.UpdateDepartmentRequest) (*types.DepartmentInfo, error) {
	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, xerr.Validation("部门名称不能为空")
		}
		updates["name"] = name
	}
	if req.Status != nil {
		if !model.IsValidDepartmentStatus(*req.Status) {
			return nil, xerr.Validation("部门状态不合法")
		}
		updates["status"] = *req.Status
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Code.Set {
		updates["code"] = normalizeID(req.Code.Value)
	}
	if req.Description.Set {
		updates["description"] = req.Description.Value
	}
	var parentID *string
	if req.ParentID.Set {
		parentID = normalizeID(req.ParentID.Value)
		updates["parent_id"] = parentID
	}

	db := primary(l.db)
	err := db.Transaction(func(tx *gorm.DB) error {
		// 锁定全部部门行，并发移动串行执行，环检测基于同一份快照
		depts, err := allDepts(tx.Clauses(clause.Locking{Strength: "UPDATE"}))
		if err != nil {
			return err
		}
		dept, ok := slice.FindBy(depts, func(_ int, d *model.Department) bool { return d.ID == id })
		if !ok {
			return xerr.NotFound("部门不存在")
		}
		if parentID != nil {
			if err := checkParent(depts, id, *parentID); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(dept).Updates(updates).Error
	})
	if err != nil {
		return nil, xerr.Wrap("更新部门失败", err)
	}
	return l.getDept(db, id)
}

// checkParent 校验新的上级部门存在且不在自身子树内
func checkParent(depts []*model.Department, id, parentID string) error {
	if parentID == id {
		return xerr.Validation("不能将自己设为上级部门")
	}
	if !slice.ContainBy(depts, func(d *model.Department) bool { return d.ID == parentID }) {
		return xerr.Validation("上级部门不存在")
	}
	if slice.Contain(CollectDescendantIDs(id, depts), parentID) {
		return xerr.Validation("不能将部门移动到其子部门下")
	}
	return nil
}

// DeleteDept 删除部门（软删除），存在子部门时拒绝
func (l *DeptLogic) DeleteDept(id string) error {
	db := primary(l.db)
	if _, err := findDept(db, id); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.Department{}).Where("parent_id = ?", id).Count(&count).Error; err != nil {
		return xerr.Internal("查询子部门失败", err)
	}
	if count > 0 {
		return xerr.Conflict("该部门下有子部门，无法删除")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("department_id = ?", id).Update("department_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("department_id = ?", id).Delete(&model.Department{}).Error
	})
	if err != nil {
		return xerr.Internal("删除部门失败", err)
	}
	return nil
}

// GetDeptMembers 查询部门成员，includeChildren 为 true 时包含所有下级部门
func (l *DeptLogic) GetDeptMembers(id string, includeChildren bool) ([]*types.DepartmentMember, error) {
	if _, err := findDept(l.db, id); err != nil {
		return nil, err
	}

	deptIDs := []string{id}
	if includeChildren {
		var depts []*model.Department
		if err := l.db.Select("department_id", "parent_id").Find(&depts).Error; err != nil {
			return nil, xerr.Internal("查询部门失败", err)
		}
		deptIDs = CollectDescendantIDs(id, depts)
	}

	var users []*model.User
	if err := l.db.Where("department_id IN ?", deptIDs).Order("created_at ASC, user_id ASC").Find(&users).Error; err != nil {
		return nil, xerr.Internal("查询部门成员失败", err)
	}

	members := make([]*types.DepartmentMember, 0, len(users))
	for _, u := range users {
		members = append(members, types.ToDepartmentMember(u))
	}
	return members, nil
}

func findDept(db *gorm.DB, id string) (*model.Department, error) {
	var dept model.Department
	if err := db.Where("department_id = ?", id).Take(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.NotFound("部门不存在")
		}
		return nil, xerr.Internal("查询部门失败", err)
	}
	return &dept, nil
}

func allDepts(db *gorm.DB) ([]*model.Department, error) {
	var depts []*model.Department
	if err := db.Order(deptOrder).Find(&depts).Error; err != nil {
		return nil, xerr.Internal("查询部门失败", err)
	}
	return depts, nil
}

// normalizeID 去除首尾空白，空串视为未设置
func normalizeID(s *string) *string {
	if s == nil {
		return nil
	}
	return model.StringPtr(strings.TrimSpace(*s))
}
