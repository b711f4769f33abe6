package model

import (
	"time"
)

// ============================================================================
// 文章发布流转
// ============================================================================

const (
	PostStatusDraft       = "DRAFT"
	PostStatusPending     = "PENDING"
	PostStatusPublished   = "PUBLISHED"
	PostStatusScheduled   = "SCHEDULED" // 预留，当前没有任何流转到达或离开
	PostStatusUnpublished = "UNPUBLISHED"
	PostStatusArchived    = "ARCHIVED" // 预留，同上
	PostStatusDeleted     = "DELETED"  // 终态
)

// PostType 文章类型表（游记、公告、攻略等）
type PostType struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PostType) TableName() string {
	return "post_type"
}

// Tag 标签表
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string {
	return "tag"
}

// Post 文章表
// 由作者以草稿创建，状态只能沿下方流转表推进，DELETED 之后不可再变
type Post struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Slug        string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Status      string     `gorm:"type:varchar(20);index;not null;default:DRAFT" json:"status"`
	EmployeeID  int64      `gorm:"index;not null" json:"employee_id"`
	PostTypeID  int64      `gorm:"not null" json:"post_type_id"`
	PublishDate *time.Time `json:"publish_date"`
	Views       int64      `gorm:"not null;default:0" json:"views"`

	Tags []Tag `gorm:"many2many:post_tag" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string {
	return "post"
}

// PostAction 文章流转动作
type PostAction string

const (
	PostActionSubmit    PostAction = "SUBMIT"
	PostActionApprove   PostAction = "APPROVE"
	PostActionReject    PostAction = "REJECT"
	PostActionUnpublish PostAction = "UNPUBLISH"
	PostActionRestore   PostAction = "RESTORE"
	PostActionDelete    PostAction = "DELETE"
)

// 流转表：动作 -> 执行人要求 / 前置状态 / 目标状态
// ownerOnly 为 true 表示仅文章作者本人，否则要求管理员
type postTransition struct {
	ownerOnly bool
	from      string
	to        string
}

var postTransitions = map[PostAction]postTransition{
	PostActionSubmit:    {ownerOnly: true, from: PostStatusDraft, to: PostStatusPending},
	PostActionApprove:   {ownerOnly: false, from: PostStatusPending, to: PostStatusPublished},
	PostActionReject:    {ownerOnly: false, from: PostStatusPending, to: PostStatusUnpublished},
	PostActionUnpublish: {ownerOnly: false, from: PostStatusPublished, to: PostStatusUnpublished},
	PostActionRestore:   {ownerOnly: false, from: PostStatusUnpublished, to: PostStatusPublished},
	PostActionDelete:    {ownerOnly: true, from: PostStatusUnpublished, to: PostStatusDeleted},
}

// ApplyPostAction 计算一次流转的目标状态
// 先做权限校验，再做状态前置校验，两者都通过才返回目标状态
func ApplyPostAction(actor Actor, post *Post, action PostAction) (string, error) {
	t, ok := postTransitions[action]
	if !ok {
		return "", NewValidation("未知的文章动作: %s", action)
	}

	if t.ownerOnly {
		if actor.EmployeeID != post.EmployeeID {
			return "", NewUnauthorized("只有文章作者可以执行 %s", action)
		}
	} else if actor.Role != RoleAdmin {
		return "", NewUnauthorized("只有管理员可以执行 %s", action)
	}

	if post.Status != t.from {
		return "", NewInvalidOperation("文章当前状态 %s 不允许执行 %s", post.Status, action)
	}

	return t.to, nil
}

// PostReadScope 文章读取范围
// 管理员可见全部；普通员工只可见自己创建的；其他角色直接拒绝
// 返回值 ownOnly 为 true 时查询需要按作者过滤
func PostReadScope(actor Actor) (ownOnly bool, err error) {
	switch actor.Role {
	case RoleAdmin:
		return false, nil
	case RoleEmployee:
		return true, nil
	default:
		return false, NewUnauthorized("当前角色无权查看文章")
	}
}

// PostVisibleTo 单篇文章对操作者是否可见
func PostVisibleTo(actor Actor, post *Post) error {
	ownOnly, err := PostReadScope(actor)
	if err != nil {
		return err
	}
	if ownOnly && post.EmployeeID != actor.EmployeeID {
		return NewNotFound("文章不存在")
	}
	return nil
}
