package model

import (
	"time"
)

const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)

// Employee 员工表
// 所有后台操作的执行者，角色只有管理员和普通员工两种
type Employee struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(64);not null" json:"name"`
	Email        string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:Employee" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employee"
}

// Actor 当前请求的操作者
// 由认证中间件从 JWT claims 构造，显式传入每个服务方法，
// 服务内部不读取任何请求级全局状态
type Actor struct {
	EmployeeID int64
	Role       string
}

// IsKnownRole 角色是否是系统已知角色
func (a Actor) IsKnownRole() bool {
	return a.Role == RoleAdmin || a.Role == RoleEmployee
}
