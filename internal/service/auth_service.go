package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"touragency/internal/config"
	"touragency/internal/model"
	"touragency/internal/repository"
	"touragency/pkg/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db           *gorm.DB
	cfg          *config.Config
	employeeRepo *repository.EmployeeRepository
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:           db,
		cfg:          cfg,
		employeeRepo: repository.NewEmployeeRepository(db),
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Employee struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"employee"`
}

// Register 创建员工账号，仅管理员可用
func (s *AuthService) Register(ctx context.Context, actor model.Actor, req *RegisterRequest) (*model.Employee, error) {
	if actor.Role != model.RoleAdmin {
		return nil, model.NewUnauthorized("只有管理员可以创建员工账号")
	}

	if req.Role != model.RoleAdmin && req.Role != model.RoleEmployee {
		return nil, model.NewValidation("未知的角色: %s", req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	employee := &model.Employee{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("创建员工失败: %w", err)
	}

	return employee, nil
}

// Login 邮箱+密码登录，成功后签发 JWT
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	employee, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return nil, model.NewUnauthorized("邮箱或密码错误")
		}
		return nil, fmt.Errorf("查询员工失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewUnauthorized("邮箱或密码错误")
	}

	expire := time.Duration(s.cfg.JWT.ExpireHours) * time.Hour
	tokenStr, err := token.Create(s.cfg.JWT.Secret, employee.ID, employee.Role, expire)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}

	resp := &LoginResponse{Token: tokenStr}
	resp.Employee.ID = employee.ID
	resp.Employee.Name = employee.Name
	resp.Employee.Email = employee.Email
	resp.Employee.Role = employee.Role
	return resp, nil
}
