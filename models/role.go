package models

import (
	"fmt"
	"strings"
)

// Role là loại tài khoản. Giá trị lưu trong DB là số, JSON dùng tên.
type Role int

const (
	RoleJobseeker Role = iota
	RoleEmployer
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleJobseeker: "jobseeker",
	RoleEmployer:  "employer",
	RoleAdmin:     "admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole đọc role từ tên, không phân biệt hoa thường
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Actor là danh tính đã xác thực của người gọi
type Actor struct {
	UserID     uint
	Role       Role
	IsVerified bool
}

func (a Actor) IsAdmin() bool     { return a.Role == RoleAdmin }
func (a Actor) IsEmployer() bool  { return a.Role == RoleEmployer }
func (a Actor) IsJobseeker() bool { return a.Role == RoleJobseeker }

// CanManage cho biết actor có quyền trên tài nguyên thuộc ownerID không (chủ sở hữu hoặc admin)
func (a Actor) CanManage(ownerID uint) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
