package dto

// UpdateProfileRequest: các field rỗng được giữ nguyên
type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"omitempty,max=120"`
	Phone  string `json:"phone" binding:"omitempty,max=20"`
	Avatar string `json:"avatar" binding:"omitempty,url"`

	Headline        *string  `json:"headline"`
	Skills          []string `json:"skills" binding:"omitempty,dive,required,max=50"`
	ExperienceYears *int     `json:"experienceYears" binding:"omitempty,min=0,max=60"`

	Company *string `json:"company"`
	Website *string `json:"website" binding:"omitempty,url"`
	About   *string `json:"about"`
}

// UserListQuery là query của danh sách user cho admin
type UserListQuery struct {
	Role     string `form:"role" binding:"omitempty,role"`
	Verified *bool  `form:"verified"`
	Name     string `form:"name"`
	PageQuery
}

// UserVerifyRequest định nghĩa request bật/tắt xác minh user
type UserVerifyRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}
