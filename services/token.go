package services

import (
	"fmt"
	"strings"
	"time"

	apperr "jobboard/errors"
	"jobboard/models"

	"github.com/dgrijalva/jwt-go"
)

// UserInfo là phần thông tin user nhúng trong token
type UserInfo struct {
	UserID   uint        `json:"userid"`
	Role     models.Role `json:"role"`
	Verified bool        `json:"verified"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService ký và xác thực access token HS256
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue tạo access token cho user
func (s *TokenService) Issue(u *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserInfo: UserInfo{UserID: u.ID, Role: u.Role, Verified: u.IsVerified},
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Subject:   fmt.Sprint(u.ID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse xác thực chữ ký, hạn dùng và trả về actor
func (s *TokenService) Parse(tokenString string) (models.Actor, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return models.Actor{}, apperr.Unauthenticated("missing token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Actor{}, apperr.NewAppError(apperr.ErrCodeUnauthenticated, "Token không hợp lệ", err)
	}
	if claims.UserInfo.UserID == 0 || !claims.UserInfo.Role.Valid() {
		return models.Actor{}, apperr.Unauthenticated("Không tìm thấy thông tin user trong token")
	}

	return models.Actor{
		UserID:     claims.UserInfo.UserID,
		Role:       claims.UserInfo.Role,
		IsVerified: claims.UserInfo.Verified,
	}, nil
}
