package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/meunion/campus-match/internal/database"
	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/models"
	"github.com/meunion/campus-match/internal/otp"
	"github.com/meunion/campus-match/pkg/auth"
)

type AuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	redis      *redis.Client
	otp        *otp.Manager
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, rdb *redis.Client, otpMgr *otp.Manager) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, redis: rdb, otp: otpMgr}
}

// Register создаёт аккаунт по email и паролю. Анкета на этом этапе
// минимальная, дальше пользователя ведёт мастер заполнения
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.db.FindUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		ClassYear:    req.ClassYear,
	}

	if err := h.db.SaveUser(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create user"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, authResponse(user, token))
}

// Login выдаёт JWT по email и паролю
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, authResponse(user, token))
}

// Logout ставит токен в чёрный список в Redis до истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ttl := time.Until(exp)
	h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl)

	c.Status(http.StatusOK)
}

// PhoneStart выдаёт одноразовый код для входа по телефону.
// Доставка SMS — на стороне шлюза, здесь код только выпускается
func (h *AuthHandler) PhoneStart(c *gin.Context) {
	var req dto.PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.otp.Issue(c.Request.Context(), req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue code"})
		return
	}

	log.Debug().Str("phone", req.Phone).Str("code", code).Msg("otp issued")

	c.JSON(http.StatusOK, gin.H{"message": "code sent"})
}

// PhoneVerify проверяет код и логинит (или создаёт) пользователя по телефону
func (h *AuthHandler) PhoneVerify(c *gin.Context) {
	var req dto.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otp.Verify(c.Request.Context(), req.Phone, req.Code); err != nil {
		if err == otp.ErrInvalidCode {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify code"})
		return
	}

	user, err := h.db.FindUserByPhone(req.Phone)
	if err == gorm.ErrRecordNotFound {
		user = &models.User{
			Phone:       req.Phone,
			DisplayName: "New Student",
		}
		if err := h.db.SaveUser(user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, authResponse(user, token))
}

// authResponse — общий формат ответа на вход: по profile_complete клиент
// решает, вести пользователя в мастер анкеты или сразу в ленту
func authResponse(user *models.User, token string) gin.H {
	return gin.H{
		"token":            token,
		"user":             formatUserResponse(user),
		"profile_complete": user.IsProfileComplete(),
	}
}
