package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/config"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/middleware"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/telegram"
	"github.com/BruksfildServices01/wellness-booking/internal/validators"
)

type InitDataVerifier interface {
	Verify(ctx context.Context, raw string) (*telegram.InitData, error)
}

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	telegram InitDataVerifier

	emailDomainOK func(string) bool
	now           func() time.Time
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, tg InitDataVerifier) *AuthHandler {
	return &AuthHandler{
		db:            db,
		config:        cfg,
		telegram:      tg,
		emailDomainOK: validators.IsEmailDomainValid,
		now:           time.Now,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TelegramLoginRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !h.emailDomainOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		writeError(c, err)
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "This e-mail is already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        &email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         models.RoleClient,
	}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		writeError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
			return
		}
		writeError(c, err)
		return
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
		return
	}

	h.respondWithToken(c, http.StatusOK, &user)
}

// Telegram signs a mini-app user in, creating the account on first visit.
func (h *AuthHandler) Telegram(c *gin.Context) {
	if h.telegram == nil {
		httperr.ServiceUnavailable(c, "telegram_disabled", "Telegram login is not configured.")
		return
	}

	var req TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	data, err := h.telegram.Verify(ctx, req.InitData)
	if err != nil {
		writeError(c, err)
		return
	}

	tgID := data.User.ID
	user := models.User{
		Name:             data.User.DisplayName(),
		TelegramID:       &tgID,
		TelegramUsername: data.User.Username,
		Role:             models.RoleClient,
	}
	if err := h.db.WithContext(ctx).
		Where(models.User{TelegramID: &tgID}).
		Attrs(user).
		FirstOrCreate(&user).Error; err != nil {
		writeError(c, err)
		return
	}

	if user.TelegramUsername != data.User.Username {
		if err := h.db.WithContext(ctx).Model(&user).
			Update("telegram_username", data.User.Username).Error; err != nil {
			zap.L().Warn("telegram username update failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	h.respondWithToken(c, http.StatusOK, &user)
}

// --------- JWT ---------

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, user.Role, h.now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(status, gin.H{
		"user":  userView(user),
		"token": token,
	})
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":                user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"phone":             user.Phone,
		"role":              user.Role,
		"telegram_username": user.TelegramUsername,
	}
}
