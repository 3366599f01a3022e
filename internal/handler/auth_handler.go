package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup 注册新账号
func Signup(c *gin.Context) {
	var payload credentialsPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || strings.TrimSpace(payload.Password) == "" {
		respondError(c, http.StatusBadRequest, "用户名和密码不能为空")
		return
	}

	var existing db.User
	err := db.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusBadRequest, "用户名已被占用")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "注册失败")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "注册失败")
		return
	}

	user := db.User{Username: username, Password: string(hashed)}
	if err := db.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "注册失败")
		return
	}

	establishSession(c, user)
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	var payload credentialsPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	// 查找用户
	var user db.User
	if err := db.DB.Where("username = ?", strings.TrimSpace(payload.Username)).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	establishSession(c, user)
}

func establishSession(c *gin.Context, user db.User) {
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": user.ID, "username": user.Username}})
}

// Logout 处理用户登出
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// CurrentUser 返回当前登录用户
func CurrentUser(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")
	if userID == nil {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": userID, "username": session.Get("username")}})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			respondError(c, http.StatusUnauthorized, "未登录")
			c.Abort()
			return
		}
		c.Next()
	}
}
