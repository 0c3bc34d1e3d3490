package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

const (
	maxAvatarSize = 1 << 20 // 1MB, matches the upload limit of the API

	msgInvalidUpdates = "Invalid updates!"
	msgUploadImage    = "Please upload an image!"
	msgFileTooLarge   = "File too large!"
)

// allowedUserUpdates is the PATCH /users/me whitelist. Any other key fails
// the whole request.
var allowedUserUpdates = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"age":      true,
}

type userHandler struct {
	users UserProvider
}

func newUserHandler(users UserProvider) *userHandler {
	return &userHandler{users: users}
}

func (h *userHandler) register(r *gin.Engine) {
	r.POST("/users", h.signup)
	r.POST("/users/login", h.login)
	r.GET("/users/:id/avatar", h.getAvatar)

	authed := r.Group("/users", AuthRequired(h.users))
	{
		authed.POST("/logout", h.logout)
		authed.POST("/logoutAll", h.logoutAll)
		authed.GET("/me", h.me)
		authed.PATCH("/me", h.update)
		authed.DELETE("/me", h.delete)
		authed.POST("/me/avatar", h.uploadAvatar)
		authed.DELETE("/me/avatar", h.deleteAvatar)
	}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7,notpassword"`
	Age      *int   `json:"age" validate:"omitempty,gte=0"`
}

func (h *userHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is already taken"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *userHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	// bad password and unknown email produce the same empty 400
	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *userHandler) logout(c *gin.Context) {
	user := currentUser(c)
	if err := h.users.Logout(c.Request.Context(), user.ID, currentToken(c)); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (h *userHandler) logoutAll(c *gin.Context) {
	user := currentUser(c)
	if err := h.users.LogoutAll(c.Request.Context(), user.ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (h *userHandler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=7,notpassword"`
	Age      *int    `json:"age" validate:"omitempty,gte=0"`
}

func (h *userHandler) update(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := checkAllowedKeys(raw, allowedUserUpdates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidUpdates})
		return
	}

	var req updateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), currentUser(c).ID, services.UpdateParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is already taken"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *userHandler) delete(c *gin.Context) {
	user, err := h.users.Delete(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) uploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUploadImage})
		return
	}
	if file.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgFileTooLarge})
		return
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".jpg", ".jpeg", ".png":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUploadImage})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxAvatarSize+1))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(data) > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgFileTooLarge})
		return
	}

	if err := h.users.SetAvatar(c.Request.Context(), currentUser(c).ID, data); err != nil {
		if errors.Is(err, common.ErrorInternal) {
			c.Status(http.StatusInternalServerError)
			return
		}
		// anything else means the payload did not decode as an image
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUploadImage})
		return
	}

	c.Status(http.StatusOK)
}

func (h *userHandler) deleteAvatar(c *gin.Context) {
	if err := h.users.DeleteAvatar(c.Request.Context(), currentUser(c).ID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// getAvatar is public and serves the stored PNG thumbnail of any user.
func (h *userHandler) getAvatar(c *gin.Context) {
	data, err := h.users.GetAvatar(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}
