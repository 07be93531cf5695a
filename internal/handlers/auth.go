package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"servicehub/api/internal/models"
	"servicehub/api/internal/service"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	UserType  string `json:"userType"`
	Location  string `json:"location"`
}

// profileResponse is the public view of a user. The password hash has no
// field here on purpose.
type profileResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Company   *string   `json:"company,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UserType  string    `json:"userType"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	profileResponse
	Token string `json:"token"`
}

func toProfileResponse(user models.User) profileResponse {
	return profileResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Email:     user.Email,
		Phone:     user.Phone,
		UserType:  string(user.UserType),
		Location:  user.Location,
		CreatedAt: user.CreatedAt,
	}
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		UserType:  req.UserType,
		Location:  req.Location,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		profileResponse: toProfileResponse(user),
		Token:           token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		profileResponse: toProfileResponse(user),
		Token:           token,
	})
}

func (h HandlerSet) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}
