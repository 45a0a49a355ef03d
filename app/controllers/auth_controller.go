package controllers

import (
	"net/http"

	"github.com/handcraftedhaven/haven/app/services"
	"github.com/handcraftedhaven/haven/pkg/bind"
	"github.com/handcraftedhaven/haven/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{auth: services.NewAuthService()}
}

// Register handles POST /api/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, tokens, err := c.auth.Register(in)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, tokens, err := c.auth.Login(in.Email, in.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh handles POST /api/refresh.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tokens, err := c.auth.Refresh(in.RefreshToken)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, tokens)
}
