package auth

import (
	"net/http"

	"erp/backend/foundation/web"
	"erp/backend/internal/auth"
	"erp/backend/internal/commands"
	"erp/backend/internal/entity"
	"erp/backend/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	user           User
	privateKeyPath string
}

func NewController(user User, privateKeyPath string) *Controller {
	return &Controller{user: user, privateKeyPath: privateKeyPath}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	err := c.BindFunc(&data, "Email", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByEmail(c.Ctx, data.Email)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil {
		return c.RespondError(&web.Error{
			Err:    errors.New("user has no password"),
			Status: http.StatusUnauthorized,
		})
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect email or password"), http.StatusUnauthorized))
	}

	if detail.IsActive != nil && !*detail.IsActive {
		return c.RespondError(web.NewRequestError(errors.New("account is deactivated"), http.StatusForbidden))
	}

	accessToken, refreshToken, err := commands.GenToken(claimsOf(detail), uc.privateKeyPath)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data user.RefreshTokenRequest

	err := c.BindFunc(&data, "AccessToken", "RefreshToken")
	if err != nil {
		return c.RespondError(err)
	}

	_, refreshClaims, err := commands.VerifyTokens(data.AccessToken, data.RefreshToken, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := commands.GenToken(auth.Claims{
		UserID: refreshClaims.UserID,
		Role:   refreshClaims.Role,
		BUCode: refreshClaims.BUCode,
	}, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

func claimsOf(detail entity.AppUser) auth.Claims {
	claims := auth.Claims{UserID: detail.ID}
	if detail.Role != nil {
		claims.Role = *detail.Role
	}
	if detail.BUCode != nil {
		claims.BUCode = *detail.BUCode
	}
	return claims
}
