package service

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/random"
	"github.com/rtphub/rtphub.go/db/models"
	"github.com/rtphub/rtphub.go/lib/security"
	"github.com/rtphub/rtphub.go/lib/tokens"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

type RtphubService struct {
	Config        *Config
	DB            *bun.DB
	Logger        *lecho.Logger
	SessionPubSub *Pubsub
}

func (svc *RtphubService) GenerateToken(ctx context.Context, login, password, inRefreshToken string) (accessToken, refreshToken string, err error) {
	var user *models.User

	switch {
	case login != "" || password != "":
		{
			user, err = svc.FindUserByLogin(ctx, login)
			if err != nil {
				return "", "", ErrNotAuthenticated
			}
			if !security.VerifyPassword(user.Password, password) {
				return "", "", ErrNotAuthenticated
			}
		}
	case inRefreshToken != "":
		{
			userId, err := tokens.GetUserIdFromToken(svc.Config.JWTSecret, inRefreshToken)
			if err != nil {
				return "", "", ErrNotAuthenticated
			}
			user, err = svc.FindUser(ctx, userId)
			if err != nil {
				return "", "", ErrNotAuthenticated
			}
		}
	default:
		{
			return "", "", fmt.Errorf("login and password or refresh token is required")
		}
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, user)
	if err != nil {
		return "", "", err
	}

	svc.SessionPubSub.Publish(user.ID, SessionEvent{UserID: user.ID, Type: SessionEventLogin})
	return accessToken, refreshToken, nil
}

// Logout only notifies subscribers: tokens are stateless, dependent views
// re-fetch or redirect on the event.
func (svc *RtphubService) Logout(ctx context.Context, userId int64) {
	svc.SessionPubSub.Publish(userId, SessionEvent{UserID: userId, Type: SessionEventLogout})
}
