package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meunion/campus-match/internal/handlers/dto"
	"github.com/meunion/campus-match/internal/models"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// googleTokenInfo — ответ Google tokeninfo на проверку ID-токена
type googleTokenInfo struct {
	Audience string `json:"aud"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Expiry   string `json:"exp"`
}

var errGoogleToken = errors.New("invalid google token")

// GoogleSignIn принимает Google ID-токен, проверяет его через tokeninfo
// и логинит (или создаёт) пользователя по email из токена
func (h *AuthHandler) GoogleSignIn(clientID string) gin.HandlerFunc {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	return func(c *gin.Context) {
		var req dto.GoogleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		info, err := verifyGoogleToken(httpClient, req.IDToken, clientID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid google token"})
			return
		}

		user, err := h.db.FindUserByEmail(info.Email)
		if err == gorm.ErrRecordNotFound {
			user = &models.User{
				Email:       info.Email,
				DisplayName: info.Name,
			}
			if user.DisplayName == "" {
				user.DisplayName = "New Student"
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
}

func verifyGoogleToken(client *http.Client, idToken, clientID string) (*googleTokenInfo, error) {
	resp, err := client.Get(tokenInfoURL + "?id_token=" + url.QueryEscape(idToken))
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errGoogleToken
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	if clientID != "" && info.Audience != clientID {
		return nil, errGoogleToken
	}
	if info.Email == "" {
		return nil, errGoogleToken
	}

	exp, err := strconv.ParseInt(info.Expiry, 10, 64)
	if err != nil || time.Now().Unix() >= exp {
		return nil, errGoogleToken
	}

	return &info, nil
}
