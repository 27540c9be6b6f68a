package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
	"github.com/techagentng/wayvee/server/response"
	jwtPackage "github.com/techagentng/wayvee/services/jwt"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, models.TranslateValidationErrors(err), errors.ErrBadRequest)
			return
		}
		createdUser, svcErr := s.AuthService.SignupUser(&user)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "signup successful", http.StatusCreated, createdUser.ToResponse(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		loginResponse, svcErr := s.AuthService.LoginUser(&loginRequest)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := c.GetString("access_token")
		if svcErr := s.AuthService.LogoutUser(accessToken); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		profile, svcErr := s.AuthService.GetUserProfile(user.ID)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "profile retrieved successfully", http.StatusOK, profile.ToResponse(), nil)
	}
}

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ForgotPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		if svcErr := s.AuthService.SendEmailForPasswordReset(&request); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "a reset link has been sent if the account exists", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		var request models.ResetPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		if svcErr := s.AuthService.ResetPassword(&request, token); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "password reset successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleStartPhoneVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		if svcErr := s.AuthService.StartPhoneVerification(user.ID); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "verification code sent", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleCheckPhoneVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var request models.VerifyPhoneRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		if svcErr := s.AuthService.CheckPhoneVerification(user.ID, &request); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "phone number verified", http.StatusOK, nil, nil)
	}
}

func (s *Server) googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

func generateJWTState(secret string) (string, error) {
	claims := jwt.MapClaims{
		"exp":   time.Now().Add(10 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
		"state": uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func verifyState(state, secret string) bool {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateJWTState(s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.ErrInternalServerError)
			return
		}
		authURL := s.googleOauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")

		if !verifyState(state, s.Config.JWTSecret) {
			response.JSON(c, "invalid or expired state", http.StatusForbidden, nil, errors.New("invalid or expired state", http.StatusForbidden))
			return
		}

		conf := s.googleOauthConfig()
		token, err := conf.Exchange(c.Request.Context(), code)
		if err != nil {
			log.Printf("google token exchange failed: %v", err)
			response.JSON(c, "token exchange failed", http.StatusInternalServerError, nil, errors.ErrInternalServerError)
			return
		}

		userData, err := fetchGoogleUserInfo(conf, token)
		if err != nil {
			log.Printf("failed to fetch google user info: %v", err)
			response.JSON(c, "failed to fetch user information", http.StatusInternalServerError, nil, errors.ErrInternalServerError)
			return
		}

		email, ok := userData["email"].(string)
		if !ok || email == "" {
			response.JSON(c, "email missing from provider response", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}

		user, err := s.getOrCreateSocialUser(email, userData)
		if err != nil {
			log.Printf("failed to resolve social user: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.ErrInternalServerError)
			return
		}

		accessToken, err := jwtPackage.GenerateToken(user.ID, s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errors.ErrInternalServerError)
			return
		}

		response.JSON(c, "login successful", http.StatusOK, models.LoginResponse{
			UserResponse: user.ToResponse(),
			AccessToken:  accessToken,
		}, nil)
	}
}

func fetchGoogleUserInfo(conf *oauth2.Config, token *oauth2.Token) (map[string]interface{}, error) {
	client := conf.Client(oauth2.NoContext, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var userData map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&userData); err != nil {
		return nil, err
	}
	return userData, nil
}

func (s *Server) getOrCreateSocialUser(email string, userData map[string]interface{}) (*models.User, error) {
	user, err := s.AuthRepository.FindUserByEmail(strings.ToLower(email))
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	newUser := &models.User{
		Email:    strings.ToLower(email),
		IsSocial: true,
		IsMember: true,
	}
	if name, ok := userData["given_name"].(string); ok {
		newUser.Firstname = name
	}
	if name, ok := userData["family_name"].(string); ok {
		newUser.Lastname = name
	}
	if picture, ok := userData["picture"].(string); ok {
		newUser.Picture = picture
	}
	return s.AuthRepository.CreateUser(newUser)
}
