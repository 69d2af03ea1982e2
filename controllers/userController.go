package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"foodstop-server/helpers"
	"foodstop-server/middleware"
	"foodstop-server/models"
	"foodstop-server/repository"
	"foodstop-server/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	users      repository.UserRepository
	reconciler *services.ReconcileService
}

func NewUserController(users repository.UserRepository, reconciler *services.ReconcileService) *UserController {
	return &UserController{users: users, reconciler: reconciler}
}

func (uc *UserController) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if user.User_role == nil {
			role := models.RoleCustomer
			user.User_role = &role
		}
		if err := validate.Struct(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email := strings.ToLower(*user.Email)
		user.Email = &email

		count, err := uc.users.CountByEmail(ctx, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking for the email"})
			return
		}
		if count == 0 && user.Phone != nil {
			count, err = uc.users.CountByPhone(ctx, *user.Phone)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while checking for the phone number"})
				return
			}
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "email or phone number already exists"})
			return
		}

		password := hashPassword(*user.Password)
		user.Password = &password

		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()
		user.Created_at = time.Now()
		user.Updated_at = user.Created_at

		token, refreshToken, err := helpers.GenerateAllTokens(email, *user.Name, user.User_id, *user.User_role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
			return
		}
		user.Token = &token
		user.Refresh_Token = &refreshToken

		if err := uc.users.Insert(ctx, &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user was not created"})
			return
		}

		user.Password = nil
		c.JSON(http.StatusOK, user)
	}
}

func (uc *UserController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		foundUser, err := uc.users.FindByEmail(ctx, strings.ToLower(req.Email))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}
		if !verifyPassword(req.Password, *foundUser.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.User_id, *foundUser.User_role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
			return
		}
		if err := uc.users.UpdateTokens(ctx, foundUser.User_id, token, refreshToken); err != nil {
			log.Printf("failed to store tokens for user %s: %v", foundUser.User_id, err)
		}
		foundUser.Token = &token
		foundUser.Refresh_Token = &refreshToken

		// Claim any guest orders placed with this email before the account
		// existed. Best-effort: a failure here never fails the login.
		if adopted := uc.reconciler.AdoptOrphans(ctx, foundUser.User_id, *foundUser.Email); adopted > 0 {
			log.Printf("linked %d orphaned orders to user %s at login", adopted, foundUser.User_id)
		}

		foundUser.Password = nil
		c.JSON(http.StatusOK, foundUser)
	}
}

func (uc *UserController) GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		userID := c.Param("user_id")
		caller := middleware.CallerFromContext(c)
		if !caller.IsAdmin() && (caller == nil || caller.User_id != userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		user, err := uc.users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		user.Password = nil
		c.JSON(http.StatusOK, user)
	}
}

// RegisterNotificationToken stores the caller's push delivery handle so the
// dispatcher can reach their dashboard.
func (uc *UserController) RegisterNotificationToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req struct {
			Notification_token string `json:"notification_token" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Notification_token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "notification_token is required"})
			return
		}

		caller := middleware.CallerFromContext(c)
		if err := uc.users.SetNotificationToken(ctx, caller.User_id, req.Notification_token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register notification token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "notification token registered"})
	}
}

func hashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func verifyPassword(userPassword string, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(userPassword)) == nil
}
