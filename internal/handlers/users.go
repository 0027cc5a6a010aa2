package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/events"
	"github.com/davidrendon/identia-backend/internal/httpx"
	"github.com/davidrendon/identia-backend/internal/models"
	"github.com/davidrendon/identia-backend/internal/store"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type UpdateUserInput struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// RegisterUser creates an account with a hashed password and announces
// it on the user-events topic.
func RegisterUser(s *store.Store, pub events.Publisher, log *zap.Logger) gin.HandlerFunc {
	const tag = "[RegisterUser]"
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.BadRequest(err.Error()).Log(log, tag).Send(c)
			return
		}

		user := models.User{
			Email: input.Email,
			Name:  input.Name,
			Phone: input.Phone,
		}
		if err := user.SetPassword(input.Password); err != nil {
			respondError(c, log, tag, err)
			return
		}

		if err := s.CreateUser(c.Request.Context(), &user); err != nil {
			respondError(c, log, tag, err)
			return
		}

		if pub != nil {
			if err := pub.Publish(c.Request.Context(), events.Event{
				Type:  events.TypeUserRegistered,
				Email: user.Email,
				Name:  user.Name,
				Phone: user.Phone,
			}); err != nil {
				log.Warn("event publish failed", zap.String("tag", tag), zap.Error(err))
			}
		}

		httpx.Created("User registered successfully", userPayload(&user)).Log(log, tag).Send(c)
	}
}

// UpdateUser changes the email and name of an existing account.
func UpdateUser(s *store.Store, log *zap.Logger) gin.HandlerFunc {
	const tag = "[UpdateUser]"
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			httpx.BadRequest("Invalid user id").Log(log, tag).Send(c)
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.BadRequest(err.Error()).Log(log, tag).Send(c)
			return
		}

		user, err := s.UserByID(c.Request.Context(), uint(id))
		if err != nil {
			respondError(c, log, tag, err)
			return
		}

		user.Email = input.Email
		user.Name = input.Name
		if err := s.UpdateUser(c.Request.Context(), user); err != nil {
			respondError(c, log, tag, err)
			return
		}

		httpx.OK("User updated successfully", userPayload(user)).Log(log, tag).Send(c)
	}
}

// ListUsers returns one page of users. page >= 1, 1 <= size <= 100.
func ListUsers(s *store.Store, log *zap.Logger) gin.HandlerFunc {
	const tag = "[ListUsers]"
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			httpx.BadRequest("page must be a positive integer").Log(log, tag).Send(c)
			return
		}
		size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
		if err != nil || size < 1 || size > 100 {
			httpx.BadRequest("size must be between 1 and 100").Log(log, tag).Send(c)
			return
		}

		users, total, err := s.UsersPage(c.Request.Context(), page, size)
		if err != nil {
			respondError(c, log, tag, err)
			return
		}

		items := make([]gin.H, 0, len(users))
		for i := range users {
			items = append(items, userPayload(&users[i]))
		}

		httpx.OK("Users retrieved successfully", gin.H{
			"items":       items,
			"totalItems":  total,
			"totalPages":  int(math.Ceil(float64(total) / float64(size))),
			"currentPage": page,
			"pageSize":    size,
		}).Log(log, tag).Send(c)
	}
}

// GetUser fetches a single user; soft-deleted accounts are not found.
func GetUser(s *store.Store, log *zap.Logger) gin.HandlerFunc {
	const tag = "[GetUser]"
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			httpx.BadRequest("Invalid user id").Log(log, tag).Send(c)
			return
		}

		user, err := s.UserByID(c.Request.Context(), uint(id))
		if err != nil {
			respondError(c, log, tag, err)
			return
		}

		httpx.OK("User retrieved successfully", userPayload(user)).Log(log, tag).Send(c)
	}
}

// DeleteUser soft-deletes the account; the row stays in storage.
func DeleteUser(s *store.Store, log *zap.Logger) gin.HandlerFunc {
	const tag = "[DeleteUser]"
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			httpx.BadRequest("Invalid user id").Log(log, tag).Send(c)
			return
		}

		if err := s.SoftDeleteUser(c.Request.Context(), uint(id)); err != nil {
			respondError(c, log, tag, err)
			return
		}

		httpx.OK("User deleted successfully", nil).Log(log, tag).Send(c)
	}
}
