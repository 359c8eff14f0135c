package server

import (
	"net/http"
	"strings"

	userdomain "github.com/anish-1308/ibilling/internal/user/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Login
// @Description  Authenticate a back-office user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Credentials"
// @Success      200  {object}  userdomain.User
// @Router       /login [post]
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "user.login", "user", resp.ID.String(), map[string]any{
		"email": resp.Email,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateUser(c *gin.Context) {
	var req userdomain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "user.create", "user", resp.ID.String(), map[string]any{
		"email": resp.Email,
		"role":  string(resp.Role),
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUsers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name string `form:"name"`
		Role string `form:"role"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.List(c.Request.Context(), userdomain.ListUserRequest{
		Pagination: query.Pagination,
		Name:       strings.TrimSpace(query.Name),
		Role:       strings.TrimSpace(query.Role),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetUserByID(c *gin.Context) {
	resp, err := s.userSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateUser(c *gin.Context) {
	var req userdomain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.userSvc.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "user.update", "user", id, map[string]any{
		"email": resp.Email,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.userSvc.SoftDelete(c.Request.Context(), id, actorFrom(c)); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "user.delete", "user", id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
