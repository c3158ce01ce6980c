package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/thingful/internal/common"
	"github.com/dmitrijs2005/thingful/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidBody    = "Invalid request body"
	msgInternalServer = "Internal server error"
)

type registerRequest struct {
	UserName string  `json:"user_name"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Nickname *string `json:"nickname"`
}

type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

// bindBody decodes a JSON body into dst. An empty body leaves dst zeroed so
// the service reports the first missing field.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return false
	}
	return true
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if !bindBody(c, &req) {
		return
	}

	view, err := s.users.Register(c.Request.Context(), services.RegisterRequest{
		UserName: req.UserName,
		Password: req.Password,
		FullName: req.FullName,
		Nickname: req.Nickname,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Location", "/api/users/"+view.ID)
	c.JSON(http.StatusCreated, view)
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if !bindBody(c, &req) {
		return
	}

	token, err := s.users.Login(c.Request.Context(), services.LoginRequest{
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{AuthToken: token})
}

// writeError answers 400 with the verbatim message for rejections and a
// generic 500 for everything else. Internal codes and their context go to the
// log only.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	if r, ok := common.AsRejection(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": r.Message})
		return
	}

	args := []any{"path", c.FullPath(), "error", err}
	if code, details, ok := services.InternalCode(err); ok {
		args = append(args, "code", code, "details", details)
	}
	s.logger.Error(c.Request.Context(), "request failed", args...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalServer})
}
