package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/dto"
	"github.com/ignatzorin/freelance-escrow/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/service"
	"github.com/ignatzorin/freelance-escrow/internal/validation"
)

// AuthHandler выпускает access токены для адресов участников.
// Проверка владения адресом выполняется внешним шлюзом до этого вызова.
type AuthHandler struct {
	tokens *service.TokenManager
}

func NewAuthHandler(tokens *service.TokenManager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// IssueToken POST /auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateAddress(req.Address); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	token, expiresAt, err := h.tokens.Issue(models.Address(req.Address))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token.AccessToken,
		"expires_in":   int64(token.ExpiresIn.Seconds()),
		"expires_at":   expiresAt,
	})
}
