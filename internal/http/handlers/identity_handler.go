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

// IdentityHandler — HTTP-срез реестра участников.
type IdentityHandler struct {
	identity *service.IdentityService
}

func NewIdentityHandler(identity *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// Register POST /users
func (h *IdentityHandler) Register(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.RegisterUserRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateReference("profile hash", req.ProfileHash); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.identity.Register(address, req.ProfileHash)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateProfile PUT /users/me
func (h *IdentityHandler) UpdateProfile(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdateProfileRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateReference("profile hash", req.ProfileHash); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.identity.UpdateProfile(address, req.ProfileHash)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Deactivate DELETE /users/me
func (h *IdentityHandler) Deactivate(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	if err := h.identity.Deactivate(address); err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "профиль деактивирован", nil)
}

// Me GET /users/me
func (h *IdentityHandler) Me(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	user, err := h.identity.Get(address)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser GET /users/:address
func (h *IdentityHandler) GetUser(c *gin.Context) {
	raw := c.Param("address")
	if err := validation.ValidateAddress(raw); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.identity.Get(models.Address(raw))
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetStats GET /users/:address/stats
func (h *IdentityHandler) GetStats(c *gin.Context) {
	raw := c.Param("address")
	if err := validation.ValidateAddress(raw); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	stats, err := h.identity.Stats(models.Address(raw))
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// IsRegistered GET /users/:address/registered
func (h *IdentityHandler) IsRegistered(c *gin.Context) {
	raw := c.Param("address")
	if err := validation.ValidateAddress(raw); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"registered": h.identity.IsRegistered(models.Address(raw))})
}
