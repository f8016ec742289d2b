package handlers

import (
	"net/http"

	profileRepo "voyago/database/repository/profile"
	"voyago/models"
	"voyago/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the user preference defaults consumed by the
// interpreter.
type ProfileHandler struct {
	Repo profileRepo.ProfileRepository
}

func NewProfileHandler(repo profileRepo.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{Repo: repo}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.Repo.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not load profile", "")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}
	profile.UserID = c.GetString("userID")

	if err := h.Repo.UpsertProfile(c.Request.Context(), &profile); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not save profile", "")
		return
	}
	c.JSON(http.StatusOK, profile)
}
