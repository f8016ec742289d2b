package handlers

import (
	"net/http"
	"time"

	tripRepo "voyago/database/repository/trip"
	"voyago/models"
	"voyago/services/alerts"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TripHandler serves saved trips and itineraries. Saving an itinerary also
// schedules a disruption check shortly before the trip starts.
type TripHandler struct {
	Repo  tripRepo.TripRepository
	Queue *asynq.Client
}

func NewTripHandler(repo tripRepo.TripRepository, queue *asynq.Client) *TripHandler {
	return &TripHandler{Repo: repo, Queue: queue}
}

func (h *TripHandler) ListTrips(c *gin.Context) {
	refs, err := h.Repo.RecentTripRefs(c.Request.Context(), c.GetString("userID"), 20)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not load trips", "")
		return
	}
	if refs == nil {
		refs = []models.SavedTripRef{}
	}
	c.JSON(http.StatusOK, refs)
}

func (h *TripHandler) SaveItinerary(c *gin.Context) {
	logger := utils.GetLogger()

	var itinerary models.SavedItinerary
	if err := c.ShouldBindJSON(&itinerary); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid itinerary payload", err.Error())
		return
	}
	itinerary.UserID = c.GetString("userID")

	if err := h.Repo.SaveItinerary(c.Request.Context(), &itinerary); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not save itinerary", "")
		return
	}

	h.scheduleDisruptionCheck(&itinerary, logger)

	c.JSON(http.StatusCreated, itinerary)
}

// scheduleDisruptionCheck enqueues a forecast check for the evening before
// the trip starts. A scheduling failure never fails the save.
func (h *TripHandler) scheduleDisruptionCheck(itinerary *models.SavedItinerary, logger *zap.Logger) {
	if h.Queue == nil || itinerary.Geo.IsZero() {
		return
	}
	start, err := time.Parse("2006-01-02", itinerary.StartDate)
	if err != nil {
		logger.Warn("trips: unparseable start date, skipping disruption check",
			zap.String("itineraryId", itinerary.ID), zap.String("startDate", itinerary.StartDate))
		return
	}
	fireAt := start.Add(-6 * time.Hour)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now().Add(time.Minute)
	}

	task, opts, err := alerts.NewDisruptionCheckTask(alerts.DisruptionCheckPayload{
		UserID:      itinerary.UserID,
		ItineraryID: itinerary.ID,
	}, fireAt)
	if err != nil {
		logger.Error("trips: failed to build disruption check task", zap.Error(err))
		return
	}
	if _, err := h.Queue.Enqueue(task, opts...); err != nil {
		logger.Error("trips: failed to enqueue disruption check", zap.Error(err))
	}
}
