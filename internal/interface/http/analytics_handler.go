package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/internal/application"
	"github.com/oksasatya/travel-story-api/pkg/response"
)

type AnalyticsHandler struct {
	Svc    *application.AnalyticsService
	Logger *logrus.Logger
}

func NewAnalyticsHandler(svc *application.AnalyticsService, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{Svc: svc, Logger: logger}
}

func (h *AnalyticsHandler) logFailure(err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).Error(msg)
	}
}

// Stats GET /analytics/stats
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logFailure(err, "analytics stats failed")
		response.Error(c, http.StatusInternalServerError, "Failed to fetch analytics", nil)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{
		"totalTrips":            stats.TotalTrips,
		"totalCountries":        stats.TotalCountries,
		"countries":             stats.Countries,
		"favoriteDestinations":  stats.FavoriteDestinations,
		"monthlyActivity":       stats.MonthlyActivity,
		"monthlyTimeline":       stats.MonthlyTimeline,
		"avgTripDuration":       stats.AvgTripDuration,
		"photographedLocations": stats.PhotographedLocations,
		"recentTrips":           stats.RecentTrips,
	})
}

// Spending GET /analytics/spending
func (h *AnalyticsHandler) Spending(c *gin.Context) {
	sp, err := h.Svc.Spending(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logFailure(err, "analytics spending failed")
		response.Error(c, http.StatusInternalServerError, "Failed to fetch spending data", nil)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{
		"totalSpending": sp.TotalSpending,
		"spendingData":  sp.SpendingData,
		"avgPerTrip":    sp.AvgPerTrip,
	})
}
