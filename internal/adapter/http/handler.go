package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hazardwatch/alert-engine/internal/domain"
	"github.com/hazardwatch/alert-engine/internal/store"
)

const defaultRadiusDegrees = 5.0

type handler struct {
	store  store.AlertStore
	logger *slog.Logger
}

func (h *handler) registerRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1/alerts")
	v1.GET("", h.listRecent)
	v1.GET("/severity/:severity", h.listBySeverity)
	v1.GET("/type/:alertType", h.listByType)
	v1.GET("/critical", h.listCriticalUnacknowledged)
	v1.GET("/earthquakes", h.listEarthquakes)
	v1.GET("/earthquakes/:earthquakeId", h.getByEarthquakeID)
	v1.GET("/tsunamis", h.listTsunamis)
	v1.GET("/floods", h.listFloods)
	v1.GET("/cme", h.listCME)
	v1.GET("/location", h.listByLocation)
	v1.GET("/types", h.listTypes)
	v1.GET("/health", h.health)
	v1.GET("/:id", h.getByID)
	v1.POST("/:id/acknowledge", h.acknowledge)
}

// listRecent returns alerts created in the last N hours, newest first.
func (h *handler) listRecent(c *gin.Context) {
	hours := 24
	if s := c.Query("hours"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a positive integer"})
			return
		}
		hours = n
	}

	since := domain.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	alerts, err := h.store.ListSince(c.Request.Context(), since)
	h.respondList(c, alerts, err)
}

func (h *handler) getByID(c *gin.Context) {
	alert, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	h.respondOne(c, alert, err)
}

func (h *handler) listBySeverity(c *gin.Context) {
	severity := domain.Severity(strings.ToUpper(c.Param("severity")))
	if !severity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown severity"})
		return
	}
	alerts, err := h.store.ListBySeverity(c.Request.Context(), severity)
	h.respondList(c, alerts, err)
}

func (h *handler) listByType(c *gin.Context) {
	alertType, ok := parseAlertType(c.Param("alertType"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown alert type"})
		return
	}
	alerts, err := h.store.ListByType(c.Request.Context(), alertType)
	h.respondList(c, alerts, err)
}

func (h *handler) listCriticalUnacknowledged(c *gin.Context) {
	alerts, err := h.store.ListCriticalUnacknowledged(c.Request.Context())
	h.respondList(c, alerts, err)
}

// listEarthquakes filters by region when given, otherwise by minimum
// magnitude (default 0, i.e. all earthquake alerts).
func (h *handler) listEarthquakes(c *gin.Context) {
	if region := c.Query("region"); region != "" {
		alerts, err := h.store.ListEarthquakesByRegion(c.Request.Context(), region)
		h.respondList(c, alerts, err)
		return
	}

	minMagnitude := 0.0
	if s := c.Query("minMagnitude"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minMagnitude must be a number"})
			return
		}
		minMagnitude = v
	}
	alerts, err := h.store.ListEarthquakes(c.Request.Context(), minMagnitude)
	h.respondList(c, alerts, err)
}

func (h *handler) getByEarthquakeID(c *gin.Context) {
	alert, err := h.store.GetByEarthquakeID(c.Request.Context(), c.Param("earthquakeId"))
	h.respondOne(c, alert, err)
}

func (h *handler) listTsunamis(c *gin.Context) {
	minRiskScore := 0
	if s := c.Query("minRiskScore"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minRiskScore must be an integer"})
			return
		}
		minRiskScore = v
	}
	alerts, err := h.store.ListTsunamis(c.Request.Context(), minRiskScore)
	h.respondList(c, alerts, err)
}

func (h *handler) listFloods(c *gin.Context) {
	alerts, err := h.store.ListFloods(c.Request.Context(), c.Query("stationId"))
	h.respondList(c, alerts, err)
}

func (h *handler) listCME(c *gin.Context) {
	minSpeed := 0.0
	if s := c.Query("minSpeed"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minSpeed must be a number"})
			return
		}
		minSpeed = v
	}
	alerts, err := h.store.ListCME(c.Request.Context(), minSpeed)
	h.respondList(c, alerts, err)
}

// listByLocation returns alerts inside a square bounding box centered on
// the given coordinates. The box is degrees-based, not great-circle.
func (h *handler) listByLocation(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude is required"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "longitude is required"})
		return
	}

	radius := defaultRadiusDegrees
	if s := c.Query("radiusDegrees"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radiusDegrees must be a positive number"})
			return
		}
		radius = v
	}

	alerts, err := h.store.ListByBoundingBox(c.Request.Context(),
		lat-radius, lat+radius, lon-radius, lon+radius)
	h.respondList(c, alerts, err)
}

func (h *handler) listTypes(c *gin.Context) {
	c.JSON(http.StatusOK, domain.AlertTypes())
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "alert-engine"})
}

func (h *handler) acknowledge(c *gin.Context) {
	alert, err := h.store.Acknowledge(c.Request.Context(), c.Param("id"))
	h.respondOne(c, alert, err)
}

func (h *handler) respondOne(c *gin.Context, alert *domain.Alert, err error) {
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		h.logger.Error("alert query failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alert"})
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *handler) respondList(c *gin.Context, alerts []domain.Alert, err error) {
	if err != nil {
		h.logger.Error("alert query failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func parseAlertType(s string) (domain.AlertType, bool) {
	candidate := domain.AlertType(strings.ToUpper(s))
	for _, t := range domain.AlertTypes() {
		if t == candidate {
			return t, true
		}
	}
	return "", false
}
