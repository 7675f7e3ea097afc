package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"volunteer-service/internal/model"
	"volunteer-service/internal/store"
	"volunteer-service/internal/validation"
	"volunteer-service/pkg/logger"
	"volunteer-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const defaultPageSize = 50

// VolunteerStore is the persistence surface the volunteer handlers need.
// *store.VolunteerStore satisfies it; tests substitute an in-memory fake.
type VolunteerStore interface {
	Create(v *model.Volunteer) error
	FindByID(id uint) (*model.Volunteer, error)
	FindByEmail(email string) (*model.Volunteer, error)
	FindByPhone(phone string) (*model.Volunteer, error)
	List(limit, offset int) ([]model.Volunteer, error)
	Count() (int64, error)
	UpdateStatus(id uint, status model.VolunteerStatus, now time.Time) (*model.Volunteer, error)
}

// VolunteerHandler serves the /api/volunteers endpoints.
type VolunteerHandler struct {
	store VolunteerStore
}

// NewVolunteerHandler creates a VolunteerHandler backed by the given store.
func NewVolunteerHandler(s VolunteerStore) *VolunteerHandler {
	return &VolunteerHandler{store: s}
}

// Create handles a new volunteer application submission
func (h *VolunteerHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVolunteerOperation("create")

	var req validation.VolunteerInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request data",
		})
	}

	if fieldErrs := validation.ValidateVolunteer(&req); len(fieldErrs) > 0 {
		log.Warn("Volunteer validation failed", zap.Int("error_count", len(fieldErrs)))
		for _, fe := range fieldErrs {
			prometheus.RecordValidationFailure(fe.Field)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  fieldErrs,
		})
	}

	log.Info("Volunteer application received",
		zap.String("email", req.Email),
		zap.String("interest", req.Interest))

	// Pre-checks give friendlier conflict messages in the common case; the
	// unique constraints at insert time remain the authority (the check and
	// the insert are not atomic).
	if _, err := h.store.FindByEmail(req.Email); err == nil {
		log.Warn("Volunteer with this email already exists", zap.String("email", req.Email))
		prometheus.RecordConflict("email")
		return c.JSON(http.StatusConflict, echo.Map{
			"success": false,
			"message": "A volunteer with this email already exists",
		})
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("Failed to check email uniqueness", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	if _, err := h.store.FindByPhone(req.Phone); err == nil {
		log.Warn("Volunteer with this phone number already exists", zap.String("phone", req.Phone))
		prometheus.RecordConflict("phone")
		return c.JSON(http.StatusConflict, echo.Map{
			"success": false,
			"message": "A volunteer with this phone number already exists",
		})
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("Failed to check phone uniqueness", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	volunteer := model.Volunteer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Interest: req.Interest,
		Status:   model.StatusPending,
	}
	if req.Message != "" {
		volunteer.Message = &req.Message
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.store.Create(&volunteer); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			prometheus.RecordConflict("email")
			return c.JSON(http.StatusConflict, echo.Map{
				"success": false,
				"message": "A volunteer with this email already exists",
			})
		case errors.Is(err, store.ErrDuplicatePhone):
			prometheus.RecordConflict("phone")
			return c.JSON(http.StatusConflict, echo.Map{
				"success": false,
				"message": "A volunteer with this phone number already exists",
			})
		case errors.Is(err, store.ErrDuplicate):
			prometheus.RecordConflict("unknown")
			return c.JSON(http.StatusConflict, echo.Map{
				"success": false,
				"message": "Email or phone number already exists",
			})
		default:
			log.Error("Failed to create volunteer",
				zap.String("email", req.Email),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "Internal server error",
			})
		}
	}

	// Update total volunteer count metric
	go updateVolunteerCount(h.store)

	log.Info("Volunteer created successfully",
		zap.Uint("id", volunteer.ID),
		zap.String("email", volunteer.Email),
		zap.String("interest", volunteer.Interest))
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Volunteer application submitted successfully",
		"data": echo.Map{
			"id":         volunteer.ID,
			"name":       volunteer.Name,
			"email":      volunteer.Email,
			"phone":      volunteer.Phone,
			"interest":   volunteer.Interest,
			"status":     volunteer.Status,
			"created_at": volunteer.CreatedAt,
		},
	})
}

// List retrieves volunteers with pagination, newest first
func (h *VolunteerHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVolunteerOperation("list")

	// Non-numeric or absent values fall back to defaults silently
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := (page - 1) * limit

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	volunteers, err := h.store.List(limit, offset)
	if err != nil {
		log.Error("Failed to retrieve volunteers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	total, err := h.store.Count()
	if err != nil {
		log.Error("Failed to count volunteers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	log.Info("Volunteers retrieved successfully",
		zap.Int("count", len(volunteers)),
		zap.Int64("total", total),
		zap.Int("page", page))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    volunteers,
		"pagination": echo.Map{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// GetByID retrieves a single volunteer by ID
func (h *VolunteerHandler) GetByID(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVolunteerOperation("get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Warn("Invalid volunteer ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid volunteer ID",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	volunteer, err := h.store.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Volunteer not found", zap.Uint64("volunteer_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"success": false,
				"message": "Volunteer not found",
			})
		}
		log.Error("Failed to retrieve volunteer", zap.Uint64("volunteer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	log.Info("Volunteer retrieved successfully",
		zap.Uint64("volunteer_id", id),
		zap.String("email", volunteer.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    volunteer,
	})
}

// UpdateStatus transitions a volunteer to a new status. Any status may move
// to any other, including itself.
func (h *VolunteerHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVolunteerOperation("update_status")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Warn("Invalid volunteer ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid volunteer ID",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint64("volunteer_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request data",
		})
	}

	newStatus := model.VolunteerStatus(req.Status)
	if !newStatus.IsValid() {
		log.Warn("Invalid status value",
			zap.Uint64("volunteer_id", id),
			zap.String("status", req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid status. Must be one of: " + model.StatusList(),
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	volunteer, err := h.store.UpdateStatus(uint(id), newStatus, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Volunteer not found for status update", zap.Uint64("volunteer_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"success": false,
				"message": "Volunteer not found",
			})
		}
		log.Error("Failed to update volunteer status",
			zap.Uint64("volunteer_id", id),
			zap.String("status", req.Status),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	log.Info("Volunteer status updated successfully",
		zap.Uint64("volunteer_id", id),
		zap.String("status", string(volunteer.Status)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Volunteer status updated successfully",
		"data":    volunteer,
	})
}

// Helper function to update the volunteer count metric
func updateVolunteerCount(s VolunteerStore) {
	total, err := s.Count()
	if err != nil {
		return
	}
	prometheus.UpdateTotalVolunteers(total)
}
