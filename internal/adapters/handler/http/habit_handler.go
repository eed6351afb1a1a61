package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/momentum/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Frequency    string `json:"frequency"`
	SpecificDays []int  `json:"specific_days"`
	Goal         string `json:"goal"`
	GoalEndDate  string `json:"goal_end_date"`
	CategoryID   string `json:"category_id"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
}

type updateHabitRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Frequency    string  `json:"frequency"`
	SpecificDays []int   `json:"specific_days"`
	Goal         string  `json:"goal"`
	GoalEndDate  string  `json:"goal_end_date"`
	CategoryID   *string `json:"category_id"`
	Color        string  `json:"color"`
	Icon         string  `json:"icon"`
}

type toggleRequest struct {
	Date string `json:"date"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/toggle", h.Toggle)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		Name:         req.Name,
		Description:  req.Description,
		Frequency:    req.Frequency,
		SpecificDays: req.SpecificDays,
		Goal:         req.Goal,
		GoalEndDate:  req.GoalEndDate,
		CategoryID:   req.CategoryID,
		Color:        req.Color,
		Icon:         req.Icon,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("category_id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	habit, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:           c.Param("id"),
		Name:         req.Name,
		Description:  req.Description,
		Frequency:    req.Frequency,
		SpecificDays: req.SpecificDays,
		Goal:         req.Goal,
		GoalEndDate:  req.GoalEndDate,
		CategoryID:   req.CategoryID,
		Color:        req.Color,
		Icon:         req.Icon,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Toggle accepts an empty body, in which case today is toggled.
func (h *HabitHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	habit, done, err := h.svc.ToggleCompletion(c.Request.Context(), c.Param("id"), req.Date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completed": done,
		"habit":     habit,
	})
}
