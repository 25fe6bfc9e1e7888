package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotboard/models"
	"slotboard/services/board"
	"slotboard/services/schedule"
	"slotboard/utils"
)

// ScheduleHandler serves the calendar views and the slot mutations.
type ScheduleHandler struct {
	Board board.Service
	Step  int // display unit size in minutes
}

func NewScheduleHandler(b board.Service, stepMinutes int) *ScheduleHandler {
	if stepMinutes <= 0 {
		stepMinutes = schedule.DefaultStepMinutes
	}
	return &ScheduleHandler{Board: b, Step: stepMinutes}
}

type dayView struct {
	Date  string           `json:"date"`
	Slots []models.Slot    `json:"slots"`
	Units []models.DayUnit `json:"units"`
	Note  *models.Note     `json:"note,omitempty"`
}

func (h *ScheduleHandler) buildDayView(date string) dayView {
	view := dayView{Date: date, Slots: h.Board.SlotsForDate(date)}
	for _, s := range view.Slots {
		view.Units = append(view.Units, schedule.Decompose(s, h.Step)...)
	}
	for _, n := range h.Board.Notes() {
		if n.Date == date {
			note := n
			view.Note = &note
			break
		}
	}
	return view
}

// MonthViewHandler renders the calendar grid for ?month=YYYY-MM with each
// day's slots decomposed into display units.
func (h *ScheduleHandler) MonthViewHandler(c *gin.Context) {
	monthStr := c.Query("month")
	anchor, err := time.Parse("2006-01", monthStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid month, want YYYY-MM"})
		return
	}

	grid := utils.MonthGrid(anchor.Year(), anchor.Month())
	days := make(map[string]dayView)
	for _, week := range grid {
		for _, cell := range week {
			days[cell.Date] = h.buildDayView(cell.Date)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"month":   monthStr,
		"weeks":   grid,
		"days":    days,
		"syncing": h.Board.Syncing() > 0,
	})
}

// DayViewHandler renders a single day.
func (h *ScheduleHandler) DayViewHandler(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid date, want YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, h.buildDayView(date))
}

type createSlotRequest struct {
	OwnerID   string `json:"ownerId"`
	OwnerName string `json:"ownerName"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Booked    bool   `json:"booked"`
}

// CreateSlotHandler records a new availability block. The owner may be given
// by id or by display name; a name never seen before creates the person.
func (h *ScheduleHandler) CreateSlotHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid create slot request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, want YYYY-MM-DD"})
		return
	}

	ownerID := req.OwnerID
	if ownerID == "" {
		if req.OwnerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Either ownerId or ownerName is required"})
			return
		}
		person, err := h.Board.EnsurePerson(c.Request.Context(), req.OwnerName)
		if err != nil {
			respondError(c, err)
			return
		}
		ownerID = person.ID
	}

	slot, err := h.Board.CreateSlot(c.Request.Context(), schedule.CreateRequest{
		OwnerID:   ownerID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Booked:    req.Booked,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

type rebookSlotRequest struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Booked    bool   `json:"booked"`
	OwnerID   string `json:"ownerId"`
}

// RebookSlotHandler edits all or part of a slot's range. Editing a strict
// sub-range splits the slot; the response carries the remainders so the UI
// can place them without a refetch.
func (h *ScheduleHandler) RebookSlotHandler(c *gin.Context) {
	id := c.Param("slotID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slot ID in path"})
		return
	}

	var req rebookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	res, err := h.Board.RebookSlot(c.Request.Context(), id, schedule.RebookRequest{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Booked:    req.Booked,
		OwnerID:   req.OwnerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": res.Updated, "remainders": res.Remainders})
}

type deleteSlotRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DeleteSlotHandler removes a slot or a sub-range of it. Without a body the
// whole slot goes; a contained sub-range trims or splits it.
func (h *ScheduleHandler) DeleteSlotHandler(c *gin.Context) {
	id := c.Param("slotID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slot ID in path"})
		return
	}

	var target *schedule.DeleteTarget
	var req deleteSlotRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.StartTime != "" && req.EndTime != "" {
		target = &schedule.DeleteTarget{StartTime: req.StartTime, EndTime: req.EndTime}
	}

	res, err := h.Board.DeleteSlotRange(c.Request.Context(), id, target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"removed":   res.Removed,
		"slot":      res.Updated,
		"remainder": res.Remainder,
	})
}

// ResolveUnitHandler maps a display unit key back to its source slot.
func (h *ScheduleHandler) ResolveUnitHandler(c *gin.Context) {
	key := c.Param("unitKey")
	slotID, startTime, ok := schedule.ParseUnitKey(key)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed unit key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slotId": slotID, "startTime": startTime})
}

// SyncStatusHandler reports in-flight persistence calls.
func (h *ScheduleHandler) SyncStatusHandler(c *gin.Context) {
	pending := h.Board.Syncing()
	c.JSON(http.StatusOK, gin.H{"pending": pending, "syncing": pending > 0})
}
