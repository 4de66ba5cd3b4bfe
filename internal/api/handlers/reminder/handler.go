package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/pawkeep/reminder-service/internal/api/dto"
	"github.com/pawkeep/reminder-service/internal/api/respond"
	"github.com/pawkeep/reminder-service/internal/config"
	"github.com/pawkeep/reminder-service/internal/model"
	reminderrepo "github.com/pawkeep/reminder-service/internal/repository/reminder"
)

type reminderService interface {
	CreateReminder(ctx context.Context, strategy retry.Strategy, reminder model.Reminder) (model.Reminder, error)
	GetAllReminders(ctx context.Context) ([]model.Reminder, error)
	GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error)
	UpdateReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID, upd reminderrepo.Update) (model.Reminder, error)
	DeleteReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Reminder, error)
}

// Handler serves the reminder CRUD endpoints.
type Handler struct {
	service   reminderService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new reminder handler.
func NewHandler(s reminderService, v *validator.Validate, cfg *config.Config) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// Create handles POST /reminders.
func (h *Handler) Create(c *ginext.Context) {
	var req dto.CreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("title and time required"))
		return
	}

	reminder := model.Reminder{
		Title:   req.Title,
		Message: req.Message,
		Time:    req.Time,
	}

	created, err := h.service.CreateReminder(c.Request.Context(), h.cfg.Retry, reminder)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("title", reminder.Title).Msg("failed to create reminder")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, created)
}

// List handles GET /reminders.
func (h *Handler) List(c *ginext.Context) {
	reminders, err := h.service.GetAllReminders(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	if reminders == nil {
		reminders = []model.Reminder{}
	}

	respond.OK(c.Writer, reminders)
}

// Get handles GET /reminders/:id.
func (h *Handler) Get(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	reminder, err := h.service.GetReminderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrReminderNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Msg("reminder not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get reminder")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, reminder)
}

// Update handles PUT /reminders/:id.
func (h *Handler) Update(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	upd := reminderrepo.Update{
		Title:   req.Title,
		Message: req.Message,
		Time:    req.Time,
	}

	updated, err := h.service.UpdateReminder(c.Request.Context(), h.cfg.Retry, id, upd)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrReminderNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Msg("reminder not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to update reminder")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, updated)
}

// Delete handles DELETE /reminders/:id.
func (h *Handler) Delete(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	removed, err := h.service.DeleteReminder(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrReminderNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Msg("reminder not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete reminder")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, removed)
}

func (h *Handler) parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	return id, true
}
