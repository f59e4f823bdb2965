package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fberrez/minihabits/api/transport"
	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/httpcontext"
	habitsUC "github.com/fberrez/minihabits/usecase/habits"
)

type HabitHandler struct {
	baseHandler
	uc *habitsUC.Service
}

func NewHabitHandler(uc *habitsUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List habits
// @Tags habits
// @Router /api/v1/habits [get]
func (h *HabitHandler) ListHabits(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habits, err := h.uc.ListHabits(stdCtx, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habits)
}

// @Summary Create habit
// @Tags habits
// @Router /api/v1/habits [post]
func (h *HabitHandler) CreateHabit(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	var req transport.CreateHabitRequest
	if !h.parseBody(ctx, &req) {
		return
	}

	habit := &domain.Habit{
		OwnerID:       ownerID,
		Name:          req.Name,
		Type:          domain.HabitType(req.Type),
		Color:         domain.HabitColor(req.Color),
		Description:   req.Description,
		TargetCounter: req.TargetCounter,
	}
	if habit.Type == "" {
		habit.Type = domain.HabitTypeBoolean
	}
	if req.Deadline != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Deadline); err == nil {
			habit.Deadline = &parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateHabit(stdCtx, habit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Get habit
// @Tags habits
// @Router /api/v1/habits/{id} [get]
func (h *HabitHandler) GetHabit(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	id, ok := h.habitID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habit, err := h.uc.GetHabit(stdCtx, id, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habit)
}

// @Summary Update habit
// @Tags habits
// @Router /api/v1/habits/{id} [put]
func (h *HabitHandler) UpdateHabit(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	id, ok := h.habitID(ctx)
	if !ok {
		return
	}

	var req transport.UpdateHabitRequest
	if !h.parseBody(ctx, &req) {
		return
	}

	input := habitsUC.UpdateInput{
		Name:          req.Name,
		Description:   req.Description,
		TargetCounter: req.TargetCounter,
	}
	if req.Color != nil {
		color := domain.HabitColor(*req.Color)
		input.Color = &color
	}
	if req.Deadline != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.Deadline); err == nil {
			input.Deadline = &parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateHabit(stdCtx, id, ownerID, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete habit
// @Tags habits
// @Router /api/v1/habits/{id} [delete]
func (h *HabitHandler) DeleteHabit(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	id, ok := h.habitID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteHabit(stdCtx, id, ownerID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Delete all habits
// @Tags habits
// @Router /api/v1/habits [delete]
func (h *HabitHandler) DeleteAllHabits(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteAllHabits(stdCtx, ownerID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Track habit
// @Tags habits
// @Router /api/v1/habits/{id}/track [post]
func (h *HabitHandler) TrackHabit(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, h.uc.TrackHabit)
}

// @Summary Untrack habit
// @Tags habits
// @Router /api/v1/habits/{id}/untrack [post]
func (h *HabitHandler) UntrackHabit(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, h.uc.UntrackHabit)
}

// @Summary Habit statistics
// @Tags habits
// @Router /api/v1/habits/{id}/stats [get]
func (h *HabitHandler) HabitStats(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	id, ok := h.habitID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.HabitStats(stdCtx, id, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary List habit types
// @Tags habits
// @Router /api/v1/habits/types [get]
func (h *HabitHandler) HabitTypes(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.HabitTypes())
}

func (h *HabitHandler) mutate(
	ctx *fasthttp.RequestCtx,
	op func(ctx context.Context, id, ownerID, date string) (*domain.Habit, error),
) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	id, ok := h.habitID(ctx)
	if !ok {
		return
	}

	var req transport.TrackRequest
	if !h.parseBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habit, err := op(stdCtx, id, ownerID, req.Date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habit)
}

func (h *HabitHandler) habitID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing habit id", nil))
		return "", false
	}
	return id, true
}
