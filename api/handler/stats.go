package handler

import (
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fberrez/minihabits/pkg/httpcontext"
	statsUC "github.com/fberrez/minihabits/usecase/stats"
)

type StatsHandler struct {
	baseHandler
	uc *statsUC.Service
}

func NewStatsHandler(uc *statsUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary User statistics
// @Tags stats
// @Router /api/v1/stats [get]
func (h *StatsHandler) UserStats(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	var habitIDs []string
	if raw := string(ctx.QueryArgs().Peek("habits")); raw != "" {
		habitIDs = strings.Split(raw, ",")
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.UserStats(stdCtx, ownerID, habitIDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Home page totals
// @Tags stats
// @Router /api/v1/stats/home [get]
func (h *StatsHandler) HomeStats(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	totals, err := h.uc.HomeStats(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, totals)
}
