package controllers

import (
	"hotelcore/dto"
	"hotelcore/response"
	"hotelcore/services"

	"github.com/gin-gonic/gin"
)

type ReconciliationController struct {
	Reconciliation *services.ReconciliationService
}

func NewReconciliationController(r *services.ReconciliationService) ReconciliationController {
	return ReconciliationController{Reconciliation: r}
}

// RunReconciliation godoc
// @Summary  Chạy đối soát thủ công cho một ngày
// @Tags     reconciliation
// @Accept   json
// @Produce  json
// @Param    body body dto.ReconcileRunRequest false "date and force flag"
// @Success  200 {object} response.Response
// @Failure  409 {object} response.Response
// @Router   /reconciliation/run [post]
func (rc ReconciliationController) RunReconciliation(c *gin.Context) {
	if _, ok := currentIdentity(c); !ok {
		return
	}
	var req dto.ReconcileRunRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	result, err := rc.Reconciliation.Run(c.Request.Context(), req.Date, services.RunOptions{Force: req.Force})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// GetDailyReport godoc
// @Summary  Báo cáo khách đến, không đến và doanh thu theo ngày
// @Tags     reconciliation
// @Produce  json
// @Param    date query string false "YYYY-MM-DD, yesterday when empty"
// @Success  200 {object} response.Response
// @Router   /reconciliation/report [get]
func (rc ReconciliationController) GetDailyReport(c *gin.Context) {
	requester, ok := currentIdentity(c)
	if !ok {
		return
	}
	report, err := rc.Reconciliation.DailyReport(c.Request.Context(), c.Query("date"), requester)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, report)
}

func (rc ReconciliationController) GetRun(c *gin.Context) {
	if _, ok := currentIdentity(c); !ok {
		return
	}
	day := c.Query("date")
	if day == "" {
		day = rc.Reconciliation.OperatingDay()
	}
	run, err := rc.Reconciliation.LastRun(c.Request.Context(), day)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, run)
}
