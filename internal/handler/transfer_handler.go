package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"wht-transfer-api/internal/constant"
	"wht-transfer-api/internal/dto"
	"wht-transfer-api/internal/mq"
	"wht-transfer-api/internal/service"
	"wht-transfer-api/internal/utils"
)

// 商家转账处理器
type TransferHandler struct{ svc *service.TransferOrderService }

func NewTransferHandler(svc *service.TransferOrderService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// Create 发起转账
func (h *TransferHandler) Create(c *gin.Context) {
	var req dto.CreateTransferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorWithData(constant.CodeInvalidParams, err.Error()))
		return
	}

	outcome, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// 未到终态的单入轮询队列，待确认单等回调
	if outcome.Action == constant.ActionContinue && !outcome.Final && !outcome.NeedConfirm {
		_ = mq.PublishTransferPoll(dto.TransferPollMessage{OutBillNo: outcome.OutBillNo})
	}

	c.JSON(http.StatusOK, utils.Success(outcome))
}

// Query 按商户单号查询转账单
func (h *TransferHandler) Query(c *gin.Context) {
	var req dto.QueryTransferReq
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorWithData(constant.CodeInvalidParams, err.Error()))
		return
	}

	outcome, err := h.svc.Query(c.Request.Context(), req.OutBillNo)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(outcome))
}

// Cancel 撤销待确认的转账单
func (h *TransferHandler) Cancel(c *gin.Context) {
	var req dto.CancelTransferReq
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorWithData(constant.CodeInvalidParams, err.Error()))
		return
	}

	outcome, err := h.svc.Cancel(c.Request.Context(), req.OutBillNo)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(outcome))
}

func (h *TransferHandler) renderError(c *gin.Context, err error) {
	var ce constant.Error
	if errors.As(err, &ce) {
		status := http.StatusBadRequest
		if ce.Code() == constant.CodeBillNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, utils.Error(ce.Code()))
		return
	}
	log.Errorf("transfer handler error: %v", err)
	c.JSON(http.StatusInternalServerError, utils.ErrorWithData(constant.CodeSystemError, err.Error()))
}
