package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"wht-transfer-api/internal/dto"
	"wht-transfer-api/internal/service"
	"wht-transfer-api/internal/wxpay"
)

// 微信支付转账结果回调处理器
type NotifyHandler struct{ svc *service.TransferOrderService }

func NewNotifyHandler(svc *service.TransferOrderService) *NotifyHandler {
	return &NotifyHandler{svc: svc}
}

// TransferNotify 接收 MCHTRANSFER.BILL.FINISHED 等转账结果通知
// 先验签再解密，处理失败时按微信要求返回非2xx触发重发
func (h *NotifyHandler) TransferNotify(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NotifyAck{Code: "FAIL", Message: "read body failed"})
		return
	}

	headers := wxpay.NotifyHeaders{
		Timestamp: c.GetHeader("Wechatpay-Timestamp"),
		Nonce:     c.GetHeader("Wechatpay-Nonce"),
		Signature: c.GetHeader("Wechatpay-Signature"),
		Serial:    c.GetHeader("Wechatpay-Serial"),
	}
	if err := h.svc.Cipher().VerifyNotify(headers, body); err != nil {
		log.Warnf("回调验签失败: %v", err)
		c.JSON(http.StatusUnauthorized, dto.NotifyAck{Code: "FAIL", Message: "signature verify failed"})
		return
	}

	var msg dto.NotifyMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		c.JSON(http.StatusBadRequest, dto.NotifyAck{Code: "FAIL", Message: "invalid notify body"})
		return
	}

	plain, err := h.svc.Cipher().DecryptSensitive(
		msg.Resource.Ciphertext, msg.Resource.Nonce, msg.Resource.AssociatedData)
	if err != nil {
		log.Errorf("回调报文解密失败: %v", err)
		c.JSON(http.StatusInternalServerError, dto.NotifyAck{Code: "FAIL", Message: "decrypt failed"})
		return
	}

	var res dto.TransferNotifyResource
	if err := json.Unmarshal(plain, &res); err != nil {
		c.JSON(http.StatusBadRequest, dto.NotifyAck{Code: "FAIL", Message: "invalid notify resource"})
		return
	}

	act := h.svc.ApplyNotify(&res)
	log.Infof("转账回调处理完成: out_bill_no=%s state=%s event=%s final=%v",
		res.OutBillNo, res.State, msg.EventType, act.Final)

	c.JSON(http.StatusOK, dto.NotifyAck{Code: "SUCCESS"})
}
