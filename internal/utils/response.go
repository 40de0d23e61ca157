package utils

import "wht-transfer-api/internal/constant"

// 统一响应格式（支持中英文提示）
type Response struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg"`              // 中文描述
	MsgEN string      `json:"msg_en,omitempty"` // 英文描述
	Data  interface{} `json:"data,omitempty"`
}

// 成功响应
func Success(data interface{}) Response {
	return Response{
		Code:  constant.CodeSuccess,
		Msg:   "成功",
		MsgEN: "Success",
		Data:  data,
	}
}

// 错误响应（自动从 constant 中获取中英文描述）
func Error(code int) Response {
	if info, exists := constant.GetErrorInfo(code); exists {
		return Response{
			Code:  code,
			Msg:   info.CN,
			MsgEN: info.EN,
		}
	}
	return Response{
		Code:  code,
		Msg:   "未知错误",
		MsgEN: "Unknown error",
	}
}

// 带数据的错误响应，data 通常是具体的校验失败原因
func ErrorWithData(code int, data interface{}) Response {
	resp := Error(code)
	resp.Data = data
	return resp
}
