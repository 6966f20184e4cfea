package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/shopcore/pkg/errors"
	"github.com/xiebiao/shopcore/pkg/response"
)

// bindFailed 参数绑定/校验失败统一返回40900
func bindFailed(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "Invalid request: "+err.Error())
}

// pathID 解析路径中的正整数ID
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
