/*
 * @module api/controllers/errors
 * @description 服务层错误到HTTP响应的统一映射：校验错误 400、未找到 404、其余 500
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @rules 校验错误回带字段级明细，未找到与校验错误绝不混淆
 * @dependencies qualiguard-service/service/utils, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package controllers

import (
	"net/http"

	"qualiguard-service/service/utils"

	"github.com/go-chi/render"
)

// renderServiceError 将服务层错误映射为HTTP响应
func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if vErr, ok := utils.IsValidationError(err); ok {
		var detail interface{}
		if len(vErr.Fields) > 0 {
			detail = map[string]interface{}{"errors": vErr.Fields}
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse(vErr.Message, detail))
		return
	}

	if utils.IsNotFound(err) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, NotFoundResponse("记录不存在", nil))
		return
	}

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, InternalErrorResponse(err.Error(), nil))
}
