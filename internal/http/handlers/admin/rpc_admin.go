package admin

import (
	"errors"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/i18n"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// DoAll 通用表代理：get / insert / update / delete / soft_delete
func (h *Handler) DoAll(c *gin.Context) {
	var req service.RPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RPCError(c, i18n.T(i18n.ResolveLocale(c), "error.bad_request"))
		return
	}

	actor := service.RPCActor{
		UserID:    currentUserID(c),
		UserType:  currentUserType(c),
		RequestID: currentRequestID(c),
	}
	result, err := h.RPCService.Execute(c.Request.Context(), actor, req)
	if err != nil {
		h.respondRPCError(c, req, err)
		return
	}

	if service.NormalizeRPCAction(req.Action) == constants.RPCActionGet || result.Data != nil {
		response.RPCSuccess(c, result.Data, 0, nil)
		return
	}
	affected := result.Affected
	response.RPCSuccess(c, nil, result.InsertID, &affected)
}

func (h *Handler) respondRPCError(c *gin.Context, req service.RPCRequest, err error) {
	log := requestLog(c)
	switch {
	case errors.Is(err, service.ErrUnknownTable), errors.Is(err, service.ErrInvalidRPCCall):
		log.Warnw("rpc_call_rejected", "table", req.Table, "action", req.Action, "error", err)
		response.RPCError(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		log.Warnw("rpc_call_forbidden", "table", req.Table, "action", req.Action, "user_id", currentUserID(c))
		response.RPCError(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
	default:
		log.Errorw("rpc_call_failed", "table", req.Table, "action", req.Action, "error", err)
		msg, _ := translateServiceError(c, err)
		response.RPCError(c, msg)
	}
}

// UploadImages 多图上传（字段 images），返回可访问路径列表
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.RPCError(c, i18n.T(i18n.ResolveLocale(c), "error.upload_no_files"))
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		files = form.File["image"]
	}
	scene := c.DefaultPostForm("scene", constants.UploadSceneCommon)

	paths, err := h.UploadService.SaveFiles(files, scene)
	if err != nil {
		msg, known := translateServiceError(c, err, uploadErrorRules)
		if !known {
			requestLog(c).Errorw("images_upload_failed", "scene", scene, "error", err)
		}
		response.RPCError(c, msg)
		return
	}
	requestLog(c).Infow("images_uploaded", "count", len(paths), "scene", scene, "user_id", currentUserID(c))
	response.RPCSuccess(c, gin.H{"paths": paths}, 0, nil)
}
