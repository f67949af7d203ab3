package v1

import (
	"net/http"
	"strconv"

	"go-jobmatch-bot/internal/delivery/http/response"
	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	complaintUC domain.ComplaintUsecase
	settingsUC  domain.SettingsUsecase
	referralUC  domain.ReferralUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, complaintUC domain.ComplaintUsecase, settingsUC domain.SettingsUsecase, referralUC domain.ReferralUsecase) {
	handler := &AdminHandler{complaintUC: complaintUC, settingsUC: settingsUC, referralUC: referralUC}

	admin := protected.Group("/admin")
	{
		// Moderation queue
		admin.GET("/complaints", handler.ListComplaints)
		admin.PATCH("/complaints/:id", handler.UpdateComplaintStatus)

		// Bot settings (anti-spam dummy text and photo)
		admin.GET("/settings/:key", handler.GetSetting)
		admin.PUT("/settings/:key", handler.PutSetting)

		admin.POST("/referral-links", handler.CreateReferralLink)
	}
}

// ListComplaints godoc
// @Summary      List complaints
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status   query     string  false  "new, viewed or resolved"
// @Param        limit    query     int     false  "Page size (max 100)"
// @Param        offset   query     int     false  "Rows to skip"
// @Success      200      {object}  response.Response
// @Router       /admin/complaints [get]
func (h *AdminHandler) ListComplaints(c *gin.Context) {
	var f domain.ComplaintFilter
	if s := c.Query("status"); s != "" {
		status := domain.ComplaintStatus(s)
		f.Status = &status
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.complaintUC.List(c, f)
	if err != nil {
		c.Error(err)
		return
	}
	if items == nil {
		items = []domain.Complaint{}
	}
	response.Success(c, http.StatusOK, "Complaints list", response.Page[domain.Complaint]{Items: items, Total: total})
}

// UpdateComplaintStatus godoc
// @Summary      Move a complaint through the moderation workflow
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int     true  "Complaint ID"
// @Param        body  body      domain.UpdateComplaintStatusRequest  true  "New status"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/complaints/{id} [patch]
func (h *AdminHandler) UpdateComplaintStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Error(apperror.BadRequest("Invalid complaint ID"))
		return
	}

	var req domain.UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	complaint, err := h.complaintUC.UpdateStatus(c, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Complaint updated", complaint)
}

func (h *AdminHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingsUC.Get(c, c.Param("key"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Setting", setting)
}

func (h *AdminHandler) PutSetting(c *gin.Context) {
	var req domain.PutSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	setting, err := h.settingsUC.Put(c, c.Param("key"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Setting saved", setting)
}

// CreateReferralLink godoc
// @Summary      Create a referral link for /start deep links
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CreateReferralLinkRequest  true  "Link name"
// @Success      201   {object}  response.Response
// @Router       /admin/referral-links [post]
func (h *AdminHandler) CreateReferralLink(c *gin.Context) {
	var req domain.CreateReferralLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	link, err := h.referralUC.CreateLink(c, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Referral link created", link)
}
