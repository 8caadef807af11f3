package delivery

import (
	"net/http"

	"minwon-backend/internal/admin/usecase"
	authdelivery "minwon-backend/internal/auth/delivery"
	"minwon-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the privileged admin-role HTTP requests.
type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminUsecase usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
	}
}

// TargetRequest carries the uid of the record a privileged call acts on.
type TargetRequest struct {
	TargetUID string `json:"targetUid"`
}

// Bootstrap promotes the caller to the first superAdmin
// POST /api/admin/bootstrap
func (h *AdminHandler) Bootstrap(c *gin.Context) {
	caller := authdelivery.IdentityFrom(c)

	if err := h.adminUsecase.BootstrapSuperAdmin(c.Request.Context(), caller); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Approve grants the admin role to the target record
// POST /api/admin/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	caller := authdelivery.IdentityFrom(c)

	// A missing or malformed body falls through with an empty targetUid so
	// the usecase can check privileges before argument validity.
	var req TargetRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.adminUsecase.ApproveAdmin(c.Request.Context(), caller, req.TargetUID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reject moves the target record back to pending
// POST /api/admin/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	caller := authdelivery.IdentityFrom(c)

	var req TargetRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.adminUsecase.RejectAdmin(c.Request.Context(), caller, req.TargetUID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Apply records the caller's pending admin application
// POST /api/admin/apply
func (h *AdminHandler) Apply(c *gin.Context) {
	caller := authdelivery.IdentityFrom(c)

	if err := h.adminUsecase.Apply(c.Request.Context(), caller); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// List returns all admin records
// GET /api/admins
func (h *AdminHandler) List(c *gin.Context) {
	caller := authdelivery.IdentityFrom(c)

	records, err := h.adminUsecase.ListAdmins(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": records})
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.MessageOf(err)})
}
