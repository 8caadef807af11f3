package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"minwon-backend/internal/admin/domain"
	authdomain "minwon-backend/internal/auth/domain"
	"minwon-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminUsecase struct {
	bootstrapErr error
	approveErr   error
	rejectErr    error
	applyErr     error
	listErr      error
	approved     []string
	rejected     []string
}

func (f *fakeAdminUsecase) BootstrapSuperAdmin(ctx context.Context, caller authdomain.Identity) error {
	return f.bootstrapErr
}

func (f *fakeAdminUsecase) ApproveAdmin(ctx context.Context, caller authdomain.Identity, targetUID string) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	if targetUID == "" {
		return apperr.InvalidArgument("targetUid가 필요합니다.")
	}
	f.approved = append(f.approved, targetUID)
	return nil
}

func (f *fakeAdminUsecase) RejectAdmin(ctx context.Context, caller authdomain.Identity, targetUID string) error {
	if f.rejectErr != nil {
		return f.rejectErr
	}
	f.rejected = append(f.rejected, targetUID)
	return nil
}

func (f *fakeAdminUsecase) Apply(ctx context.Context, caller authdomain.Identity) error {
	return f.applyErr
}

func (f *fakeAdminUsecase) ListAdmins(ctx context.Context, caller authdomain.Identity) ([]domain.AdminRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []domain.AdminRecord{{UID: "u2", Role: domain.RolePending}}, nil
}

func newTestRouter(uc *fakeAdminUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAdminHandler(uc)
	r.POST("/api/admin/bootstrap", h.Bootstrap)
	r.POST("/api/admin/approve", h.Approve)
	r.POST("/api/admin/reject", h.Reject)
	r.GET("/api/admins", h.List)
	return r
}

func TestBootstrapStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"success", nil, http.StatusOK},
		{"unauthenticated", apperr.Unauthenticated("로그인이 필요합니다."), http.StatusUnauthorized},
		{"duplicate superadmin", apperr.FailedPrecondition("이미 슈퍼관리자가 존재합니다."), http.StatusPreconditionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeAdminUsecase{bootstrapErr: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/bootstrap", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.err == nil {
				assert.JSONEq(t, `{"ok": true}`, w.Body.String())
			}
		})
	}
}

func TestApprove(t *testing.T) {
	t.Run("passes target uid through", func(t *testing.T) {
		uc := &fakeAdminUsecase{}
		r := newTestRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/approve", strings.NewReader(`{"targetUid":"u2"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"u2"}, uc.approved)
	})

	t.Run("missing body yields invalid argument", func(t *testing.T) {
		uc := &fakeAdminUsecase{}
		r := newTestRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/approve", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, uc.approved)
	})

	t.Run("permission denial maps to 403", func(t *testing.T) {
		uc := &fakeAdminUsecase{approveErr: apperr.PermissionDenied("슈퍼관리자만 가능합니다.")}
		r := newTestRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/approve", strings.NewReader(`{"targetUid":"u2"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"슈퍼관리자만 가능합니다."}`, w.Body.String())
	})
}

func TestListAdmins(t *testing.T) {
	r := newTestRouter(&fakeAdminUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admins", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"u2"`)
}
