package department_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/department"
	departmenterrors "go-hrm/internal/department/errors"
	mock_department "go-hrm/internal/department/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestContext(t *testing.T) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tenantID := uuid.New().String()

		svc := mock_department.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), tenantID, gomock.Any()).
			DoAndReturn(func(ctx any, tid string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				assert.Equal(t, "Engineering", req.Name)
				assert.Equal(t, "ENG", req.Code)
				return department.DepartmentResponse{ID: uuid.New().String(), TenantID: tid, Name: req.Name, Code: req.Code, IsActive: true}, nil
			})

		h := department.NewHandler(svc)
		w, c := newTestContext(t)

		body := `{"name":"Engineering","code":"ENG","country":"NL"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("tenant_id", tenantID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Engineering")
	})

	t.Run("missing code fails validation before the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock_department.NewMockService(ctrl)
		// Tidak ada EXPECT: service tidak boleh terpanggil.

		h := department.NewHandler(svc)
		w, c := newTestContext(t)

		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"Engineering"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("duplicate code maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock_department.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(department.DepartmentResponse{}, departmenterrors.ErrDepartmentCodeAlreadyExists)

		h := department.NewHandler(svc)
		w, c := newTestContext(t)

		body := `{"name":"Engineering","code":"ENG"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("tenant_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tenantID := uuid.New().String()

		svc := mock_department.NewMockService(ctrl)
		svc.EXPECT().
			GetAll(gomock.Any(), tenantID).
			Return([]department.DepartmentResponse{{ID: uuid.New().String(), Name: "Engineering"}}, nil)

		h := department.NewHandler(svc)
		w, c := newTestContext(t)

		c.Request = httptest.NewRequest(http.MethodGet, "/departments", nil)
		c.Set("tenant_id", tenantID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDepartmentHandler_GetByID(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tenantID := uuid.New().String()
		deptID := uuid.New().String()

		svc := mock_department.NewMockService(ctrl)
		svc.EXPECT().
			GetByID(gomock.Any(), tenantID, deptID).
			Return(department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound)

		h := department.NewHandler(svc)
		w, c := newTestContext(t)

		c.Request = httptest.NewRequest(http.MethodGet, "/departments/"+deptID, nil)
		c.Params = []gin.Param{{Key: "id", Value: deptID}}
		c.Set("tenant_id", tenantID)

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDepartmentHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tenantID := uuid.New().String()
		deptID := uuid.New().String()

		svc := mock_department.NewMockService(ctrl)
		svc.EXPECT().
			Update(gomock.Any(), tenantID, deptID, gomock.Any()).
			DoAndReturn(func(ctx any, tid, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{ID: id, TenantID: tid, Name: req.Name}, nil
			})

		h := department.NewHandler(svc)
		w, c := newTestContext(t)

		body := `{"name":"Platform Engineering"}`
		c.Request = httptest.NewRequest(http.MethodPut, "/departments/"+deptID, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: deptID}}
		c.Set("tenant_id", tenantID)

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDepartmentHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tenantID := uuid.New().String()
		deptID := uuid.New().String()

		svc := mock_department.NewMockService(ctrl)
		svc.EXPECT().Delete(gomock.Any(), tenantID, deptID).Return(nil)

		h := department.NewHandler(svc)
		w, c := newTestContext(t)

		c.Request = httptest.NewRequest(http.MethodDelete, "/departments/"+deptID, nil)
		c.Params = []gin.Param{{Key: "id", Value: deptID}}
		c.Set("tenant_id", tenantID)

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
