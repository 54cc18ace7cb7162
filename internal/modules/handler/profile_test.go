package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/service"
)

func gateTestProfile(ownerID uuid.UUID) *model.Profile {
	return &model.Profile{
		ID:          uuid.New(),
		Name:        "Priya",
		Gender:      "Female",
		Age:         26,
		Location:    "Jaipur",
		PhoneNumber: "9876543210",
		Email:       "priya@example.com",
		FatherName:  "Mr. Sharma",
		Rashi:       "Mesh",
		CreatedBy:   ownerID,
		Status:      model.ProfileStatusActive,
	}
}

// The response body is decoded raw so a premium field that leaked through
// any view would fail the test even if a typed struct dropped it.
func profileBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestProfileHandler_Get_Gate(t *testing.T) {
	ownerID := uuid.New()
	viewerID := uuid.New()
	profile := gateTestProfile(ownerID)

	tests := []struct {
		name        string
		ident       *service.Identity
		level       model.AccessLevel
		wantPremium bool
	}{
		{name: "anonymous gets restricted view", ident: nil, level: model.AccessLevelNone},
		{
			name:  "viewer without approval gets restricted view",
			ident: &service.Identity{UserID: viewerID, Role: model.RoleUser},
			level: model.AccessLevelNone,
		},
		{
			name:        "approved viewer gets full view",
			ident:       &service.Identity{UserID: viewerID, Role: model.RoleUser},
			level:       model.AccessLevelPaid,
			wantPremium: true,
		},
		{
			name:        "owner gets full view",
			ident:       &service.Identity{UserID: ownerID, Role: model.RoleUser},
			level:       model.AccessLevelOwner,
			wantPremium: true,
		},
		{
			name:        "admin gets full view",
			ident:       &service.Identity{UserID: uuid.New(), Role: model.RoleAdmin},
			level:       model.AccessLevelAdmin,
			wantPremium: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := &MockProfileService{}
			access := &MockAccessService{}
			assets := &MockAssetService{}

			profiles.On("Get", mock.Anything, profile.ID).Return(profile, nil)
			access.On("ResolveAccessLevel", mock.Anything, mock.Anything, profile).Return(tt.level, nil)
			assets.On("URL", mock.Anything, mock.Anything).Return("", nil).Maybe()

			h := NewProfileHandler(profiles, access, assets, zap.NewNop())
			router := setupRouter()
			router.GET("/profiles/:id", asIdentity(tt.ident, h.Get))

			req := httptest.NewRequest("GET", "/profiles/"+profile.ID.String(), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			data := profileBody(t, w)

			// Public fields always present
			assert.Equal(t, "Priya", data["name"])
			assert.Equal(t, "Jaipur", data["location"])
			assert.Equal(t, string(tt.level), data["access_level"])

			_, hasPhone := data["phone_number"]
			_, hasFather := data["father_name"]
			_, hasRashi := data["rashi"]
			if tt.wantPremium {
				assert.True(t, hasPhone && hasFather && hasRashi, "premium fields should be present")
				assert.Equal(t, true, data["has_full_access"])
			} else {
				assert.False(t, hasPhone || hasFather || hasRashi, "premium fields must not leak")
				assert.Equal(t, false, data["has_full_access"])
			}
		})
	}
}

func TestProfileHandler_Get_NotFound(t *testing.T) {
	profiles := &MockProfileService{}
	access := &MockAccessService{}
	assets := &MockAssetService{}

	id := uuid.New()
	profiles.On("Get", mock.Anything, id).Return(nil, service.ErrProfileNotFound)

	h := NewProfileHandler(profiles, access, assets, zap.NewNop())
	router := setupRouter()
	router.GET("/profiles/:id", h.Get)

	req := httptest.NewRequest("GET", "/profiles/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandler_Get_BadID(t *testing.T) {
	h := NewProfileHandler(&MockProfileService{}, &MockAccessService{}, &MockAssetService{}, zap.NewNop())
	router := setupRouter()
	router.GET("/profiles/:id", h.Get)

	req := httptest.NewRequest("GET", "/profiles/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_RecordView(t *testing.T) {
	viewer := &service.Identity{UserID: uuid.New(), Role: model.RoleUser}
	profileID := uuid.New()

	profiles := &MockProfileService{}
	// Authenticated views are keyed by user id, not client IP
	profiles.On("RecordView", mock.Anything, profileID, viewer.UserID.String()).Return(nil)

	h := NewProfileHandler(profiles, &MockAccessService{}, &MockAssetService{}, zap.NewNop())
	router := setupRouter()
	router.POST("/profiles/:id/view", asIdentity(viewer, h.RecordView))

	req := httptest.NewRequest("POST", "/profiles/"+profileID.String()+"/view", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	profiles.AssertExpectations(t)
}

func TestProfileHandler_List_AlwaysRestricted(t *testing.T) {
	profiles := &MockProfileService{}
	assets := &MockAssetService{}

	listed := gateTestProfile(uuid.New())
	profiles.On("List", mock.Anything, mock.Anything).Return([]*model.Profile{listed}, nil)
	assets.On("URL", mock.Anything, mock.Anything).Return("", nil).Maybe()

	h := NewProfileHandler(profiles, &MockAccessService{}, assets, zap.NewNop())
	router := setupRouter()
	router.GET("/profiles", h.List)

	req := httptest.NewRequest("GET", "/profiles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "9876543210")
	assert.NotContains(t, w.Body.String(), "father_name")
	assert.Contains(t, w.Body.String(), "Priya")
}
