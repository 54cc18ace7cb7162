package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangamhq/sangam/internal/middleware"
	"github.com/sangamhq/sangam/internal/modules/model"
	"github.com/sangamhq/sangam/internal/modules/repo"
	"github.com/sangamhq/sangam/internal/modules/serializer"
	"github.com/sangamhq/sangam/internal/modules/service"
)

type ProfileHandler struct {
	profiles service.ProfileService
	access   service.AccessService
	assets   service.AssetService
	log      *zap.Logger
}

func NewProfileHandler(profiles service.ProfileService, access service.AccessService, assets service.AssetService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, access: access, assets: assets, log: log}
}

// ProfileReq carries the multipart profile form. Empty fields are left
// untouched on update.
type ProfileReq struct {
	Name       string `form:"name"`
	Gender     string `form:"gender" binding:"omitempty,oneof=Male Female Other"`
	Age        int    `form:"age" binding:"omitempty,min=18,max=100"`
	DOB        string `form:"dob" binding:"omitempty,datetime=2006-01-02"`
	Location   string `form:"location"`
	Profession string `form:"profession"`
	Education  string `form:"education"`
	Height     string `form:"height"`
	Bio        string `form:"bio"`

	PhoneNumber    string `form:"phone_number"`
	WhatsappNumber string `form:"whatsapp_number"`
	Email          string `form:"email" binding:"omitempty,email"`

	Income        string `form:"income"`
	Caste         string `form:"caste"`
	Gotra         string `form:"gotra"`
	MaritalStatus string `form:"marital_status"`
	MotherTongue  string `form:"mother_tongue"`
	Religion      string `form:"religion"`
	BodyType      string `form:"body_type"`
	Complexion    string `form:"complexion"`
	BloodGroup    string `form:"blood_group"`
	Diet          string `form:"diet"`
	Drinking      string `form:"drinking"`
	Smoking       string `form:"smoking"`

	FamilyType       string `form:"family_type"`
	FatherName       string `form:"father_name"`
	FatherOccupation string `form:"father_occupation"`
	MotherName       string `form:"mother_name"`
	MotherOccupation string `form:"mother_occupation"`
	Siblings         string `form:"siblings"`
	FamilyIncome     string `form:"family_income"`
	FamilyLocation   string `form:"family_location"`

	BirthPlace string `form:"birth_place"`
	BirthTime  string `form:"birth_time"`
	Rashi      string `form:"rashi"`
	Nakshatra  string `form:"nakshatra"`
	Manglik    string `form:"manglik"`

	PartnerAgeMin        *int   `form:"partner_age_min" binding:"omitempty,min=18"`
	PartnerAgeMax        *int   `form:"partner_age_max" binding:"omitempty,max=100"`
	PartnerHeightMin     string `form:"partner_height_min"`
	PartnerHeightMax     string `form:"partner_height_max"`
	PartnerMaritalStatus string `form:"partner_marital_status"`
	PartnerEducation     string `form:"partner_education"`
	PartnerProfession    string `form:"partner_profession"`
	PartnerLocation      string `form:"partner_location"`
	PartnerIncome        string `form:"partner_income"`

	IsPremium  *bool `form:"is_premium"`
	IsFeatured *bool `form:"is_featured"`
}

func (r *ProfileReq) toInput() service.ProfileInput {
	in := service.ProfileInput{
		Name:       r.Name,
		Gender:     r.Gender,
		Age:        r.Age,
		Location:   r.Location,
		Profession: r.Profession,
		Education:  r.Education,
		Height:     r.Height,
		Bio:        r.Bio,

		PhoneNumber:    r.PhoneNumber,
		WhatsappNumber: r.WhatsappNumber,
		Email:          r.Email,

		Income:        r.Income,
		Caste:         r.Caste,
		Gotra:         r.Gotra,
		MaritalStatus: r.MaritalStatus,
		MotherTongue:  r.MotherTongue,
		Religion:      r.Religion,
		BodyType:      r.BodyType,
		Complexion:    r.Complexion,
		BloodGroup:    r.BloodGroup,
		Diet:          r.Diet,
		Drinking:      r.Drinking,
		Smoking:       r.Smoking,

		FamilyType:       r.FamilyType,
		FatherName:       r.FatherName,
		FatherOccupation: r.FatherOccupation,
		MotherName:       r.MotherName,
		MotherOccupation: r.MotherOccupation,
		Siblings:         r.Siblings,
		FamilyIncome:     r.FamilyIncome,
		FamilyLocation:   r.FamilyLocation,

		BirthPlace: r.BirthPlace,
		BirthTime:  r.BirthTime,
		Rashi:      r.Rashi,
		Nakshatra:  r.Nakshatra,
		Manglik:    r.Manglik,

		PartnerAgeMin:        r.PartnerAgeMin,
		PartnerAgeMax:        r.PartnerAgeMax,
		PartnerHeightMin:     r.PartnerHeightMin,
		PartnerHeightMax:     r.PartnerHeightMax,
		PartnerMaritalStatus: r.PartnerMaritalStatus,
		PartnerEducation:     r.PartnerEducation,
		PartnerProfession:    r.PartnerProfession,
		PartnerLocation:      r.PartnerLocation,
		PartnerIncome:        r.PartnerIncome,

		IsPremium:  r.IsPremium,
		IsFeatured: r.IsFeatured,
	}
	if r.DOB != "" {
		if t, err := time.Parse("2006-01-02", r.DOB); err == nil {
			in.DOB = &t
		}
	}
	return in
}

// bindProfileForm binds the multipart form and uploads the image, if one
// was attached, into the profiles/ prefix.
func (h *ProfileHandler) bindProfileForm(c *gin.Context) (service.ProfileInput, bool) {
	req := ProfileReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return service.ProfileInput{}, false
	}
	in := req.toInput()

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		key, err := h.assets.UploadImage(c.Request.Context(), fh, "profiles")
		if err != nil {
			respondErr(c, err)
			return service.ProfileInput{}, false
		}
		in.ImageKey = key
	}
	return in, true
}

// Get serves the profile detail through the visibility gate. The response
// shape depends on who is asking, never on who the profile belongs to.
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	p, err := h.profiles.Get(ctx, id)
	if err != nil {
		respondErr(c, err)
		return
	}

	ident := middleware.IdentityFrom(c)
	level, err := h.access.ResolveAccessLevel(ctx, ident, p)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildProfile(p, level, h.imageURL(c, p.ImageKey))})
}

// RecordView counts a profile view. It is a separate mutation so reading
// a profile stays side-effect free; clients call it when the detail page
// is actually shown.
func (h *ProfileHandler) RecordView(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	viewerKey := c.ClientIP()
	if ident := middleware.IdentityFrom(c); ident != nil {
		viewerKey = ident.UserID.String()
	}

	if err := h.profiles.RecordView(c.Request.Context(), id, viewerKey); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "view recorded"})
}

type ListProfilesReq struct {
	Gender   string `form:"gender" binding:"omitempty,oneof=Male Female Other"`
	Location string `form:"location"`
	MinAge   int    `form:"min_age" binding:"omitempty,min=18"`
	MaxAge   int    `form:"max_age" binding:"omitempty,max=100"`
	Premium  *bool  `form:"premium"`
}

func (h *ProfileHandler) List(c *gin.Context) {
	req := ListProfilesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	profiles, err := h.profiles.List(c.Request.Context(), repo.ProfileFilters{
		Gender:    req.Gender,
		Location:  req.Location,
		MinAge:    req.MinAge,
		MaxAge:    req.MaxAge,
		IsPremium: req.Premium,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildProfileList(profiles, h.urlFor(c))})
}

func (h *ProfileHandler) Search(c *gin.Context) {
	profiles, err := h.profiles.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildProfileList(profiles, h.urlFor(c))})
}

func (h *ProfileHandler) Featured(c *gin.Context) {
	profiles, err := h.profiles.Featured(c.Request.Context(), intQuery(c, "limit"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildProfileList(profiles, h.urlFor(c))})
}

func (h *ProfileHandler) Recent(c *gin.Context) {
	profiles, err := h.profiles.Recent(c.Request.Context(), intQuery(c, "limit"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildProfileList(profiles, h.urlFor(c))})
}

// GetOwn returns the caller's own profile with every field visible.
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	p, err := h.profiles.GetOwn(c.Request.Context(), ident.UserID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildProfile(p, h.ownLevel(ident), h.imageURL(c, p.ImageKey))})
}

func (h *ProfileHandler) UpsertOwn(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	in, ok := h.bindProfileForm(c)
	if !ok {
		return
	}
	// Listing flags are admin-only knobs
	in.IsPremium = nil
	in.IsFeatured = nil

	p, err := h.profiles.UpsertOwn(c.Request.Context(), ident.UserID, in)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildProfile(p, h.ownLevel(ident), h.imageURL(c, p.ImageKey))})
}

func (h *ProfileHandler) CreateByAdmin(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	in, ok := h.bindProfileForm(c)
	if !ok {
		return
	}

	p, err := h.profiles.CreateByAdmin(c.Request.Context(), *ident, in)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: serializer.BuildProfile(p, h.ownLevel(ident), h.imageURL(c, p.ImageKey))})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	in, ok := h.bindProfileForm(c)
	if !ok {
		return
	}
	if !ident.IsAdmin() {
		in.IsPremium = nil
		in.IsFeatured = nil
	}

	p, err := h.profiles.Update(c.Request.Context(), id, *ident, in)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildProfile(p, h.ownLevel(ident), h.imageURL(c, p.ImageKey))})
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	if err := h.profiles.Delete(c.Request.Context(), id, *ident); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "profile deleted"})
}

func (h *ProfileHandler) Like(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	if err := h.profiles.Like(c.Request.Context(), id, ident.UserID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "liked"})
}

func (h *ProfileHandler) Unlike(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	if err := h.profiles.Unlike(c.Request.Context(), id, ident.UserID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "unliked"})
}

// ownLevel is the gate level for a caller reading a profile they manage.
func (h *ProfileHandler) ownLevel(ident *service.Identity) model.AccessLevel {
	if ident.IsAdmin() {
		return model.AccessLevelAdmin
	}
	return model.AccessLevelOwner
}

func (h *ProfileHandler) imageURL(c *gin.Context, key string) string {
	url, err := h.assets.URL(c.Request.Context(), key)
	if err != nil {
		h.log.Warn("failed to presign image url", zap.Error(err))
		return ""
	}
	return url
}

func (h *ProfileHandler) urlFor(c *gin.Context) func(key string) string {
	return func(key string) string { return h.imageURL(c, key) }
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}
