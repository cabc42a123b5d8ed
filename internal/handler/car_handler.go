package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"car-inventory-service/internal/ingest"
	"car-inventory-service/internal/middleware"
	"car-inventory-service/internal/model"
	"car-inventory-service/internal/repository"
)

// CarHandler manages all operations over car listings.
type CarHandler struct {
	Store repository.CarStore
	Log   *zap.Logger
}

// RegisterRoutes binds the car routes onto an authenticated group.
func (h *CarHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cars", h.CreateCar)
	rg.GET("/cars", h.ListCars)
	rg.GET("/cars/:id", h.GetCarByID)
	rg.PUT("/cars/:id", h.UpdateCar)
	rg.DELETE("/cars/:id", h.DeleteCar)
}

// carFields are the text fields shared by the multipart and JSON shapes.
type carFields struct {
	Title       string
	Description string
	CarType     string
	Company     string
	Dealer      string
	Tags        []string
}

// missingRequired returns the name of the first absent required field, or "".
func (f carFields) missingRequired() string {
	required := []struct {
		name  string
		value string
	}{
		{"title", f.Title},
		{"description", f.Description},
		{"carType", f.CarType},
		{"company", f.Company},
		{"dealer", f.Dealer},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return r.name
		}
	}
	return ""
}

type createCarJSON struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CarType     string           `json:"carType"`
	Company     string           `json:"company"`
	Dealer      string           `json:"dealer"`
	Tags        []string         `json:"tags"`
	Images      []ingest.Payload `json:"images"`
}

// POST /api/cars
// Accepts multipart/form-data with file parts under "images", or JSON with
// pre-encoded image payloads.
func (h *CarHandler) CreateCar(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var (
		fields carFields
		images []model.Image
	)
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid multipart payload"})
			return
		}
		fields = fieldsFromForm(form)

		var rejected []ingest.Rejection
		images, rejected = ingest.FromMultipart(form.File["images"])
		h.logRejections(c, rejected)
	} else {
		var req createCarJSON
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
			return
		}
		fields = carFields{
			Title:       req.Title,
			Description: req.Description,
			CarType:     req.CarType,
			Company:     req.Company,
			Dealer:      req.Dealer,
			Tags:        req.Tags,
		}
		images = ingest.FromJSON(req.Images)
	}

	if missing := fields.missingRequired(); missing != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("%s is required", missing)})
		return
	}

	car := &model.Car{
		UserID:      ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		CarType:     fields.CarType,
		Company:     fields.Company,
		Dealer:      fields.Dealer,
		Tags:        fields.Tags,
		Images:      images,
	}
	if err := h.Store.Create(c.Request.Context(), car); err != nil {
		internalError(c, h.Log, "create car", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Car created successfully", "car": car})
}

// GET /api/cars
// Returns only the caller's listings.
func (h *CarHandler) ListCars(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header missing"})
		return
	}

	cars, err := h.Store.ListByOwner(c.Request.Context(), identity.UserID)
	if err != nil {
		internalError(c, h.Log, "list cars", err)
		return
	}
	if cars == nil {
		cars = []model.Car{}
	}
	c.JSON(http.StatusOK, cars)
}

// GET /api/cars/:id
// Visibility is shared: any authenticated caller may read any listing.
func (h *CarHandler) GetCarByID(c *gin.Context) {
	car, err := h.Store.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
		return
	}
	if err != nil {
		internalError(c, h.Log, "get car", err)
		return
	}
	c.JSON(http.StatusOK, car)
}

type updateCarJSON struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	CarType     *string          `json:"carType"`
	Company     *string          `json:"company"`
	Dealer      *string          `json:"dealer"`
	Tags        *[]string        `json:"tags"`
	Images      []ingest.Payload `json:"images"`
}

// PUT /api/cars/:id
// Merges only the supplied fields. A non-empty images sequence replaces the
// stored one entirely; an absent or empty sequence leaves it untouched.
func (h *CarHandler) UpdateCar(c *gin.Context) {
	var upd repository.CarUpdate
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid multipart payload"})
			return
		}
		upd = updateFromForm(form)

		images, rejected := ingest.FromMultipart(form.File["images"])
		h.logRejections(c, rejected)
		if len(images) > 0 {
			upd.Images = images
		}
	} else {
		var req updateCarJSON
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
			return
		}
		upd = repository.CarUpdate{
			Title:       req.Title,
			Description: req.Description,
			CarType:     req.CarType,
			Company:     req.Company,
			Dealer:      req.Dealer,
			Tags:        req.Tags,
			Images:      ingest.FromJSON(req.Images),
		}
	}

	car, err := h.Store.Update(c.Request.Context(), c.Param("id"), upd)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
		return
	}
	if err != nil {
		internalError(c, h.Log, "update car", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car updated successfully", "car": car})
}

// DELETE /api/cars/:id
func (h *CarHandler) DeleteCar(c *gin.Context) {
	err := h.Store.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
		return
	}
	if err != nil {
		internalError(c, h.Log, "delete car", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}

// ownerID resolves the caller's identity into a document reference.
func (h *CarHandler) ownerID(c *gin.Context) (primitive.ObjectID, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header missing"})
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (h *CarHandler) logRejections(c *gin.Context, rejected []ingest.Rejection) {
	for _, r := range rejected {
		h.Log.Warn("image dropped",
			zap.String("filename", r.Filename),
			zap.String("reason", r.Reason.String()),
			zap.Error(r.Err),
			zap.String("request_id", middleware.RequestIDFrom(c)))
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func fieldsFromForm(form *multipart.Form) carFields {
	return carFields{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		CarType:     formValue(form, "carType"),
		Company:     formValue(form, "company"),
		Dealer:      formValue(form, "dealer"),
		Tags:        form.Value["tags"],
	}
}

// updateFromForm treats a present form key as a set, even when its value is
// empty. Absent keys stay nil and never touch the stored document.
func updateFromForm(form *multipart.Form) repository.CarUpdate {
	var upd repository.CarUpdate
	if v, ok := form.Value["title"]; ok && len(v) > 0 {
		upd.Title = &v[0]
	}
	if v, ok := form.Value["description"]; ok && len(v) > 0 {
		upd.Description = &v[0]
	}
	if v, ok := form.Value["carType"]; ok && len(v) > 0 {
		upd.CarType = &v[0]
	}
	if v, ok := form.Value["company"]; ok && len(v) > 0 {
		upd.Company = &v[0]
	}
	if v, ok := form.Value["dealer"]; ok && len(v) > 0 {
		upd.Dealer = &v[0]
	}
	if v, ok := form.Value["tags"]; ok {
		tags := v
		upd.Tags = &tags
	}
	return upd
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
