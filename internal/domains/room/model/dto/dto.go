package dto

import (
	"mime/multipart"
	"time"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

type RoomResponse struct {
	ID              string     `json:"id"`
	RoomNumber      string     `json:"room_number"`
	Floor           int        `json:"floor"`
	Status          string     `json:"status"`
	SpecialFeatures string     `json:"special_features,omitempty"`
	LastCleanedAt   *time.Time `json:"last_cleaned_at,omitempty"`
	BaseHourlyRate  float64    `json:"base_hourly_rate"`
	BaseDailyRate   float64    `json:"base_daily_rate"`
	OvernightRate   float64    `json:"overnight_rate"`
	MaxOccupancy    int        `json:"max_occupancy"`
	CategoryID      string     `json:"category_id,omitempty"`
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID.String()
	r.RoomNumber = m.RoomNumber.String()
	r.Floor = m.Floor
	r.Status = m.Status.String()
	r.SpecialFeatures = m.SpecialFeatures
	r.BaseHourlyRate = m.BaseHourlyRate
	r.BaseDailyRate = m.BaseDailyRate
	r.OvernightRate = m.OvernightRate
	r.MaxOccupancy = m.MaxOccupancy
	r.CategoryID = m.CategoryID.String()

	if !m.LastCleanedAt.IsZero() {
		cleaned := m.LastCleanedAt.Time
		r.LastCleanedAt = &cleaned
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, params gDto.QueryParams) {
	r.TotalData = len(models)
	r.TotalPage = shared.CalculateTotalPage(len(models), params.Limit)

	page := shared.Paginate(models, params)

	r.Rooms = make([]RoomResponse, len(page))
	for i, mod := range page {
		r.Rooms[i].FromModel(mod)
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (u UpdateStatusRequest) ToStatus() (model.Status, error) {
	status, err := model.ParseStatus(u.Status)
	if err != nil {
		return "", failure.BadRequest(err) //nolint:wrapcheck
	}

	return status, nil
}

// StatusPatch is the upstream body of PATCH /api/rooms/{id}/status.
type StatusPatch struct {
	Status   model.Status `json:"status"`
	Reserved *bool        `json:"reserved,omitempty"`
}

func NewStatusPatch(status model.Status) StatusPatch {
	reserved := status == model.StatusReserved

	return StatusPatch{Status: status, Reserved: &reserved}
}

type CategoryRequest struct {
	Name          string   `json:"name"          validate:"required,max=100"`
	Description   string   `json:"description"   validate:"omitempty,max=500"`
	HourlyRate    float64  `json:"hourlyRate"    validate:"gte=0"`
	DailyRate     float64  `json:"dailyRate"     validate:"gte=0"`
	OvernightRate float64  `json:"overnightRate" validate:"gte=0"`
	Amenities     []string `json:"amenities"     validate:"omitempty,dive,max=50"`
	MaxOccupancy  int      `json:"maxOccupancy"  validate:"gte=1"`
	Active        *bool    `json:"active"        validate:"omitempty"`
}

// ToModel builds the upstream payload. Categories are active unless told otherwise.
func (c CategoryRequest) ToModel() model.Category {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Category{
		Name:          c.Name,
		Description:   c.Description,
		HourlyRate:    c.HourlyRate,
		DailyRate:     c.DailyRate,
		OvernightRate: c.OvernightRate,
		Amenities:     model.DedupeAmenities(c.Amenities),
		MaxOccupancy:  c.MaxOccupancy,
		Active:        active,
	}
}

type CategoryResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	HourlyRate    float64  `json:"hourly_rate"`
	DailyRate     float64  `json:"daily_rate"`
	OvernightRate float64  `json:"overnight_rate"`
	Amenities     []string `json:"amenities"`
	MaxOccupancy  int      `json:"max_occupancy"`
	Active        bool     `json:"active"`
	Images        []string `json:"images"`
}

func (c *CategoryResponse) FromModel(m model.Category) {
	c.ID = m.ID.String()
	c.Name = m.Name
	c.Description = m.Description
	c.HourlyRate = m.HourlyRate
	c.DailyRate = m.DailyRate
	c.OvernightRate = m.OvernightRate
	c.Amenities = model.DedupeAmenities(m.Amenities)
	c.MaxOccupancy = m.MaxOccupancy
	c.Active = m.Active
	c.Images = append([]string{}, m.Images...)
}

func FromCategories(models []model.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

type ImageUpload struct {
	Header *multipart.FileHeader `validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	File   multipart.File        `validate:"-"`
}

type UploadImagesRequest struct {
	Images []ImageUpload `validate:"required,min=1,max=10,dive"`
}
