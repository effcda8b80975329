package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
)

// Mentor is a directory record as stored
type Mentor struct {
	ID                    int64          `json:"id"`
	Name                  string         `json:"name"`
	Email                 string         `json:"email"`
	University            string         `json:"university"`
	JobTitle              string         `json:"job_title"`
	Employer              string         `json:"employer"`
	AreaProfessionalFocus string         `json:"area_professional_focus"`
	AreaSikhiFocus        string         `json:"area_sikhi_focus"`
	Undergraduate         string         `json:"undergraduate"`
	PostGraduate          string         `json:"post_graduate"`
	GraduationYear        GraduationYear `json:"graduation_year"`
	Location              string         `json:"location"`
	FavouriteKirtani      string         `json:"favourite_kirtani"`
	FavouriteShow         string         `json:"favourite_show"`
	FavouriteFood         string         `json:"favourite_food"`
	FavouriteHobby        string         `json:"favourite_hobby"`
	PhotoURL              *string        `json:"photo_url"`
	Bio                   string         `json:"bio"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// PublicMentor is the listing view; the mentor's address is reachable only
// through the contact relay.
type PublicMentor struct {
	ID                    int64          `json:"id"`
	Name                  string         `json:"name"`
	University            string         `json:"university"`
	JobTitle              string         `json:"job_title"`
	Employer              string         `json:"employer"`
	AreaProfessionalFocus string         `json:"area_professional_focus"`
	AreaSikhiFocus        string         `json:"area_sikhi_focus"`
	Undergraduate         string         `json:"undergraduate"`
	PostGraduate          string         `json:"post_graduate"`
	GraduationYear        GraduationYear `json:"graduation_year"`
	Location              string         `json:"location"`
	FavouriteKirtani      string         `json:"favourite_kirtani"`
	FavouriteShow         string         `json:"favourite_show"`
	FavouriteFood         string         `json:"favourite_food"`
	FavouriteHobby        string         `json:"favourite_hobby"`
	PhotoURL              *string        `json:"photo_url"`
	Bio                   string         `json:"bio"`
}

// ToPublic drops the fields that must not leave the admin surface
func (m *Mentor) ToPublic() PublicMentor {
	return PublicMentor{
		ID:                    m.ID,
		Name:                  m.Name,
		University:            m.University,
		JobTitle:              m.JobTitle,
		Employer:              m.Employer,
		AreaProfessionalFocus: m.AreaProfessionalFocus,
		AreaSikhiFocus:        m.AreaSikhiFocus,
		Undergraduate:         m.Undergraduate,
		PostGraduate:          m.PostGraduate,
		GraduationYear:        m.GraduationYear,
		Location:              m.Location,
		FavouriteKirtani:      m.FavouriteKirtani,
		FavouriteShow:         m.FavouriteShow,
		FavouriteFood:         m.FavouriteFood,
		FavouriteHobby:        m.FavouriteHobby,
		PhotoURL:              m.PhotoURL,
		Bio:                   m.Bio,
	}
}

// MentorInput is the admin write payload. Updates replace every field.
type MentorInput struct {
	Name                  string         `json:"name" binding:"required"`
	Email                 string         `json:"email" binding:"required"`
	University            string         `json:"university"`
	JobTitle              string         `json:"job_title"`
	Employer              string         `json:"employer"`
	AreaProfessionalFocus string         `json:"area_professional_focus"`
	AreaSikhiFocus        string         `json:"area_sikhi_focus"`
	Undergraduate         string         `json:"undergraduate"`
	PostGraduate          string         `json:"post_graduate"`
	GraduationYear        GraduationYear `json:"graduation_year"`
	Location              string         `json:"location"`
	FavouriteKirtani      string         `json:"favourite_kirtani"`
	FavouriteShow         string         `json:"favourite_show"`
	FavouriteFood         string         `json:"favourite_food"`
	FavouriteHobby        string         `json:"favourite_hobby"`
	PhotoURL              *string        `json:"photo_url"`
	Bio                   string         `json:"bio"`
}

// Normalize trims the required fields and turns an empty photo URL into null
func (in *MentorInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.PhotoURL != nil && strings.TrimSpace(*in.PhotoURL) == "" {
		in.PhotoURL = nil
	}
}

// Validate enforces the required fields
func (in *MentorInput) Validate() error {
	var fields []apperrors.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "This field is required"})
	}
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, apperrors.FieldError{Field: "email", Message: "This field is required"})
	}
	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}

// GraduationYear is an optional integer year. JSON input accepts a number, a
// numeric string, "" or null; output is a number or null.
type GraduationYear struct {
	Year  int
	Valid bool
}

// Year returns a set GraduationYear
func Year(y int) GraduationYear {
	return GraduationYear{Year: y, Valid: true}
}

// MarshalJSON implements json.Marshaler
func (g GraduationYear) MarshalJSON() ([]byte, error) {
	if !g.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(g.Year)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (g *GraduationYear) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = GraduationYear{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*g = GraduationYear{}
			return nil
		}
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("graduation_year must be an integer year, got %s", string(data))
	}
	*g = Year(year)
	return nil
}

// Scan implements sql.Scanner
func (g *GraduationYear) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*g = GraduationYear{}
	case int64:
		*g = Year(int(v))
	case int32:
		*g = Year(int(v))
	default:
		return fmt.Errorf("cannot scan %T into GraduationYear", src)
	}
	return nil
}

// Value implements driver.Valuer
func (g GraduationYear) Value() (driver.Value, error) {
	if !g.Valid {
		return nil, nil
	}
	return int64(g.Year), nil
}

// MentorFilter narrows the listing. Empty fields are ignored; the rest are AND-ed.
type MentorFilter struct {
	University     string
	Location       string
	Program        string // matched against job_title
	GraduationYear GraduationYear
}

// IsEmpty reports whether no filter is set
func (f MentorFilter) IsEmpty() bool {
	return f.University == "" && f.Location == "" && f.Program == "" && !f.GraduationYear.Valid
}

// Query renders the filter as listing query parameters
func (f MentorFilter) Query() url.Values {
	q := url.Values{}
	if f.University != "" {
		q.Set("university", f.University)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.Program != "" {
		q.Set("program", f.Program)
	}
	if f.GraduationYear.Valid {
		q.Set("graduation_year", strconv.Itoa(f.GraduationYear.Year))
	}
	return q
}

// unsupportedFilters belong to a mentor schema this directory does not store
var unsupportedFilters = []string{"gender", "religion"}

// ParseMentorFilter reads listing filters from query parameters. "job_title"
// is accepted as an alias of "program".
func ParseMentorFilter(q url.Values) (MentorFilter, error) {
	var fields []apperrors.FieldError
	for _, key := range unsupportedFilters {
		if strings.TrimSpace(q.Get(key)) != "" {
			fields = append(fields, apperrors.FieldError{Field: key, Message: "unsupported filter"})
		}
	}

	f := MentorFilter{
		University: strings.TrimSpace(q.Get("university")),
		Location:   strings.TrimSpace(q.Get("location")),
		Program:    strings.TrimSpace(q.Get("program")),
	}
	if f.Program == "" {
		f.Program = strings.TrimSpace(q.Get("job_title"))
	}

	if raw := strings.TrimSpace(q.Get("graduation_year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, apperrors.FieldError{Field: "graduation_year", Message: "must be an integer year"})
		} else {
			f.GraduationYear = Year(year)
		}
	}

	if len(fields) > 0 {
		return MentorFilter{}, &apperrors.ValidationError{Fields: fields}
	}
	return f, nil
}
