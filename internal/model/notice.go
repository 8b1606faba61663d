package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type NoticeStatus string

const (
	NoticeStatusProcess   NoticeStatus = "process"
	NoticeStatusCompleted NoticeStatus = "completed"
	NoticeStatusDenied    NoticeStatus = "denied"
)

func (s NoticeStatus) Valid() bool {
	switch s {
	case NoticeStatusProcess, NoticeStatusCompleted, NoticeStatusDenied:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderAll    Gender = "all"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderAll:
		return true
	}
	return false
}

// JobType is the work category shown on the notice card
type JobType string

const (
	JobTypeFullTime  JobType = "fullTime"  // cargo transport
	JobTypePartTime  JobType = "partTime"  // cleaning
	JobTypeContract  JobType = "contract"  // field work
	JobTypeTemporary JobType = "temporary" // construction
	JobTypeFreelance JobType = "freelance" // online
)

func (j JobType) Valid() bool {
	switch j {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeTemporary, JobTypeFreelance:
		return true
	}
	return false
}

type OwnerKind string

const (
	OwnerKindUser  OwnerKind = "user"
	OwnerKindAdmin OwnerKind = "admin"
)

// Owner says who authored a notice: a registered user, or the moderators.
// UserID is only meaningful when Kind is OwnerKindUser.
type Owner struct {
	Kind   OwnerKind `json:"kind"`
	UserID int       `json:"user_id,omitempty"`
}

func UserOwner(userID int) Owner {
	return Owner{Kind: OwnerKindUser, UserID: userID}
}

func AdminAuthored() Owner {
	return Owner{Kind: OwnerKindAdmin}
}

func (o Owner) IsAdmin() bool {
	return o.Kind == OwnerKindAdmin
}

// OwnedBy reports whether the notice belongs to the given user
func (o Owner) OwnedBy(userID int) bool {
	return o.Kind == OwnerKindUser && o.UserID == userID
}

// Notice represents a job posting
type Notice struct {
	ID          int64        `json:"id"`
	Owner       Owner        `json:"owner"`
	UserName    string       `json:"user_name"` // empty for admin-authored notices
	Description string       `json:"description"`
	Date        string       `json:"date"` // free text, day first
	Gender      Gender       `json:"gender"`
	PhoneNumber string       `json:"phone_number"`
	Price       float64      `json:"price"`
	Location    string       `json:"location"`
	JobType     JobType      `json:"jobType"`
	Status      NoticeStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Price accepts both a JSON number and a numeric string, since form inputs
// in the admin panel post their raw string value.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*p = 0
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", raw)
		}
		*p = Price(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	*p = Price(v)
	return nil
}

// NoticeInput is the body of a user-posted notice.
// Location and job type are optional; an empty job type means unspecified.
type NoticeInput struct {
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Gender      Gender  `json:"gender" binding:"required,oneof=male female all"`
	Price       Price   `json:"price" binding:"required,gt=0"`
	Location    string  `json:"location"`
	JobType     JobType `json:"jobType" binding:"omitempty,oneof=fullTime partTime contract temporary freelance"`
}

// AdminNoticeInput is used for admin-authored notices and full admin edits.
// The contact phone is given explicitly since there is no owner to copy it from.
type AdminNoticeInput struct {
	NoticeInput
	PhoneNumber string `json:"phone_number" binding:"required"`
}
