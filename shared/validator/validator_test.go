package validator_test

import (
	"agenda/shared/failure"
	"agenda/shared/validator"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Start     string `json:"start"      validate:"required"`
	Reason    string `json:"reason"     validate:"omitempty,max=10"`
	Role      string `json:"role"       validate:"omitempty,oneof=client professional"`
}

const serviceID = "0d5c3a4e-2c55-4a1f-9a8e-6a6f1d7f3b11"

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    bookingRequest
		wantMsg string
	}{
		{
			name: "valid",
			data: bookingRequest{ServiceID: serviceID, Start: "2030-01-01T09:00"},
		},
		{
			name:    "missing field uses json name",
			data:    bookingRequest{ServiceID: serviceID},
			wantMsg: "start is required",
		},
		{
			name:    "uuid",
			data:    bookingRequest{ServiceID: "svc-1", Start: "x"},
			wantMsg: "service_id must be a valid UUID",
		},
		{
			name:    "max length",
			data:    bookingRequest{ServiceID: serviceID, Start: "x", Reason: "far too long a reason"},
			wantMsg: "reason must be at most 10",
		},
		{
			name:    "oneof",
			data:    bookingRequest{ServiceID: serviceID, Start: "x", Role: "admin"},
			wantMsg: "role must be one of client professional",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMsg)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	var req bookingRequest

	err := validator.Validate(strings.NewReader(`{"service_id":"`+serviceID+`","start":"2030-01-01T09:00"}`), &req)
	assert.NoError(t, err)
	assert.Equal(t, serviceID, req.ServiceID)

	err = validator.Validate(strings.NewReader(`{"service_id":`), &req)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar(serviceID, "service_id", "required,uuid"))
	assert.EqualError(t, validator.ValidateVar("", "service_id", "required,uuid"), "service_id is required")
	assert.EqualError(t, validator.ValidateVar("abc", "service_id", "required,uuid"), "service_id must be a valid UUID")
}

type uploadRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func TestFileValidation(t *testing.T) {
	upload := func(contentType string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{
			Filename: "cover",
			Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
			Size:     size,
		}
	}

	tests := []struct {
		name    string
		data    uploadRequest
		wantMsg string
	}{
		{name: "no upload", data: uploadRequest{}},
		{name: "png under limit", data: uploadRequest{Image: upload("image/png", 512*1024)}},
		{name: "pdf rejected", data: uploadRequest{Image: upload("application/pdf", 1024)}, wantMsg: "image must be one of image/png image/jpeg"},
		{name: "too large", data: uploadRequest{Image: upload("image/jpeg", 2<<20)}, wantMsg: "image must not exceed 1 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}
