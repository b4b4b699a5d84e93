package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the current time in the millisecond form the
// response envelope carries.
func ResponseCurrentTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// NewResponse creates a ResponseModel with the given code, data and text.
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

// NewOKResponse creates a 200 ResponseModel wrapping the given data.
func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusOK, data, "OK")
}

// NewCreatedResponse creates a 201 ResponseModel wrapping the given data.
func NewCreatedResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusCreated, data, "Created")
}

// NewEntryResponse creates a 200 ResponseModel whose data holds a single
// entry.
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(map[string]interface{}{
		"entry": entry,
	})
}

// NewListResponse creates a 200 ResponseModel whose data holds a list.
func NewListResponse(list interface{}) ResponseModel {
	return NewOKResponse(map[string]interface{}{
		"list":          list,
		"limitExceeded": false,
	})
}
