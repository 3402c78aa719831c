package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"diarybook/src/app/http/response"
)

var fieldMessages = map[string]string{
	"title.max":           "Title must not exceed 255 characters",
	"content.required":    "Content is required",
	"content.trimmin":     "Content must be at least 10 characters long",
	"content.trimmax":     "Content must not exceed 10,000 characters",
	"entry_date.datetime": "entry_date must be a valid date",
	"query.searchtext":    "Search query must be between 2 and 100 characters",
	"dateFrom.datetime":   "dateFrom must be a valid date",
	"dateTo.datetime":     "dateTo must be a valid date",
	"dateTo.daterange":    "dateTo must be after dateFrom",
}

// validationErrors turns a binding error into the per-field list clients receive.
func validationErrors(err error) []response.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]response.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
			if !ok {
				msg = fmt.Sprintf("%s is invalid", fe.Field())
			}
			out = append(out, response.FieldError{Field: fe.Field(), Message: msg})
		}
		return out
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return []response.FieldError{{Field: "body", Message: "Request body is too large"}}
	}
	return []response.FieldError{{Field: "body", Message: "Request body must be valid JSON"}}
}
