package dto

import (
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Search text bounds, counted after trimming.
const (
	SearchMinLength = 2
	SearchMaxLength = 100
)

// RegisterValidations installs the custom tags used by the request types on v.
// Field names in validation errors become the json or form names clients send.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(wireName)

	rules := map[string]validator.Func{
		"trimmin": trimMin,
		"trimmax": trimMax,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	v.RegisterStructValidation(listQueryRules, ListQuery{})
	return nil
}

func wireName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func trimmedLen(fl validator.FieldLevel) int {
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
}

func trimMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	return err == nil && trimmedLen(fl) >= n
}

func trimMax(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	return err == nil && trimmedLen(fl) <= n
}

// listQueryRules checks the search parameters. Clearing filters discards them,
// so nothing is checked in that case.
func listQueryRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(ListQuery)
	if q.clearRequested() {
		return
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(q.Query)); n != 0 && (n < SearchMinLength || n > SearchMaxLength) {
		sl.ReportError(q.Query, "query", "Query", "searchtext", "")
	}

	from, okFrom := checkDate(sl, q.DateFrom, "dateFrom", "DateFrom")
	to, okTo := checkDate(sl, q.DateTo, "dateTo", "DateTo")
	if okFrom && okTo && to.Before(from) {
		sl.ReportError(q.DateTo, "dateTo", "DateTo", "daterange", "")
	}
}

// checkDate parses an optional date parameter. The bool is true only for a present, valid date.
func checkDate(sl validator.StructLevel, raw, name, field string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		sl.ReportError(raw, name, field, "datetime", DateLayout)
		return time.Time{}, false
	}
	return t, true
}
