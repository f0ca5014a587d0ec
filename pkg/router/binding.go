package router

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/coopnet-lab/backend/pkg/errorx"
)

// bindRequest fills req from the incoming http request. GET requests are
// bound from query parameters using the json tag of each field; POST
// requests are decoded from the JSON body.
func bindRequest(httpReq *http.Request, method string, req any) error {
	switch method {
	case http.MethodGet, http.MethodDelete:
		return bindQuery(httpReq, req)

	case http.MethodPost, http.MethodPut, http.MethodPatch:
		body, err := io.ReadAll(httpReq.Body)
		if err != nil {
			return errorx.New(errorx.BadRequest, "Cannot read the request body")
		}

		if len(body) == 0 {
			return nil
		}

		if err := json.Unmarshal(body, req); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid JSON body")
		}
	}

	return nil
}

func bindQuery(httpReq *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}

		queryValue := httpReq.URL.Query().Get(name)
		if queryValue == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(queryValue)

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(queryValue, 10, 64)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid number for %s", name)
			}
			field.SetInt(n)

		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(queryValue, 10, 64)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid number for %s", name)
			}
			field.SetUint(n)

		case reflect.Bool:
			b, err := strconv.ParseBool(queryValue)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid boolean for %s", name)
			}
			field.SetBool(b)
		}
	}

	return nil
}
