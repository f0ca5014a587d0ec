package structutil

import "reflect"

// PartialEqual reports whether every non-zero exported field of want
// matches the corresponding field of got. Zero fields of want are
// ignored, so tests only assert the fields they care about.
func PartialEqual(want, got any) bool {
	wantValue := reflect.Indirect(reflect.ValueOf(want))
	gotValue := reflect.Indirect(reflect.ValueOf(got))

	if wantValue.Type() != gotValue.Type() {
		return false
	}

	if wantValue.Kind() != reflect.Struct {
		return reflect.DeepEqual(wantValue.Interface(), gotValue.Interface())
	}

	for i := 0; i < wantValue.NumField(); i++ {
		field := wantValue.Field(i)
		if !field.CanInterface() {
			continue
		}

		if field.IsZero() {
			continue
		}

		if !reflect.DeepEqual(field.Interface(), gotValue.Field(i).Interface()) {
			return false
		}
	}

	return true
}
