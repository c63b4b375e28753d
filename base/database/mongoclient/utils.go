package mongoclient

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"
)

var ErrNotStruct = xerrors.New("mongoclient: filter must be a struct")

// MakeBsonM turns a bson tagged option struct into a filter. Nil pointers
// and zero values are left out, set pointers are dereferenced so a pointer
// to a zero value still filters.
func MakeBsonM(opts interface{}) (bson.M, error) {
	val := reflect.Indirect(reflect.ValueOf(opts))
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	m := bson.M{}
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" {
			// unexported
			continue
		}
		tag, err := bsoncodec.DefaultStructTagParser(sf)
		if err != nil {
			return nil, err
		}
		if tag.Skip {
			continue
		}

		field := val.Field(i)
		switch {
		case field.Kind() == reflect.Ptr:
			if !field.IsNil() {
				m[tag.Name] = field.Elem().Interface()
			}
		case !field.IsZero():
			m[tag.Name] = field.Interface()
		}
	}
	return m, nil
}
