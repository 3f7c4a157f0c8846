package models

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// OptionalFloat is a float64 that may be missing. Missing marshals as JSON null.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// SomeFloat wraps a present value.
func SomeFloat(value float64) OptionalFloat {
	return OptionalFloat{Value: value, Valid: true}
}

// Get returns the value and whether it is present.
func (o OptionalFloat) Get() (float64, bool) {
	return o.Value, o.Valid
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = OptionalFloat{}
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptionalString is a string that may be missing, distinct from the empty string.
type OptionalString struct {
	Value string
	Valid bool
}

// SomeString wraps a present value.
func SomeString(value string) OptionalString {
	return OptionalString{Value: value, Valid: true}
}

// Get returns the value and whether it is present.
func (o OptionalString) Get() (string, bool) {
	return o.Value, o.Valid
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = OptionalString{}
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptionalInt is an int that may be missing; missing is never coerced to zero.
type OptionalInt struct {
	Value int
	Valid bool
}

// SomeInt wraps a present value.
func SomeInt(value int) OptionalInt {
	return OptionalInt{Value: value, Valid: true}
}

// Get returns the value and whether it is present.
func (o OptionalInt) Get() (int, bool) {
	return o.Value, o.Valid
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = OptionalInt{}
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
