package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsFlattenUsesFullPaths(t *testing.T) {
	e := &Errors{}
	e.Add("user.address.zip_code", "bad zip")
	e.Add("user.first_name", "too long")
	e.Add("items.10.name", "ten")
	e.Add("items.2.name", "two")
	e.Add("", "whole input")

	got := e.Flatten()

	require.Len(t, got, 5)
	assert.Equal(t, FieldMessages{Field: "", Messages: []string{"whole input"}}, got[0])
	assert.Equal(t, "items.2.name", got[1].Field)
	assert.Equal(t, "items.10.name", got[2].Field)
	assert.Equal(t, "user.address.zip_code", got[3].Field)
	assert.Equal(t, "user.first_name", got[4].Field)
}

func TestErrorsMerge(t *testing.T) {
	inner := &Errors{}
	inner.Add("code", "missing")

	outer := &Errors{}
	outer.Merge("nested", inner)
	outer.Merge("ignored", nil)

	assert.Equal(t, []FieldMessages{{Field: "nested.code", Messages: []string{"missing"}}}, outer.Flatten())
}

func TestErrorsEmpty(t *testing.T) {
	var nilTree *Errors
	assert.True(t, nilTree.Empty())
	assert.True(t, (&Errors{Fields: map[string]*Errors{"a": {}}}).Empty())

	e := &Errors{}
	e.Add("a", "x")
	assert.False(t, e.Empty())
	assert.True(t, e.HasFields())
}

func TestNewErrorAndFieldError(t *testing.T) {
	plain := NewError("Malformed.", "")
	assert.Equal(t, []string{"Malformed."}, plain.Detail.Messages)

	coded := NewError("Please upload a valid image.", "invalid_image", WithCase("avatar"), WithData(map[string]any{"max": "5mb"}))
	m := Decode(coded.Detail.Messages[0])
	assert.Equal(t, Message{Text: "Please upload a valid image.", Code: "invalid_image", Case: "avatar", Data: map[string]any{"max": "5mb"}}, m)

	fe := FieldError("user_name", "This field is required.", "required")
	assert.Equal(t, "validation failed: user_name: This field is required.", fe.Error())
}

func TestErrorMessageWithoutFields(t *testing.T) {
	assert.Equal(t, "validation failed", (&Error{}).Error())
	assert.Equal(t, "validation failed: Nope.", NewError("Nope.", "invalid").Error())
}
