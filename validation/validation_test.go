package validation

import (
	"testing"

	"github.com/kbukum/storagekit/errors"
)

func TestValidator_Required(t *testing.T) {
	v := New()
	v.Required("bucket", "uploads")
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}

	v2 := New()
	v2.Required("bucket", "  ")
	if !v2.HasErrors() {
		t.Error("expected error for blank value")
	}
}

func TestValidator_Validate_ErrorShape(t *testing.T) {
	v := New()
	v.Required("access_key", "").Required("secret_key", "")
	se := v.Validate()
	if se == nil {
		t.Fatal("expected StorageError")
	}
	if se.Code != errors.ErrCodeMissingRequiredParam {
		t.Errorf("expected MISSING_REQUIRED_PARAM, got %s", se.Code)
	}
	fields, ok := se.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %v", se.Details["fields"])
	}
}

func TestValidator_Validate_NilWhenClean(t *testing.T) {
	if se := New().Required("k", "v").Validate(); se != nil {
		t.Errorf("expected nil, got %v", se)
	}
}

func TestValidator_RequiredUUID(t *testing.T) {
	v := New()
	v.RequiredUUID("id", "b3c47f24-52f3-4d25-9b7a-5f2d3d1a9e01")
	if v.HasErrors() {
		t.Errorf("expected valid UUID, got %v", v.Errors())
	}

	v2 := New()
	v2.RequiredUUID("id", "not-a-uuid")
	if !v2.HasErrors() {
		t.Error("expected error for malformed UUID")
	}

	v3 := New()
	v3.RequiredUUID("id", "00000000-0000-0000-0000-000000000000")
	if !v3.HasErrors() {
		t.Error("expected error for nil UUID")
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := New()
	v.OneOf("type", "upload", "upload", "download")
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}

	v2 := New()
	v2.OneOf("type", "stream", "upload", "download")
	if !v2.HasErrors() {
		t.Error("expected error for disallowed value")
	}
}

type testCreds struct {
	AccessKey string `mapstructure:"access_key" validate:"required"`
	SecretKey string `mapstructure:"secret_key" validate:"required"`
}

func TestStruct_RequiredTags(t *testing.T) {
	if err := Struct(&testCreds{AccessKey: "a", SecretKey: "b"}); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}

	err := Struct(&testCreds{AccessKey: "a"})
	if err == nil {
		t.Fatal("expected error for missing secret_key")
	}
	se, ok := errors.AsStorageError(err)
	if !ok {
		t.Fatalf("expected StorageError, got %T", err)
	}
	if se.Code != errors.ErrCodeMissingRequiredParam {
		t.Errorf("expected MISSING_REQUIRED_PARAM, got %s", se.Code)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("AccessKey"); got != "access_key" {
		t.Errorf("toSnakeCase(AccessKey) = %q, want access_key", got)
	}
}
