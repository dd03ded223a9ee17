package msi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusKind(t *testing.T) {
	tests := []struct {
		status Status
		want   StatusKind
	}{
		{StatusSuccess, KindSuccess},
		{StatusNoMoreItems, KindNoMoreItems},
		{StatusUnknownProduct, KindUnknownProduct},
		{StatusUnknownProperty, KindUnknownProperty},
		{StatusMoreData, KindOther},
		{StatusBadConfiguration, KindOther},
		{Status(9999), KindOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Kind(), tt.status.String())
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unknown product (1605)", StatusUnknownProduct.String())
	assert.Equal(t, "status 4242", Status(4242).String())
	assert.Equal(t, "unknown-property", KindUnknownProperty.String())
}

func TestStatusErrorMatching(t *testing.T) {
	pc := MustParseProductCode("{00000000-0000-0000-0000-000000000001}")
	err := fmt.Errorf("lookup: %w", &StatusError{Op: "GetProperty", Product: pc, Property: PropVersionString, Status: StatusUnknownProduct})

	assert.True(t, errors.Is(err, StatusUnknownProduct))
	assert.False(t, errors.Is(err, StatusUnknownProperty))

	status, ok := StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, StatusUnknownProduct, status)
	assert.Contains(t, err.Error(), `{00000000-0000-0000-0000-000000000001} "VersionString"`)

	_, ok = StatusOf(errors.New("plain"))
	assert.False(t, ok)

	enumErr := &StatusError{Op: opEnumProducts, Index: 3, Status: StatusAccessDenied}
	assert.Equal(t, "msi: EnumProducts at index 3: access denied (5)", enumErr.Error())
}
