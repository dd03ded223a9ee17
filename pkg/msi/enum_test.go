package msi

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	codeA = "{11111111-2222-3333-4444-555555555555}"
	codeB = "{AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE}"
	codeC = "{0F0F0F0F-1E1E-2D2D-3C3C-4B4B4B4B4B4B}"
)

func TestProductsInIndexOrder(t *testing.T) {
	fake := &fakeInstaller{enum: productsThenEnd(codeA, codeB)}
	client := New(WithInstaller(fake))

	codes, err := client.ListProducts()
	require.NoError(t, err)
	assert.Equal(t, []ProductCode{MustParseProductCode(codeA), MustParseProductCode(codeB)}, codes)
	assert.Equal(t, []uint32{0, 1, 2}, fake.enumCalls)
}

func TestProductsStopAtNoMoreItems(t *testing.T) {
	for _, count := range []int{0, 1, 5} {
		codes := make([]string, count)
		for i := range codes {
			codes[i] = codeC
		}
		fake := &fakeInstaller{enum: productsThenEnd(codes...)}
		got, err := New(WithInstaller(fake)).ListProducts()
		require.NoError(t, err)
		assert.Len(t, got, count)
		assert.Len(t, fake.enumCalls, count+1)
	}
}

func TestProductsSkipUnparsableEntries(t *testing.T) {
	fake := &fakeInstaller{enum: map[uint32]enumResult{
		0: {status: StatusSuccess, text: codeA},
		1: {status: StatusSuccess, text: "garbage"},
		2: {status: StatusSuccess, text: ""},
		3: {status: StatusSuccess, text: codeB},
		4: {status: StatusNoMoreItems},
	}}

	codes, err := New(WithInstaller(fake)).ListProducts()
	require.NoError(t, err)
	assert.Equal(t, []ProductCode{MustParseProductCode(codeA), MustParseProductCode(codeB)}, codes)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, fake.enumCalls)
}

func TestProductsFailureIsTerminalError(t *testing.T) {
	fake := &fakeInstaller{enum: map[uint32]enumResult{
		0: {status: StatusSuccess, text: codeA},
		1: {status: StatusAccessDenied},
		2: {status: StatusSuccess, text: codeB},
	}}

	var codes []ProductCode
	var errs []error
	for pc, err := range New(WithInstaller(fake)).Products() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		codes = append(codes, pc)
	}

	assert.Equal(t, []ProductCode{MustParseProductCode(codeA)}, codes)
	require.Len(t, errs, 1)
	status, ok := StatusOf(errs[0])
	require.True(t, ok)
	assert.Equal(t, StatusAccessDenied, status)
	assert.Equal(t, []uint32{0, 1}, fake.enumCalls)

	partial, err := New(WithInstaller(fake)).ListProducts()
	assert.ErrorIs(t, err, StatusAccessDenied)
	assert.Len(t, partial, 1)
}

func TestProductsLenientEndsSilently(t *testing.T) {
	fake := &fakeInstaller{enum: map[uint32]enumResult{
		0: {status: StatusSuccess, text: codeA},
		1: {status: StatusBadConfiguration},
		2: {status: StatusSuccess, text: codeB},
	}}

	codes, err := New(WithInstaller(fake), WithLenientEnumeration()).ListProducts()
	require.NoError(t, err)
	assert.Equal(t, []ProductCode{MustParseProductCode(codeA)}, codes)
}

func TestProductsEarlyBreak(t *testing.T) {
	fake := &fakeInstaller{enum: productsThenEnd(codeA, codeB, codeC)}
	for range New(WithInstaller(fake)).Products() {
		break
	}
	assert.Equal(t, []uint32{0}, fake.enumCalls)
}

func TestProductsRestartOnReinvocation(t *testing.T) {
	fake := &fakeInstaller{enum: productsThenEnd(codeA, codeB)}
	client := New(WithInstaller(fake))

	first, err := client.ListProducts()
	require.NoError(t, err)
	second, err := client.ListProducts()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []uint32{0, 1, 2, 0, 1, 2}, fake.enumCalls)
}

func TestInstancesReportContext(t *testing.T) {
	fake := &fakeInstaller{enum: map[uint32]enumResult{
		0: {status: StatusSuccess, text: codeA, context: ContextMachine},
		1: {status: StatusSuccess, text: codeB, context: ContextUserUnmanaged},
		2: {status: StatusNoMoreItems},
	}}

	var got []Product
	for p, err := range New(WithInstaller(fake)).Instances() {
		require.NoError(t, err)
		got = append(got, p)
	}
	assert.Equal(t, []Product{
		{Code: MustParseProductCode(codeA), Context: ContextMachine},
		{Code: MustParseProductCode(codeB), Context: ContextUserUnmanaged},
	}, got)
}

func TestInstallContextParse(t *testing.T) {
	tests := []struct {
		in   string
		want InstallContext
		str  string
	}{
		{"", ContextAll, "all"},
		{"ALL", ContextAll, "all"},
		{"machine", ContextMachine, "machine"},
		{"userManaged|machine", ContextUserManaged | ContextMachine, "userManaged|machine"},
		{"userunmanaged, usermanaged", ContextUserManaged | ContextUserUnmanaged, "userManaged|userUnmanaged"},
	}
	for _, tt := range tests {
		got, err := ParseInstallContext(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.str, got.String(), tt.in)
	}

	_, err := ParseInstallContext("global")
	assert.Error(t, err)
	assert.Equal(t, "none", ContextNone.String())
}

func TestNativeInstallerUnavailableOffWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("native installer present")
	}
	_, err := New().ListProducts()
	assert.ErrorIs(t, err, StatusCallNotImplemented)
}
