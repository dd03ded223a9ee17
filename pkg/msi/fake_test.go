package msi

import "unicode/utf16"

type enumResult struct {
	status  Status
	text    string
	context InstallContext
}

type infoCall struct {
	product  string
	property Property
	bufLen   int
	length   uint32
}

// fakeInstaller answers EnumProducts from a per-index script and
// GetProductInfo either from a value store that behaves like msi.dll or from
// an override func.
type fakeInstaller struct {
	enum      map[uint32]enumResult
	enumCalls []uint32

	values    map[string]map[Property]string
	info      func(call int, product string, prop Property, buf []uint16, length *uint32) Status
	infoCalls []infoCall
}

// productsThenEnd scripts success for each code in order followed by
// StatusNoMoreItems.
func productsThenEnd(codes ...string) map[uint32]enumResult {
	script := make(map[uint32]enumResult, len(codes)+1)
	for i, code := range codes {
		script[uint32(i)] = enumResult{status: StatusSuccess, text: code, context: ContextMachine}
	}
	script[uint32(len(codes))] = enumResult{status: StatusNoMoreItems}
	return script
}

func (f *fakeInstaller) EnumProducts(_ string, _ InstallContext, index uint32, code *[ProductCodeBufferLen]uint16, installed *InstallContext) Status {
	f.enumCalls = append(f.enumCalls, index)
	res, ok := f.enum[index]
	if !ok {
		return StatusNoMoreItems
	}
	if res.status == StatusSuccess {
		units := utf16.Encode([]rune(res.text))
		copy(code[:], units)
		if installed != nil {
			*installed = res.context
		}
	}
	return res.status
}

func (f *fakeInstaller) GetProductInfo(product string, prop Property, buf []uint16, length *uint32) Status {
	f.infoCalls = append(f.infoCalls, infoCall{product: product, property: prop, bufLen: len(buf), length: *length})
	if f.info != nil {
		return f.info(len(f.infoCalls), product, prop, buf, length)
	}

	props, ok := f.values[product]
	if !ok {
		return StatusUnknownProduct
	}
	value, ok := props[prop]
	if !ok {
		return StatusUnknownProperty
	}
	units := utf16.Encode([]rune(value))
	if buf == nil {
		*length = uint32(len(units))
		return StatusSuccess
	}
	if int(*length) <= len(units) {
		*length = uint32(len(units))
		return StatusMoreData
	}
	copy(buf, units)
	buf[len(units)] = 0
	*length = uint32(len(units))
	return StatusSuccess
}
