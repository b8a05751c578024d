package param

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRoundTrip(t *testing.T) {
	for n := byte(1); n <= 16; n++ {
		reg, err := NewRegister(n)
		assert.NoError(t, err)

		var buf bytes.Buffer
		assert.NoError(t, reg.WriteTo(&buf))

		got, err := ReadRegister(&buf)
		assert.NoError(t, err)
		assert.Equal(t, reg, got)
	}
}

func TestRegisterOutOfRangeIsRejected(t *testing.T) {
	_, err := NewRegister(0)
	assert.Error(t, err)

	_, err = NewRegister(17)
	assert.Error(t, err)
	assert.IsType(t, ErrInvalidRegister{}, err)
}

func TestDirectRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 1 << 20, -(1 << 20)} {
		d := Direct(v)
		var buf bytes.Buffer
		assert.NoError(t, d.WriteTo(&buf))

		got, err := ReadDirect(&buf)
		assert.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestAltDirectRoundTrip(t *testing.T) {
	for _, v := range []int16{0, 1, -1, 30000, -30000} {
		d := AltDirect(v)
		var buf bytes.Buffer
		assert.NoError(t, d.WriteTo(&buf))

		got, err := ReadAltDirect(&buf)
		assert.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestParamCodeBuilderSetsPositionsIndependently(t *testing.T) {
	code := NewBuilder().First(TypeRegister).Second(TypeIndirect).Third(TypeDirect).Fourth(TypeRegister).Build()

	t1, err := code.TypeAt(1)
	assert.NoError(t, err)
	assert.Equal(t, TypeRegister, t1)

	t2, err := code.TypeAt(2)
	assert.NoError(t, err)
	assert.Equal(t, TypeIndirect, t2)

	t3, err := code.TypeAt(3)
	assert.NoError(t, err)
	assert.Equal(t, TypeDirect, t3)

	t4, err := code.TypeAt(4)
	assert.NoError(t, err)
	assert.Equal(t, TypeRegister, t4)
}

func TestParamCodeRewritingAPositionDoesNotDisturbOthers(t *testing.T) {
	b := NewBuilder().First(TypeRegister).Second(TypeDirect)
	b.First(TypeIndirect)

	code := b.Build()
	t1, _ := code.TypeAt(1)
	t2, _ := code.TypeAt(2)
	assert.Equal(t, TypeIndirect, t1)
	assert.Equal(t, TypeDirect, t2)
}

func TestParamCodeZeroBitsAreInvalid(t *testing.T) {
	var code Code
	_, err := code.TypeAt(1)
	assert.Error(t, err)
	assert.IsType(t, ErrInvalidParamCode{}, err)
}
