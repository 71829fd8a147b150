// memory_test.go - Tests for the flat big-endian memory

package mips

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory_WordRoundTrip(t *testing.T) {
	mem := NewMemory()
	for _, addr := range []uint32{0x40, 0x1000, 0x1001, 0x7FFFF, MEMORY_SIZE - 4} {
		require.NoError(t, mem.Write32(addr, 0xCAFEBABE))
		got, err := mem.Read32(addr)
		require.NoError(t, err)
		require.Equalf(t, uint32(0xCAFEBABE), got, "addr 0x%08x", addr)
	}
}

func TestMemory_BigEndianBytes(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Write32(0x2000, 0x11223344))

	for i, want := range []byte{0x11, 0x22, 0x33, 0x44} {
		b, err := mem.Read8(0x2000 + uint32(i))
		require.NoError(t, err)
		require.Equal(t, want, b)
	}

	require.NoError(t, mem.Write8(0x2003, 0xAA))
	got, err := mem.Read32(0x2000)
	require.NoError(t, err)
	require.Equal(t, uint32(0x112233AA), got)
}

func TestMemory_Bounds(t *testing.T) {
	mem := NewMemory()

	_, err := mem.Read8(MEMORY_SIZE - 1)
	require.NoError(t, err)
	_, err = mem.Read8(MEMORY_SIZE)
	require.ErrorIs(t, err, ErrAddressOutOfBounds)

	_, err = mem.Read32(MEMORY_SIZE - 3)
	require.ErrorIs(t, err, ErrAddressOutOfBounds)
	_, err = mem.Read32(0xFFFFFFFF)
	require.ErrorIs(t, err, ErrAddressOutOfBounds)

	var addrErr *AddressError
	require.True(t, errors.As(err, &addrErr))
	require.Equal(t, uint32(0xFFFFFFFF), addrErr.Addr)
	require.Equal(t, WORD_SIZE, addrErr.Size)
}

func TestMemory_StraddlingWriteLeavesMemoryUntouched(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.Write8(MEMORY_SIZE-2, 0x5A))
	require.NoError(t, mem.Write8(MEMORY_SIZE-1, 0xA5))

	require.ErrorIs(t, mem.Write32(MEMORY_SIZE-2, 0xFFFFFFFF), ErrAddressOutOfBounds)

	tail, err := mem.Range(MEMORY_SIZE-2, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x5A, 0xA5}, tail)
}

func TestMemory_DataSegment(t *testing.T) {
	mem := NewMemory()

	w0, err := mem.Read32(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x00112233), w0)

	w2, err := mem.Read32(8)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), w2)

	hello, err := mem.Range(16, 14)
	require.NoError(t, err)
	require.Equal(t, "hello world!!\x00", string(hello))

	awesome, err := mem.Range(32, 31)
	require.NoError(t, err)
	require.Equal(t, "awesome computer architecture.\x00", string(awesome))

	rest, err := mem.Range(64, 64)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 64), rest)
}

func TestMemory_RangeIsACopy(t *testing.T) {
	mem := NewMemory()
	r, err := mem.Range(0, 4)
	require.NoError(t, err)
	r[0] = 0xFF

	b, err := mem.Read8(0)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), b)

	_, err = mem.Range(0, -1)
	require.ErrorIs(t, err, ErrAddressOutOfBounds)
	_, err = mem.Range(MEMORY_SIZE-4, 5)
	require.ErrorIs(t, err, ErrAddressOutOfBounds)
}

func TestMemory_WriteRange(t *testing.T) {
	mem := NewMemorySize(16)
	require.Equal(t, 16, mem.Capacity())

	require.NoError(t, mem.WriteRange(12, []byte{1, 2, 3, 4}))
	w, err := mem.Read32(12)
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), w)

	require.ErrorIs(t, mem.WriteRange(13, []byte{9, 9, 9, 9}), ErrAddressOutOfBounds)
	w, err = mem.Read32(12)
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), w)
}
