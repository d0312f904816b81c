package base32_test

import (
	stdbase32 "encoding/base32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/base32"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("decodes known text", func(t *testing.T) {
		t.Parallel()
		out, err := base32.Decode("KNXW2ZJANFXHA5LU")
		require.NoError(t, err)
		assert.Equal(t, "Some input", string(out))
	})

	t.Run("is case insensitive", func(t *testing.T) {
		t.Parallel()
		upper, err := base32.Decode("KNXW2ZJANFXHA5LU")
		require.NoError(t, err)
		lower, err := base32.Decode("knxw2zjanfxha5lu")
		require.NoError(t, err)
		assert.Equal(t, upper, lower)
	})

	t.Run("strips trailing padding", func(t *testing.T) {
		t.Parallel()
		out, err := base32.Decode("MZXW6===")
		require.NoError(t, err)
		assert.Equal(t, "foo", string(out))
	})

	t.Run("truncates trailing partial byte", func(t *testing.T) {
		t.Parallel()
		out, err := base32.Decode("AAAAAAAAAAAAAAAA")
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 10), out)

		out, err = base32.Decode("ABC")
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"", "===="} {
			out, err := base32.Decode(in)
			assert.ErrorIs(t, err, base32.ErrEmptyInput, "input %q", in)
			assert.Nil(t, out)
		}
	})

	t.Run("rejects characters outside the alphabet", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"Some non base32 input", "ABCD1EFG", "ABCD8", "ABC=DEF", "ÄBCD"} {
			out, err := base32.Decode(in)
			assert.ErrorIs(t, err, base32.ErrInvalidCharacter, "input %q", in)
			assert.Nil(t, out)
		}
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("encodes known bytes", func(t *testing.T) {
		t.Parallel()
		out, err := base32.Encode([]byte("Some input"))
		require.NoError(t, err)
		assert.Equal(t, "KNXW2ZJANFXHA5LU", out)
	})

	t.Run("pads to a multiple of eight", func(t *testing.T) {
		t.Parallel()
		tests := map[string]string{
			"f":      "MY======",
			"fo":     "MZXQ====",
			"foo":    "MZXW6===",
			"foob":   "MZXW6YQ=",
			"fooba":  "MZXW6YTB",
			"foobar": "MZXW6YTBOI======",
		}
		for in, want := range tests {
			out, err := base32.Encode([]byte(in))
			require.NoError(t, err)
			assert.Equal(t, want, out, "input %q", in)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()
		_, err := base32.Encode(nil)
		assert.ErrorIs(t, err, base32.ErrEmptyInput)
		_, err = base32.Encode([]byte{})
		assert.ErrorIs(t, err, base32.ErrEmptyInput)
	})

	t.Run("no padding variant", func(t *testing.T) {
		t.Parallel()
		out, err := base32.EncodeNoPadding([]byte("foo"))
		require.NoError(t, err)
		assert.Equal(t, "MZXW6", out)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("decode of encode is identity", func(t *testing.T) {
		t.Parallel()
		for n := 1; n <= 40; n++ {
			data := make([]byte, n)
			for i := range data {
				data[i] = byte(i*37 + n*11)
			}
			text, err := base32.Encode(data)
			require.NoError(t, err)
			assert.Equal(t, stdbase32.StdEncoding.EncodeToString(data), text)

			back, err := base32.Decode(text)
			require.NoError(t, err)
			assert.Equal(t, data, back)
		}
	})

	t.Run("encode of decode is canonical", func(t *testing.T) {
		t.Parallel()
		back, err := base32.Decode("ABC")
		require.NoError(t, err)
		text, err := base32.Encode(back)
		require.NoError(t, err)
		assert.Equal(t, "AA======", text)

		back, err = base32.Decode("mzxw6")
		require.NoError(t, err)
		text, err = base32.Encode(back)
		require.NoError(t, err)
		assert.Equal(t, "MZXW6===", text)
	})
}

func TestValid(t *testing.T) {
	t.Parallel()
	assert.True(t, base32.Valid("JBSWY3DPEHPK3PXP"))
	assert.True(t, base32.Valid("jbswy3dp=="))
	assert.False(t, base32.Valid(""))
	assert.False(t, base32.Valid("BAD SECRET"))
	assert.False(t, base32.Valid("ABC1"))
}
